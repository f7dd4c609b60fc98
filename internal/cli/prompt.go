package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForRepository asks for the repository and optional path to mirror.
func PromptForRepository() (repository, path string, err error) {
	repoPrompt := &survey.Input{
		Message: "Repository (owner/repo or GitHub URL)",
		Help:    "For example udesa-vision/i308-resources or https://github.com/udesa-vision/i308-resources/tree/main/tp1",
	}
	opts := survey.WithValidator(survey.ComposeValidators(survey.Required, repositoryValidator))
	if err := survey.AskOne(repoPrompt, &repository, opts); err != nil {
		return "", "", err
	}

	pathPrompt := &survey.Input{
		Message: "Path inside the repository",
		Help:    "Leave empty to mirror from the repository root",
	}
	if err := survey.AskOne(pathPrompt, &path); err != nil {
		return "", "", err
	}
	return repository, path, nil
}

// ConfirmOverwrite asks before replacing an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite?", path),
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// repositoryValidator is a survey.Validator accepting the forms ParseLocation does.
func repositoryValidator(val interface{}) error {
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", val)
	}
	if s == "" {
		return nil
	}
	return ValidateRepository(s)
}
