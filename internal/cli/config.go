package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/app"
	"github.com/udesa-vision/i308-utils/internal/config"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// configCmd groups configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the i308 configuration file",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with default values",
	Long: `Write a configuration file populated with defaults.

The format follows the extension: .yaml, .yml or .json.

Examples:
  i308 config init
  i308 config init ./i308.json --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, FlagForce, "f", false, DescForce)
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultConfigPath()
	if len(args) == 1 {
		path = args[0]
	}

	force := configForce
	if !force {
		expanded, err := fsutil.ExpandHome(path)
		if err == nil && fsutil.Exists(expanded) && !fsutil.IsDir(expanded) {
			ok, err := ConfirmOverwrite(expanded)
			if err != nil {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite): %w", expanded, err)
			}
			if !ok {
				printInfo("Configuration left unchanged")
				return nil
			}
			force = true
		}
	}

	written, err := app.InitConfig(app.ConfigInitOptions{Path: path, Force: force})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Config init failed: %v", err))
		return err
	}
	printSuccess(fmt.Sprintf("Configuration written to %s", written))
	return nil
}
