package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/config"
	"github.com/udesa-vision/i308-utils/internal/debug"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalConfig  string
)

// loadedConfig is the configuration resolved by PersistentPreRunE.
var loadedConfig = config.DefaultConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "i308",
	Short: "Utilities for the i308 computer vision tutorials",
	Long: `i308 fetches and prepares tutorial resources.

Use "i308 github <owner/repo> [path]" to mirror a directory of a GitHub
repository, "i308 download <url>" and "i308 unzip <archive>" to fetch and
unpack datasets, "i308 npprint" to turn CSV data into a NumPy literal and
"i308 show <image>..." to lay out images in a single figure.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadGlobalConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVar(&globalConfig, FlagConfig, "", DescConfig)

	// Add subcommands
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(unzipCmd)
	rootCmd.AddCommand(npprintCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadGlobalConfig loads the configuration file and applies output settings.
// An explicit --config must exist; the default path is optional.
func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	debug.SetDebug(globalDebug)
	loader := config.NewLoader()

	var (
		cfg *config.Config
		err error
	)
	if globalConfig != "" {
		cfg, err = loader.Load(globalConfig)
	} else {
		cfg, err = loader.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return err
	}
	loadedConfig = cfg

	globalNoColor = globalNoColor || cfg.Output.NoColor
	globalQuiet = globalQuiet || cfg.Output.Quiet
	debug.SetDebug(globalDebug || cfg.Output.Debug)
	debug.SetNoColor(globalNoColor)
	debug.SetQuiet(globalQuiet)
	return nil
}

// printError prints an error message to stderr
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
