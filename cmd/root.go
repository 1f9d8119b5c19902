// Package cmd implements the guidee CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	verbose        bool
	themeOverride  string
	apiURL         string
	nonInteractive bool

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "guidee",
	Short: "Book local guides and manage your Guidee guide profile",
	Long: "Guidee is a CLI for the Guidee travel-guide marketplace: register an account, " +
		"set up a guide profile, book tours, and run a local marketplace backend for development.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "guidee.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "marketplace API base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "fill wizards from --set flags instead of the terminal UI")

	rootCmd.AddCommand(
		registerCmd, loginCmd, logoutCmd, profileCmd,
		bookCmd, quoteCmd, servicesCmd,
		serveCmd, validateConfigCmd,
	)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("guidee %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
