package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the zxpman root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "zxpman",
		Short: "ZXP Manager - Adobe CEP extension lifecycle manager",
		Long: `ZXP Manager (zxpman) manages Adobe CEP extensions on the local machine:
it discovers installed extensions across the system and user scopes, installs
ZXP packages, and removes extensions, escalating through the OS authorization
prompt when a deletion needs administrator rights.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default is ~/.config/zxpman/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	container := func() (*CLIContainer, error) {
		return NewContainer(configPath, verbose)
	}

	rootCmd.AddCommand(newListCommand(container))
	rootCmd.AddCommand(newInstallCommand(container))
	rootCmd.AddCommand(newRemoveCommand(container))
	rootCmd.AddCommand(newPathsCommand(container))
	rootCmd.AddCommand(newBrowseCommand(container))

	return rootCmd
}

// Execute runs the root command and exits non-zero on error
func Execute(version, commit, date string) {
	if err := NewRootCommand(version, commit, date).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
