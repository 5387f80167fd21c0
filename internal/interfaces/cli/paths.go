package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPathsCommand creates the paths command
func newPathsCommand(container func() (*CLIContainer, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the extension scope directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container()
			if err != nil {
				return err
			}

			systemRoot, userRoot, err := c.Resolver.Roots()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "System scope: %s\n", systemRoot)
			fmt.Fprintf(cmd.OutOrStdout(), "User scope:   %s\n", userRoot)
			return nil
		},
	}
}
