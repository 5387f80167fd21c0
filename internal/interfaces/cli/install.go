package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// newInstallCommand creates the install command
func newInstallCommand(container func() (*CLIContainer, error)) *cobra.Command {
	var scopeName string

	cmd := &cobra.Command{
		Use:   "install <package.zxp>",
		Short: "Install a ZXP extension package",
		Long: `Extract a ZXP package into an extensions directory. The extension id is
read from the package's CSXS/manifest.xml; an already-installed extension
with the same id is replaced.`,
		Example: `  # Install into the current user's extensions directory
  zxpman install ./my-panel.zxp

  # Install machine-wide (may require running with elevated rights)
  zxpman install ./my-panel.zxp --scope system`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := extensiondomain.NewScope(scopeName)
			if err != nil {
				return err
			}

			c, err := container()
			if err != nil {
				return err
			}

			installedPath, err := c.Manager.Install(cmd.Context(), args[0], scope)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed to %s\n", installedPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeName, "scope", "user", "Target scope: user or system")
	return cmd
}
