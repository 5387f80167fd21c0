package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// newRemoveCommand creates the remove command
func newRemoveCommand(container func() (*CLIContainer, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <extension-id-or-path>",
		Short: "Remove an installed extension",
		Long: `Delete an extension directory. The argument is an extension id from
'zxpman list' or a directory path. Deletion is attempted with normal rights
first; when that is denied, the OS authorization prompt is shown and the
deletion re-runs with administrator rights.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container()
			if err != nil {
				return err
			}

			target := args[0]
			if !filepath.IsAbs(target) {
				resolved, err := resolveExtensionPath(cmd, c, target)
				if err != nil {
					return err
				}
				target = resolved
			}

			err = c.Manager.Remove(cmd.Context(), target)
			if errors.Is(err, extensiondomain.ErrUserCancelled) {
				// Declining the prompt is a legitimate choice, not a failure.
				fmt.Fprintln(cmd.OutOrStdout(), "Removal cancelled.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", target)
			return nil
		},
	}

	return cmd
}

// resolveExtensionPath maps an extension id to its install path via a scan
func resolveExtensionPath(cmd *cobra.Command, c *CLIContainer, id string) (string, error) {
	entries, err := c.Manager.Scan(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("scan failed: %w", err)
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry.Path, nil
		}
	}
	return "", fmt.Errorf("no installed extension with id %q", id)
}
