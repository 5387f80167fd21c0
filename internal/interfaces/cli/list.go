package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	nativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	thirdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newListCommand creates the list command
func newListCommand(container func() (*CLIContainer, error)) *cobra.Command {
	var scopeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed CEP extensions",
		Long: `Scan the system and user extension directories and list every installed
extension with its version, scope, category, and on-disk size.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container()
			if err != nil {
				return err
			}

			entries, err := c.Manager.Scan(cmd.Context())
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if scopeFilter != "" {
				scope, err := extensiondomain.NewScope(scopeFilter)
				if err != nil {
					return err
				}
				entries = filterByScope(entries, scope)
			}

			fmt.Fprint(cmd.OutOrStdout(), renderEntryTable(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFilter, "scope", "", "Only show one scope (system or user)")
	return cmd
}

// filterByScope keeps entries discovered under the given scope
func filterByScope(entries []extensiondomain.Entry, scope extensiondomain.Scope) []extensiondomain.Entry {
	filtered := make([]extensiondomain.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Scope == scope {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// renderEntryTable renders the extension list as an aligned table
func renderEntryTable(entries []extensiondomain.Entry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No extensions installed.") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-36s %-12s %-8s %-12s %-10s", "EXTENSION", "VERSION", "SCOPE", "CATEGORY", "SIZE")))
	b.WriteString("\n")

	for _, entry := range entries {
		categoryStyle := thirdStyle
		if entry.Category == extensiondomain.CategoryNative {
			categoryStyle = nativeStyle
		}
		// Pad before styling so ANSI codes do not skew column widths.
		category := categoryStyle.Render(fmt.Sprintf("%-12s", entry.Category))
		b.WriteString(fmt.Sprintf("%-36s %-12s %-8s %s %-10s\n",
			truncate(entry.Name, 36),
			truncate(entry.Version, 12),
			entry.Scope,
			category,
			entry.FormatSize(),
		))
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d extension(s)", len(entries))))
	b.WriteString("\n")
	return b.String()
}

// truncate shortens s to maxLen runes with an ellipsis. Cutting on runes
// keeps multibyte display names intact.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
