package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zxpstudio/zxpman/internal/application/services"
	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// newBrowseCommand creates the interactive browse command
func newBrowseCommand(container func() (*CLIContainer, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive extension browser",
		Long: `Browse installed extensions in an interactive panel. Navigate with the
arrow keys, press 'x' to remove the selected extension (with confirmation),
'r' to rescan, and 'q' to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container()
			if err != nil {
				return err
			}

			model := newBrowseModel(c.Manager)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browse failed: %w", err)
			}
			return nil
		},
	}
}

// browseModel holds the state for the interactive panel
type browseModel struct {
	manager *services.ManagerService

	entries     []extensiondomain.Entry
	selectedRow int
	confirming  bool
	status      string
	loading     bool
	err         error

	windowWidth  int
	windowHeight int
}

// entriesLoadedMsg carries a completed scan
type entriesLoadedMsg struct {
	entries []extensiondomain.Entry
}

// removeDoneMsg carries the outcome of a removal
type removeDoneMsg struct {
	path string
	err  error
}

// browseErrMsg carries a fatal scan error
type browseErrMsg struct {
	err error
}

// newBrowseModel creates the initial panel state
func newBrowseModel(manager *services.ManagerService) browseModel {
	return browseModel{
		manager: manager,
		loading: true,
	}
}

// Init implements the Bubble Tea init method
func (m browseModel) Init() tea.Cmd {
	return m.scanCmd()
}

// Update implements the Bubble Tea update method
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case entriesLoadedMsg:
		m.entries = msg.entries
		m.loading = false
		if m.selectedRow >= len(m.entries) {
			m.selectedRow = max(0, len(m.entries)-1)
		}
		return m, nil

	case removeDoneMsg:
		switch {
		case errors.Is(msg.err, extensiondomain.ErrUserCancelled):
			m.status = "Removal cancelled."
		case msg.err != nil:
			m.status = fmt.Sprintf("Remove failed: %v", msg.err)
		default:
			m.status = fmt.Sprintf("Removed %s", msg.path)
		}
		// Snapshots are stale after any mutation; always rescan.
		m.loading = true
		return m, m.scanCmd()

	case browseErrMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKey processes one key press
func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			if entry, ok := m.selectedEntry(); ok {
				m.status = fmt.Sprintf("Removing %s...", entry.Name)
				return m, m.removeCmd(entry.Path)
			}
			return m, nil
		default:
			m.confirming = false
			m.status = ""
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.entries)-1 {
			m.selectedRow++
		}
	case "r":
		m.loading = true
		m.status = ""
		return m, m.scanCmd()
	case "x":
		if entry, ok := m.selectedEntry(); ok {
			m.confirming = true
			m.status = fmt.Sprintf("Remove %s? [y/n]", entry.Name)
		}
	}
	return m, nil
}

// View implements the Bubble Tea view method
func (m browseModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'q' to quit", m.err)
	}

	title := headerStyle.Render("ZXP Manager")
	var body string
	switch {
	case m.loading:
		body = dimStyle.Render("\n  Scanning extensions...\n")
	case len(m.entries) == 0:
		body = dimStyle.Render("\n  No extensions installed.\n")
	default:
		body = m.renderRows()
	}

	status := m.status
	if status == "" {
		status = fmt.Sprintf("%d extension(s)", len(m.entries))
	}
	footer := dimStyle.Render("Controls: [↑↓] Navigate | [x] Remove | [r] Rescan | [q] Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, footer)
}

// renderRows renders the extension table with the selection highlighted
func (m browseModel) renderRows() string {
	header := headerStyle.Render(fmt.Sprintf("  %-36s %-12s %-8s %-12s %-10s",
		"EXTENSION", "VERSION", "SCOPE", "CATEGORY", "SIZE"))

	rows := []string{header}
	for i, entry := range m.entries {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.selectedRow {
			marker = "> "
			rowStyle = rowStyle.Background(lipgloss.Color("240"))
		}
		row := fmt.Sprintf("%s%-36s %-12s %-8s %-12s %-10s",
			marker,
			truncate(entry.Name, 36),
			truncate(entry.Version, 12),
			entry.Scope,
			entry.Category,
			entry.FormatSize(),
		)
		rows = append(rows, rowStyle.Render(row))
	}
	return strings.Join(rows, "\n")
}

// selectedEntry returns the entry under the cursor
func (m browseModel) selectedEntry() (extensiondomain.Entry, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.entries) {
		return extensiondomain.Entry{}, false
	}
	return m.entries[m.selectedRow], true
}

// scanCmd loads a fresh snapshot
func (m browseModel) scanCmd() tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		entries, err := manager.Scan(context.Background())
		if err != nil {
			return browseErrMsg{err: err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

// removeCmd removes one extension directory
func (m browseModel) removeCmd(path string) tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		return removeDoneMsg{path: path, err: manager.Remove(context.Background(), path)}
	}
}
