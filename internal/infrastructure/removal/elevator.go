package removal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// maxPathLen rejects paths beyond the platform limit before any command is
// constructed from them.
const maxPathLen = 4096

// commandRunner executes one external process and reports its exit code and
// captured stderr. Injectable so tests can simulate elevation outcomes.
type commandRunner func(ctx context.Context, name string, args ...string) (exitCode int, stderr string, err error)

// OSElevator re-executes a deletion through the platform's authorization
// prompt: osascript's "with administrator privileges" on macOS, a
// PowerShell RunAs process on Windows. It blocks for the duration of the
// privileged process; the prompt is modal, so the context is consulted
// only before launch.
type OSElevator struct {
	goos   string
	run    commandRunner
	logger zerolog.Logger
}

// NewOSElevator creates an elevator for the current platform
func NewOSElevator(logger zerolog.Logger) *OSElevator {
	return NewOSElevatorFor(runtime.GOOS, logger)
}

// NewOSElevatorFor creates an elevator for an explicit GOOS value
func NewOSElevatorFor(goos string, logger zerolog.Logger) *OSElevator {
	return &OSElevator{
		goos:   goos,
		run:    runCommand,
		logger: logger.With().Str("component", "elevator").Logger(),
	}
}

// RemoveElevated deletes the tree at path with elevated rights.
// Returns nil on success, extensiondomain.ErrUserCancelled when the user
// declined the prompt, and a *extensiondomain.ElevationError otherwise.
func (e *OSElevator) RemoveElevated(ctx context.Context, path string) error {
	if err := ValidatePath(e.goos, path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name, args, err := e.deleteCommand(path)
	if err != nil {
		return err
	}

	e.logger.Info().Str("path", path).Msg("requesting elevated removal")
	exitCode, diagnostic, err := e.run(ctx, name, args...)
	if err != nil {
		return &extensiondomain.ElevationError{Path: path, ExitCode: exitCode, Diagnostic: err.Error()}
	}
	if exitCode == 0 {
		return nil
	}
	if e.userCancelled(diagnostic) {
		e.logger.Info().Str("path", path).Msg("user declined elevation prompt")
		return extensiondomain.ErrUserCancelled
	}
	return &extensiondomain.ElevationError{Path: path, ExitCode: exitCode, Diagnostic: strings.TrimSpace(diagnostic)}
}

// deleteCommand builds the privileged deletion invocation for one path.
// The outer process is always invoked with an argument vector; only the
// inner script embeds the path, fully quoted.
func (e *OSElevator) deleteCommand(path string) (string, []string, error) {
	switch e.goos {
	case "darwin":
		inner := "rm -rf -- " + shellQuote(path)
		script := fmt.Sprintf("do shell script %s with administrator privileges", appleScriptQuote(inner))
		return "osascript", []string{"-e", script}, nil
	case "windows":
		inner := "Remove-Item -LiteralPath " + powerShellQuote(path) + " -Recurse -Force"
		script := fmt.Sprintf(
			"Start-Process -Verb RunAs -Wait -WindowStyle Hidden -FilePath 'powershell.exe' -ArgumentList '-NoProfile','-Command',%s",
			powerShellQuote(inner),
		)
		return "powershell.exe", []string{"-NoProfile", "-NonInteractive", "-Command", script}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", extensiondomain.ErrUnsupportedPlatform, e.goos)
	}
}

// userCancelled recognizes the platform's declined-prompt diagnostics
func (e *OSElevator) userCancelled(diagnostic string) bool {
	lower := strings.ToLower(diagnostic)
	switch e.goos {
	case "darwin":
		// osascript reports "execution error: User canceled. (-128)"
		return strings.Contains(lower, "user canceled") || strings.Contains(diagnostic, "(-128)")
	case "windows":
		return strings.Contains(lower, "canceled by the user") || strings.Contains(lower, "cancelled by the user")
	default:
		return false
	}
}

// ValidatePath rejects path data that must never reach command
// construction: empty or relative paths, NUL bytes, and oversized paths.
// Absoluteness follows goos's conventions, not the host's.
func ValidatePath(goos, path string) error {
	switch {
	case path == "":
		return fmt.Errorf("%w: empty", extensiondomain.ErrInvalidPath)
	case strings.ContainsRune(path, 0):
		return fmt.Errorf("%w: contains NUL byte", extensiondomain.ErrInvalidPath)
	case strings.ContainsFunc(path, func(r rune) bool { return r < 0x20 }):
		// Control characters cannot be represented in an AppleScript
		// string literal and have no business in an extension path.
		return fmt.Errorf("%w: contains control characters", extensiondomain.ErrInvalidPath)
	case len(path) > maxPathLen:
		return fmt.Errorf("%w: exceeds %d bytes", extensiondomain.ErrInvalidPath, maxPathLen)
	case !absolutePath(goos, path):
		return fmt.Errorf("%w: not absolute: %s", extensiondomain.ErrInvalidPath, path)
	}
	return nil
}

// absolutePath reports whether path is absolute under goos's rules.
// filepath.IsAbs answers for the host only, so Windows drive-letter and
// UNC forms are recognized by hand.
func absolutePath(goos, path string) bool {
	if goos != "windows" {
		return filepath.IsAbs(path)
	}
	if strings.HasPrefix(path, `\\`) {
		return true
	}
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		c := path[0]
		return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
	}
	return false
}

// runCommand is the production commandRunner
func runCommand(ctx context.Context, name string, args ...string) (int, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return 0, stderr.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), stderr.String(), nil
	}
	return -1, stderr.String(), err
}
