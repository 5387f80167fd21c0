// Package removal deletes extension directories, escalating to an OS
// authorization prompt when direct deletion is denied.
package removal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
	extensionports "github.com/zxpstudio/zxpman/internal/core/ports/extension"
)

// TieredRemover removes extension directories in two tiers: an
// unprivileged deletion first, then exactly one elevation attempt when the
// failure is permission-denied. The unprivileged path is the common case
// (user-scope extensions) and must not pay for an authorization prompt;
// escalation is never speculative.
type TieredRemover struct {
	removeTree func(string) error
	elevator   extensionports.Elevator
	logger     zerolog.Logger
}

// RemoverOption customizes a TieredRemover
type RemoverOption func(*TieredRemover)

// WithRemoveTreeFunc replaces the unprivileged deletion primitive, for tests
func WithRemoveTreeFunc(fn func(string) error) RemoverOption {
	return func(r *TieredRemover) { r.removeTree = fn }
}

// NewTieredRemover creates a remover that escalates through elevator
func NewTieredRemover(elevator extensionports.Elevator, logger zerolog.Logger, opts ...RemoverOption) *TieredRemover {
	r := &TieredRemover{
		removeTree: os.RemoveAll,
		elevator:   elevator,
		logger:     logger.With().Str("component", "remover").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remove deletes the directory tree rooted at path.
//
// The entry's Removable hint is never consulted: ownership can change
// between check and use, so the deletion attempt itself is the sole
// authority on whether elevation is needed.
func (r *TieredRemover) Remove(ctx context.Context, path string) error {
	// The unprivileged tier operates on the host filesystem, so the
	// host's path conventions apply here.
	if err := ValidatePath(runtime.GOOS, path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// os.RemoveAll treats a missing path as success; a manager asked to
	// remove something that is not there should say so instead.
	if _, err := os.Lstat(path); err != nil {
		return &extensiondomain.FilesystemError{Path: path, Cause: err}
	}

	err := r.removeTree(path)
	if err == nil {
		r.logger.Info().Str("path", path).Msg("removed extension")
		return nil
	}

	if !errors.Is(err, fs.ErrPermission) {
		return &extensiondomain.FilesystemError{Path: path, Cause: err}
	}

	r.logger.Debug().Str("path", path).Msg("permission denied, escalating")
	return r.elevator.RemoveElevated(ctx, path)
}
