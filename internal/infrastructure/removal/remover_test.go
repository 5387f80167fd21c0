package removal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// stubElevator records elevation attempts and returns a canned outcome
type stubElevator struct {
	calls  int
	paths  []string
	result error
}

func (s *stubElevator) RemoveElevated(_ context.Context, path string) error {
	s.calls++
	s.paths = append(s.paths, path)
	return s.result
}

// TestRemove_OwnedPath_NoElevation tests that the common unprivileged case
// never pays for an authorization prompt
func TestRemove_OwnedPath_NoElevation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "com.example.mine")
	require.NoError(t, mkdirWithFile(dir))

	elevator := &stubElevator{}
	remover := NewTieredRemover(elevator, zerolog.Nop())

	require.NoError(t, remover.Remove(context.Background(), dir))
	assert.NoDirExists(t, dir)
	assert.Zero(t, elevator.calls, "elevation must not run for removable paths")
}

// TestRemove_PermissionDenied_EscalatesExactlyOnce tests the tier transition
func TestRemove_PermissionDenied_EscalatesExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	elevator := &stubElevator{}
	remover := NewTieredRemover(elevator, zerolog.Nop(), WithRemoveTreeFunc(func(path string) error {
		return &fs.PathError{Op: "unlinkat", Path: path, Err: fs.ErrPermission}
	}))

	require.NoError(t, remover.Remove(context.Background(), dir))
	assert.Equal(t, 1, elevator.calls)
	assert.Equal(t, []string{dir}, elevator.paths)
}

// TestRemove_UserCancelledElevation_IsBenign tests that a declined prompt
// surfaces as the dedicated sentinel, not a generic error
func TestRemove_UserCancelledElevation_IsBenign(t *testing.T) {
	dir := t.TempDir()
	elevator := &stubElevator{result: extensiondomain.ErrUserCancelled}
	remover := NewTieredRemover(elevator, zerolog.Nop(), WithRemoveTreeFunc(func(string) error {
		return fs.ErrPermission
	}))

	err := remover.Remove(context.Background(), dir)
	assert.ErrorIs(t, err, extensiondomain.ErrUserCancelled)
	assert.Equal(t, 1, elevator.calls)
}

// TestRemove_NonPermissionFailure_IsTerminal tests that only the narrowly
// classified permission failure escalates
func TestRemove_NonPermissionFailure_IsTerminal(t *testing.T) {
	dir := t.TempDir()
	ioFailure := errors.New("device busy")
	elevator := &stubElevator{}
	remover := NewTieredRemover(elevator, zerolog.Nop(), WithRemoveTreeFunc(func(string) error {
		return ioFailure
	}))

	err := remover.Remove(context.Background(), dir)
	require.Error(t, err)

	var fsErr *extensiondomain.FilesystemError
	require.ErrorAs(t, err, &fsErr)
	assert.ErrorIs(t, err, ioFailure)
	assert.Zero(t, elevator.calls, "non-permission failures must never escalate")
}

// TestRemove_MissingPath_Fails tests that removing nothing is an error
func TestRemove_MissingPath_Fails(t *testing.T) {
	elevator := &stubElevator{}
	remover := NewTieredRemover(elevator, zerolog.Nop())

	err := remover.Remove(context.Background(), filepath.Join(t.TempDir(), "never-existed"))
	var fsErr *extensiondomain.FilesystemError
	require.ErrorAs(t, err, &fsErr)
	assert.Zero(t, elevator.calls)
}

// TestRemove_RejectsInvalidPaths tests the security precheck
func TestRemove_RejectsInvalidPaths(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		description string
	}{
		{"Empty", "", "empty paths must be rejected"},
		{"Relative", "com.example.tool", "relative paths must be rejected"},
		{"NulByte", "/tmp/evil\x00path", "NUL bytes must never reach command construction"},
		{"Oversized", "/" + strings.Repeat("a", maxPathLen), "paths beyond the platform limit must be rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primitiveCalled := false
			elevator := &stubElevator{}
			remover := NewTieredRemover(elevator, zerolog.Nop(), WithRemoveTreeFunc(func(string) error {
				primitiveCalled = true
				return nil
			}))

			err := remover.Remove(context.Background(), tt.path)
			assert.ErrorIs(t, err, extensiondomain.ErrInvalidPath, tt.description)
			assert.False(t, primitiveCalled, "deletion must never be attempted")
			assert.Zero(t, elevator.calls)
		})
	}
}

// mkdirWithFile creates a directory containing one file, to exercise
// recursive deletion
func mkdirWithFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "payload.txt"), []byte("data"), 0o644)
}
