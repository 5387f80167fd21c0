package extensionports

import (
	"context"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// Manifest is the metadata extracted from a CSXS/manifest.xml descriptor
type Manifest struct {
	BundleID string
	Name     string
	Version  string
}

// ManifestReader extracts identity metadata from an extension directory
type ManifestReader interface {
	// Read locates and parses CSXS/manifest.xml under dir. Returns
	// extensiondomain.ErrManifestMissing when the descriptor is absent and a
	// *extensiondomain.ManifestParseError when it is malformed.
	Read(dir string) (*Manifest, error)
}

// OwnershipChecker determines whether the current process can delete a
// directory without elevation. Advisory only; never a security boundary.
type OwnershipChecker interface {
	// Removable reports whether the process owns the directory at path
	Removable(path string) bool
}

// Scanner enumerates installed extensions across both scope roots
type Scanner interface {
	// Scan returns a fresh snapshot of discovered extensions, ordered
	// deterministically. Per-entry failures degrade the entry; the only
	// fatal condition is an unresolvable environment.
	Scan(ctx context.Context) ([]extensiondomain.Entry, error)
}

// Installer extracts ZXP packages into a scope root
type Installer interface {
	// Install validates archivePath, stages its contents inside the target
	// scope root, and atomically renames the staging directory into place
	// under the bundle id derived from the archive's manifest. Returns the
	// final install path.
	Install(ctx context.Context, archivePath string, scope extensiondomain.Scope) (string, error)
}

// Remover deletes an extension directory, escalating on permission denial
type Remover interface {
	// Remove attempts unprivileged deletion of the tree rooted at path and
	// falls back to the Elevator exactly once when the failure is
	// permission-denied. Any other failure is terminal.
	Remove(ctx context.Context, path string) error
}

// Elevator re-executes a deletion through an OS-native authorization prompt
type Elevator interface {
	// RemoveElevated launches the privileged deletion process for path and
	// classifies its outcome: nil on success,
	// extensiondomain.ErrUserCancelled when the user declined the prompt,
	// and a *extensiondomain.ElevationError otherwise. The context is
	// consulted only before the prompt is shown; once launched it is modal.
	RemoveElevated(ctx context.Context, path string) error
}

// PathResolver computes the OS-specific scope roots without touching the
// filesystem
type PathResolver interface {
	// Roots returns (systemRoot, userRoot) as absolute paths
	Roots() (string, string, error)
}
