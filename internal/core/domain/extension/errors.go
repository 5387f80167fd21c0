package extensiondomain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the lifecycle operations.
var (
	// ErrHomeDirUnavailable means the user's home directory could not be
	// determined; scanning cannot proceed at all
	ErrHomeDirUnavailable = errors.New("home directory unavailable")

	// ErrUnsupportedPlatform means the OS has no known extension layout
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrManifestMissing means CSXS/manifest.xml does not exist under the
	// extension directory; callers fall back to directory-derived metadata
	ErrManifestMissing = errors.New("manifest not found")

	// ErrInvalidArchiveName means the install input is not a .zxp or .zip file
	ErrInvalidArchiveName = errors.New("package must have a .zxp or .zip extension")

	// ErrCorruptArchive means the package's zip index could not be read
	ErrCorruptArchive = errors.New("invalid or corrupt ZXP package")

	// ErrDirCreationFailed means the target scope root could not be created
	ErrDirCreationFailed = errors.New("failed to create extensions directory")

	// ErrExtractionFailed means extraction into the staging directory failed
	ErrExtractionFailed = errors.New("failed to extract ZXP package")

	// ErrUserCancelled means the user declined the elevation prompt. This is
	// a benign outcome, not a failure to report as an error.
	ErrUserCancelled = errors.New("authorization cancelled by user")

	// ErrInvalidPath means a path was rejected before any command
	// construction: empty, relative, NUL-containing, or over the length limit
	ErrInvalidPath = errors.New("invalid path")
)

// ManifestParseError reports malformed manifest XML with its cause.
// It degrades a single entry and never aborts a scan.
type ManifestParseError struct {
	Path  string
	Cause error
}

// Error implements the error interface
func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("malformed manifest at %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause
func (e *ManifestParseError) Unwrap() error {
	return e.Cause
}

// FilesystemError reports a removal failure that was neither success nor
// permission denial: missing path, I/O error, held lock.
type FilesystemError struct {
	Path  string
	Cause error
}

// Error implements the error interface
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to remove %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause
func (e *FilesystemError) Unwrap() error {
	return e.Cause
}

// ElevationError reports a privileged deletion that ran and failed for a
// reason other than the user declining the prompt.
type ElevationError struct {
	Path       string
	ExitCode   int
	Diagnostic string
}

// Error implements the error interface
func (e *ElevationError) Error() string {
	return fmt.Sprintf("elevated removal of %s failed (exit %d): %s", e.Path, e.ExitCode, e.Diagnostic)
}
