// Package paths computes the OS-specific CEP extension root directories.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
)

// Resolver computes the system and user scope roots for one platform.
// Resolution is pure path arithmetic; the filesystem is never touched and
// callers create directories before writing into them.
type Resolver struct {
	goos string

	// overrides from configuration, empty when unset
	systemRoot string
	userRoot   string

	// injectable for tests
	homeDir func() (string, error)
	getenv  func(string) string
}

// Option customizes a Resolver
type Option func(*Resolver)

// WithSystemRoot overrides the computed system scope root
func WithSystemRoot(root string) Option {
	return func(r *Resolver) { r.systemRoot = root }
}

// WithUserRoot overrides the computed user scope root
func WithUserRoot(root string) Option {
	return func(r *Resolver) { r.userRoot = root }
}

// WithHomeDirFunc replaces home directory resolution, for tests
func WithHomeDirFunc(fn func() (string, error)) Option {
	return func(r *Resolver) { r.homeDir = fn }
}

// WithGetenv replaces environment lookup, for tests
func WithGetenv(fn func(string) string) Option {
	return func(r *Resolver) { r.getenv = fn }
}

// NewResolver creates a resolver for the current platform
func NewResolver(opts ...Option) *Resolver {
	return NewResolverFor(runtime.GOOS, opts...)
}

// NewResolverFor creates a resolver for an explicit GOOS value
func NewResolverFor(goos string, opts ...Option) *Resolver {
	r := &Resolver{
		goos:    goos,
		homeDir: homedir.Dir,
		getenv:  os.Getenv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Roots returns (systemRoot, userRoot) for the resolver's platform
func (r *Resolver) Roots() (string, string, error) {
	system, err := r.SystemRoot()
	if err != nil {
		return "", "", err
	}
	user, err := r.UserRoot()
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

// SystemRoot returns the machine-wide extensions directory
func (r *Resolver) SystemRoot() (string, error) {
	if r.systemRoot != "" {
		return r.systemRoot, nil
	}
	switch r.goos {
	case "darwin":
		return filepath.Join("/Library", "Application Support", "Adobe", "CEP", "extensions"), nil
	case "windows":
		programFiles := r.getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		return filepath.Join(programFiles, "Common Files", "Adobe", "CEP", "extensions"), nil
	default:
		return "", fmt.Errorf("%w: %s", extensiondomain.ErrUnsupportedPlatform, r.goos)
	}
}

// UserRoot returns the per-user extensions directory
func (r *Resolver) UserRoot() (string, error) {
	if r.userRoot != "" {
		return r.userRoot, nil
	}
	switch r.goos {
	case "darwin":
		home, err := r.homeDir()
		if err != nil || home == "" {
			return "", fmt.Errorf("%w: %v", extensiondomain.ErrHomeDirUnavailable, err)
		}
		return filepath.Join(home, "Library", "Application Support", "Adobe", "CEP", "extensions"), nil
	case "windows":
		appData := r.getenv("APPDATA")
		if appData == "" {
			home, err := r.homeDir()
			if err != nil || home == "" {
				return "", fmt.Errorf("%w: %v", extensiondomain.ErrHomeDirUnavailable, err)
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Adobe", "CEP", "extensions"), nil
	default:
		return "", fmt.Errorf("%w: %s", extensiondomain.ErrUnsupportedPlatform, r.goos)
	}
}
