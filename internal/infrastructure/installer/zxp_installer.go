// Package installer extracts ZXP packages into a scope root.
package installer

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
	"github.com/zxpstudio/zxpman/internal/infrastructure/manifest"
	"github.com/zxpstudio/zxpman/internal/infrastructure/paths"
)

// ZXPInstaller installs ZXP package archives. Extraction goes through a
// temporary staging directory inside the target root and is renamed into
// place only once complete, so a concurrent scan never observes a
// partially-extracted extension.
type ZXPInstaller struct {
	resolver *paths.Resolver
	parser   *manifest.Parser
	logger   zerolog.Logger
}

// NewZXPInstaller creates an installer over the given resolver
func NewZXPInstaller(resolver *paths.Resolver, parser *manifest.Parser, logger zerolog.Logger) *ZXPInstaller {
	return &ZXPInstaller{
		resolver: resolver,
		parser:   parser,
		logger:   logger.With().Str("component", "installer").Logger(),
	}
}

// Install extracts archivePath into the given scope root and returns the
// final install path. An existing extension with the same derived id is
// replaced only after the new one is fully staged (last-writer-wins).
func (i *ZXPInstaller) Install(ctx context.Context, archivePath string, scope extensiondomain.Scope) (string, error) {
	if !validArchiveName(archivePath) {
		return "", fmt.Errorf("%w: %s", extensiondomain.ErrInvalidArchiveName, filepath.Base(archivePath))
	}
	if _, err := os.Stat(archivePath); err != nil {
		return "", fmt.Errorf("package not found: %w", err)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", extensiondomain.ErrCorruptArchive, err)
	}
	defer reader.Close()

	bundleID, err := i.peekBundleID(&reader.Reader)
	if err != nil {
		return "", err
	}
	dirName := manifest.InstallDirName(bundleID)

	root, err := i.scopeRoot(scope)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", extensiondomain.ErrDirCreationFailed, err)
	}

	staging, err := os.MkdirTemp(root, ".zxp-staging-")
	if err != nil {
		return "", fmt.Errorf("%w: %v", extensiondomain.ErrDirCreationFailed, err)
	}

	if err := i.extractAll(ctx, &reader.Reader, staging); err != nil {
		i.cleanupStaging(staging)
		return "", fmt.Errorf("%w: %v", extensiondomain.ErrExtractionFailed, err)
	}

	dest := filepath.Join(root, dirName)
	if err := os.RemoveAll(dest); err != nil {
		i.cleanupStaging(staging)
		return "", fmt.Errorf("%w: replacing %s: %v", extensiondomain.ErrExtractionFailed, dest, err)
	}
	if err := os.Rename(staging, dest); err != nil {
		i.cleanupStaging(staging)
		return "", fmt.Errorf("%w: %v", extensiondomain.ErrExtractionFailed, err)
	}

	i.logger.Info().Str("id", bundleID).Str("path", dest).Msg("installed extension")
	return dest, nil
}

// peekBundleID reads the archive's manifest before anything is written
func (i *ZXPInstaller) peekBundleID(reader *zip.Reader) (string, error) {
	for _, f := range reader.File {
		if filepath.ToSlash(f.Name) != manifest.DescriptorRelPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", extensiondomain.ErrCorruptArchive, err)
		}
		defer rc.Close()

		m, err := i.parser.Parse(rc)
		if err != nil {
			return "", fmt.Errorf("%w: %v", extensiondomain.ErrCorruptArchive, err)
		}
		return m.BundleID, nil
	}
	return "", fmt.Errorf("%w: package has no %s", extensiondomain.ErrCorruptArchive, manifest.DescriptorRelPath)
}

// extractAll writes every archive entry under staging, refusing paths that
// would escape it
func (i *ZXPInstaller) extractAll(ctx context.Context, reader *zip.Reader, staging string) error {
	for _, f := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := filepath.Join(staging, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(staging)+string(os.PathSeparator)) {
			return fmt.Errorf("unsafe archive path: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

// extractFile copies one archive entry to disk, preserving its mode
func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// cleanupStaging removes a failed staging directory. The install has
// already failed for another reason, so a cleanup failure is only logged.
func (i *ZXPInstaller) cleanupStaging(staging string) {
	if err := os.RemoveAll(staging); err != nil {
		i.logger.Warn().Err(err).Str("dir", staging).Msg("failed to clean up staging directory")
	}
}

// scopeRoot maps a scope to its extensions root
func (i *ZXPInstaller) scopeRoot(scope extensiondomain.Scope) (string, error) {
	switch scope {
	case extensiondomain.ScopeSystem:
		return i.resolver.SystemRoot()
	case extensiondomain.ScopeUser:
		return i.resolver.UserRoot()
	default:
		return "", fmt.Errorf("unknown scope %q", scope)
	}
}

// validArchiveName accepts .zxp (and plain .zip) packages, case-insensitively
func validArchiveName(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zxp", ".zip":
		return true
	default:
		return false
	}
}
