// Package discovery enumerates installed CEP extensions across scope roots.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
	extensionports "github.com/zxpstudio/zxpman/internal/core/ports/extension"
)

// FileSystemScanner discovers extensions by scanning the system and user
// scope roots. Discovery is maximally permissive: a missing or broken
// manifest degrades one entry's metadata and never hides the entry, and an
// unreadable subdirectory never aborts its siblings.
type FileSystemScanner struct {
	resolver  extensionports.PathResolver
	manifests extensionports.ManifestReader
	ownership extensionports.OwnershipChecker
	logger    zerolog.Logger
}

// NewFileSystemScanner creates a scanner over the given collaborators
func NewFileSystemScanner(
	resolver extensionports.PathResolver,
	manifests extensionports.ManifestReader,
	ownership extensionports.OwnershipChecker,
	logger zerolog.Logger,
) *FileSystemScanner {
	return &FileSystemScanner{
		resolver:  resolver,
		manifests: manifests,
		ownership: ownership,
		logger:    logger.With().Str("component", "scanner").Logger(),
	}
}

// Scan returns a fresh snapshot of all discovered extensions.
//
// Both scope roots are enumerated; a root that does not exist is skipped
// silently. When the same bundle id appears in both scopes, the user-scope
// entry wins: it is the one editable without elevation. Results are sorted
// lexicographically by id so identical inputs produce identical output.
// The only fatal condition is an unresolvable environment (home directory).
func (s *FileSystemScanner) Scan(ctx context.Context) ([]extensiondomain.Entry, error) {
	systemRoot, userRoot, err := s.resolver.Roots()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]extensiondomain.Entry)

	// System first so user-scope entries overwrite on id collision.
	for _, root := range []struct {
		path  string
		scope extensiondomain.Scope
	}{
		{systemRoot, extensiondomain.ScopeSystem},
		{userRoot, extensiondomain.ScopeUser},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.scanRoot(ctx, root.path, root.scope, byID)
	}

	entries := make([]extensiondomain.Entry, 0, len(byID))
	for _, entry := range byID {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	s.logger.Debug().Int("count", len(entries)).Msg("scan complete")
	return entries, nil
}

// scanRoot enumerates one scope root into the dedupe map
func (s *FileSystemScanner) scanRoot(ctx context.Context, root string, scope extensiondomain.Scope, byID map[string]extensiondomain.Entry) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		// Absence of a root is normal; anything else skips the scope.
		if !os.IsNotExist(err) {
			s.logger.Debug().Err(err).Str("root", root).Msg("skipping unreadable scope root")
		}
		return
	}

	for _, dirEntry := range dirEntries {
		if ctx.Err() != nil {
			return
		}
		if !dirEntry.IsDir() {
			continue
		}
		entry := s.buildEntry(filepath.Join(root, dirEntry.Name()), dirEntry.Name(), scope)
		byID[entry.ID] = entry
	}
}

// buildEntry constructs one Entry, degrading to directory-derived metadata
// when the manifest is missing or malformed
func (s *FileSystemScanner) buildEntry(dir, dirName string, scope extensiondomain.Scope) extensiondomain.Entry {
	entry := extensiondomain.Entry{
		ID:        dirName,
		Name:      dirName,
		Version:   extensiondomain.UnknownVersion,
		Path:      dir,
		Scope:     scope,
		Removable: s.ownership.Removable(dir),
		SizeBytes: directorySize(dir),
	}

	m, err := s.manifests.Read(dir)
	if err != nil {
		s.logger.Debug().Err(err).Str("dir", dir).Msg("using directory-derived metadata")
	} else {
		entry.ID = m.BundleID
		entry.Name = m.Name
		entry.Version = m.Version
	}

	entry.Category = extensiondomain.CategoryForBundleID(entry.ID)
	return entry
}

// directorySize sums regular file sizes under dir, or -1 when the walk
// cannot complete
func directorySize(dir string) int64 {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return -1
	}
	return total
}
