// Package services wires the lifecycle operations behind one facade.
package services

import (
	"context"

	"github.com/rs/zerolog"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
	extensionports "github.com/zxpstudio/zxpman/internal/core/ports/extension"
)

// ManagerService is the request/response surface the presentation layer
// consumes: scan, install, remove. It holds no state and exposes no
// notification mechanism; callers re-scan after every successful mutating
// call, since every scan result is a point-in-time snapshot.
type ManagerService struct {
	scanner   extensionports.Scanner
	installer extensionports.Installer
	remover   extensionports.Remover
	logger    zerolog.Logger
}

// NewManagerService creates the lifecycle facade
func NewManagerService(
	scanner extensionports.Scanner,
	installer extensionports.Installer,
	remover extensionports.Remover,
	logger zerolog.Logger,
) *ManagerService {
	return &ManagerService{
		scanner:   scanner,
		installer: installer,
		remover:   remover,
		logger:    logger.With().Str("component", "manager").Logger(),
	}
}

// Scan returns a fresh snapshot of installed extensions
func (s *ManagerService) Scan(ctx context.Context) ([]extensiondomain.Entry, error) {
	return s.scanner.Scan(ctx)
}

// Install extracts a ZXP package into the given scope and returns the
// resulting install path
func (s *ManagerService) Install(ctx context.Context, archivePath string, scope extensiondomain.Scope) (string, error) {
	path, err := s.installer.Install(ctx, archivePath, scope)
	if err != nil {
		s.logger.Error().Err(err).Str("archive", archivePath).Msg("install failed")
		return "", err
	}
	return path, nil
}

// Remove deletes an extension directory, escalating on permission denial.
// A user-declined elevation surfaces as extensiondomain.ErrUserCancelled,
// which callers should treat as a benign outcome rather than a failure.
func (s *ManagerService) Remove(ctx context.Context, path string) error {
	return s.remover.Remove(ctx, path)
}
