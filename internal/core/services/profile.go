package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// Config keys for the connection profile.
const (
	keyBaseURL           = "sharepoint.base_url"
	keySiteName          = "sharepoint.site"
	keyLibrary           = "sharepoint.library"
	keyUsername          = "sharepoint.username"
	keyDomain            = "sharepoint.domain"
	keyRequestsPerSecond = "sharepoint.requests_per_second"
	keyBackupDir         = "dirs.backup"
	keyOutputDir         = "dirs.output"
)

// ProfileService manages the stored connection profile. The password is
// never part of the profile; it is collected per run and never persisted.
type ProfileService struct {
	configStore driven.ConfigStore
}

// NewProfileService creates a new profile service.
func NewProfileService(configStore driven.ConfigStore) *ProfileService {
	return &ProfileService{configStore: configStore}
}

// Load returns the stored profile with defaults applied to the backup
// and output directories.
func (s *ProfileService) Load() (*domain.Profile, error) {
	profile := &domain.Profile{
		BaseURL:           s.configStore.GetString(keyBaseURL),
		SiteName:          s.configStore.GetString(keySiteName),
		Library:           s.configStore.GetString(keyLibrary),
		Username:          s.configStore.GetString(keyUsername),
		Domain:            s.configStore.GetString(keyDomain),
		RequestsPerSecond: s.configStore.GetFloat(keyRequestsPerSecond),
		BackupDir:         s.configStore.GetString(keyBackupDir),
		OutputDir:         s.configStore.GetString(keyOutputDir),
	}
	profile.Normalize()

	if profile.BackupDir == "" || profile.OutputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		if profile.BackupDir == "" {
			profile.BackupDir = filepath.Join(home, "PointHistory", "backups")
		}
		if profile.OutputDir == "" {
			profile.OutputDir = filepath.Join(home, "PointHistory", "downloads")
		}
	}

	return profile, nil
}

// Save validates and persists the profile.
func (s *ProfileService) Save(profile *domain.Profile) error {
	if profile == nil {
		return domain.ErrInvalidInput
	}
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		keyBaseURL:   profile.BaseURL,
		keySiteName:  profile.SiteName,
		keyLibrary:   profile.Library,
		keyUsername:  profile.Username,
		keyDomain:    profile.Domain,
		keyBackupDir: profile.BackupDir,
		keyOutputDir: profile.OutputDir,
	}
	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if profile.RequestsPerSecond > 0 {
		if err := s.configStore.Set(keyRequestsPerSecond, profile.RequestsPerSecond); err != nil {
			return fmt.Errorf("save %s: %w", keyRequestsPerSecond, err)
		}
	}
	return nil
}

// ConfigPath returns the backing configuration file location.
func (s *ProfileService) ConfigPath() string {
	return s.configStore.Path()
}
