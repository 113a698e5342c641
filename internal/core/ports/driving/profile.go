package driving

import "github.com/cadastral-labs/pointhist-cli/internal/core/domain"

// ProfileService manages the stored connection profile.
// The password is never part of the profile; it is collected per run.
type ProfileService interface {
	// Load returns the stored profile with defaults applied to any
	// directory or pacing setting that was never configured.
	Load() (*domain.Profile, error)

	// Save validates and persists the profile.
	Save(profile *domain.Profile) error

	// ConfigPath returns the backing configuration file location.
	ConfigPath() string
}
