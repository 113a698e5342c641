package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// mockProfileService implements driving.ProfileService for testing.
type mockProfileService struct {
	profile *domain.Profile
	loadErr error
	saved   *domain.Profile
}

func (m *mockProfileService) Load() (*domain.Profile, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.profile == nil {
		return &domain.Profile{}, nil
	}
	p := *m.profile
	return &p, nil
}

func (m *mockProfileService) Save(profile *domain.Profile) error {
	m.saved = profile
	return nil
}

func (m *mockProfileService) ConfigPath() string {
	return "/tmp/pointhist/config.toml"
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		BaseURL:           "https://sharepoint.example.gov",
		SiteName:          "surveys",
		Library:           "Point History",
		Username:          "jdoe",
		Domain:            "COUNTY",
		BackupDir:         "/tmp/backups",
		OutputDir:         "/tmp/output",
		RequestsPerSecond: 4,
	}
}

func setupProfileTest(profile *domain.Profile) func() {
	old := profileService
	profileService = &mockProfileService{profile: profile}
	return func() {
		profileService = old
	}
}

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigShowCmd_DisplaysProfile(t *testing.T) {
	cleanup := setupProfileTest(testProfile())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "https://sharepoint.example.gov")
	assert.Contains(t, buf.String(), "Point History")
	assert.Contains(t, buf.String(), "jdoe")
	assert.Contains(t, buf.String(), "/tmp/pointhist/config.toml")
}

func TestConfigShowCmd_WarnsOnIncompleteProfile(t *testing.T) {
	cleanup := setupProfileTest(&domain.Profile{BackupDir: "/tmp/b", OutputDir: "/tmp/o"})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "(not set)")
	assert.Contains(t, buf.String(), "Warning:")
	assert.Contains(t, buf.String(), "pointhist config init")
}

func TestConfigShowCmd_FailsWithoutService(t *testing.T) {
	old := profileService
	profileService = nil
	defer func() { profileService = old }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "profile service not configured")
}
