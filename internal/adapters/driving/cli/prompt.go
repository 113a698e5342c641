package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
)

// Environment variables consulted before prompting. Intended for
// unattended runs; the password is otherwise never stored anywhere.
const (
	envUsername = "SHAREPOINT_USERNAME"
	envDomain   = "SHAREPOINT_DOMAIN"
	envPassword = "SHAREPOINT_PASSWORD"
)

// loadProfile returns the stored profile, failing with a hint towards
// `pointhist config init` when nothing usable is configured.
func loadProfile() (*domain.Profile, error) {
	if profileService == nil {
		return nil, errors.New("profile service not configured")
	}

	profile, err := profileService.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nRun 'pointhist config init' to set up the connection", err)
	}
	return profile, nil
}

// gatherCredentials collects the NTLM credentials for one session.
// Username and domain come from the profile, overridable by environment;
// the password comes from the environment or an echo-free prompt.
func gatherCredentials(cmd *cobra.Command, profile *domain.Profile) (domain.Credentials, error) {
	creds := domain.Credentials{
		Username: profile.Username,
		Domain:   profile.Domain,
	}

	if v := os.Getenv(envUsername); v != "" {
		creds.Username = v
	}
	if v := os.Getenv(envDomain); v != "" {
		creds.Domain = v
	}

	if creds.Username == "" {
		cmd.Print("Username: ")
		creds.Username = readLine(bufio.NewReader(os.Stdin))
		if creds.Username == "" {
			return domain.Credentials{}, errors.New("username is required")
		}
	}

	creds.Password = os.Getenv(envPassword)
	if creds.Password == "" {
		cmd.Printf("Password for %s: ", creds.Account())
		creds.Password = readPassword()
		cmd.Println()
		if creds.Password == "" {
			return domain.Credentials{}, errors.New("password is required")
		}
	}

	return creds, nil
}

// buildAppender constructs the append pipeline for one invocation.
func buildAppender(cmd *cobra.Command) (driving.HistoryAppender, *domain.Profile, error) {
	if appenderFactory == nil {
		return nil, nil, errors.New("append service not configured")
	}

	profile, err := loadProfile()
	if err != nil {
		return nil, nil, err
	}

	creds, err := gatherCredentials(cmd, profile)
	if err != nil {
		return nil, nil, err
	}

	appender, err := appenderFactory(profile, creds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build append pipeline: %w", err)
	}
	return appender, profile, nil
}

// buildReconciler constructs the reconcile pipeline for one invocation.
func buildReconciler(cmd *cobra.Command) (driving.DateReconciler, *domain.Profile, error) {
	if reconcilerFactory == nil {
		return nil, nil, errors.New("reconcile service not configured")
	}

	profile, err := loadProfile()
	if err != nil {
		return nil, nil, err
	}

	creds, err := gatherCredentials(cmd, profile)
	if err != nil {
		return nil, nil, err
	}

	reconciler, err := reconcilerFactory(profile, creds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build reconcile pipeline: %w", err)
	}
	return reconciler, profile, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
