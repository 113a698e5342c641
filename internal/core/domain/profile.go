package domain

import (
	"fmt"
	"strings"
)

// Profile holds the connection and directory settings for a document library.
// It is everything a run needs except the password, which is collected at
// runtime and never persisted.
type Profile struct {
	// BaseURL is the server root, e.g. "https://sharepoint.example.gov".
	BaseURL string

	// SiteName is the site the library lives under.
	SiteName string

	// Library is the document library title holding the point folders.
	Library string

	// Username authenticates the session.
	Username string

	// Domain is the account domain. Empty when the account has none.
	Domain string

	// BackupDir receives pre-mutation snapshots of history files.
	BackupDir string

	// OutputDir receives the per-run results checkpoint file.
	OutputDir string

	// RequestsPerSecond paces repository requests. Zero means the default.
	RequestsPerSecond float64
}

// Normalize trims the trailing slash from the base URL.
func (p *Profile) Normalize() {
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
}

// Validate checks the fields every run requires.
func (p Profile) Validate() error {
	switch {
	case p.BaseURL == "":
		return fmt.Errorf("%w: base URL is required", ErrInvalidInput)
	case p.SiteName == "":
		return fmt.Errorf("%w: site name is required", ErrInvalidInput)
	case p.Library == "":
		return fmt.Errorf("%w: library name is required", ErrInvalidInput)
	case p.Username == "":
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	return nil
}

// Credentials are the NTLM credentials for one session.
type Credentials struct {
	Username string
	Domain   string
	Password string
}

// Account formats the login name the authentication handshake expects,
// "DOMAIN\user" when a domain is set and the bare username otherwise.
func (c Credentials) Account() string {
	if c.Domain != "" {
		return c.Domain + `\` + c.Username
	}
	return c.Username
}
