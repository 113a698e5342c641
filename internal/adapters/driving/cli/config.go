package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the connection profile",
	Long: `View and configure the document library connection profile.

The profile stores everything a run needs except the password, which is
collected at runtime and never persisted.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive profile setup",
	Long:  `Run an interactive wizard to configure the connection profile step by step.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profile, err := profileService.Load()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	cmd.Println("Connection Profile")
	cmd.Println("==================")
	cmd.Println()

	cmd.Println("[SharePoint]")
	cmd.Printf("  Base URL: %s\n", valueOrUnset(profile.BaseURL))
	cmd.Printf("  Site: %s\n", valueOrUnset(profile.SiteName))
	cmd.Printf("  Library: %s\n", valueOrUnset(profile.Library))
	cmd.Printf("  Username: %s\n", valueOrUnset(profile.Username))
	cmd.Printf("  Domain: %s\n", valueOrUnset(profile.Domain))
	cmd.Printf("  Requests/second: %.1f\n", profile.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Directories]")
	cmd.Printf("  Backups: %s\n", profile.BackupDir)
	cmd.Printf("  Output: %s\n", profile.OutputDir)
	cmd.Println()

	cmd.Printf("Config file: %s\n", profileService.ConfigPath())

	if err := profile.Validate(); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
		cmd.Println("Run 'pointhist config init' to complete the profile.")
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profile, err := profileService.Load()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	cmd.Println("Profile Setup")
	cmd.Println("=============")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	profile.BaseURL = promptValue(cmd, reader, "Server base URL", profile.BaseURL)
	profile.SiteName = promptValue(cmd, reader, "Site name", profile.SiteName)
	profile.Library = promptValue(cmd, reader, "Document library", profile.Library)
	profile.Username = promptValue(cmd, reader, "Username", profile.Username)
	profile.Domain = promptValue(cmd, reader, "Account domain (blank for none)", profile.Domain)
	profile.BackupDir = promptValue(cmd, reader, "Backup directory", profile.BackupDir)
	profile.OutputDir = promptValue(cmd, reader, "Output directory", profile.OutputDir)
	profile.RequestsPerSecond = promptFloat(cmd, reader, "Requests per second", profile.RequestsPerSecond)

	if err := profileService.Save(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	cmd.Println()
	cmd.Printf("Profile saved to %s\n", profileService.ConfigPath())
	cmd.Println("The password is never stored; it is requested per run.")
	return nil
}

// promptValue asks for one profile field, keeping the current value on
// blank input.
func promptValue(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

// promptFloat asks for a numeric field, keeping the current value on
// blank or unparsable input.
func promptFloat(cmd *cobra.Command, reader *bufio.Reader, label string, current float64) float64 {
	cmd.Printf("%s [%.1f]: ", label, current)
	input := readLine(reader)
	if input == "" {
		return current
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil || val <= 0 {
		cmd.Printf("Keeping %.1f: %q is not a positive number\n", current, input)
		return current
	}
	return val
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
