// Package cli implements the pointhist command-line interface using cobra.
// Services are injected by the composition root before Execute is called;
// commands guard against missing services so partial wiring fails cleanly.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
	"github.com/cadastral-labs/pointhist-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// AppenderFactory builds the append pipeline once the profile and
// session credentials are known.
type AppenderFactory func(profile *domain.Profile, creds domain.Credentials) (driving.HistoryAppender, error)

// ReconcilerFactory builds the reconcile pipeline once the profile and
// session credentials are known.
type ReconcilerFactory func(profile *domain.Profile, creds domain.Credentials) (driving.DateReconciler, error)

// Services injected by the composition root. The pipelines are built per
// invocation because credentials are collected at runtime.
var (
	profileService    driving.ProfileService
	runHistory        driving.RunHistory
	appenderFactory   AppenderFactory
	reconcilerFactory ReconcilerFactory
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pointhist",
	Short: "Maintain point history files in a survey document library",
	Long: `pointhist maintains the point history text files of land survey
monuments stored in a SharePoint document library.

It appends observation entries from CSV exports and reconciles the
dated surveyor lines of existing history files against the library's
date-added metadata.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetProfileService injects the profile service.
func SetProfileService(s driving.ProfileService) {
	profileService = s
}

// SetRunHistory injects the run history service.
func SetRunHistory(h driving.RunHistory) {
	runHistory = h
}

// SetAppenderFactory injects the append pipeline factory.
func SetAppenderFactory(f AppenderFactory) {
	appenderFactory = f
}

// SetReconcilerFactory injects the reconcile pipeline factory.
func SetReconcilerFactory(f ReconcilerFactory) {
	reconcilerFactory = f
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
