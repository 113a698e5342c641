// Command pointhist maintains point history files for land survey
// monuments in a SharePoint document library.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/adapters/driven/backup"
	"github.com/cadastral-labs/pointhist-cli/internal/adapters/driven/config/file"
	"github.com/cadastral-labs/pointhist-cli/internal/adapters/driven/results"
	"github.com/cadastral-labs/pointhist-cli/internal/adapters/driven/storage/sqlite"
	"github.com/cadastral-labs/pointhist-cli/internal/adapters/driving/cli"
	"github.com/cadastral-labs/pointhist-cli/internal/connectors/sharepoint"
	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
	"github.com/cadastral-labs/pointhist-cli/internal/core/services"
	"github.com/cadastral-labs/pointhist-cli/internal/logger"
)

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open configuration: %v\n", err)
		os.Exit(1)
	}
	cli.SetProfileService(services.NewProfileService(configStore))

	// Run history is best-effort; the pipelines run without it.
	var runStore driven.RunStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("run history unavailable: %v", err)
	} else {
		defer store.Close()
		runStore = store.RunStore()
		cli.SetRunHistory(services.NewRunHistoryService(runStore))
	}

	cli.SetAppenderFactory(func(profile *domain.Profile, creds domain.Credentials) (driving.HistoryAppender, error) {
		client, err := newRepository(profile, creds)
		if err != nil {
			return nil, err
		}
		openRunLog(profile, "append")
		return services.NewAppendService(client, runStore), nil
	})

	cli.SetReconcilerFactory(func(profile *domain.Profile, creds domain.Credentials) (driving.DateReconciler, error) {
		client, err := newRepository(profile, creds)
		if err != nil {
			return nil, err
		}
		openRunLog(profile, "reconcile")
		backups := backup.NewStore(profile.BackupDir)
		sink := results.NewFileSink(profile.OutputDir)
		return services.NewReconcileService(client, backups, sink, runStore), nil
	})

	defer logger.Close() //nolint:errcheck // closing the log file is best-effort

	cli.Execute()
}

// newRepository builds the authenticated document library client for
// one run.
func newRepository(profile *domain.Profile, creds domain.Credentials) (driven.Repository, error) {
	return sharepoint.NewClient(sharepoint.Config{
		BaseURL:     profile.BaseURL,
		SiteName:    profile.SiteName,
		Library:     profile.Library,
		Credentials: creds,
		RateLimit: sharepoint.RateLimitConfig{
			RequestsPerSecond: profile.RequestsPerSecond,
		},
	})
}

// openRunLog tees log output to a timestamped file in the output
// directory. Failures only cost the file copy of the log.
func openRunLog(profile *domain.Profile, kind string) {
	name := fmt.Sprintf("%s_%s.log", kind, time.Now().Format("20060102_150405"))
	if err := logger.OpenLogFile(profile.OutputDir, name); err != nil {
		logger.Warn("run log file unavailable: %v", err)
	}
}
