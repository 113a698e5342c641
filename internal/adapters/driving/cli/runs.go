package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect past pipeline runs",
	Long:  `List and inspect the recorded append and reconcile runs.`,
	RunE:  runRunsList,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its per-point outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old runs beyond the retention limit",
	RunE:  runRunsPrune,
}

var (
	runsListLimit int
	runsPruneKeep int
)

func init() {
	runsListCmd.Flags().IntVar(&runsListLimit, "limit", 20, "maximum runs to list")
	runsPruneCmd.Flags().IntVar(&runsPruneKeep, "keep", 50, "how many recent runs to keep")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsPruneCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	runs, err := runHistory.List(cmd.Context(), runsListLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}

	cmd.Printf("%-36s  %-9s  %-19s  %9s  %6s  %7s\n",
		"RUN ID", "KIND", "STARTED", "SUCCEEDED", "FAILED", "SKIPPED")
	for _, run := range runs {
		cmd.Printf("%-36s  %-9s  %-19s  %9d  %6d  %7d\n",
			run.ID, run.Kind, run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Succeeded, run.Failed, run.Skipped)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	run, outcomes, err := runHistory.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Kind: %s\n", run.Kind)
	cmd.Printf("  Started: %s\n", run.StartedAt.Local().Format(time.RFC1123))
	if !run.EndedAt.IsZero() {
		cmd.Printf("  Ended: %s\n", run.EndedAt.Local().Format(time.RFC1123))
	}
	cmd.Printf("  Succeeded: %d  Failed: %d  Skipped: %d\n", run.Succeeded, run.Failed, run.Skipped)

	if len(outcomes) > 0 {
		cmd.Println("\nOutcomes:")
		for _, o := range outcomes {
			if o.Success {
				cmd.Printf("  [ok]   point %s\n", o.PointNumber)
			} else {
				cmd.Printf("  [fail] point %s: %s\n", o.PointNumber, o.Error)
			}
		}
	}
	return nil
}

func runRunsPrune(cmd *cobra.Command, _ []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	if err := runHistory.Prune(cmd.Context(), runsPruneKeep); err != nil {
		return fmt.Errorf("failed to prune runs: %w", err)
	}

	cmd.Printf("Pruned runs, keeping the most recent %d.\n", runsPruneKeep)
	return nil
}
