package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
)

// dateFlagLayout is the MM/DD/YYYY format the date flags accept,
// matching the date format of the history files themselves.
const dateFlagLayout = "01/02/2006"

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile history file dates with library metadata",
	Long: `Queries the document library for points added in a date range and
rewrites the dated surveyor lines of each point's history file to the
library's date-added value.

Every file is snapshotted locally before it is modified, and a results
checkpoint is rewritten after every point.`,
	RunE: runReconcile,
}

var (
	reconcileStart string
	reconcileEnd   string
	reconcileMax   int
)

func init() {
	reconcileCmd.Flags().StringVar(&reconcileStart, "start", "", "inclusive start date (MM/DD/YYYY)")
	reconcileCmd.Flags().StringVar(&reconcileEnd, "end", "", "inclusive end date (MM/DD/YYYY)")
	reconcileCmd.Flags().IntVar(&reconcileMax, "max", 0, "cap on how many points are processed")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	startInput := reconcileStart
	if startInput == "" {
		cmd.Print("Start date (MM/DD/YYYY): ")
		startInput = readLine(bufio.NewReader(os.Stdin))
	}
	if startInput == "" {
		return errors.New("a start date is required")
	}

	start, err := time.Parse(dateFlagLayout, startInput)
	if err != nil {
		return fmt.Errorf("invalid start date %q: expected MM/DD/YYYY", startInput)
	}

	req := driving.ReconcileRequest{
		Start:     start,
		MaxPoints: reconcileMax,
	}

	if reconcileEnd != "" {
		end, err := time.Parse(dateFlagLayout, reconcileEnd)
		if err != nil {
			return fmt.Errorf("invalid end date %q: expected MM/DD/YYYY", reconcileEnd)
		}
		// Make the bound inclusive of the whole end day.
		end = end.Add(24*time.Hour - time.Second)
		req.End = &end
	}

	reconciler, profile, err := buildReconciler(cmd)
	if err != nil {
		return err
	}

	summary, err := reconciler.Reconcile(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	printSummary(cmd, summary)
	cmd.Printf("Results written under %s\n", profile.OutputDir)
	return nil
}
