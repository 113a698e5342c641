package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
)

var appendCmd = &cobra.Command{
	Use:   "append [csv-path]",
	Short: "Append observation entries to point history files",
	Long: `Processes an observation CSV export and appends one dated entry to the
history file of every observed point. Files are created from the
standard template when a point has no history yet.

With --watch, the CSV path is omitted and every CSV dropped into the
watched directory is processed as it appears, until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAppend,
}

var (
	appendObserver string
	appendInitials string
	appendPermit   string
	appendWatchDir string
)

func init() {
	appendCmd.Flags().StringVar(&appendObserver, "observer", "", "full name recorded in each entry")
	appendCmd.Flags().StringVar(&appendInitials, "initials", "", "initials recorded in each entry")
	appendCmd.Flags().StringVar(&appendPermit, "permit", "", "monument permit number")
	appendCmd.Flags().StringVar(&appendWatchDir, "watch", "", "process every CSV appearing in this directory")
	rootCmd.AddCommand(appendCmd)
}

func runAppend(cmd *cobra.Command, args []string) error {
	req := driving.AppendRequest{
		Observer: appendObserver,
		Initials: appendInitials,
		Permit:   appendPermit,
	}
	if len(args) > 0 {
		req.CSVPath = args[0]
	}

	if appendWatchDir == "" && req.CSVPath == "" {
		return errors.New("a CSV path or --watch directory is required")
	}

	reader := bufio.NewReader(os.Stdin)
	if req.Observer == "" {
		cmd.Print("Observer name: ")
		req.Observer = readLine(reader)
	}
	if req.Initials == "" {
		cmd.Print("Observer initials: ")
		req.Initials = readLine(reader)
	}
	if req.Observer == "" || req.Initials == "" {
		return errors.New("observer name and initials are required")
	}

	appender, _, err := buildAppender(cmd)
	if err != nil {
		return err
	}

	if appendWatchDir != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Watching %s for observation CSVs. Press Ctrl+C to stop.\n", appendWatchDir)
		if err := appender.Watch(ctx, appendWatchDir, req); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("watch failed: %w", err)
		}
		return nil
	}

	summary, err := appender.Append(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("append failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}
