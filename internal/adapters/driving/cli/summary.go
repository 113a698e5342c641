package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// timePrecision rounds displayed durations to whole seconds.
const timePrecision = time.Second

var (
	summaryTitleStyle   = lipgloss.NewStyle().Bold(true)
	summaryBorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summarySuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	summaryFailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	summaryDimStyle     = lipgloss.NewStyle().Faint(true)
)

// printSummary renders the run summary that closes every pipeline run.
// Per-point failures are listed so the operator can follow up without
// digging through the log file.
func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	if summary == nil {
		return
	}

	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render(fmt.Sprintf("%s run %s", summary.Kind, summary.RunID)))
	b.WriteString("\n")

	if !summary.EndedAt.IsZero() {
		b.WriteString(summaryDimStyle.Render(
			fmt.Sprintf("duration %s", summary.EndedAt.Sub(summary.StartedAt).Round(timePrecision))))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s  %s",
		summarySuccessStyle.Render(fmt.Sprintf("%d succeeded", summary.Succeeded())),
		summaryFailureStyle.Render(fmt.Sprintf("%d failed", summary.Failed()))))
	if summary.Skipped > 0 {
		b.WriteString("  " + summaryDimStyle.Render(fmt.Sprintf("%d skipped", summary.Skipped)))
	}

	for _, outcome := range summary.Outcomes {
		if outcome.Success {
			continue
		}
		b.WriteString("\n")
		b.WriteString(summaryFailureStyle.Render(
			fmt.Sprintf("point %s: %s", outcome.PointNumber, outcome.Error)))
	}

	cmd.Println(summaryBorderStyle.Render(b.String()))
}
