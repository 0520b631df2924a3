package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"mixfetch/internal/batch"
)

func renderSummary(summary batch.Summary) string {
	var b strings.Builder
	if len(summary.Outcomes) > 0 {
		rows := make([][]string, 0, len(summary.Outcomes))
		for _, outcome := range summary.Outcomes {
			rows = append(rows, []string{
				strconv.Itoa(outcome.Index),
				outcome.Status.Label(),
				outcome.URL,
				outcomeDetail(summary.OutputDir, outcome),
				outcomeSize(outcome),
				formatElapsed(outcome.Duration),
			})
		}
		b.WriteString(renderTable(
			[]string{"#", "Status", "Source", "Detail", "Size", "Time"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%d sources: %d succeeded, %d failed", summary.Total, summary.Succeeded(), summary.Failed())
	if pending := summary.Pending(); pending > 0 {
		fmt.Fprintf(&b, ", %d not processed", pending)
	}
	fmt.Fprintf(&b, " in %s\n", formatElapsed(summary.Elapsed))
	return b.String()
}

func outcomeDetail(outputDir string, outcome batch.Outcome) string {
	if outcome.Err != nil {
		return outcome.Err.Error()
	}
	if outcome.Path == "" {
		return ""
	}
	if rel, err := filepath.Rel(outputDir, outcome.Path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return outcome.Path
}

func outcomeSize(outcome batch.Outcome) string {
	if outcome.Size <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(outcome.Size))
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
