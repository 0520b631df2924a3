package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"mixfetch/internal/batch"
	"mixfetch/internal/logging"
	"mixfetch/internal/services"
	"mixfetch/internal/services/ytdlp"
)

// consoleReporter prints batch progress for a human watching the run.
// On a terminal the progress of the current item overwrites one line;
// otherwise progress is sampled into plain lines.
type consoleReporter struct {
	out         io.Writer
	interactive bool
	colorize    bool
	sampler     *logging.ProgressSampler

	total      int
	lineActive bool
	// lineWidth is the terminal column width of the last progress line.
	lineWidth int
}

func newConsoleReporter(out io.Writer, interactive, colorize bool) *consoleReporter {
	return &consoleReporter{
		out:         out,
		interactive: interactive,
		colorize:    colorize,
		sampler:     logging.NewProgressSampler(10),
	}
}

func (r *consoleReporter) Starting(index, total int, url string) {
	r.total = total
	r.sampler.Reset()
	fmt.Fprintf(r.out, "[%d/%d] Downloading %s\n", index, total, url)
}

func (r *consoleReporter) Progress(_ int, _ string, update ytdlp.ProgressUpdate) {
	line := "  " + update.String()
	if r.interactive {
		width := runewidth.StringWidth(line)
		padding := ""
		if r.lineWidth > width {
			padding = strings.Repeat(" ", r.lineWidth-width)
		}
		fmt.Fprintf(r.out, "\r%s%s", line, padding)
		r.lineActive = true
		r.lineWidth = width
		return
	}
	if r.sampler.ShouldLog(update.Percent, update.Status) {
		fmt.Fprintln(r.out, line)
	}
}

func (r *consoleReporter) Failed(outcome batch.Outcome) {
	r.endLine()
	label := "Download error"
	if outcome.Kind == services.FailureUnexpected {
		label = "Unexpected error"
	}
	message := fmt.Sprintf("%s for %s: %v", label, outcome.URL, outcome.Err)
	if r.colorize {
		message = ansiRed + message + ansiReset
	}
	fmt.Fprintln(r.out, message)
}

func (r *consoleReporter) Finished(outcome batch.Outcome) {
	r.endLine()
	switch outcome.Status {
	case batch.StatusDownloaded:
		detail := outcome.Path
		if outcome.Size > 0 {
			detail = fmt.Sprintf("%s, %s", detail, humanize.Bytes(uint64(outcome.Size)))
		}
		fmt.Fprintf(r.out, "Finished downloading %s (%s)\n", outcome.URL, detail)
	case batch.StatusUnchanged:
		fmt.Fprintf(r.out, "Finished downloading %s (no new file)\n", outcome.URL)
	default:
		fmt.Fprintf(r.out, "Finished %s with errors\n", outcome.URL)
	}
}

func (r *consoleReporter) Waiting(index int, delay time.Duration) {
	if index >= r.total {
		fmt.Fprintf(r.out, "Waiting %s before exit\n", delay)
		return
	}
	fmt.Fprintf(r.out, "Waiting %s before next download\n", delay)
}

func (r *consoleReporter) endLine() {
	if !r.lineActive {
		return
	}
	fmt.Fprintln(r.out)
	r.lineActive = false
	r.lineWidth = 0
}
