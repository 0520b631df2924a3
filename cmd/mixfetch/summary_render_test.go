package main

import (
	"errors"
	"testing"
	"time"

	"mixfetch/internal/batch"
)

func TestRenderSummary(t *testing.T) {
	summary := batch.Summary{
		OutputDir: "/music",
		Total:     3,
		Outcomes: []batch.Outcome{
			{Index: 1, URL: "https://example.com/a", Status: batch.StatusDownloaded, Path: "/music/sets/a.mp3", Size: 5_000_000, Duration: 90 * time.Second},
			{Index: 2, URL: "https://example.com/b", Status: batch.StatusFailed, Err: errors.New("content removed"), Duration: 2 * time.Second},
		},
		Elapsed:     95 * time.Second,
		Interrupted: true,
	}

	out := renderSummary(summary)
	requireContains(t, out, "Downloaded")
	requireContains(t, out, "Failed")
	requireContains(t, out, "sets/a.mp3")
	requireContains(t, out, "5.0 MB")
	requireContains(t, out, "content removed")
	requireContains(t, out, "1m30s")
	requireContains(t, out, "3 sources: 1 succeeded, 1 failed, 1 not processed in 1m35s")
}

func TestRenderSummaryEmptyList(t *testing.T) {
	out := renderSummary(batch.Summary{})
	requireContains(t, out, "0 sources: 0 succeeded, 0 failed")
	requireNotContains(t, out, "Status")
}

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("FFmpeg", statusError, "binary not found", false)
	requireContains(t, line, "FFmpeg:")
	requireContains(t, line, "[ERROR] binary not found")

	colored := renderStatusLine("yt-dlp", statusOK, "", true)
	requireContains(t, colored, ansiGreen)
	requireContains(t, colored, ansiReset)
}
