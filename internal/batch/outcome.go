package batch

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mixfetch/internal/services"
)

// Status is the final state of one item.
type Status string

const (
	StatusDownloaded Status = "downloaded"
	// StatusUnchanged means the fetch succeeded without writing a new file.
	StatusUnchanged   Status = "unchanged"
	StatusFailed      Status = "failed"
	StatusInterrupted Status = "interrupted"
)

// Label returns the status in title case for display.
func (s Status) Label() string {
	return cases.Title(language.Und).String(string(s))
}

// Outcome records what happened to a single source URL.
type Outcome struct {
	Index    int
	URL      string
	Status   Status
	Kind     services.FailureKind
	Path     string
	Size     int64
	Title    string
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the fetch completed without error.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusDownloaded || o.Status == StatusUnchanged
}

// Summary aggregates a run.
type Summary struct {
	RunID       string
	ListPath    string
	OutputDir   string
	Total       int
	Outcomes    []Outcome
	Started     time.Time
	Elapsed     time.Duration
	Interrupted bool
}

// Succeeded counts the items that completed without error.
func (s Summary) Succeeded() int {
	count := 0
	for _, outcome := range s.Outcomes {
		if outcome.Succeeded() {
			count++
		}
	}
	return count
}

// Failed counts the items that ended with a download or unexpected failure.
func (s Summary) Failed() int {
	count := 0
	for _, outcome := range s.Outcomes {
		if outcome.Status == StatusFailed {
			count++
		}
	}
	return count
}

// Pending counts the items never attempted because the run was interrupted.
func (s Summary) Pending() int {
	attempted := 0
	for _, outcome := range s.Outcomes {
		if outcome.Status != StatusInterrupted {
			attempted++
		}
	}
	return s.Total - attempted
}
