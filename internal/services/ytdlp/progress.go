package ytdlp

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ProgressUpdate captures yt-dlp progress for one download.
type ProgressUpdate struct {
	Status string
	// Percent is -1 when the total size is not yet known.
	Percent         float64
	DownloadedBytes int64
	TotalBytes      int64
	ETA             time.Duration
	Title           string
}

func newProgressUpdate(status string, downloaded, total int64, eta time.Duration, title string) ProgressUpdate {
	update := ProgressUpdate{
		Status:          strings.TrimSpace(status),
		Percent:         -1,
		DownloadedBytes: downloaded,
		TotalBytes:      total,
		ETA:             eta,
		Title:           strings.TrimSpace(title),
	}
	if update.Status == "" {
		update.Status = "downloading"
	}
	if total > 0 {
		update.Percent = float64(downloaded) / float64(total) * 100
		if update.Percent > 100 {
			update.Percent = 100
		}
	}
	return update
}

// String renders the update for a single console line.
func (p ProgressUpdate) String() string {
	var b strings.Builder
	b.WriteString(p.Status)
	if p.Percent >= 0 {
		fmt.Fprintf(&b, " %5.1f%%", p.Percent)
	}
	if p.DownloadedBytes > 0 {
		b.WriteString(" ")
		b.WriteString(humanize.Bytes(uint64(p.DownloadedBytes)))
		if p.TotalBytes > 0 {
			b.WriteString(" of ")
			b.WriteString(humanize.Bytes(uint64(p.TotalBytes)))
		}
	}
	if p.ETA > 0 {
		fmt.Fprintf(&b, " ETA %s", p.ETA.Round(time.Second))
	}
	return b.String()
}
