package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

const progressInterval = 500 * time.Millisecond

// libraryExecutor drives yt-dlp through go-ytdlp.
type libraryExecutor struct{}

func (libraryExecutor) Run(ctx context.Context, req Request, onProgress func(ProgressUpdate)) error {
	binary, err := exec.LookPath(req.Binary)
	if err != nil {
		// LookPath only reports ErrNotFound for bare names; a missing
		// explicit path surfaces as a stat error.
		if !errors.Is(err, exec.ErrNotFound) {
			err = fmt.Errorf("%w: %w", exec.ErrNotFound, err)
		}
		return fmt.Errorf("resolve yt-dlp: %w", err)
	}

	cmd := ytdlp.New().
		SetExecutable(binary).
		Format(req.Format).
		ExtractAudio().
		AudioFormat(req.AudioFormat).
		AudioQuality(req.AudioQuality).
		Output(req.Output)
	if req.FFmpegLocation != "" {
		cmd = cmd.FFmpegLocation(req.FFmpegLocation)
	}
	if onProgress != nil {
		cmd = cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			title := ""
			if update.Info != nil && update.Info.Title != nil {
				title = *update.Info.Title
			}
			onProgress(newProgressUpdate(
				string(update.Status),
				int64(update.DownloadedBytes),
				int64(update.TotalBytes),
				update.ETA(),
				title,
			))
		})
	}

	if _, err := cmd.Run(ctx, req.URL); err != nil {
		return fmt.Errorf("yt-dlp %s: %w", req.URL, err)
	}
	return nil
}
