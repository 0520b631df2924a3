package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"mixfetch/internal/services"
)

// Request is the complete description of one yt-dlp invocation.
type Request struct {
	URL            string
	Binary         string
	Format         string
	AudioFormat    string
	AudioQuality   string
	FFmpegLocation string
	// Output is the output template joined under the destination directory.
	Output string
}

// Result describes the file a successful fetch produced.
type Result struct {
	// Path is empty when yt-dlp exited cleanly without writing a new file,
	// which happens when the target already exists.
	Path  string
	Size  int64
	Title string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, req Request, onProgress func(ProgressUpdate)) error
}

// Settings carries the static download configuration.
type Settings struct {
	Binary         string
	Format         string
	AudioFormat    string
	AudioQuality   string
	FFmpegLocation string
	OutputTemplate string
	// Extension is the suffix of files produced for AudioFormat, without a dot.
	Extension string
	Timeout   time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client runs yt-dlp for single URLs.
type Client struct {
	settings Settings
	exec     Executor
}

// New constructs a yt-dlp client.
func New(settings Settings, opts ...Option) (*Client, error) {
	settings.Binary = strings.TrimSpace(settings.Binary)
	if settings.Binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	if strings.TrimSpace(settings.OutputTemplate) == "" {
		return nil, errors.New("output template required")
	}
	if settings.Extension == "" {
		settings.Extension = settings.AudioFormat
	}
	client := &Client{settings: settings, exec: libraryExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch downloads url into outputDir and returns the produced file. progress
// may be nil; when set it is invoked synchronously from the download.
func (c *Client) Fetch(ctx context.Context, url, outputDir string, progress func(ProgressUpdate)) (Result, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Result{}, services.Wrap(services.ErrValidation, "fetch", "validate", "source url required", nil)
	}
	if outputDir == "" {
		return Result{}, services.Wrap(services.ErrValidation, "fetch", "validate", "output directory required", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "fetch", "prepare output", outputDir, err)
	}

	before, err := snapshotOutputs(outputDir, c.settings.Extension)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "fetch", "inspect outputs", outputDir, err)
	}

	fetchCtx := ctx
	if c.settings.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.settings.Timeout)
		defer cancel()
	}

	req := Request{
		URL:            url,
		Binary:         c.settings.Binary,
		Format:         c.settings.Format,
		AudioFormat:    c.settings.AudioFormat,
		AudioQuality:   c.settings.AudioQuality,
		FFmpegLocation: c.settings.FFmpegLocation,
		Output:         filepath.Join(outputDir, c.settings.OutputTemplate),
	}

	var title string
	runErr := c.exec.Run(fetchCtx, req, func(update ProgressUpdate) {
		if update.Title != "" {
			title = update.Title
		}
		if progress != nil {
			progress(update)
		}
	})
	if runErr != nil {
		return Result{}, c.classify(ctx, fetchCtx, runErr)
	}

	after, err := snapshotOutputs(outputDir, c.settings.Extension)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "fetch", "inspect outputs", outputDir, err)
	}
	result := Result{Title: title}
	if produced, ok := newestChange(before, after); ok {
		result.Path = produced.path
		result.Size = produced.size
	}
	return result, nil
}

func (c *Client) classify(parent, fetchCtx context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	switch {
	case errors.Is(fetchCtx.Err(), context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, "fetch", "yt-dlp", fmt.Sprintf("exceeded %s", c.settings.Timeout), err)
	case errors.Is(err, exec.ErrNotFound):
		return services.Wrap(services.ErrConfiguration, "fetch", "yt-dlp", fmt.Sprintf("binary %q not found", c.settings.Binary), err)
	default:
		return services.Wrap(services.ErrDownload, "fetch", "yt-dlp", "", err)
	}
}

type outputEntry struct {
	path    string
	size    int64
	modTime time.Time
}

func snapshotOutputs(dir, extension string) (map[string]outputEntry, error) {
	entries := make(map[string]outputEntry)
	suffix := "." + strings.TrimPrefix(strings.ToLower(extension), ".")
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		entries[path] = outputEntry{path: path, size: info.Size(), modTime: info.ModTime()}
		return nil
	})
	return entries, err
}

// newestChange returns the most recently modified file that is new or changed
// between the two snapshots.
func newestChange(before, after map[string]outputEntry) (outputEntry, bool) {
	var best outputEntry
	found := false
	for path, entry := range after {
		if prev, ok := before[path]; ok && prev.modTime.Equal(entry.modTime) && prev.size == entry.size {
			continue
		}
		if !found || entry.modTime.After(best.modTime) {
			best = entry
			found = true
		}
	}
	return best, found
}
