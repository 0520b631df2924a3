package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mixfetch/internal/audio"
	"mixfetch/internal/logging"
	"mixfetch/internal/services"
	"mixfetch/internal/services/ytdlp"
)

// Fetcher downloads one URL into outputDir.
type Fetcher interface {
	Fetch(ctx context.Context, url, outputDir string, progress func(ytdlp.ProgressUpdate)) (ytdlp.Result, error)
}

// Tagger annotates a finished file with its source URL.
type Tagger interface {
	TagSource(path, url string) error
}

// Notifier receives batch lifecycle events.
type Notifier interface {
	NotifyBatchStarted(ctx context.Context, count int) error
	NotifyBatchCompleted(ctx context.Context, succeeded, failed int, duration time.Duration) error
	NotifyItemFailed(ctx context.Context, url string, err error) error
}

// Reporter renders human-facing status lines. Calls are made from the run
// goroutine; Progress fires synchronously inside the fetch.
type Reporter interface {
	Starting(index, total int, url string)
	Progress(index int, url string, update ytdlp.ProgressUpdate)
	Failed(outcome Outcome)
	Finished(outcome Outcome)
	// Waiting announces the pause after item index.
	Waiting(index int, delay time.Duration)
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Options configures a Runner. Zero values are usable: no delay, no tagging,
// no notifications, and a silent reporter.
type Options struct {
	Delay             time.Duration
	SkipTrailingDelay bool
	RunID             string
	Reporter          Reporter
	Tagger            Tagger
	Notifier          Notifier
	Logger            *slog.Logger
	Sleep             Sleeper
	Now               func() time.Time
}

// Runner processes source lists one URL at a time.
type Runner struct {
	fetcher Fetcher
	opts    Options
	logger  *slog.Logger
}

// NewRunner constructs a runner around fetcher.
func NewRunner(fetcher Fetcher, opts Options) (*Runner, error) {
	if fetcher == nil {
		return nil, errors.New("batch runner requires a fetcher")
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("delay must be >= 0, got %s", opts.Delay)
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	if opts.Sleep == nil {
		opts.Sleep = SleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		fetcher: fetcher,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "batch"),
	}, nil
}

// Run downloads every source in listPath into outputDir. Item failures are
// recorded in the summary and never returned. The returned error is non-nil
// only when the list cannot be read, the output directory cannot be created,
// or ctx ends the run early.
func (r *Runner) Run(ctx context.Context, listPath, outputDir string) (Summary, error) {
	ctx = services.WithRunID(ctx, r.opts.RunID)
	logger := logging.WithContext(ctx, r.logger)

	sources, err := ReadSources(listPath)
	if err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "batch", "read sources", listPath, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "batch", "create output directory", outputDir, err)
	}

	summary := Summary{
		RunID:     r.opts.RunID,
		ListPath:  listPath,
		OutputDir: outputDir,
		Total:     len(sources),
		Outcomes:  make([]Outcome, 0, len(sources)),
		Started:   r.opts.Now(),
	}
	logger.Info("batch started",
		logging.String("list", listPath),
		logging.String("output_dir", outputDir),
		logging.Int("sources", len(sources)),
		logging.Duration("delay", r.opts.Delay),
	)
	r.notify(ctx, "batch started", func(n Notifier) error { return n.NotifyBatchStarted(ctx, len(sources)) })

	var runErr error
	for i, url := range sources {
		index := i + 1
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		r.opts.Reporter.Starting(index, len(sources), url)
		outcome := r.FetchOne(ctx, index, url, outputDir)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == StatusInterrupted {
			runErr = ctx.Err()
			break
		}
		r.opts.Reporter.Finished(outcome)

		if index == len(sources) && r.opts.SkipTrailingDelay {
			continue
		}
		if r.opts.Delay <= 0 {
			continue
		}
		r.opts.Reporter.Waiting(index, r.opts.Delay)
		if err := r.opts.Sleep(ctx, r.opts.Delay); err != nil {
			runErr = err
			break
		}
	}

	summary.Elapsed = r.opts.Now().Sub(summary.Started)
	if runErr != nil {
		summary.Interrupted = true
		logger.Warn("batch interrupted",
			logging.Int("completed", len(summary.Outcomes)),
			logging.Int("pending", summary.Pending()),
			logging.Error(runErr),
		)
		return summary, runErr
	}

	logger.Info("batch finished",
		logging.Int("succeeded", summary.Succeeded()),
		logging.Int("failed", summary.Failed()),
		logging.Duration("elapsed", summary.Elapsed),
	)
	r.notify(ctx, "batch completed", func(n Notifier) error {
		return n.NotifyBatchCompleted(ctx, summary.Succeeded(), summary.Failed(), summary.Elapsed)
	})
	return summary, nil
}

// FetchOne downloads a single URL. Every failure, including a panic inside
// the fetcher, is captured in the returned Outcome.
func (r *Runner) FetchOne(ctx context.Context, index int, url, outputDir string) (outcome Outcome) {
	ctx = services.WithRunID(ctx, r.opts.RunID)
	ctx = services.WithItemIndex(ctx, index)
	ctx = services.WithSourceURL(ctx, url)
	logger := logging.WithContext(ctx, r.logger)

	started := r.opts.Now()
	outcome = Outcome{Index: index, URL: url}

	defer func() {
		if recovered := recover(); recovered != nil {
			outcome.Status = StatusFailed
			outcome.Kind = services.FailureUnexpected
			outcome.Err = fmt.Errorf("unexpected failure: %v", recovered)
			outcome.Duration = r.opts.Now().Sub(started)
			r.reportFailure(ctx, logger, outcome)
		}
	}()

	logger.Info("download starting", logging.String("output_dir", outputDir))
	sampler := logging.NewProgressSampler(10)
	result, err := r.fetcher.Fetch(ctx, url, outputDir, func(update ytdlp.ProgressUpdate) {
		r.opts.Reporter.Progress(index, url, update)
		if sampler.ShouldLog(update.Percent, update.Status) {
			logger.Debug("download progress",
				logging.String("status", update.Status),
				logging.Float64("percent", update.Percent),
				logging.Int64("downloaded_bytes", update.DownloadedBytes),
				logging.Int64("total_bytes", update.TotalBytes),
			)
		}
	})
	outcome.Duration = r.opts.Now().Sub(started)

	if err != nil {
		if ctx.Err() != nil {
			outcome.Status = StatusInterrupted
			outcome.Err = err
			logger.Info("download interrupted", logging.Duration("elapsed", outcome.Duration))
			return outcome
		}
		outcome.Status = StatusFailed
		outcome.Kind = services.Classify(err)
		outcome.Err = err
		r.reportFailure(ctx, logger, outcome)
		return outcome
	}

	outcome.Path = result.Path
	outcome.Size = result.Size
	outcome.Title = result.Title
	outcome.Status = StatusDownloaded
	if result.Path == "" {
		outcome.Status = StatusUnchanged
	}
	logger.Info("download finished",
		logging.String("path", outcome.Path),
		logging.Int64("size_bytes", outcome.Size),
		logging.Duration("duration", outcome.Duration),
	)
	r.tag(logger, outcome)
	return outcome
}

func (r *Runner) reportFailure(ctx context.Context, logger *slog.Logger, outcome Outcome) {
	hint := "check the URL and the yt-dlp output in the log"
	if outcome.Kind == services.FailureUnexpected {
		hint = "run mixfetch deps and check the configuration"
	}
	logging.ErrorWithContext(logger, "download failed", "download_failed",
		logging.String("failure_kind", string(outcome.Kind)),
		logging.String(logging.FieldErrorHint, hint),
		logging.Error(outcome.Err),
	)
	r.opts.Reporter.Failed(outcome)
	r.notify(ctx, "item failed", func(n Notifier) error { return n.NotifyItemFailed(ctx, outcome.URL, outcome.Err) })
}

func (r *Runner) tag(logger *slog.Logger, outcome Outcome) {
	if r.opts.Tagger == nil || outcome.Path == "" {
		return
	}
	if err := r.opts.Tagger.TagSource(outcome.Path, outcome.URL); err != nil {
		if errors.Is(err, audio.ErrUnsupportedFormat) {
			logger.Debug("source tagging skipped", logging.Error(err))
			return
		}
		logging.WarnWithContext(logger, "source tagging failed", "tag_failed",
			logging.String(logging.FieldImpact, "file kept without source frames"),
			logging.Error(err),
		)
	}
}

func (r *Runner) notify(ctx context.Context, event string, send func(Notifier) error) {
	if r.opts.Notifier == nil {
		return
	}
	if err := send(r.opts.Notifier); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "notification failed", "notify_failed",
			logging.String("event", event),
			logging.String(logging.FieldImpact, "notification not delivered"),
			logging.Error(err),
		)
	}
}

// SleepContext waits for d or until ctx is done, whichever comes first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopReporter struct{}

func (nopReporter) Starting(int, int, string)                  {}
func (nopReporter) Progress(int, string, ytdlp.ProgressUpdate) {}
func (nopReporter) Failed(Outcome)                             {}
func (nopReporter) Finished(Outcome)                           {}
func (nopReporter) Waiting(int, time.Duration)                 {}
