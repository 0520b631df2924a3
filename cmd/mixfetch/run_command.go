package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mixfetch/internal/audio"
	"mixfetch/internal/batch"
	"mixfetch/internal/config"
	"mixfetch/internal/logging"
	"mixfetch/internal/notifications"
	"mixfetch/internal/preflight"
	"mixfetch/internal/runlock"
	"mixfetch/internal/services/ytdlp"
)

// newFetcher builds the downloader used by run. Tests replace it.
var newFetcher = func(cfg *config.Config) (batch.Fetcher, error) {
	client, err := ytdlp.New(ytdlp.Settings{
		Binary:         cfg.Download.YtDlpBinary,
		Format:         cfg.Download.Format,
		AudioFormat:    cfg.Download.AudioFormat,
		AudioQuality:   cfg.Download.AudioQuality,
		FFmpegLocation: cfg.Download.FFmpegLocation,
		OutputTemplate: cfg.Download.OutputTemplate,
		Extension:      cfg.AudioExtension(),
		Timeout:        cfg.DownloadTimeout(),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// sleepFunc is the inter-item pause used by run. Tests replace it.
var sleepFunc batch.Sleeper = batch.SleepContext

type runOptions struct {
	list              string
	output            string
	delay             time.Duration
	skipTrailingDelay bool
	skipPreflight     bool
	verbose           bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download every URL in the source list",
		Long: `Read the source list and download each URL in order, converting it to
audio with yt-dlp and ffmpeg. A failed URL is reported and the run moves on.
The configured delay is observed between downloads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, cfg, opts); err != nil {
				return err
			}
			return executeRun(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.list, "list", "", "Source list file (overrides paths.source_list)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Output directory (overrides paths.output_dir)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Pause between downloads (overrides download.delay_seconds)")
	cmd.Flags().BoolVar(&opts.skipTrailingDelay, "skip-trailing-delay", false, "Do not wait after the last download")
	cmd.Flags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "Skip source list, output directory and binary checks")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Mirror log output to stderr")

	return cmd
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	if opts.list != "" {
		expanded, err := config.ExpandPath(opts.list)
		if err != nil {
			return fmt.Errorf("resolve --list: %w", err)
		}
		cfg.Paths.SourceList = expanded
	}
	if opts.output != "" {
		expanded, err := config.ExpandPath(opts.output)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if cmd.Flags().Changed("delay") {
		if opts.delay < 0 {
			return fmt.Errorf("--delay must be >= 0, got %s", opts.delay)
		}
	}
	if opts.skipTrailingDelay {
		cfg.Download.SkipTrailingDelay = true
	}
	return nil
}

func executeRun(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	var mirror io.Writer
	if opts.verbose {
		mirror = errOut
	}
	logger, closer, err := logging.NewFromConfig(cfg, mirror)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = closer.Close() }()

	if !opts.skipPreflight {
		if err := runPreflight(errOut, cfg); err != nil {
			return err
		}
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return fmt.Errorf("init downloader: %w", err)
	}

	var tagger batch.Tagger
	if cfg.Tagging.Enabled {
		tagger = audio.NewTagger(cfg.Tagging.CommentLanguage)
	}

	runID := uuid.NewString()
	runner, err := batch.NewRunner(fetcher, batch.Options{
		Delay:             runDelay(cmd, cfg, opts),
		SkipTrailingDelay: cfg.Download.SkipTrailingDelay,
		RunID:             runID,
		Reporter:          newConsoleReporter(out, isTerminal(out), shouldColorize(out)),
		Tagger:            tagger,
		Notifier:          notifications.NewService(cfg),
		Logger:            logger,
		Sleep:             sleepFunc,
	})
	if err != nil {
		return err
	}

	summary, err := runner.Run(runCtx, cfg.Paths.SourceList, cfg.Paths.OutputDir)
	if err != nil && !summary.Interrupted {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, renderSummary(summary))

	if summary.Interrupted {
		fmt.Fprintln(errOut, "Run interrupted")
		return context.Canceled
	}
	return nil
}

// runDelay prefers --delay, which may carry sub-second values, over
// download.delay_seconds.
func runDelay(cmd *cobra.Command, cfg *config.Config, opts runOptions) time.Duration {
	if cmd.Flags().Changed("delay") {
		return opts.delay
	}
	return cfg.Delay()
}

func runPreflight(w io.Writer, cfg *config.Config) error {
	failed := preflight.Failed(preflight.RunAll(cfg))
	if len(failed) == 0 {
		return nil
	}
	colorize := shouldColorize(w)
	fmt.Fprintln(w, "Preflight checks failed:")
	for _, result := range failed {
		fmt.Fprintln(w, renderStatusLine(result.Name, statusError, result.Detail, colorize))
	}
	return fmt.Errorf("preflight failed: %d check(s) did not pass", len(failed))
}
