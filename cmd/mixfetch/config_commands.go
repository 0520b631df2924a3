package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mixfetch/internal/config"
	"mixfetch/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the mixfetch configuration",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if err := writeSampleConfig(target, overwrite); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Put one URL per line in paths.source_list, then run `mixfetch deps` and `mixfetch run`.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// initTarget resolves --path, defaulting to ~/.config/mixfetch/config.toml.
func initTarget(flagValue string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return expanded, nil
	}
	target, err := config.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("determine default config path: %w", err)
	}
	return target, nil
}

func writeSampleConfig(target string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if !overwrite {
		_, err := os.Stat(target)
		switch {
		case err == nil:
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("check config path: %w", err)
		}
	}
	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	return nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and show the resolved settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(); err != nil {
				return err
			}
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			writeResolvedSettings(out, cfg, shouldColorize(out))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// writeResolvedSettings prints the effective paths and binaries. Missing
// binaries are warnings here; run refuses to start without them.
func writeResolvedSettings(w io.Writer, cfg *config.Config, colorize bool) {
	fmt.Fprintln(w, renderStatusLine("Source list", statusInfo, cfg.Paths.SourceList, colorize))
	fmt.Fprintln(w, renderStatusLine("Output directory", statusInfo, cfg.Paths.OutputDir, colorize))
	fmt.Fprintln(w, renderStatusLine("Log file", statusInfo, cfg.LogPath(), colorize))

	for _, status := range preflight.CheckSystemDeps(cfg) {
		kind, detail := statusOK, status.Path
		if !status.Available {
			kind, detail = statusWarn, status.Detail
		}
		fmt.Fprintln(w, renderStatusLine(status.Name, kind, detail, colorize))
	}

	delay := fmt.Sprintf("%s after every download", cfg.Delay())
	if cfg.Download.SkipTrailingDelay {
		delay = fmt.Sprintf("%s between downloads", cfg.Delay())
	}
	fmt.Fprintln(w, renderStatusLine("Delay", statusInfo, delay, colorize))

	notify := "disabled"
	if cfg.Notifications.NtfyTopic != "" {
		notify = cfg.Notifications.NtfyTopic
	}
	fmt.Fprintln(w, renderStatusLine("Notifications", statusInfo, notify, colorize))
}
