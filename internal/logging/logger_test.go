package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixfetch/internal/config"
	"mixfetch/internal/logging"
	"mixfetch/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(data)
}

func TestConsoleFileSinkFormatsComponentAndItem(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "mixfetch.log")
	logger, closer, err := logging.New(logging.Options{Format: "console", Level: "info", FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithItemIndex(context.Background(), 3)
	ctx = services.WithSourceURL(ctx, "https://example.com/mix")
	log := logging.WithContext(ctx, logging.NewComponentLogger(logger, "batch"))
	log.Info("download finished", logging.String("path", "/tmp/a mix.mp3"))
	log.Debug("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content := readLog(t, logPath)
	for _, want := range []string{"INFO [batch] Item #3 – download finished", "source_url=https://example.com/mix", `path="/tmp/a mix.mp3"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("log line missing %q: %q", want, content)
		}
	}
	if strings.Contains(content, "hidden at info level") {
		t.Fatalf("debug record leaked at info level: %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", content)
	}
}

func TestJSONFileSinkAndConsoleMirror(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mixfetch.log")
	var mirror bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Format: "json", Level: "info", FilePath: logPath, Mirror: &mirror})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-1")
	logging.WithContext(ctx, logger).Warn("item failed", logging.Error(errors.New("boom")))
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var record map[string]any
	line := strings.TrimSpace(readLog(t, logPath))
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("decode json log %q: %v", line, err)
	}
	if record["msg"] != "item failed" || record["level"] != "warn" || record["run_id"] != "run-1" || record["error"] != "boom" {
		t.Fatalf("unexpected json record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
	if !strings.Contains(mirror.String(), "WARN – item failed") || !strings.Contains(mirror.String(), "run_id=run-1") {
		t.Fatalf("mirror missing console record: %q", mirror.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesIntoLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "debug"

	logger, closer, err := logging.NewFromConfig(&cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug message")
	_ = closer.Close()

	if content := readLog(t, cfg.LogPath()); !strings.Contains(content, "DEBUG – debug message") {
		t.Fatalf("expected debug record in %q", content)
	}
}

func TestWarnWithContextFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Mirror: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "tagging skipped", "tag_failed", logging.String(logging.FieldImpact, "file left untagged"))
	out := buf.String()
	for _, want := range []string{"event_type=tag_failed", `error_hint="check logs for details"`, `impact="file left untagged"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("warn output missing %q: %q", want, out)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("no-op logger should not be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("ignored")
}
