package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mixfetch/internal/logs"
)

func TestLastReturnsTrailingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixfetch.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, offset, err := logs.Last(path, 2)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset != 6 {
		t.Fatalf("expected offset 6, got %d", offset)
	}

	lines, _, err = logs.Last(path, 10)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected all 3 lines, got %#v", lines)
	}
}

func TestLastMissingFile(t *testing.T) {
	lines, offset, err := logs.Last(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %#v at %d", lines, offset)
	}
}

func TestLastRejectsDirectory(t *testing.T) {
	if _, _, err := logs.Last(t.TempDir(), 5); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestLastStopsBeforeUnterminatedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixfetch.log")
	if err := os.WriteFile(path, []byte("a\nb\npart"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, offset, err := logs.Last(path, 5)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset != 4 {
		t.Fatalf("expected offset 4, got %d", offset)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("ial\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	collector := &lineCollector{}
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, 10*time.Millisecond, collector.add)
	}()
	got := waitForLines(t, collector, 1)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow returned %v", err)
	}
	if len(got) != 1 || got[0] != "partial" {
		t.Fatalf("expected the completed line once, got %#v", got)
	}
}

type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *lineCollector) add(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *lineCollector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func waitForLines(t *testing.T, c *lineCollector, want int) []string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got := c.snapshot(); len(got) >= want {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d lines, got %#v", want, c.snapshot())
	return nil
}

func TestFollowEmitsAppendedAndRotatedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixfetch.log")
	if err := os.WriteFile(path, []byte("old entry\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	_, offset, err := logs.Last(path, 0)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	collector := &lineCollector{}
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, 10*time.Millisecond, collector.add)
	}()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("first\npartial"); err != nil {
		t.Fatalf("append: %v", err)
	}
	got := waitForLines(t, collector, 1)
	if got[0] != "first" {
		t.Fatalf("unexpected first line %q", got[0])
	}
	if _, err := f.WriteString(" done\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()
	got = waitForLines(t, collector, 2)
	if got[1] != "partial done" {
		t.Fatalf("expected joined partial line, got %q", got[1])
	}

	if err := os.WriteFile(path, []byte("rotated\n"), 0o644); err != nil {
		t.Fatalf("rotate log: %v", err)
	}
	got = waitForLines(t, collector, 3)
	if got[2] != "rotated" {
		t.Fatalf("expected line from rotated file, got %q", got[2])
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow returned %v", err)
	}
}
