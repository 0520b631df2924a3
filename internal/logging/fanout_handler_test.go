package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFanoutHandlerCollapsesTrivialCases(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every sink is nil")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single sink to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerSinkLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	h := newFanoutHandler(
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "test")}))
	logger.Debug("only debug sink")
	logger.Info("both sinks")

	if strings.Contains(infoBuf.String(), "only debug sink") {
		t.Fatalf("info sink received debug record: %q", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "only debug sink") || !strings.Contains(debugBuf.String(), "component=test") {
		t.Fatalf("debug sink missing record: %q", debugBuf.String())
	}
	if !strings.Contains(infoBuf.String(), "both sinks") {
		t.Fatalf("info sink missing record: %q", infoBuf.String())
	}
}

func TestPrettyHandlerGroupsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	h := newPrettyHandler(&buf, lvl, false).WithGroup("progress")
	record := slog.NewRecord(time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local), slog.LevelInfo, "tick", 0)
	record.AddAttrs(slog.Float64("percent", 42.5), slog.String("eta", ""))
	if err := h.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "2026-01-02 03:04:05 INFO – tick") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "progress.percent=42.5") || !strings.Contains(out, `progress.eta=""`) {
		t.Fatalf("unexpected fields: %q", out)
	}
}
