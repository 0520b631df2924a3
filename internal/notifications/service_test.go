package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mixfetch/internal/config"
	"mixfetch/internal/notifications"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newRecorder(t *testing.T, status int) (*httptest.Server, func() []captured) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []captured
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte("rejected"))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []captured {
		mu.Lock()
		defer mu.Unlock()
		return append([]captured(nil), requests...)
	}
}

func serviceFor(url string, mutate func(*config.Config)) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = url
	if mutate != nil {
		mutate(&cfg)
	}
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyItemFailed(context.Background(), "https://example.com/a", errors.New("boom")); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := notifications.NewService(nil).TestNotification(context.Background()); err != nil {
		t.Fatalf("nil config should yield noop, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	srv, requests := newRecorder(t, http.StatusOK)
	svc := serviceFor(srv.URL, nil)
	ctx := context.Background()

	if err := svc.NotifyBatchStarted(ctx, 3); err != nil {
		t.Fatalf("NotifyBatchStarted: %v", err)
	}
	if err := svc.NotifyItemFailed(ctx, "https://example.com/b", errors.New("download failed: gone")); err != nil {
		t.Fatalf("NotifyItemFailed: %v", err)
	}
	if err := svc.NotifyBatchCompleted(ctx, 2, 1, 95*time.Second+400*time.Millisecond); err != nil {
		t.Fatalf("NotifyBatchCompleted: %v", err)
	}
	if err := svc.TestNotification(ctx); err != nil {
		t.Fatalf("TestNotification: %v", err)
	}

	got := requests()
	want := []captured{
		{title: "mixfetch - Batch Started", tags: "mixfetch,batch,started", body: "Downloading 3 sources"},
		{title: "mixfetch - Download Failed", tags: "mixfetch,error", priority: "high", body: "https://example.com/b\ndownload failed: gone"},
		{title: "mixfetch - Batch Complete (with errors)", tags: "mixfetch,batch,completed,warning", body: "2 downloaded, 1 failed in 1m35s"},
		{title: "mixfetch - Test", tags: "mixfetch,test", priority: "low", body: "Notification system test"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request %d mismatch:\n got  %+v\n want %+v", i, got[i], want[i])
		}
	}
}

func TestNtfyServiceHonoursToggles(t *testing.T) {
	srv, requests := newRecorder(t, http.StatusOK)
	svc := serviceFor(srv.URL, func(cfg *config.Config) {
		cfg.Notifications.Batch = false
		cfg.Notifications.Errors = false
	})
	ctx := context.Background()
	_ = svc.NotifyBatchStarted(ctx, 1)
	_ = svc.NotifyBatchCompleted(ctx, 1, 0, time.Second)
	_ = svc.NotifyItemFailed(ctx, "https://example.com/a", nil)
	if n := len(requests()); n != 0 {
		t.Fatalf("expected disabled events to be skipped, got %d requests", n)
	}
}

func TestNtfyServiceReportsHTTPErrors(t *testing.T) {
	srv, _ := newRecorder(t, http.StatusForbidden)
	err := serviceFor(srv.URL, nil).TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "rejected") {
		t.Fatalf("expected status error with body, got %v", err)
	}
}
