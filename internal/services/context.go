package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	itemIndexKey contextKey = "item_index"
	sourceURLKey contextKey = "source_url"
)

// WithRunID annotates context with the batch run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithItemIndex annotates context with the 1-based position of the item in the
// source list.
func WithItemIndex(ctx context.Context, index int) context.Context {
	if index <= 0 {
		return ctx
	}
	return context.WithValue(ctx, itemIndexKey, index)
}

// ItemIndexFromContext extracts the item position if present.
func ItemIndexFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(itemIndexKey).(int)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// WithSourceURL annotates context with the URL currently being processed.
func WithSourceURL(ctx context.Context, url string) context.Context {
	if url == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceURLKey, url)
}

// SourceURLFromContext returns the source URL if present.
func SourceURLFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sourceURLKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
