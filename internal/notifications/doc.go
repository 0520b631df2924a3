// Package notifications pushes batch events to ntfy.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers never need to check whether notifications are enabled. Delivery
// errors are returned to the caller, which logs them and carries on.
package notifications
