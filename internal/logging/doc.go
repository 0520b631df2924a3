// Package logging assembles the slog loggers used by mixfetch.
//
// Log records go to a size-rotated file (lumberjack) in either console or
// JSON form, and can be mirrored to a terminal stream in console form. The
// package also carries context helpers that stamp records with the run ID,
// item index, and source URL of the download in flight, plus a no-op logger
// for tests.
package logging
