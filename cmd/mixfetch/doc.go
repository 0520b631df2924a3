// Package main hosts the mixfetch CLI.
//
// The Cobra command tree loads configuration once, then hands off to the
// internal packages: run drives the batch downloader, deps and config report
// on the environment, logs tails the rotated log file, and test-notify
// exercises the ntfy integration.
package main
