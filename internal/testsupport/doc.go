// Package testsupport holds helpers shared by package tests: temp-rooted
// configs, stub binaries on PATH, and source list writers.
package testsupport
