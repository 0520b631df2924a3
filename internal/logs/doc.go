// Package logs reads the rotated mixfetch log file for the `mixfetch logs`
// command.
//
// Last returns the final N lines with bounded memory. Follow polls the file
// from an offset and restarts from the beginning when lumberjack rotates or
// truncates it.
package logs
