// Package config loads, normalizes, and validates mixfetch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MIXFETCH_FFMPEG_LOCATION. The Config type centralizes every knob the batch
// runner and CLI need, so the source list, output directory, and downloader
// settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
