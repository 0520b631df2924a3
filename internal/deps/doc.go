// Package deps reports whether the external binaries mixfetch shells out to
// (yt-dlp and ffmpeg) can be found.
package deps
