// Package ytdlp wraps the yt-dlp downloader.
//
// Client.Fetch turns one source URL into one audio file: it asks yt-dlp for the
// best audio stream, has ffmpeg transcode it to the configured format, and
// reports the file that appeared in the output directory. Progress updates
// are translated into a small local type so callers never depend on the
// downloader library directly. The Executor seam lets tests replace the real
// process with a stub.
package ytdlp
