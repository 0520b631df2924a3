package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpeg locates the ffmpeg executable the way yt-dlp interprets
// --ffmpeg-location: the value may be a binary name looked up on PATH, a path
// to the binary, or a directory that contains it.
func ResolveFFmpeg(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = "ffmpeg"
	}
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		candidate := filepath.Join(location, executableName("ffmpeg"))
		info, err := os.Stat(candidate)
		if err != nil || !isExecutable(info) {
			return "", fmt.Errorf("directory %q does not contain an executable ffmpeg", location)
		}
		return candidate, nil
	}
	resolved, err := exec.LookPath(location)
	if err != nil {
		return "", fmt.Errorf("binary %q not found", location)
	}
	return resolved, nil
}

// CheckFFmpeg reports the ffmpeg binary yt-dlp will use for transcoding.
func CheckFFmpeg(location string) Status {
	status := Status{
		Name:        "FFmpeg",
		Command:     strings.TrimSpace(location),
		Description: "Transcodes downloads to the target audio format",
	}
	resolved, err := ResolveFFmpeg(location)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	status.Available = true
	status.Path = resolved
	return status
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
