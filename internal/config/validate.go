package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// audioExtensions maps the formats yt-dlp can extract to the file extension it writes.
var audioExtensions = map[string]string{
	"aac":    "aac",
	"alac":   "m4a",
	"flac":   "flac",
	"m4a":    "m4a",
	"mp3":    "mp3",
	"opus":   "opus",
	"vorbis": "ogg",
	"wav":    "wav",
}

// AudioExtension returns the file extension produced for the configured audio format.
func (c *Config) AudioExtension() string {
	if ext, ok := audioExtensions[c.Download.AudioFormat]; ok {
		return ext
	}
	return c.Download.AudioFormat
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.DelaySeconds < 0 {
		return errors.New("download.delay_seconds must be >= 0")
	}
	if c.Download.TimeoutSeconds < 0 {
		return errors.New("download.timeout_seconds must be >= 0")
	}
	if c.Download.Format == "" {
		return errors.New("download.format must be set")
	}
	if c.Download.AudioFormat == "" {
		return errors.New("download.audio_format must be set")
	}
	if _, ok := audioExtensions[c.Download.AudioFormat]; !ok {
		return fmt.Errorf("download.audio_format %q is not supported", c.Download.AudioFormat)
	}
	if err := validateAudioQuality(c.Download.AudioQuality); err != nil {
		return err
	}
	if c.Download.OutputTemplate == "" {
		return errors.New("download.output_template must be set")
	}
	if filepath.IsAbs(c.Download.OutputTemplate) {
		return errors.New("download.output_template must be relative to the output directory")
	}
	cleaned := filepath.Clean(c.Download.OutputTemplate)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.New("download.output_template must not escape the output directory")
	}
	return nil
}

func validateAudioQuality(value string) error {
	if value == "" {
		return errors.New("download.audio_quality must be set")
	}
	if level, err := strconv.Atoi(value); err == nil {
		if level < 0 {
			return errors.New("download.audio_quality must be >= 0")
		}
		// 0-10 is a VBR level; larger integers are treated as a bitrate in kbps.
		return nil
	}
	trimmed := strings.TrimSuffix(strings.TrimSuffix(value, "K"), "k")
	if bitrate, err := strconv.Atoi(trimmed); err == nil && bitrate > 0 {
		return nil
	}
	return fmt.Errorf("download.audio_quality %q must be a VBR level (0-10) or a bitrate such as 192K", value)
}

func (c *Config) validateTagging() error {
	if !c.Tagging.Enabled {
		return nil
	}
	if len(c.Tagging.CommentLanguage) != 3 {
		return fmt.Errorf("tagging.comment_language %q must be a three-letter ISO 639-2 code", c.Tagging.CommentLanguage)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
