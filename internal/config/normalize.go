package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeTagging()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceList) == "" {
		c.Paths.SourceList = defaultSourceList
	}
	if c.Paths.SourceList, err = expandPath(c.Paths.SourceList); err != nil {
		return fmt.Errorf("paths.source_list: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	c.Download.YtDlpBinary = strings.TrimSpace(c.Download.YtDlpBinary)
	if c.Download.YtDlpBinary == "" {
		if value, ok := os.LookupEnv(envYtDlpBinary); ok {
			c.Download.YtDlpBinary = strings.TrimSpace(value)
		}
	}
	if c.Download.YtDlpBinary == "" {
		c.Download.YtDlpBinary = defaultYtDlpBinary
	}
	c.Download.FFmpegLocation = strings.TrimSpace(c.Download.FFmpegLocation)
	if c.Download.FFmpegLocation == "" {
		if value, ok := os.LookupEnv(envFFmpegLocation); ok {
			c.Download.FFmpegLocation = strings.TrimSpace(value)
		}
	}
	if c.Download.FFmpegLocation == "" {
		c.Download.FFmpegLocation = defaultFFmpegLocation
	}
	if strings.HasPrefix(c.Download.FFmpegLocation, "~") {
		if expanded, err := expandPath(c.Download.FFmpegLocation); err == nil {
			c.Download.FFmpegLocation = expanded
		}
	}
	c.Download.Format = strings.TrimSpace(c.Download.Format)
	c.Download.AudioFormat = strings.ToLower(strings.TrimSpace(c.Download.AudioFormat))
	c.Download.AudioQuality = strings.TrimSpace(c.Download.AudioQuality)
	c.Download.OutputTemplate = strings.TrimSpace(c.Download.OutputTemplate)
}

func (c *Config) normalizeTagging() {
	c.Tagging.CommentLanguage = strings.ToLower(strings.TrimSpace(c.Tagging.CommentLanguage))
	if c.Tagging.CommentLanguage == "" {
		c.Tagging.CommentLanguage = defaultCommentLanguage
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv(envNtfyTopic); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
