package config

import (
	"path/filepath"
	"strings"
)

// normalize expands user paths and fills derived defaults after the
// TOML layer has run.
func (c *Config) normalize() error {
	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.LogDir, defaultJournalDB)
	} else {
		journalPath, err := expandPath(c.Journal.Path)
		if err != nil {
			return err
		}
		c.Journal.Path = journalPath
	}

	c.Encode.FFmpegBinary = strings.TrimSpace(c.Encode.FFmpegBinary)
	c.Encode.FFprobeBinary = strings.TrimSpace(c.Encode.FFprobeBinary)
	if c.Encode.FFmpegBinary == "" {
		c.Encode.FFmpegBinary = "ffmpeg"
	}
	if c.Encode.FFprobeBinary == "" {
		c.Encode.FFprobeBinary = "ffprobe"
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	return nil
}
