package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWorkers(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWorkers() error {
	return ensurePositiveMap(map[string]int{
		"workers.probe": c.Workers.Probe,
		"workers.merge": c.Workers.Merge,
	})
}

func (c *Config) validateEncode() error {
	// One container profile is supported end to end; anything else would
	// need a different partial-path and muxer contract.
	if c.Encode.Container != "mp4" {
		return fmt.Errorf("encode.container must be %q, got %q", "mp4", c.Encode.Container)
	}
	if c.Encode.VideoCodec == "" {
		return errors.New("encode.video_codec must be set")
	}
	if c.Encode.AudioCodec == "" {
		return errors.New("encode.audio_codec must be set")
	}
	return ensurePositiveMap(map[string]int{
		"encode.frame_rate":     c.Encode.FrameRate,
		"encode.audio_channels": c.Encode.AudioChannels,
		"encode.audio_bit_rate": c.Encode.AudioBitRate,
		"encode.sample_rate":    c.Encode.SampleRate,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, value)
		}
	}
	return nil
}
