package config

const (
	defaultLogDir     = "~/.local/share/dashstitch/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultJournalDB  = "history.db"
	defaultContainer  = "mp4"
	defaultVideoCodec = "libx264"

	// Probing is I/O-bound and fans out well; encoding usually does not.
	// Hardware encoders (VideoToolbox, VAAPI) tend to serialize anyway,
	// so a single merge worker is the safe default.
	defaultProbeWorkers = 8
	defaultMergeWorkers = 1

	defaultFrameRate     = 30
	defaultAudioCodec    = "aac"
	defaultAudioChannels = 1
	defaultAudioBitRate  = 16000
	defaultSampleRate    = 16000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Workers: Workers{
			Probe: defaultProbeWorkers,
			Merge: defaultMergeWorkers,
		},
		Encode: Encode{
			FFmpegBinary:  "ffmpeg",
			FFprobeBinary: "ffprobe",
			Container:     defaultContainer,
			VideoCodec:    defaultVideoCodec,
			FrameRate:     defaultFrameRate,
			AudioCodec:    defaultAudioCodec,
			AudioChannels: defaultAudioChannels,
			AudioBitRate:  defaultAudioBitRate,
			SampleRate:    defaultSampleRate,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
