package config

const (
	defaultDataDir           = "~/.local/share/trackarr"
	defaultLogDir            = "~/.local/share/trackarr/logs"
	defaultReportDir         = "~/.local/share/trackarr/reports"
	defaultSonarrTimeout     = 30
	defaultTransmissionURL   = "http://localhost:9091/transmission/rpc"
	defaultAudioFallback     = "strict"
	defaultPollIntervalHours = 12
	defaultMkvmergeBinary    = "mkvmerge"
	defaultMkvpropeditBinary = "mkvpropedit"
	defaultReportKeepLast    = 30
	defaultNtfyTimeout       = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ReportDir: defaultReportDir,
		},
		Sonarr: Sonarr{
			AnimeOnly:      true,
			RequestTimeout: defaultSonarrTimeout,
		},
		Transmission: Transmission{
			URL: defaultTransmissionURL,
		},
		Policy: Policy{
			AudioLanguages:       []string{"jpn"},
			SubtitleLanguages:    []string{"eng", "any"},
			AudioFallback:        defaultAudioFallback,
			RequireSubtitles:     true,
			SingleAudioCompliant: true,
		},
		Files: Files{
			Extensions: []string{".mkv"},
		},
		Workflow: Workflow{
			PollIntervalHours: defaultPollIntervalHours,
			MkvmergeBinary:    defaultMkvmergeBinary,
			MkvpropeditBinary: defaultMkvpropeditBinary,
		},
		Reports: Reports{
			Enabled:  true,
			KeepLast: defaultReportKeepLast,
		},
		History: History{
			Enabled: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
