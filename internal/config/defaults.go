package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:          "auto",
			LogScrollSpeed: 3,
			Follow:         boolPtr(false),
		},
		Search: SearchConfig{
			DebounceMs:    1000,
			CaseSensitive: boolPtr(false),
		},
		Session: SessionConfig{
			Persist: boolPtr(true),
		},
		Telemetry: TelemetryConfig{
			Enabled: boolPtr(true),
		},
	}
}
