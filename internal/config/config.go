package config

type Config struct {
	UI        UIConfig        `yaml:"ui"`
	Search    SearchConfig    `yaml:"search"`
	Session   SessionConfig   `yaml:"session"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type UIConfig struct {
	Theme          string `yaml:"theme"`
	LogScrollSpeed int    `yaml:"log_scroll_speed"`
	Follow         *bool  `yaml:"follow"`
}

type SearchConfig struct {
	// DebounceMs is the trailing debounce window for live propagation of
	// search bar edits.
	DebounceMs    int   `yaml:"debounce_ms"`
	CaseSensitive *bool `yaml:"case_sensitive"`
}

type SessionConfig struct {
	// Persist controls whether bookmarks and the share line are written to
	// a per-file session under ~/.loupe/sessions.
	Persist *bool `yaml:"persist"`
}

type TelemetryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}
