package config

import (
	"fmt"
	"strings"
)

// validate checks the merged config for values that would misbehave at
// runtime. It reports all problems at once rather than the first.
func validate(cfg *Config) error {
	var errs []string

	switch cfg.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be \"auto\", \"dark\", or \"light\"", cfg.UI.Theme))
	}

	if cfg.UI.LogScrollSpeed <= 0 {
		errs = append(errs, "ui.log_scroll_speed must be positive")
	}
	if cfg.Search.DebounceMs <= 0 {
		errs = append(errs, "search.debounce_ms must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
