package styles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// themeFile is the on-disk TOML shape for color overrides, e.g.
//
//	[colors.border_focused]
//	light = "#2e5cb8"
//	dark  = "#7aa2f7"
type themeFile struct {
	Colors map[string]themeColor `toml:"colors"`
}

type themeColor struct {
	Light string `toml:"light"`
	Dark  string `toml:"dark"`
}

// DefaultThemePath returns ~/.config/loupe/theme.toml, or "" if the home
// directory cannot be resolved.
func DefaultThemePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "loupe", "theme.toml")
}

// tokens maps theme file keys to the package color variables they override.
var tokens = map[string]*lipgloss.AdaptiveColor{
	"border_focused":   &BorderFocused,
	"border_unfocused": &BorderUnfocused,
	"title_text":       &TitleText,
	"keybind_key":      &KeybindKey,
	"keybind_label":    &KeybindLabel,
	"text_primary":     &TextPrimary,
	"text_secondary":   &TextSecondary,
	"text_dim":         &TextDim,
	"severity_error":   &SeverityError,
	"severity_warn":    &SeverityWarn,
	"severity_debug":   &SeverityDebug,
	"link_text":        &LinkText,
	"bookmark_dot":     &BookmarkDot,
	"share_dot":        &ShareDot,
	"collapsed_bg":     &CollapsedBg,
}

// LoadTheme applies a TOML theme override file to the color tokens. A
// missing file is not an error; an unknown token is.
func LoadTheme(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading theme file: %w", err)
	}

	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parsing theme file: %w", err)
	}

	for name, c := range tf.Colors {
		target, ok := tokens[name]
		if !ok {
			return fmt.Errorf("unknown theme color %q", name)
		}
		if c.Light != "" {
			target.Light = c.Light
		}
		if c.Dark != "" {
			target.Dark = c.Dark
		}
	}

	rebuildStyles()
	return nil
}

// rebuildStyles re-derives the style values after token mutation.
func rebuildStyles() {
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	LinkStyle = lipgloss.NewStyle().Foreground(LinkText).Underline(true)
	BookmarkStyle = lipgloss.NewStyle().Foreground(BookmarkDot).Bold(true)
	ShareStyle = lipgloss.NewStyle().Foreground(ShareDot).Bold(true)
	GutterStyle = lipgloss.NewStyle().Foreground(TextDim)
	CollapsedStyle = lipgloss.NewStyle().Background(CollapsedBg).Foreground(TextSecondary).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(SeverityWarn).Bold(true)
}
