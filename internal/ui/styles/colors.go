package styles

import "github.com/charmbracelet/lipgloss"

// Semantic colors — AdaptiveColor{Light, Dark}
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	SeverityError = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	SeverityWarn  = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	SeverityDebug = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	LinkText    = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	BookmarkDot = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bb9af7"}
	ShareDot    = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}

	CollapsedBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}
)

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)

	// Search highlight: yellow background, black text for matches
	SearchHighlightStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("11")).
				Foreground(lipgloss.Color("0"))
	// Current match: bright orange background, black text
	CurrentMatchStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("208")).
				Foreground(lipgloss.Color("0"))
	// User highlight terms (highlight mode): cyan background
	UserHighlightStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("14")).
				Foreground(lipgloss.Color("0"))

	LinkStyle      = lipgloss.NewStyle().Foreground(LinkText).Underline(true)
	BookmarkStyle  = lipgloss.NewStyle().Foreground(BookmarkDot).Bold(true)
	ShareStyle     = lipgloss.NewStyle().Foreground(ShareDot).Bold(true)
	GutterStyle    = lipgloss.NewStyle().Foreground(TextDim)
	CollapsedStyle = lipgloss.NewStyle().Background(CollapsedBg).Foreground(TextSecondary).Italic(true)

	WarningStyle = lipgloss.NewStyle().Foreground(SeverityWarn).Bold(true)
)

// SeverityColor returns the gutter tint for a line severity token. The
// zero name returns TextDim.
func SeverityColor(name string) lipgloss.AdaptiveColor {
	switch name {
	case "error":
		return SeverityError
	case "warn":
		return SeverityWarn
	case "debug":
		return SeverityDebug
	default:
		return TextDim
	}
}
