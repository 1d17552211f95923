package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/loupe/internal/ui/border"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 24,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Navigation") + "\n")
	b.WriteString(kv("j/k", "Scroll down/up") + "\n")
	b.WriteString(kv("G/gg", "Jump to bottom/top") + "\n")
	b.WriteString(kv("n/N", "Next/previous match") + "\n")
	b.WriteString(kv("G", "Re-enable follow") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Search bar") + "\n")
	b.WriteString(kv("Ctrl+F", "Focus search bar") + "\n")
	b.WriteString(kv("Ctrl+S", "Cycle search/filter/highlight") + "\n")
	b.WriteString(kv("Enter", "Submit pattern") + "\n")
	b.WriteString(kv("Esc", "Leave search bar") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Lines") + "\n")
	b.WriteString(kv("click", "Toggle share line (gutter)") + "\n")
	b.WriteString(kv("2×click", "Toggle bookmark") + "\n")
	b.WriteString(kv("Enter", "Expand skipped lines") + "\n")
	b.WriteString(kv("y", "Yank line") + "\n")
	b.WriteString(kv("Y", "Yank path:line reference") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}
