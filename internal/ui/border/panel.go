package border

import (
	"strings"

	"github.com/justinpbarnett/loupe/internal/ui/text"
)

// RenderPanel assembles a bordered panel: a top border carrying the
// title, content lines wrapped in side borders, and a bottom border that
// shows keybinds while the panel has focus. Content is cropped or padded
// to exactly fill height-2 rows by width-2 columns, so panels always
// tile cleanly regardless of what their View produced.
func RenderPanel(title string, content string, keybinds []Keybind,
	width, height int, focused bool) string {

	if height < 2 || width < 2 {
		return ""
	}

	innerHeight := height - 2
	innerWidth := width - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, text.PadRight("", innerWidth))
	}

	top := RenderBorderTop(title, width, focused)
	middle := RenderBorderSides(strings.Join(lines, "\n"), width, focused)
	bottom := RenderBorderBottom(keybinds, width, focused)

	return top + "\n" + middle + "\n" + bottom
}
