package panels

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/loupe/internal/filter"
	"github.com/justinpbarnett/loupe/internal/telemetry"
	"github.com/justinpbarnett/loupe/internal/ui/border"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
)

// SearchMode selects what a submitted pattern does.
type SearchMode int

const (
	ModeSearch SearchMode = iota
	ModeFilter
	ModeHighlight
)

func (m SearchMode) String() string {
	switch m {
	case ModeFilter:
		return "filter"
	case ModeHighlight:
		return "highlight"
	default:
		return "search"
	}
}

// Next returns the next mode in the cycle, wrapping after highlight.
func (m SearchMode) Next() SearchMode {
	return (m + 1) % 3
}

const defaultDebounce = time.Second

// DebounceExpiredMsg is sent when a debounce window closes. Only the
// newest generation is honored; earlier keystrokes' timers are stale.
type DebounceExpiredMsg struct {
	Gen int
}

type SearchBar struct {
	input   textinput.Model
	mode    SearchMode
	width   int
	focused bool
	enabled bool

	debounce time.Duration
	gen      int
	lastSent string

	validator  func(string) bool
	invalidMsg string

	sink telemetry.Sink
}

func NewSearchBar(sink telemetry.Sink) SearchBar {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Pattern..."
	ti.CharLimit = 256
	return SearchBar{
		input:      ti,
		enabled:    true,
		debounce:   defaultDebounce,
		validator:  filter.Valid,
		invalidMsg: "invalid pattern",
		sink:       sink,
	}
}

func (s SearchBar) Mode() SearchMode { return s.mode }
func (s SearchBar) Value() string    { return s.input.Value() }
func (s SearchBar) Focused() bool    { return s.focused }

// Valid reports whether the current pattern passes the validator.
func (s SearchBar) Valid() bool {
	return s.validator == nil || s.validator(s.input.Value())
}

func (s *SearchBar) SetWidth(w int) { s.width = w }

// SetEnabled gates the whole bar. A disabled bar ignores keys and drops
// any pending debounce fire.
func (s *SearchBar) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.Blur()
	}
}

// SetDebounce overrides the debounce window (config search.debounce_ms).
func (s *SearchBar) SetDebounce(d time.Duration) {
	if d > 0 {
		s.debounce = d
	}
}

// SetValidator replaces the pattern validator and its warning message.
func (s *SearchBar) SetValidator(v func(string) bool, msg string) {
	s.validator = v
	s.invalidMsg = msg
}

// Focus focuses the input and moves the cursor past the last character,
// so a ctrl+f with an existing pattern continues where it left off.
func (s *SearchBar) Focus() tea.Cmd {
	s.focused = true
	s.input.Focus()
	s.input.CursorEnd()
	return textinput.Blink
}

func (s *SearchBar) Blur() {
	s.focused = false
	s.input.Blur()
}

// CycleMode advances to the next mode. Cycling into search mode with a
// non-empty valid pattern re-submits it, once per transition.
func (s *SearchBar) CycleMode() tea.Cmd {
	s.mode = s.mode.Next()
	s.leave("mode_changed", map[string]any{"mode": s.mode.String()})

	if s.mode == ModeSearch && s.input.Value() != "" && s.Valid() {
		return s.submit()
	}
	return nil
}

func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	switch msg := msg.(type) {
	case DebounceExpiredMsg:
		if !s.enabled || !s.focused {
			return s, nil
		}
		if msg.Gen != s.gen {
			return s, nil
		}
		value := s.input.Value()
		if !s.Valid() || value == s.lastSent {
			return s, nil
		}
		s.lastSent = value
		mode := s.mode
		return s, func() tea.Msg { return SearchChangedMsg{Mode: mode, Value: value} }

	case tea.KeyMsg:
		if !s.enabled || !s.focused {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			s.Blur()
			return s, nil
		case "enter":
			if !s.Valid() {
				return s, nil
			}
			return s, s.submit()
		}

		before := s.input.Value()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() == before {
			return s, cmd
		}

		s.gen++
		gen := s.gen
		tick := tea.Tick(s.debounce, func(time.Time) tea.Msg {
			return DebounceExpiredMsg{Gen: gen}
		})
		return s, tea.Batch(cmd, tick)
	}
	return s, nil
}

// submit blurs the input, emits the submitted pattern, and clears it for
// the modes that accumulate (filter, highlight). Search keeps its pattern
// visible for n/N navigation.
func (s *SearchBar) submit() tea.Cmd {
	value := s.input.Value()
	mode := s.mode

	s.leave("search_submitted", map[string]any{
		"mode":    mode.String(),
		"pattern": value,
	})

	s.Blur()
	s.lastSent = value
	if mode == ModeFilter || mode == ModeHighlight {
		s.input.SetValue("")
		s.lastSent = ""
	}
	return func() tea.Msg { return SearchSubmittedMsg{Mode: mode, Value: value} }
}

func (s *SearchBar) leave(event string, payload map[string]any) {
	if s.sink == nil {
		return
	}
	s.sink.Leave(event, payload, "searchbar")
}

func (s SearchBar) View() string {
	title := "Search"
	switch s.mode {
	case ModeFilter:
		title = "Filter"
	case ModeHighlight:
		title = "Highlight"
	}

	content := s.input.View()
	if !s.Valid() {
		content += "  " + styles.WarningStyle.Render("⚠ "+s.invalidMsg)
	}

	var keybinds []border.Keybind
	if s.focused {
		if s.Valid() {
			keybinds = []border.Keybind{
				{Key: "Enter", Label: " submit"},
				{Key: "^s", Label: " mode"},
			}
		} else {
			keybinds = []border.Keybind{{Key: "Esc", Label: " cancel"}}
		}
	} else {
		keybinds = []border.Keybind{
			{Key: "^f", Label: " search"},
			{Key: "^s", Label: " mode"},
		}
	}

	return border.RenderPanel(title, content, keybinds, s.width, 3, s.focused)
}
