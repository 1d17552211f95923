package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/loupe/internal/config"
	"github.com/justinpbarnett/loupe/internal/filter"
	"github.com/justinpbarnett/loupe/internal/log"
	"github.com/justinpbarnett/loupe/internal/state"
	"github.com/justinpbarnett/loupe/internal/telemetry"
	"github.com/justinpbarnett/loupe/internal/ui/clipboard"
	"github.com/justinpbarnett/loupe/internal/ui/layout"
	"github.com/justinpbarnett/loupe/internal/ui/panels"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
)

const (
	spinnerInterval = 150 * time.Millisecond
	maxIngestBatch  = 512
)

// linesBatchMsg carries freshly ingested lines into the update loop, so
// the store is only mutated on the UI thread.
type linesBatchMsg struct {
	lines  []string
	closed bool
}

type ingestErrMsg struct {
	err error
}

type viewStateChangedMsg struct{}

type spinnerTickMsg struct{}

type App struct {
	config *config.Config
	lines  *log.Store
	view   *state.Store
	sink   telemetry.Sink

	lineCh <-chan string
	errCh  <-chan error

	width  int
	height int
	layout layout.Layout
	ready  bool

	following bool

	searchBar   panels.SearchBar
	logView     panels.LogView
	statusBar   panels.StatusBar
	helpOverlay *panels.HelpOverlay
	keys        KeyMap
}

func NewApp(cfg *config.Config, lines *log.Store, view *state.Store, lineCh <-chan string, errCh <-chan error, sink telemetry.Sink) App {
	sb := panels.NewSearchBar(sink)
	sb.SetDebounce(time.Duration(cfg.Search.DebounceMs) * time.Millisecond)
	sb.SetValidator(filter.Valid, "invalid pattern")

	lv := panels.NewLogView(lines, view)
	lv.SetScrollSpeed(cfg.UI.LogScrollSpeed)
	lv.SetFocused(true)

	following := cfg.UI.Follow == nil || *cfg.UI.Follow
	lv.SetFollow(following)

	st := panels.NewStatusBar(lines, view)
	st.SetFollowing(following)

	return App{
		config:    cfg,
		lines:     lines,
		view:      view,
		sink:      sink,
		lineCh:    lineCh,
		errCh:     errCh,
		following: following,
		searchBar: sb,
		logView:   lv,
		statusBar: st,
		keys:      DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listenForViewChanges(a.view.Changes()),
		tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} }),
	}
	if a.lineCh != nil {
		cmds = append(cmds, listenForLines(a.lineCh))
	}
	if a.errCh != nil {
		cmds = append(cmds, listenForIngestErrors(a.errCh))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case linesBatchMsg:
		a.lines.AppendBatch(msg.lines)
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(panels.LinesAppendedMsg{Count: len(msg.lines)})
		cmds := []tea.Cmd{cmd}
		if !msg.closed {
			cmds = append(cmds, listenForLines(a.lineCh))
		} else {
			a.following = false
			a.statusBar.SetFollowing(false)
		}
		return a, tea.Batch(cmds...)

	case ingestErrMsg:
		a.statusBar.SetFlashWithLevel(msg.err.Error(), panels.FlashError)
		return a, tea.Batch(
			listenForIngestErrors(a.errCh),
			clearFlashLater(),
		)

	case viewStateChangedMsg:
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(panels.ViewStateChangedMsg{})
		return a, tea.Batch(cmd, listenForViewChanges(a.view.Changes()))

	case spinnerTickMsg:
		a.statusBar.Tick()
		return a, tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })

	case panels.DebounceExpiredMsg:
		var cmd tea.Cmd
		a.searchBar, cmd = a.searchBar.Update(msg)
		return a, cmd

	case panels.SearchChangedMsg:
		// Debounced live updates apply to search only; filters and
		// highlights take effect on submit.
		if msg.Mode == panels.ModeSearch {
			if err := a.view.SetSearch(msg.Value); err != nil {
				return a, nil
			}
		}
		return a, nil

	case panels.SearchSubmittedMsg:
		return a.applySubmit(msg)

	case panels.GTimerExpiredMsg, panels.ClickTimerExpiredMsg, panels.LinesAppendedMsg:
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd

	case panels.ShareLineMsg:
		a.sink.Leave("share_line_toggled", map[string]any{
			"line":    msg.Line,
			"cleared": msg.Cleared,
		}, "logview")
		if msg.Cleared {
			a.statusBar.SetFlash("Share line cleared")
		} else {
			a.statusBar.SetFlash(fmt.Sprintf("Sharing line %d", msg.Line))
		}
		return a, clearFlashLater()

	case panels.BookmarkMsg:
		a.sink.Leave("bookmark_toggled", map[string]any{
			"line":  msg.Line,
			"added": msg.Added,
		}, "logview")
		if msg.Added {
			a.statusBar.SetFlashWithLevel(fmt.Sprintf("Bookmarked line %d", msg.Line), panels.FlashSuccess)
		} else {
			a.statusBar.SetFlash(fmt.Sprintf("Removed bookmark on line %d", msg.Line))
		}
		return a, clearFlashLater()

	case panels.YankMsg:
		if err := clipboard.Write(msg.Text); err != nil {
			a.statusBar.SetFlashWithLevel("Copy failed", panels.FlashError)
		} else {
			a.statusBar.SetFlashWithLevel("Copied to clipboard", panels.FlashSuccess)
		}
		return a, clearFlashLater()

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	// The search bar shortcuts work regardless of which panel has focus.
	switch {
	case msg.String() == "ctrl+c":
		return a, tea.Quit
	case key.Matches(msg, a.keys.FocusSearch):
		cmd := a.searchBar.Focus()
		a.logView.SetFocused(false)
		return a, cmd
	case key.Matches(msg, a.keys.CycleMode):
		return a, a.searchBar.CycleMode()
	}

	if a.searchBar.Focused() {
		var cmd tea.Cmd
		a.searchBar, cmd = a.searchBar.Update(msg)
		if !a.searchBar.Focused() {
			a.logView.SetFocused(true)
		}
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		if a.helpOverlay == nil {
			a.helpOverlay = panels.NewHelpOverlay()
		} else {
			a.helpOverlay = nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Follow):
		a.following = !a.following
		a.logView.SetFollow(a.following)
		a.statusBar.SetFollowing(a.following)
		return a, nil
	}

	var cmd tea.Cmd
	a.logView, cmd = a.logView.Update(msg)
	return a, cmd
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.helpOverlay != nil {
		return a, nil
	}

	logTop := layout.SearchBarRows
	logBottom := logTop + a.layout.LogViewHeight

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y >= logTop && msg.Y < logBottom {
			return a, a.logView.HandleClick(msg.X, msg.Y-logTop)
		}
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			a.logView, cmd = a.logView.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) applySubmit(msg panels.SearchSubmittedMsg) (tea.Model, tea.Cmd) {
	a.logView.SetFocused(true)

	switch msg.Mode {
	case panels.ModeSearch:
		if err := a.view.SetSearch(msg.Value); err != nil {
			a.statusBar.SetFlashWithLevel("Invalid search pattern", panels.FlashError)
			return a, clearFlashLater()
		}
		a.logView.JumpToFirstMatch()
		return a, nil

	case panels.ModeFilter:
		if msg.Value == "" {
			a.view.ClearFilters()
			a.logView.ResetExpansion()
			a.statusBar.SetFlash("Filters cleared")
			return a, clearFlashLater()
		}
		a.view.AddFilter(filter.Filter{
			Pattern:       msg.Value,
			CaseSensitive: a.config.Search.CaseSensitive != nil && *a.config.Search.CaseSensitive,
		})
		a.logView.ResetExpansion()
		a.statusBar.SetFlash(fmt.Sprintf("Filter added: %s", msg.Value))
		return a, clearFlashLater()

	case panels.ModeHighlight:
		if msg.Value == "" {
			a.view.ClearHighlights()
			a.statusBar.SetFlash("Highlights cleared")
			return a, clearFlashLater()
		}
		a.view.AddHighlight(msg.Value)
		a.statusBar.SetFlash(fmt.Sprintf("Highlight added: %s", msg.Value))
		return a, clearFlashLater()
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	full := lipgloss.JoinVertical(lipgloss.Left,
		a.searchBar.View(),
		a.logView.View(),
		a.statusBar.View(),
	)

	if a.helpOverlay != nil {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.helpOverlay.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return full
}

func (a *App) propagateSizes() {
	l := a.layout
	a.searchBar.SetWidth(l.SearchBarWidth)
	a.logView.SetSize(l.LogViewWidth, l.LogViewHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func listenForViewChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return viewStateChangedMsg{}
	}
}

// listenForLines blocks for the next ingested line, then drains whatever
// else is already buffered so a fast producer lands as one batch.
func listenForLines(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return linesBatchMsg{closed: true}
		}
		batch := []string{line}
		for len(batch) < maxIngestBatch {
			select {
			case next, ok := <-ch:
				if !ok {
					return linesBatchMsg{lines: batch, closed: true}
				}
				batch = append(batch, next)
			default:
				return linesBatchMsg{lines: batch}
			}
		}
		return linesBatchMsg{lines: batch}
	}
}

func listenForIngestErrors(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return ingestErrMsg{err: err}
	}
}

func clearFlashLater() tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}
