package panels

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/loupe/internal/filter"
	"github.com/justinpbarnett/loupe/internal/log"
	"github.com/justinpbarnett/loupe/internal/state"
	"github.com/justinpbarnett/loupe/internal/ui/border"
	"github.com/justinpbarnett/loupe/internal/ui/render"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
	"github.com/justinpbarnett/loupe/internal/ui/text"
)

const (
	gTimeout     = 300 * time.Millisecond
	clickTimeout = 400 * time.Millisecond

	lineNumberWidth = 6
	// markers (2) + line number + " │ "
	gutterTotalWidth = 2 + lineNumberWidth + 3
)

// GTimerExpiredMsg is sent when the gg double-tap window expires.
type GTimerExpiredMsg struct{}

// ClickTimerExpiredMsg is sent when the double-click pairing window
// expires; the pending single click then takes effect.
type ClickTimerExpiredMsg struct{}

type LogView struct {
	viewport viewport.Model
	width    int
	height   int

	lines *log.Store
	view  *state.Store

	focused     bool
	follow      bool
	gPending    bool
	scrollSpeed int

	// Search match navigation. matchLines holds the matching line
	// indices in order; currentMatch indexes into it.
	matchLines   []int
	currentMatch int

	// Display rows under the active filters, recomputed on every
	// refresh. expanded re-opens collapsed runs by their start index.
	rows     []filter.Row
	expanded map[int]bool

	// Double-click pairing. A first gutter click arms the timer; a
	// second click on the same line before expiry becomes a bookmark
	// toggle, otherwise the share-line toggle fires on expiry — but only
	// for gutter clicks; a lone click on the line text does nothing.
	clickPending bool
	clickLine    int
	clickShare   bool
}

func NewLogView(lines *log.Store, view *state.Store) LogView {
	return LogView{
		viewport:     viewport.New(0, 0),
		lines:        lines,
		view:         view,
		follow:       true,
		scrollSpeed:  3,
		currentMatch: -1,
		expanded:     map[int]bool{},
	}
}

func (l LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case LinesAppendedMsg:
		l.recomputeMatches()
		l.refreshContent()
		return l, nil

	case ViewStateChangedMsg:
		l.recomputeMatches()
		l.refreshContent()
		return l, nil

	case GTimerExpiredMsg:
		l.gPending = false
		return l, nil

	case ClickTimerExpiredMsg:
		if !l.clickPending {
			return l, nil
		}
		l.clickPending = false
		if !l.clickShare {
			return l, nil
		}
		line := l.clickLine
		cleared := !l.view.ToggleShareLine(line)
		l.refreshContent()
		if !cleared {
			l.ScrollToLine(line)
		}
		return l, func() tea.Msg { return ShareLineMsg{Line: line, Cleared: cleared} }

	case tea.KeyMsg:
		return l.updateKeys(msg)
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

func (l LogView) updateKeys(msg tea.KeyMsg) (LogView, tea.Cmd) {
	switch msg.String() {
	case "G":
		l.follow = true
		l.viewport.GotoBottom()
		return l, nil
	case "g":
		if l.gPending {
			l.gPending = false
			l.follow = false
			l.viewport.GotoTop()
			return l, nil
		}
		l.gPending = true
		l.follow = false
		return l, tea.Tick(gTimeout, func(time.Time) tea.Msg {
			return GTimerExpiredMsg{}
		})
	case "n":
		l.nextMatch()
		return l, nil
	case "N":
		l.prevMatch()
		return l, nil
	case "enter":
		l.expandVisibleRun()
		return l, nil
	case "y":
		if text, ok := l.yankLine(); ok {
			return l, func() tea.Msg { return YankMsg{Text: text} }
		}
		return l, nil
	case "Y":
		if ref, ok := l.shareReference(); ok {
			return l, func() tea.Msg { return YankMsg{Text: ref} }
		}
		return l, nil
	case "j", "down":
		l.follow = false
		step := l.scrollSpeed
		if step <= 0 {
			step = 1
		}
		l.viewport.SetYOffset(l.viewport.YOffset + step)
		return l, nil
	case "k", "up":
		l.follow = false
		step := l.scrollSpeed
		if step <= 0 {
			step = 1
		}
		offset := l.viewport.YOffset - step
		if offset < 0 {
			offset = 0
		}
		l.viewport.SetYOffset(offset)
		return l, nil
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

// HandleClick processes a mouse press at panel-relative coordinates. A
// click on a collapsed row expands it. A click anywhere on a real line
// arms the pairing timer: the second click within the window toggles the
// line's bookmark. On expiry a lone gutter click toggles the share line;
// a lone click on the line text does nothing.
func (l *LogView) HandleClick(relX, relY int) tea.Cmd {
	row := l.viewport.YOffset + (relY - 1)
	if row < 0 || row >= len(l.rows) {
		return nil
	}

	r := l.rows[row]
	if r.Collapsed() {
		l.expanded[r.Start] = true
		l.refreshContent()
		return nil
	}
	line := r.Line

	if l.clickPending && l.clickLine == line {
		l.clickPending = false
		added := l.view.ToggleBookmark(line)
		l.refreshContent()
		return func() tea.Msg { return BookmarkMsg{Line: line, Added: added} }
	}

	l.clickPending = true
	l.clickLine = line
	l.clickShare = relX-1 < gutterTotalWidth
	return tea.Tick(clickTimeout, func(time.Time) tea.Msg {
		return ClickTimerExpiredMsg{}
	})
}

func (l LogView) View() string {
	title := "Log"
	if l.lines != nil && l.lines.Path() != "" {
		title = text.Truncate("Log: "+l.lines.Path(), l.width-8)
	}

	var keybinds []border.Keybind
	if l.focused {
		keybinds = []border.Keybind{
			{Key: "y", Label: "ank"},
			{Key: "G", Label: "bottom"},
			{Key: "g", Label: "g top"},
		}
		if len(l.matchLines) > 0 {
			keybinds = append(keybinds, border.Keybind{Key: "n", Label: "/N match"})
		}
	}

	content := l.viewport.View()
	if status := l.searchStatus(); status != "" {
		content += "\n" + status
	}

	return border.RenderPanel(title, content, keybinds, l.width, l.height, l.focused)
}

func (l LogView) searchStatus() string {
	_, pattern := l.view.Search()
	if pattern == "" {
		return ""
	}
	total := len(l.matchLines)
	if total == 0 {
		return styles.TextDimStyle.Render("  No matches")
	}
	return styles.TextSecondaryStyle.Render(
		fmt.Sprintf("  Match %d/%d", l.currentMatch+1, total),
	) + styles.TextDimStyle.Render(" (n/N navigate)")
}

func (l *LogView) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.resizeViewport()
	l.refreshContent()
}

func (l *LogView) SetFocused(focused bool) {
	l.focused = focused
}

func (l *LogView) SetFollow(follow bool) {
	l.follow = follow
	if follow {
		l.viewport.GotoBottom()
	}
}

func (l *LogView) SetScrollSpeed(speed int) {
	if speed > 0 {
		l.scrollSpeed = speed
	}
}

// ResetExpansion forgets which collapsed runs were re-opened. Called when
// the filter set changes, since run boundaries move.
func (l *LogView) ResetExpansion() {
	l.expanded = map[int]bool{}
}

// CurrentMatchLine returns the line index of the focused search match,
// -1 when there is none.
func (l LogView) CurrentMatchLine() int {
	if l.currentMatch < 0 || l.currentMatch >= len(l.matchLines) {
		return -1
	}
	return l.matchLines[l.currentMatch]
}

// JumpToFirstMatch moves to the first search match, if any.
func (l *LogView) JumpToFirstMatch() {
	l.recomputeMatches()
	if len(l.matchLines) > 0 {
		l.currentMatch = 0
		l.jumpToMatch()
	}
	l.refreshContent()
}

// ScrollToLine scrolls the viewport so the display row for the given line
// index is visible. Lines hidden by a collapsed run scroll to the run.
func (l *LogView) ScrollToLine(idx int) {
	l.follow = false
	row := l.displayRowOf(idx)
	if row < 0 {
		return
	}
	if row < l.viewport.YOffset || row >= l.viewport.YOffset+l.viewport.Height {
		offset := row - l.viewport.Height/2
		if offset < 0 {
			offset = 0
		}
		l.viewport.SetYOffset(offset)
	}
}

func (l *LogView) displayRowOf(idx int) int {
	for i, r := range l.rows {
		if r.Collapsed() {
			if idx >= r.Start && idx < r.Start+r.Skipped {
				return i
			}
			continue
		}
		if r.Line == idx {
			return i
		}
	}
	return -1
}

// expandVisibleRun expands the first collapsed row in the visible window.
func (l *LogView) expandVisibleRun() {
	top := l.viewport.YOffset
	bottom := top + l.viewport.Height
	for i := top; i < bottom && i < len(l.rows); i++ {
		if i < 0 {
			continue
		}
		if r := l.rows[i]; r.Collapsed() {
			l.expanded[r.Start] = true
			l.refreshContent()
			return
		}
	}
}

func (l *LogView) yankLine() (string, bool) {
	idx := -1
	if share, ok := l.view.ShareLine(); ok {
		idx = share
	} else if m := l.CurrentMatchLine(); m >= 0 {
		idx = m
	} else if row := l.viewport.YOffset; row >= 0 && row < len(l.rows) && !l.rows[row].Collapsed() {
		idx = l.rows[row].Line
	}
	if idx < 0 {
		return "", false
	}
	text, ok := l.lines.GetLine(idx)
	return text, ok
}

// shareReference formats the share line as "<path>:<line>" for pasting.
func (l *LogView) shareReference() (string, bool) {
	share, ok := l.view.ShareLine()
	if !ok || l.lines.Path() == "" {
		return "", false
	}
	return fmt.Sprintf("%s:%d", l.lines.Path(), share), true
}

func (l *LogView) resizeViewport() {
	innerW := l.width - 2
	innerH := l.height - 2
	if l.searchStatus() != "" {
		innerH--
	}
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	l.viewport.Width = innerW
	l.viewport.Height = innerH
}

func (l *LogView) refreshContent() {
	l.rows = l.computeRows()
	l.viewport.SetContent(l.renderContent())
	if l.follow {
		l.viewport.GotoBottom()
	}
}

func (l *LogView) computeRows() []filter.Row {
	set := filter.NewSet(l.view.Filters())
	keep := func(idx int) bool {
		if l.view.IsBookmarked(idx) {
			return true
		}
		share, ok := l.view.ShareLine()
		return ok && share == idx
	}
	expanded := func(start int) bool { return l.expanded[start] }
	return set.Rows(l.lines.Len(), func(i int) string {
		text, _ := l.lines.GetLine(i)
		return text
	}, keep, expanded)
}

func (l *LogView) renderContent() string {
	if l.lines.Len() == 0 {
		return "Waiting for output..."
	}

	ctx := l.renderContext()
	styled := make([]string, 0, len(l.rows))
	for _, r := range l.rows {
		if r.Collapsed() {
			styled = append(styled, styles.CollapsedStyle.Render(
				fmt.Sprintf("--- %d lines skipped ---", r.Skipped),
			))
			continue
		}
		row, ok := ctx.Row(r.Line)
		if !ok {
			continue
		}
		styled = append(styled, row)
	}
	return strings.Join(styled, "\n")
}

func (l *LogView) renderContext() render.Context {
	searchRe, _ := l.view.Search()

	var highlights []*regexp.Regexp
	for _, term := range l.view.Highlights() {
		re, err := regexp.Compile("(?i)" + term)
		if err != nil {
			continue
		}
		highlights = append(highlights, re)
	}

	share := -1
	if s, ok := l.view.ShareLine(); ok {
		share = s
	}

	return render.Context{
		Source:           l.lines,
		Search:           searchRe,
		CurrentMatchLine: l.CurrentMatchLine(),
		Highlights:       highlights,
		Range:            l.view.HighlightRange(),
		IsBookmarked:     l.view.IsBookmarked,
		ShareLine:        share,
		GutterWidth:      lineNumberWidth,
	}
}

func (l *LogView) recomputeMatches() {
	prev := l.CurrentMatchLine()
	l.matchLines = nil
	l.currentMatch = -1

	searchRe, pattern := l.view.Search()
	if pattern == "" || searchRe == nil {
		return
	}
	rng := l.view.HighlightRange()
	for i := 0; i < l.lines.Len(); i++ {
		if !rng.Contains(i) {
			continue
		}
		text, ok := l.lines.GetLine(i)
		if ok && searchRe.MatchString(text) {
			l.matchLines = append(l.matchLines, i)
		}
	}
	if len(l.matchLines) == 0 {
		return
	}
	l.currentMatch = 0
	for i, line := range l.matchLines {
		if line == prev {
			l.currentMatch = i
			break
		}
	}
}

func (l *LogView) nextMatch() {
	if len(l.matchLines) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch + 1) % len(l.matchLines)
	l.jumpToMatch()
}

func (l *LogView) prevMatch() {
	if len(l.matchLines) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch - 1 + len(l.matchLines)) % len(l.matchLines)
	l.jumpToMatch()
}

func (l *LogView) jumpToMatch() {
	if l.currentMatch < 0 || l.currentMatch >= len(l.matchLines) {
		return
	}
	l.ScrollToLine(l.matchLines[l.currentMatch])
	l.refreshContent()
}
