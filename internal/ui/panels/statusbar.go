package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/loupe/internal/log"
	"github.com/justinpbarnett/loupe/internal/state"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
	"github.com/justinpbarnett/loupe/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	lines      *log.Store
	view       *state.Store
	following  bool
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(lines *log.Store, view *state.Store) StatusBar {
	return StatusBar{lines: lines, view: view}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "loupe " + Version
	if s.following {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.ShareDot).Render(frame)
		appName = spinner + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	lineCount := styles.TextSecondaryStyle.Render(
		fmt.Sprintf("%s lines", text.FormatCount(s.lines.Len())),
	)

	var parts []string
	parts = append(parts, " "+version, lineCount)

	if n := len(s.view.Bookmarks()); n > 0 {
		parts = append(parts, styles.BookmarkStyle.Render(fmt.Sprintf("◆ %d", n)))
	}
	if idx, ok := s.view.ShareLine(); ok {
		parts = append(parts, styles.ShareStyle.Render(fmt.Sprintf("▶ %d", idx)))
	}
	if n := len(s.view.Filters()); n > 0 {
		parts = append(parts, styles.TextSecondaryStyle.Render(fmt.Sprintf("%d filters", n)))
	}
	if n := len(s.view.Highlights()); n > 0 {
		parts = append(parts, styles.TextSecondaryStyle.Render(fmt.Sprintf("%d highlights", n)))
	}

	left := strings.Join(parts, sep)

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.ShareDot
		case FlashError:
			icon, color = "✗", styles.SeverityError
		case FlashWarning:
			icon, color = "⚠", styles.SeverityWarn
		default: // FlashInfo
			icon, color = "●", styles.LinkText
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	rightWidth := lipgloss.Width(right)
	if max := s.width - rightWidth - 1; lipgloss.Width(left) > max {
		left = text.Truncate(left, max)
	}
	gap := s.width - lipgloss.Width(left) - rightWidth
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

func (s *StatusBar) SetFollowing(following bool) {
	s.following = following
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
