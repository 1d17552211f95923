package panels

import (
	"strings"
	"testing"

	"github.com/justinpbarnett/loupe/internal/filter"
	"github.com/justinpbarnett/loupe/internal/log"
	"github.com/justinpbarnett/loupe/internal/state"
)

func newTestStatusBar(lines ...string) (StatusBar, *state.Store) {
	ls := log.NewStore("/var/log/app.log")
	ls.AppendBatch(lines)
	vs := state.NewStore()
	sb := NewStatusBar(ls, vs)
	sb.SetSize(100)
	return sb, vs
}

func TestStatusBarShowsVersionAndLineCount(t *testing.T) {
	sb, _ := newTestStatusBar("a", "b", "c")
	view := sb.View()
	if !strings.Contains(view, "loupe "+Version) {
		t.Error("expected app name and version")
	}
	if !strings.Contains(view, "3 lines") {
		t.Error("expected line count")
	}
}

func TestStatusBarShowsBookmarkAndShareCounts(t *testing.T) {
	sb, vs := newTestStatusBar("a", "b", "c")
	vs.ToggleBookmark(0)
	vs.ToggleBookmark(2)
	vs.ToggleShareLine(1)

	view := sb.View()
	if !strings.Contains(view, "◆ 2") {
		t.Error("expected bookmark count")
	}
	if !strings.Contains(view, "▶ 1") {
		t.Error("expected share line indicator")
	}
}

func TestStatusBarShowsFilterCount(t *testing.T) {
	sb, vs := newTestStatusBar("a")
	vs.AddFilter(filter.Filter{Pattern: "x"})
	vs.AddFilter(filter.Filter{Pattern: "y"})

	if !strings.Contains(sb.View(), "2 filters") {
		t.Error("expected filter count")
	}
}

func TestStatusBarHidesEmptySections(t *testing.T) {
	sb, _ := newTestStatusBar("a")
	view := sb.View()
	if strings.Contains(view, "filters") || strings.Contains(view, "highlights") {
		t.Error("expected empty sections hidden")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb, _ := newTestStatusBar("a")
	sb.SetFlashWithLevel("copied", FlashSuccess)
	if !strings.Contains(sb.View(), "copied") {
		t.Error("expected flash message shown")
	}

	sb.ClearFlash()
	if strings.Contains(sb.View(), "copied") {
		t.Error("expected flash cleared")
	}
}

func TestStatusBarSpinnerOnlyWhileFollowing(t *testing.T) {
	sb, _ := newTestStatusBar("a")
	if strings.Contains(sb.View(), "⠋") {
		t.Error("expected no spinner when not following")
	}
	sb.SetFollowing(true)
	if !strings.Contains(sb.View(), "⠋") {
		t.Error("expected spinner while following")
	}
	sb.Tick()
	if !strings.Contains(sb.View(), "⠙") {
		t.Error("expected spinner frame to advance")
	}
}

func TestStatusBarHelpHint(t *testing.T) {
	sb, _ := newTestStatusBar()
	if !strings.Contains(sb.View(), "?:help") {
		t.Error("expected help hint on the right")
	}
}
