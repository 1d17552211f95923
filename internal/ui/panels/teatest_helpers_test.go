package panels

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapSearchBar creates a tea.Model adapter around a SearchBar for teatest use.
func wrapSearchBar(sb *SearchBar) tea.Model {
	return panelAdapter{
		view: func() string { return sb.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newSB, cmd := sb.Update(msg)
			*sb = newSB
			return cmd
		},
	}
}

// wrapLogView creates a tea.Model adapter around a LogView for teatest use.
func wrapLogView(lv *LogView) tea.Model {
	return panelAdapter{
		view: func() string { return lv.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newLV, cmd := lv.Update(msg)
			*lv = newLV
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

// wrapHelpOverlay creates a tea.Model adapter around a HelpOverlay for teatest use.
func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// outputBufs keeps the output already drained from each TestModel, since
// tm.Output() is a stream that WaitFor consumes: without accumulation a
// second waitForContains would only see output produced after the first.
var (
	outputMu   sync.Mutex
	outputBufs = map[*teatest.TestModel]*bytes.Buffer{}
)

func drainedOutput(tm *teatest.TestModel) *bytes.Buffer {
	outputMu.Lock()
	defer outputMu.Unlock()
	buf := outputBufs[tm]
	if buf == nil {
		buf = &bytes.Buffer{}
		outputBufs[tm] = buf
	}
	return buf
}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	buf := drainedOutput(tm)
	teatest.WaitFor(
		tb,
		io.TeeReader(tm.Output(), buf),
		func([]byte) bool { return contains(buf.Bytes(), substr) },
		teatest.WithDuration(waitDuration),
	)
}

func contains(bts []byte, s string) bool {
	return len(s) > 0 && len(bts) >= len(s) && bytesContains(bts, []byte(s))
}

func bytesContains(haystack, needle []byte) bool {
	for i := 0; i <= len(haystack)-len(needle); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}
