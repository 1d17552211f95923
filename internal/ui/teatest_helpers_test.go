package ui

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/loupe/internal/filter"
)

const waitDuration = 3 * time.Second

type recordedCrumb struct {
	event    string
	payload  map[string]any
	category string
}

type recordingSink struct {
	crumbs []recordedCrumb
}

func (r *recordingSink) Leave(event string, payload map[string]any, category string) {
	r.crumbs = append(r.crumbs, recordedCrumb{event, payload, category})
}

func filterFor(pattern string) filter.Filter {
	return filter.Filter{Pattern: pattern}
}

// appAdapter wraps the App (value receiver model) into a model that
// suppresses Init() side effects (channel listeners, tick timer) so the
// teatest program doesn't block forever on channel reads.
type appAdapter struct {
	app App
}

func (a *appAdapter) Init() tea.Cmd {
	return nil
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

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
		func([]byte) bool { return bytes.Contains(buf.Bytes(), []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}
