package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink records breadcrumb events for later debugging. Leaving a breadcrumb
// is fire-and-forget: it never returns an error and never blocks rendering.
type Sink interface {
	Leave(event string, payload map[string]any, category string)
}

type breadcrumb struct {
	Time     time.Time      `json:"time"`
	Event    string         `json:"event"`
	Category string         `json:"category"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// FileSink appends breadcrumbs as JSON lines. Write failures are dropped
// silently; telemetry must never degrade the view.
type FileSink struct {
	mu   sync.Mutex
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// DefaultPath returns ~/.loupe/breadcrumbs.jsonl, or "" if the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".loupe", "breadcrumbs.jsonl")
}

func (s *FileSink) Leave(event string, payload map[string]any, category string) {
	if s == nil || s.path == "" {
		return
	}
	data, err := json.Marshal(breadcrumb{
		Time:     time.Now(),
		Event:    event,
		Category: category,
		Payload:  payload,
	})
	if err != nil {
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	f.Write(data)
}

// Nop discards all breadcrumbs.
type Nop struct{}

func (Nop) Leave(string, map[string]any, string) {}
