package state

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/justinpbarnett/loupe/internal/filter"
)

const (
	sessionVersion = 1
	debouncePeriod = 500 * time.Millisecond
)

// SessionFile is the persisted slice of view state for one log file. It is
// what makes bookmarks and the share line survive reopening the same file.
type SessionFile struct {
	Version    int             `json:"version"`
	Path       string          `json:"path"`
	Bookmarks  []int           `json:"bookmarks,omitempty"`
	ShareLine  *int            `json:"share_line,omitempty"`
	Highlights []string        `json:"highlights,omitempty"`
	Filters    []filter.Filter `json:"filters,omitempty"`
	SavedAt    time.Time       `json:"saved_at"`
}

type Persistence struct {
	sessionsDir string
	mu          sync.Mutex
	lastSave    time.Time
}

func NewPersistence() (*Persistence, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return NewPersistenceAt(filepath.Join(homeDir, ".loupe", "sessions"))
}

// NewPersistenceAt creates a persistence rooted at dir. This is the testable
// entry point — NewPersistence() calls it with ~/.loupe/sessions.
func NewPersistenceAt(dir string) (*Persistence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &Persistence{sessionsDir: dir}, nil
}

// SessionsDir returns the sessions directory path.
func (p *Persistence) SessionsDir() string {
	return p.sessionsDir
}

// sessionPath keys the session file by a hash of the absolute log path, so
// reopening the same file finds the same session.
func (p *Persistence) sessionPath(logPath string) string {
	abs, err := filepath.Abs(logPath)
	if err != nil {
		abs = logPath
	}
	h := fnv.New32a()
	h.Write([]byte(abs))
	return filepath.Join(p.sessionsDir, fmt.Sprintf("%08x.json", h.Sum32()))
}

// Save writes the store's persistable state for logPath atomically.
func (p *Persistence) Save(store *Store, logPath string) error {
	if logPath == "" {
		return nil // stdin sessions are not persisted
	}

	sf := SessionFile{
		Version:    sessionVersion,
		Path:       logPath,
		Bookmarks:  store.Bookmarks(),
		Highlights: store.Highlights(),
		Filters:    store.Filters(),
		SavedAt:    time.Now(),
	}
	if idx, ok := store.ShareLine(); ok {
		sf.ShareLine = &idx
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	data = append(data, '\n')

	target := p.sessionPath(logPath)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename session file: %w", err)
	}
	return nil
}

// Load reads the persisted session for logPath. Returns nil when no session
// exists or the file is unreadable — a missing session is not an error.
func (p *Persistence) Load(logPath string) *SessionFile {
	if logPath == "" {
		return nil
	}
	data, err := os.ReadFile(p.sessionPath(logPath))
	if err != nil {
		return nil
	}
	var sf SessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		log.Printf("warning: parse session file for %s: %v", logPath, err)
		return nil
	}
	if sf.Version != sessionVersion {
		log.Printf("warning: session file for %s has version %d, expected %d, skipping", logPath, sf.Version, sessionVersion)
		return nil
	}
	return &sf
}

// Rehydrate applies a loaded session to the store.
func Rehydrate(store *Store, sf *SessionFile) {
	if sf == nil {
		return
	}
	store.SetBookmarks(sf.Bookmarks)
	store.SetShareLine(sf.ShareLine)
	store.SetHighlights(sf.Highlights)
	store.SetFilters(sf.Filters)
}

// Bind subscribes to store changes and auto-saves with debouncing.
func (p *Persistence) Bind(store *Store, logPath string) {
	store.Subscribe(func() {
		p.mu.Lock()
		now := time.Now()
		if now.Sub(p.lastSave) < debouncePeriod {
			p.mu.Unlock()
			return
		}
		p.lastSave = now
		p.mu.Unlock()

		if err := p.Save(store, logPath); err != nil {
			log.Printf("warning: save session: %v", err)
		}
	})
}
