package state

import (
	"regexp"
	"sort"
	"sync"

	"github.com/justinpbarnett/loupe/internal/filter"
)

// Range restricts where search and highlight decoration applies. Bounds are
// inclusive line indices; a nil Upper means unbounded above.
type Range struct {
	Lower int  `json:"lower"`
	Upper *int `json:"upper,omitempty"`
}

// Contains reports whether idx falls inside the range. A nil range contains
// every index.
func (r *Range) Contains(idx int) bool {
	if r == nil {
		return true
	}
	if idx < r.Lower {
		return false
	}
	if r.Upper != nil && idx > *r.Upper {
		return false
	}
	return true
}

// Store is the shared view state: bookmarks, the share line, the active
// search term, highlight terms, the highlight range, and filters. It is the
// single source of truth the row renderer projects from; rows never cache
// any of it.
type Store struct {
	mu             sync.RWMutex
	bookmarks      map[int]struct{}
	shareLine      *int
	searchPattern  string
	searchRe       *regexp.Regexp
	highlights     []string
	highlightRange *Range
	filters        []filter.Filter

	subscribers []func()
	changeCh    chan struct{}
}

func NewStore() *Store {
	return &Store{
		bookmarks: make(map[int]struct{}),
		changeCh:  make(chan struct{}, 1),
	}
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Changes returns a channel that receives after mutations. The channel has
// capacity one; rapid mutations coalesce.
func (s *Store) Changes() <-chan struct{} {
	return s.changeCh
}

func (s *Store) notify() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// ToggleBookmark flips membership of idx and reports whether the line is
// bookmarked afterwards. Other bookmarks are never disturbed.
func (s *Store) ToggleBookmark(idx int) bool {
	s.mu.Lock()
	_, present := s.bookmarks[idx]
	if present {
		delete(s.bookmarks, idx)
	} else {
		s.bookmarks[idx] = struct{}{}
	}
	s.mu.Unlock()
	s.notify()
	return !present
}

func (s *Store) IsBookmarked(idx int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bookmarks[idx]
	return ok
}

// Bookmarks returns the bookmarked indices in ascending order.
func (s *Store) Bookmarks() []int {
	s.mu.RLock()
	out := make([]int, 0, len(s.bookmarks))
	for idx := range s.bookmarks {
		out = append(out, idx)
	}
	s.mu.RUnlock()
	sort.Ints(out)
	return out
}

// SetBookmarks replaces the bookmark set (used by session rehydration).
func (s *Store) SetBookmarks(indices []int) {
	s.mu.Lock()
	s.bookmarks = make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		s.bookmarks[idx] = struct{}{}
	}
	s.mu.Unlock()
	s.notify()
}

// ToggleShareLine sets the share line to idx, replacing any previous value,
// and reports whether it is now set. Toggling the line that is already shared
// clears it instead: at most one share line exists at a time.
func (s *Store) ToggleShareLine(idx int) bool {
	s.mu.Lock()
	var set bool
	if s.shareLine != nil && *s.shareLine == idx {
		s.shareLine = nil
	} else {
		v := idx
		s.shareLine = &v
		set = true
	}
	s.mu.Unlock()
	s.notify()
	return set
}

func (s *Store) ShareLine() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.shareLine == nil {
		return 0, false
	}
	return *s.shareLine, true
}

func (s *Store) SetShareLine(idx *int) {
	s.mu.Lock()
	s.shareLine = idx
	s.mu.Unlock()
	s.notify()
}

// SetSearch compiles pattern case-insensitively and makes it the active
// search term. An empty pattern clears the term.
func (s *Store) SetSearch(pattern string) error {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile("(?i)" + pattern)
		if err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.searchPattern = pattern
	s.searchRe = re
	s.mu.Unlock()
	s.notify()
	return nil
}

// Search returns the compiled search term, or nil when none is active.
func (s *Store) Search() (*regexp.Regexp, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchRe, s.searchPattern
}

// AddHighlight appends a persistent highlight term. Duplicates are ignored.
func (s *Store) AddHighlight(pattern string) {
	if pattern == "" {
		return
	}
	s.mu.Lock()
	for _, h := range s.highlights {
		if h == pattern {
			s.mu.Unlock()
			return
		}
	}
	s.highlights = append(s.highlights, pattern)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Highlights() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.highlights))
	copy(out, s.highlights)
	return out
}

func (s *Store) SetHighlights(patterns []string) {
	s.mu.Lock()
	s.highlights = append([]string(nil), patterns...)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ClearHighlights() {
	s.mu.Lock()
	s.highlights = nil
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetHighlightRange(r *Range) {
	s.mu.Lock()
	s.highlightRange = r
	s.mu.Unlock()
	s.notify()
}

func (s *Store) HighlightRange() *Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlightRange
}

// AddFilter appends a filter to the active set.
func (s *Store) AddFilter(f filter.Filter) {
	s.mu.Lock()
	s.filters = append(s.filters, f)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Filters() []filter.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]filter.Filter, len(s.filters))
	copy(out, s.filters)
	return out
}

func (s *Store) SetFilters(filters []filter.Filter) {
	s.mu.Lock()
	s.filters = append([]filter.Filter(nil), filters...)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ClearFilters() {
	s.mu.Lock()
	s.filters = nil
	s.mu.Unlock()
	s.notify()
}
