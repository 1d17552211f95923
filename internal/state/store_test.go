package state

import (
	"testing"

	"github.com/justinpbarnett/loupe/internal/filter"
)

func TestToggleBookmark(t *testing.T) {
	s := NewStore()

	if !s.ToggleBookmark(4) {
		t.Error("expected first toggle to add the bookmark")
	}
	s.ToggleBookmark(9)

	if s.ToggleBookmark(4) {
		t.Error("expected second toggle to remove the bookmark")
	}
	got := s.Bookmarks()
	if len(got) != 1 || got[0] != 9 {
		t.Errorf("expected other bookmarks untouched, got %v", got)
	}
}

func TestBookmarksSorted(t *testing.T) {
	s := NewStore()
	s.ToggleBookmark(30)
	s.ToggleBookmark(2)
	s.ToggleBookmark(17)

	got := s.Bookmarks()
	want := []int{2, 17, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted bookmarks %v, got %v", want, got)
		}
	}
}

func TestToggleShareLine(t *testing.T) {
	s := NewStore()

	if !s.ToggleShareLine(0) {
		t.Error("expected toggle to report the share line set")
	}
	if idx, ok := s.ShareLine(); !ok || idx != 0 {
		t.Fatalf("expected share line 0, got %d ok=%v", idx, ok)
	}

	// A different line replaces the previous one.
	s.ToggleShareLine(7)
	if idx, ok := s.ShareLine(); !ok || idx != 7 {
		t.Fatalf("expected share line replaced with 7, got %d ok=%v", idx, ok)
	}

	// Toggling the current share line clears it.
	if s.ToggleShareLine(7) {
		t.Error("expected toggle to report the share line cleared")
	}
	if _, ok := s.ShareLine(); ok {
		t.Error("expected share line cleared by second toggle")
	}
}

func TestSetSearchCaseInsensitive(t *testing.T) {
	s := NewStore()
	if err := s.SetSearch("highlight me"); err != nil {
		t.Fatal(err)
	}
	re, pattern := s.Search()
	if pattern != "highlight me" {
		t.Errorf("expected pattern kept, got %q", pattern)
	}
	if !re.MatchString("please HIGHLIGHT ME now") {
		t.Error("expected case-insensitive match")
	}
}

func TestSetSearchInvalid(t *testing.T) {
	s := NewStore()
	if err := s.SetSearch("["); err == nil {
		t.Error("expected error for invalid pattern")
	}
	if re, _ := s.Search(); re != nil {
		t.Error("expected search term unset after failed compile")
	}
}

func TestSetSearchEmptyClears(t *testing.T) {
	s := NewStore()
	if err := s.SetSearch("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSearch(""); err != nil {
		t.Fatal(err)
	}
	if re, _ := s.Search(); re != nil {
		t.Error("expected empty pattern to clear the search term")
	}
}

func TestRangeContains(t *testing.T) {
	upper := 8
	r := &Range{Lower: 0, Upper: &upper}

	if !r.Contains(0) || !r.Contains(8) {
		t.Error("expected inclusive bounds")
	}
	if r.Contains(9) {
		t.Error("expected index one past upper bound to be excluded")
	}

	unbounded := &Range{Lower: 5}
	if unbounded.Contains(4) {
		t.Error("expected index below lower bound to be excluded")
	}
	if !unbounded.Contains(1000000) {
		t.Error("expected nil upper bound to be unbounded above")
	}

	var nilRange *Range
	if !nilRange.Contains(42) {
		t.Error("expected nil range to contain every index")
	}
}

func TestAddHighlightDeduplicates(t *testing.T) {
	s := NewStore()
	s.AddHighlight("foo")
	s.AddHighlight("foo")
	s.AddHighlight("")

	if got := s.Highlights(); len(got) != 1 {
		t.Errorf("expected 1 highlight, got %v", got)
	}
}

func TestChangesCoalesce(t *testing.T) {
	s := NewStore()
	s.ToggleBookmark(1)
	s.ToggleBookmark(2)
	s.ToggleBookmark(3)

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a pending change notification")
	}
	select {
	case <-s.Changes():
		t.Error("expected rapid changes to coalesce into one notification")
	default:
	}
}

func TestSubscribeFiresOnMutation(t *testing.T) {
	s := NewStore()
	count := 0
	s.Subscribe(func() { count++ })

	s.ToggleBookmark(1)
	s.AddFilter(filter.Filter{Pattern: "x"})

	if count != 2 {
		t.Errorf("expected 2 subscriber calls, got %d", count)
	}
}
