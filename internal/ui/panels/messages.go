package panels

// LinesAppendedMsg is sent when new log lines have been ingested.
type LinesAppendedMsg struct {
	Count int
}

// SearchChangedMsg is emitted by the search bar when the debounce window
// fires with a changed, valid pattern. Mode is the mode at fire time.
type SearchChangedMsg struct {
	Mode  SearchMode
	Value string
}

// SearchSubmittedMsg is emitted by the search bar on an explicit (or
// auto) submit of a valid pattern.
type SearchSubmittedMsg struct {
	Mode  SearchMode
	Value string
}

// ViewStateChangedMsg is sent when the shared view state store notified a
// change that requires a re-render.
type ViewStateChangedMsg struct{}

// YankMsg carries text the log view wants copied to the clipboard.
type YankMsg struct {
	Text string
}

// ShareLineMsg is sent when the share line was toggled by a gutter click.
type ShareLineMsg struct {
	Line    int
	Cleared bool
}

// BookmarkMsg is sent when a bookmark was toggled by a double click.
type BookmarkMsg struct {
	Line  int
	Added bool
}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}
