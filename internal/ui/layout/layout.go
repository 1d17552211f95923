package layout

// Layout holds the computed dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	SearchBarWidth  int
	SearchBarHeight int

	LogViewWidth  int
	LogViewHeight int

	StatusBarWidth int
}

const (
	MinWidth  = 40
	MinHeight = 10

	SearchBarRows = 3
	StatusBarRows = 1
)

// Calculate computes panel dimensions from terminal size: search bar on
// top, log view filling the middle, status bar at the bottom. Returns
// Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	l.SearchBarWidth = termWidth
	l.SearchBarHeight = SearchBarRows

	l.LogViewWidth = termWidth
	l.LogViewHeight = termHeight - SearchBarRows - StatusBarRows

	l.StatusBarWidth = termWidth

	return l
}
