package render

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/loupe/internal/log"
	"github.com/justinpbarnett/loupe/internal/state"
	"github.com/justinpbarnett/loupe/internal/ui/styles"
)

// LineSource resolves a line index to its text. The second return is false
// when the line is absent (out of range or not yet loaded), which is a
// distinct state from a present-but-empty line.
type LineSource interface {
	GetLine(i int) (string, bool)
	LineSeverity(i int) log.Severity
}

// Context carries the shared state a row is projected from. Rows hold no
// state of their own: every render recomputes bookmark, share, and
// highlight decoration from here, so a stale row cannot exist.
type Context struct {
	Source LineSource

	// Search is the active case-insensitive search term, nil when unset.
	Search *regexp.Regexp
	// CurrentMatchLine is the line index of the focused match, -1 when none.
	CurrentMatchLine int
	// Highlights are the persistent user highlight terms.
	Highlights []*regexp.Regexp
	// Range gates search and highlight decoration by line index. Nil means
	// every line is eligible.
	Range *state.Range

	IsBookmarked func(int) bool
	// ShareLine is the shared line index, -1 when absent.
	ShareLine int

	GutterWidth int
}

// decoration priorities, lowest wins when ranges overlap.
const (
	prioSearch = iota
	prioHighlight
	prioLink
)

type decoration struct {
	start, end int
	prio       int
	style      lipgloss.Style
	url        string // set for links
}

// Row renders the line at idx. ok is false when the source has no line at
// idx — the caller renders nothing at all for that index. A present empty
// line still yields its gutter. If the source panics the row fails closed.
func (c Context) Row(idx int) (row string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			row, ok = "", false
		}
	}()

	text, ok := c.Source.GetLine(idx)
	if !ok {
		return "", false
	}

	spans := Parse(text)
	plain := PlainText(spans)
	decos := c.decorations(idx, plain)

	return c.gutter(idx) + renderDecorated(spans, plain, decos), true
}

// gutter renders the bookmark marker, share marker, and line number.
func (c Context) gutter(idx int) string {
	width := c.GutterWidth
	if width <= 0 {
		width = 6
	}

	mark := " "
	if c.IsBookmarked != nil && c.IsBookmarked(idx) {
		mark = styles.BookmarkStyle.Render("◆")
	}
	share := " "
	if idx == c.ShareLine {
		share = styles.ShareStyle.Render("▶")
	}

	num := fmt.Sprintf("%*d", width, idx)
	numStyle := styles.GutterStyle
	if c.Source != nil {
		switch c.Source.LineSeverity(idx) {
		case log.SeverityError:
			numStyle = lipgloss.NewStyle().Foreground(styles.SeverityError)
		case log.SeverityWarn:
			numStyle = lipgloss.NewStyle().Foreground(styles.SeverityWarn)
		case log.SeverityDebug:
			numStyle = lipgloss.NewStyle().Foreground(styles.SeverityDebug)
		}
	}

	return mark + share + numStyle.Render(num) + styles.TextDimStyle.Render(" │ ")
}

// decorations collects search, highlight, and link ranges over the plain
// text of line idx. Search and highlight decoration is gated by the active
// range; links always decorate.
func (c Context) decorations(idx int, plain string) []decoration {
	var decos []decoration

	if c.Range.Contains(idx) {
		if c.Search != nil {
			style := styles.SearchHighlightStyle
			if idx == c.CurrentMatchLine {
				style = styles.CurrentMatchStyle
			}
			for _, m := range c.Search.FindAllStringIndex(plain, -1) {
				decos = append(decos, decoration{start: m[0], end: m[1], prio: prioSearch, style: style})
			}
		}
		for _, re := range c.Highlights {
			if re == nil {
				continue
			}
			for _, m := range re.FindAllStringIndex(plain, -1) {
				decos = append(decos, decoration{start: m[0], end: m[1], prio: prioHighlight, style: styles.UserHighlightStyle})
			}
		}
	}

	for _, r := range LinkRanges(plain) {
		decos = append(decos, decoration{start: r[0], end: r[1], prio: prioLink, style: styles.LinkStyle, url: plain[r[0]:r[1]]})
	}

	return decos
}

// renderDecorated walks the spans and decorations together, cutting at every
// boundary and rendering each segment with the winning decoration or the
// span's own SGR-derived style. Decorated segments replace the underlying
// styling (a highlighted match reads the same regardless of source colors).
func renderDecorated(spans []Span, plain string, decos []decoration) string {
	if len(spans) == 0 {
		return ""
	}
	if len(decos) == 0 {
		var b strings.Builder
		for _, s := range spans {
			b.WriteString(renderSpan(s))
		}
		return b.String()
	}

	cuts := boundarySet(spans, plain, decos)
	var b strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		a, z := cuts[i], cuts[i+1]
		seg := plain[a:z]
		if d := winningDecoration(decos, a); d != nil {
			rendered := d.style.Render(seg)
			if d.url != "" {
				rendered = Hyperlink(d.url, rendered)
			}
			b.WriteString(rendered)
			continue
		}
		s := spanAt(spans, a)
		if s.Attrs.zero() {
			b.WriteString(seg)
		} else {
			b.WriteString(s.Attrs.Style().Render(seg))
		}
	}
	return b.String()
}

func renderSpan(s Span) string {
	if s.Attrs.zero() {
		return s.Text
	}
	return s.Attrs.Style().Render(s.Text)
}

// boundarySet returns the sorted unique cut points: 0, len(plain), every
// span boundary, and every decoration boundary.
func boundarySet(spans []Span, plain string, decos []decoration) []int {
	seen := map[int]struct{}{0: {}, len(plain): {}}
	off := 0
	for _, s := range spans {
		off += len(s.Text)
		seen[off] = struct{}{}
	}
	for _, d := range decos {
		seen[d.start] = struct{}{}
		seen[d.end] = struct{}{}
	}
	cuts := make([]int, 0, len(seen))
	for p := range seen {
		if p >= 0 && p <= len(plain) {
			cuts = append(cuts, p)
		}
	}
	slices.Sort(cuts)
	return cuts
}

// winningDecoration returns the covering decoration with the lowest
// priority value at position pos, or nil.
func winningDecoration(decos []decoration, pos int) *decoration {
	var best *decoration
	for i := range decos {
		d := &decos[i]
		if pos < d.start || pos >= d.end {
			continue
		}
		if best == nil || d.prio < best.prio {
			best = d
		}
	}
	return best
}

// spanAt returns the span covering byte position pos.
func spanAt(spans []Span, pos int) Span {
	off := 0
	for _, s := range spans {
		off += len(s.Text)
		if pos < off {
			return s
		}
	}
	if len(spans) > 0 {
		return spans[len(spans)-1]
	}
	return Span{}
}
