package filter

// Row is one display row of a filtered view: either a real line or a
// collapsed run of hidden lines.
type Row struct {
	Line    int // line index, valid when Skipped == 0
	Start   int // first hidden line index of a collapsed run
	Skipped int // hidden line count; 0 means Row is a real line
}

// Collapsed reports whether this row stands in for hidden lines.
func (r Row) Collapsed() bool { return r.Skipped > 0 }

// Rows computes the display rows for n lines under the set. Runs of
// non-matching lines collapse into a single Row carrying the skipped count.
// keep forces a line visible regardless of the filters (bookmarked lines and
// the share line never disappear). expanded reports whether the collapsed run
// starting at a given index has been expanded back open; both funcs may be
// nil. An empty set yields one Row per line.
func (s *Set) Rows(n int, line func(int) string, keep func(int) bool, expanded func(int) bool) []Row {
	if s.Empty() {
		rows := make([]Row, n)
		for i := range rows {
			rows[i] = Row{Line: i}
		}
		return rows
	}

	var rows []Row
	hiddenStart := -1
	flush := func(end int) {
		if hiddenStart < 0 {
			return
		}
		if expanded != nil && expanded(hiddenStart) {
			for i := hiddenStart; i < end; i++ {
				rows = append(rows, Row{Line: i})
			}
		} else {
			rows = append(rows, Row{Start: hiddenStart, Skipped: end - hiddenStart})
		}
		hiddenStart = -1
	}

	for i := 0; i < n; i++ {
		visible := s.Match(i, line(i)) || (keep != nil && keep(i))
		if visible {
			flush(i)
			rows = append(rows, Row{Line: i})
		} else if hiddenStart < 0 {
			hiddenStart = i
		}
	}
	flush(n)
	return rows
}
