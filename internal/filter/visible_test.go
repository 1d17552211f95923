package filter

import "testing"

func linesFunc(lines []string) func(int) string {
	return func(i int) string { return lines[i] }
}

func TestRowsEmptySetShowsEverything(t *testing.T) {
	s := NewSet(nil)
	rows := s.Rows(3, linesFunc([]string{"a", "b", "c"}), nil, nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Collapsed() || r.Line != i {
			t.Errorf("row %d: expected plain line %d, got %+v", i, i, r)
		}
	}
}

func TestRowsCollapsesHiddenRuns(t *testing.T) {
	lines := []string{"error one", "noise", "noise", "noise", "error two"}
	s := NewSet([]Filter{{Pattern: "error"}})
	rows := s.Rows(len(lines), linesFunc(lines), nil, nil)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Line != 0 || rows[0].Collapsed() {
		t.Errorf("expected first row to be line 0, got %+v", rows[0])
	}
	if !rows[1].Collapsed() || rows[1].Start != 1 || rows[1].Skipped != 3 {
		t.Errorf("expected collapsed run of 3 starting at 1, got %+v", rows[1])
	}
	if rows[2].Line != 4 {
		t.Errorf("expected last row to be line 4, got %+v", rows[2])
	}
}

func TestRowsTrailingRunCollapses(t *testing.T) {
	lines := []string{"keep", "drop", "drop"}
	s := NewSet([]Filter{{Pattern: "keep"}})
	rows := s.Rows(len(lines), linesFunc(lines), nil, nil)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[1].Collapsed() || rows[1].Start != 1 || rows[1].Skipped != 2 {
		t.Errorf("expected trailing collapsed run, got %+v", rows[1])
	}
}

func TestRowsKeepForcesVisibility(t *testing.T) {
	lines := []string{"drop", "drop", "drop"}
	s := NewSet([]Filter{{Pattern: "nomatch"}})
	keep := func(i int) bool { return i == 1 }
	rows := s.Rows(len(lines), linesFunc(lines), keep, nil)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	if rows[1].Line != 1 || rows[1].Collapsed() {
		t.Errorf("expected kept line 1 visible between collapsed runs, got %+v", rows[1])
	}
	if !rows[0].Collapsed() || !rows[2].Collapsed() {
		t.Error("expected collapsed runs on both sides of the kept line")
	}
}

func TestRowsExpandedRunReopens(t *testing.T) {
	lines := []string{"keep", "drop", "drop", "keep"}
	s := NewSet([]Filter{{Pattern: "keep"}})
	expanded := func(start int) bool { return start == 1 }
	rows := s.Rows(len(lines), linesFunc(lines), nil, expanded)

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows after expansion, got %d: %+v", len(rows), rows)
	}
	for i, r := range rows {
		if r.Collapsed() || r.Line != i {
			t.Errorf("row %d: expected plain line, got %+v", i, r)
		}
	}
}

func TestRowsInvertedFilter(t *testing.T) {
	lines := []string{"noise", "signal", "noise"}
	s := NewSet([]Filter{{Pattern: "noise", Inverted: true}})
	rows := s.Rows(len(lines), linesFunc(lines), nil, nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1].Line != 1 || rows[1].Collapsed() {
		t.Errorf("expected only the signal line visible, got %+v", rows)
	}
}
