package log

import "testing"

func TestGetLineOutOfRange(t *testing.T) {
	s := NewStore("test.log")
	s.Append("first")

	if _, ok := s.GetLine(1); ok {
		t.Error("expected ok=false for index past the end")
	}
	if _, ok := s.GetLine(-1); ok {
		t.Error("expected ok=false for negative index")
	}
}

func TestGetLineEmptyStringIsPresent(t *testing.T) {
	s := NewStore("test.log")
	s.Append("")

	line, ok := s.GetLine(0)
	if !ok {
		t.Fatal("expected ok=true for an appended empty line")
	}
	if line != "" {
		t.Errorf("expected empty line, got %q", line)
	}
}

func TestAppendBatch(t *testing.T) {
	s := NewStore("")
	s.AppendBatch([]string{"a", "b", "c"})
	s.AppendBatch(nil)

	if s.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", s.Len())
	}
	if line, _ := s.GetLine(2); line != "c" {
		t.Errorf("expected line 2 to be %q, got %q", "c", line)
	}
}

func TestLinesSnapshotIsCopy(t *testing.T) {
	s := NewStore("")
	s.Append("original")

	snap := s.Lines()
	snap[0] = "mutated"

	if line, _ := s.GetLine(0); line != "original" {
		t.Error("expected store contents to be unaffected by snapshot mutation")
	}
}

func TestLineSeverity(t *testing.T) {
	s := NewStore("")
	s.Append("2024-01-01 ERROR something broke")
	s.Append("2024-01-01 WARN heads up")
	s.Append("2024-01-01 DEBUG noisy detail")
	s.Append("2024-01-01 INFO all good")

	cases := []struct {
		idx  int
		want Severity
	}{
		{0, SeverityError},
		{1, SeverityWarn},
		{2, SeverityDebug},
		{3, SeverityNone},
		{99, SeverityNone},
	}
	for _, tc := range cases {
		if got := s.LineSeverity(tc.idx); got != tc.want {
			t.Errorf("line %d: expected severity %v, got %v", tc.idx, tc.want, got)
		}
	}
}
