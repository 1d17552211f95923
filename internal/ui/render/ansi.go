package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// attrs is the SGR state accumulated while scanning a line.
type attrs struct {
	fg        string
	bg        string
	bold      bool
	faint     bool
	italic    bool
	underline bool
}

func (a attrs) zero() bool {
	return a == attrs{}
}

// Style converts the accumulated SGR state to a lipgloss style.
func (a attrs) Style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if a.fg != "" {
		st = st.Foreground(lipgloss.Color(a.fg))
	}
	if a.bg != "" {
		st = st.Background(lipgloss.Color(a.bg))
	}
	if a.bold {
		st = st.Bold(true)
	}
	if a.faint {
		st = st.Faint(true)
	}
	if a.italic {
		st = st.Italic(true)
	}
	if a.underline {
		st = st.Underline(true)
	}
	return st
}

// Span is a run of text with uniform styling.
type Span struct {
	Text  string
	Attrs attrs
}

// escMark stands in for an ESC byte that could not be interpreted. The
// raw byte must never reach the terminal: a leaked OSC can retitle the
// window and a leaked CSI can hide the cursor mid-viewport.
const escMark = "^["

// Parse splits a raw log line into styled spans by interpreting SGR escape
// sequences. Well-formed non-SGR control sequences (cursor movement, OSC)
// are dropped — they move cursors, not text. Malformed sequences degrade
// to visibly escaped text so a corrupt line still renders inert.
func Parse(line string) []Span {
	var spans []Span
	var cur strings.Builder
	var st attrs

	flush := func() {
		if cur.Len() > 0 {
			spans = append(spans, Span{Text: cur.String(), Attrs: st})
			cur.Reset()
		}
	}

	for i := 0; i < len(line); {
		if line[i] != 0x1b {
			cur.WriteByte(line[i])
			i++
			continue
		}
		if i+1 < len(line) && line[i+1] == ']' {
			// OSC: runs to BEL or ST. Drop it whole.
			end, ok := oscEnd(line, i+2)
			if !ok {
				cur.WriteString(escMark)
				cur.WriteString(line[i+1:])
				break
			}
			i = end
			continue
		}
		if i+1 >= len(line) || line[i+1] != '[' {
			// Bare or two-byte escape: neuter the ESC, keep the rest.
			cur.WriteString(escMark)
			i++
			continue
		}
		// Scan CSI parameter bytes (0x30-0x3f: digits ; : ? < = >) up to
		// the final byte.
		j := i + 2
		for j < len(line) && line[j] >= 0x30 && line[j] <= 0x3f {
			j++
		}
		if j >= len(line) {
			// Unterminated sequence: visibly escaped tail.
			cur.WriteString(escMark)
			cur.WriteString(line[i+1:])
			break
		}
		final := line[j]
		params := line[i+2 : j]
		if final == 'm' {
			flush()
			st = applySGR(st, params)
		} else if final >= 0x40 && final <= 0x7e {
			// Valid CSI with a non-SGR final byte: drop it.
		} else {
			// Garbage final byte: keep the run, minus the live ESC.
			cur.WriteString(escMark)
			cur.WriteString(line[i+1 : j+1])
		}
		i = j + 1
	}
	flush()
	return spans
}

// oscEnd returns the index just past the OSC terminator (BEL or ESC-\),
// scanning from start.
func oscEnd(line string, start int) (int, bool) {
	for j := start; j < len(line); j++ {
		if line[j] == 0x07 {
			return j + 1, true
		}
		if line[j] == 0x1b && j+1 < len(line) && line[j+1] == '\\' {
			return j + 2, true
		}
	}
	return 0, false
}

// PlainText returns the visible text of a parsed line.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// applySGR folds one SGR parameter list into the current state.
func applySGR(st attrs, params string) attrs {
	if params == "" {
		return attrs{}
	}
	codes := strings.Split(params, ";")
	for i := 0; i < len(codes); i++ {
		n, err := strconv.Atoi(codes[i])
		if err != nil {
			continue
		}
		switch {
		case n == 0:
			st = attrs{}
		case n == 1:
			st.bold = true
		case n == 2:
			st.faint = true
		case n == 3:
			st.italic = true
		case n == 4:
			st.underline = true
		case n == 22:
			st.bold, st.faint = false, false
		case n == 23:
			st.italic = false
		case n == 24:
			st.underline = false
		case n >= 30 && n <= 37:
			st.fg = strconv.Itoa(n - 30)
		case n == 38:
			if c, skip, ok := extendedColor(codes[i+1:]); ok {
				st.fg = c
				i += skip
			}
		case n == 39:
			st.fg = ""
		case n >= 40 && n <= 47:
			st.bg = strconv.Itoa(n - 40)
		case n == 48:
			if c, skip, ok := extendedColor(codes[i+1:]); ok {
				st.bg = c
				i += skip
			}
		case n == 49:
			st.bg = ""
		case n >= 90 && n <= 97:
			st.fg = strconv.Itoa(n - 90 + 8)
		case n >= 100 && n <= 107:
			st.bg = strconv.Itoa(n - 100 + 8)
		}
	}
	return st
}

// extendedColor parses the tail of a 38/48 sequence: "5;n" (256-color) or
// "2;r;g;b" (truecolor). Returns the color, how many codes were consumed,
// and whether the tail was well-formed.
func extendedColor(rest []string) (string, int, bool) {
	if len(rest) >= 2 && rest[0] == "5" {
		if n, err := strconv.Atoi(rest[1]); err == nil && n >= 0 && n <= 255 {
			return strconv.Itoa(n), 2, true
		}
		return "", 0, false
	}
	if len(rest) >= 4 && rest[0] == "2" {
		var rgb [3]int
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(rest[1+i])
			if err != nil || n < 0 || n > 255 {
				return "", 0, false
			}
			rgb[i] = n
		}
		return "#" + hex2(rgb[0]) + hex2(rgb[1]) + hex2(rgb[2]), 4, true
	}
	return "", 0, false
}

func hex2(n int) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[n>>4], digits[n&0xf]})
}
