package render

import (
	"fmt"
	"regexp"
)

// urlRe matches http/https URLs: scheme followed by non-whitespace.
var urlRe = regexp.MustCompile(`https?://\S+`)

// LinkRanges returns the byte ranges of URL substrings in plain text.
func LinkRanges(text string) [][2]int {
	idx := urlRe.FindAllStringIndex(text, -1)
	out := make([][2]int, 0, len(idx))
	for _, m := range idx {
		out = append(out, [2]int{m[0], m[1]})
	}
	return out
}

// Hyperlink wraps already-styled text in an OSC 8 terminal hyperlink whose
// target is url. Terminals without OSC 8 support ignore the wrapping and
// show the styled text unchanged.
func Hyperlink(url, styled string) string {
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, styled)
}
