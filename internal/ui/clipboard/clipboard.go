package clipboard

import (
	"encoding/base64"
	"os"

	"github.com/atotto/clipboard"
)

// Write copies yanked text to the system clipboard. The native clipboard
// (wl-copy, xclip, pbcopy, etc.) is tried first; when none is available,
// as over SSH or inside tmux, it falls back to emitting OSC 52.
func Write(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	return writeOSC52(text)
}

// writeOSC52 asks the terminal itself to set the clipboard. The sequence
// goes to stderr so it bypasses the renderer's stdout buffering.
func writeOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := os.Stderr.WriteString("\x1b]52;c;" + encoded + "\x07")
	return err
}
