package ui

import "github.com/justinpbarnett/loupe/internal/ui/panels"

// Type aliases to panels message types — single source of truth.

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg
