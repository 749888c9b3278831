package session

import "strings"

// KeyEvent is a normalized keyboard event from the host surface.
type KeyEvent struct {
	Key      string
	Ctrl     bool
	Meta     bool
	Shift    bool
	Editable bool // focus is inside an input, textarea, or editable region
}

// MatchesShortcut reports whether the event is the explain shortcut:
// Cmd+Shift+E on darwin, Ctrl+Shift+E elsewhere. Events originating in
// an editable field never match.
func MatchesShortcut(ev KeyEvent, platform string) bool {
	if ev.Editable {
		return false
	}
	modifier := ev.Ctrl
	if platform == "darwin" {
		modifier = ev.Meta
	}
	return modifier && ev.Shift && strings.EqualFold(ev.Key, "e")
}
