package key

import (
	"fmt"
	"unicode"
)

// Event is a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Ctrl returns the event for Control plus r.
func Ctrl(r rune) Event {
	return NewRuneEvent(unicode.ToLower(r), ModCtrl)
}

// IsRune reports whether e is a character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether e types a printable character: a rune with no
// Control or Alt.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.Has(ModCtrl|ModAlt) && unicode.IsPrint(e.Rune)
}

// Char returns the typed character and whether e is one.
func (e Event) Char() (rune, bool) {
	if !e.IsChar() {
		return 0, false
	}
	return e.Rune, true
}

// Is reports whether e is the plain character r.
func (e Event) Is(r rune) bool {
	return e.IsChar() && e.Rune == r
}

// IsCtrl reports whether e is Control plus r.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Modifiers == ModCtrl && e.Rune == unicode.ToLower(r)
}

// IsEscape reports whether e is the Escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// IsEnter reports whether e is the Enter key.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter
}

// IsBackspace reports whether e is Backspace.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace
}

// String returns e in Vim notation: "a", "<Esc>", "<C-p>".
func (e Event) String() string {
	if e.Key == KeyRune {
		switch {
		case e.Modifiers == ModNone && e.Rune == ' ':
			return "<Space>"
		case e.Modifiers == ModNone && e.Rune == '<':
			return "<lt>"
		case e.Modifiers == ModNone:
			return string(e.Rune)
		}
		return "<" + e.Modifiers.String() + string(e.Rune) + ">"
	}
	return "<" + e.Modifiers.String() + e.Key.String() + ">"
}

// GoString implements fmt.GoStringer for test output.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{%s}", e.String())
}
