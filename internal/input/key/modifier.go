package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key. Shifted characters carry the
	// modifier only on special keys; "A" is just the rune 'A'.
	ModShift Modifier = 1 << (iota - 1)

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String returns the Vim prefix form, such as "C-" or "C-S-".
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if m.Has(ModAlt) {
		b.WriteString("A-")
	}
	if m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}

// modifierFromName parses a single Vim modifier letter.
func modifierFromName(name string) Modifier {
	switch strings.ToLower(name) {
	case "c", "ctrl":
		return ModCtrl
	case "a", "m", "alt":
		return ModAlt
	case "s", "shift":
		return ModShift
	}
	return ModNone
}
