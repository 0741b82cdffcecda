package mode

import "fmt"

// Mode is the editor's modal state tag.
type Mode uint8

const (
	Normal Mode = iota
	Insert
	Visual
	VisualLine
	Command

	// Finder is the fuzzy file finder overlay.
	Finder
)

var modeNames = [...]string{
	Normal:     "normal",
	Insert:     "insert",
	Visual:     "visual",
	VisualLine: "visual-line",
	Command:    "command",
	Finder:     "finder",
}

var displayNames = [...]string{
	Normal:     "NORMAL",
	Insert:     "INSERT",
	Visual:     "VISUAL",
	VisualLine: "V-LINE",
	Command:    "COMMAND",
	Finder:     "FINDER",
}

// String returns the mode identifier, such as "normal".
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// DisplayName returns the status line label, such as "NORMAL".
func (m Mode) DisplayName() string {
	if int(m) < len(displayNames) {
		return displayNames[m]
	}
	return m.String()
}

// IsVisual reports whether m is a selection mode.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine
}

// CursorStyle returns the cursor shape used in m.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert, Command, Finder:
		return CursorBar
	default:
		return CursorBlock
	}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "block"
	}
}
