// Package backend puts cells on a display and reads key events from it.
//
// Terminal drives a real terminal through tcell. Memory keeps the cells in
// a grid for tests.
package backend

import "github.com/dshills/kestrel/internal/input/key"

// CursorStyle is the shape of the terminal cursor.
type CursorStyle uint8

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
)

// EventType identifies what an Event carries.
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is input from the display.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend is a cell display.
type Backend interface {
	// Init prepares the display. It must be called before anything else.
	Init() error

	// Fini restores the display. PollEvent returns false afterwards.
	Fini()

	Size() (width, height int)

	// SetCell draws c at x, y. Positions outside the display are ignored.
	SetCell(x, y int, c Cell)

	Clear()

	// Show flushes drawn cells to the display.
	Show()

	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(style CursorStyle)

	// PollEvent blocks for the next event. It returns false once the
	// display has been finalized.
	PollEvent() (Event, bool)

	// Interrupt wakes PollEvent with an EventInterrupt.
	Interrupt()

	Beep()
}
