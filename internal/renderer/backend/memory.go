package backend

import (
	"strings"
	"sync"

	"github.com/dshills/kestrel/internal/input/key"
)

// Memory is an in-memory Backend for tests. Events are queued with Inject
// and Resize.
type Memory struct {
	mu            sync.Mutex
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	shows         int

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewMemory creates a backend of width by height cells.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		events: make(chan Event, 256),
		done:   make(chan struct{}),
	}
	m.allocate(width, height)
	return m
}

func (m *Memory) allocate(width, height int) {
	m.width, m.height = width, height
	m.cells = make([][]Cell, height)
	for y := range m.cells {
		m.cells[y] = make([]Cell, width)
		for x := range m.cells[y] {
			m.cells[y][x] = EmptyCell
		}
	}
}

func (m *Memory) Init() error { return nil }

func (m *Memory) Fini() {
	m.once.Do(func() { close(m.done) })
}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Memory) SetCell(x, y int, c Cell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = c
	}
}

// Cell returns the cell at x, y, or EmptyCell outside the display.
func (m *Memory) Cell(x, y int) Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		return m.cells[y][x]
	}
	return EmptyCell
}

// Row returns the text of row y with trailing blanks removed.
func (m *Memory) Row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	var b strings.Builder
	for _, c := range m.cells[y] {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for y := range m.cells {
		for x := range m.cells[y] {
			m.cells[y][x] = EmptyCell
		}
	}
}

func (m *Memory) Show() {
	m.mu.Lock()
	m.shows++
	m.mu.Unlock()
}

// Shows returns how many times Show was called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}

func (m *Memory) ShowCursor(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorX, m.cursorY, m.cursorVisible = x, y, true
}

func (m *Memory) HideCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorVisible = false
}

func (m *Memory) SetCursorStyle(style CursorStyle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorStyle = style
}

// Cursor returns the cursor position, whether it is shown, and its style.
func (m *Memory) Cursor() (x, y int, visible bool, style CursorStyle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursorX, m.cursorY, m.cursorVisible, m.cursorStyle
}

func (m *Memory) PollEvent() (Event, bool) {
	select {
	case ev := <-m.events:
		return ev, true
	case <-m.done:
		return Event{}, false
	}
}

func (m *Memory) Interrupt() {
	m.post(Event{Type: EventInterrupt})
}

func (m *Memory) Beep() {}

// Inject queues key events.
func (m *Memory) Inject(events ...key.Event) {
	for _, ev := range events {
		m.post(Event{Type: EventKey, Key: ev})
	}
}

// Resize changes the display size, clearing it, and queues an
// EventResize.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	m.allocate(width, height)
	m.mu.Unlock()
	m.post(Event{Type: EventResize, Width: width, Height: height})
}

func (m *Memory) post(ev Event) {
	select {
	case m.events <- ev:
	case <-m.done:
	}
}
