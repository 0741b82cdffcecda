// Package register stores yanked and deleted text.
//
// Registers follow Vim: the unnamed register '"' receives every yank and
// delete, 'a'-'z' are named registers (uppercase appends), '0' holds the
// last yank, '1'-'9' rotate through line-wise deletes, '-' holds small
// deletes, '_' discards, '+' and '*' are the system clipboard and ':' is the
// last command line (read only).
package register

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Errors returned by the manager.
var (
	ErrInvalidRegister = errors.New("invalid register")
	ErrReadOnly        = errors.New("register is read-only")
	ErrEmpty           = errors.New("register is empty")
)

// Kind says how register content is pasted.
type Kind uint8

const (
	// CharacterWise content is pasted inside a line.
	CharacterWise Kind = iota

	// LineWise content is pasted as whole lines.
	LineWise
)

// String returns the kind name.
func (k Kind) String() string {
	if k == LineWise {
		return "linewise"
	}
	return "charwise"
}

// Unnamed is the default register.
const Unnamed = '"'

// Content is what a register holds. Line-wise text always ends in a newline.
type Content struct {
	Text string
	Kind Kind
}

// IsEmpty reports whether the content holds no text.
func (c Content) IsEmpty() bool {
	return c.Text == ""
}

// Clipboard abstracts the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Manager holds the registers. It is only used from the editor loop and is
// not safe for concurrent use.
type Manager struct {
	registers map[rune]Content

	// numbered holds registers 1-9, index 0 being register 1.
	numbered [9]Content

	clipboard Clipboard

	// clipboardDefault sends unnamed yanks to the clipboard too
	// ("clipboard=unnamedplus").
	clipboardDefault bool
}

// New creates an empty register manager.
func New() *Manager {
	return &Manager{registers: make(map[rune]Content)}
}

// SetClipboard connects the '+' and '*' registers to c.
func (m *Manager) SetClipboard(c Clipboard) {
	m.clipboard = c
}

// SetClipboardDefault makes the clipboard the default register.
func (m *Manager) SetClipboardDefault(on bool) {
	m.clipboardDefault = on
}

// IsValid reports whether name is a register.
func IsValid(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z', name >= '0' && name <= '9':
		return true
	case name == Unnamed, name == '-', name == '_', name == '+', name == '*', name == ':':
		return true
	}
	return false
}

// Get returns the content of a register. Name 0 means the unnamed register.
func (m *Manager) Get(name rune) (Content, error) {
	if name == 0 {
		name = Unnamed
		if m.clipboardDefault && m.clipboard != nil {
			name = '+'
		}
	}
	if !IsValid(name) {
		return Content{}, fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	}

	switch {
	case name == '+' || name == '*':
		return m.readClipboard()
	case name == '_':
		return Content{}, nil
	case name >= '1' && name <= '9':
		return m.numbered[name-'1'], nil
	}
	return m.registers[unicode.ToLower(name)], nil
}

func (m *Manager) readClipboard() (Content, error) {
	if m.clipboard == nil {
		return m.registers['+'], nil
	}
	text, err := m.clipboard.ReadAll()
	if err != nil {
		return Content{}, fmt.Errorf("read clipboard: %w", err)
	}
	kind := CharacterWise
	if strings.HasSuffix(text, "\n") {
		kind = LineWise
	}
	return Content{Text: text, Kind: kind}, nil
}

// Set writes a register directly. Uppercase names append to the lowercase
// register. It does not touch the unnamed register.
func (m *Manager) Set(name rune, c Content) error {
	if !IsValid(name) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	}
	switch {
	case name == '_':
		return nil
	case name == ':':
		return fmt.Errorf("%w: %q", ErrReadOnly, name)
	case name == '+' || name == '*':
		return m.writeClipboard(c)
	case name >= '1' && name <= '9':
		m.numbered[name-'1'] = c
		return nil
	case name >= 'A' && name <= 'Z':
		lower := unicode.ToLower(name)
		m.registers[lower] = appendContent(m.registers[lower], c)
		return nil
	}
	m.registers[name] = c
	return nil
}

func (m *Manager) writeClipboard(c Content) error {
	if m.clipboard == nil {
		m.registers['+'] = c
		return nil
	}
	if err := m.clipboard.WriteAll(c.Text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// appendContent joins b onto a. Appending line-wise text to character-wise
// text makes the result line-wise.
func appendContent(a, b Content) Content {
	if a.IsEmpty() {
		return b
	}
	if a.Kind == LineWise || b.Kind == LineWise {
		text := a.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return Content{Text: text + b.Text, Kind: LineWise}
	}
	return Content{Text: a.Text + b.Text, Kind: CharacterWise}
}

// Yank records yanked text: into name if given, and always into the
// unnamed register and register 0. The black hole register swallows it.
func (m *Manager) Yank(name rune, text string, kind Kind) error {
	c := Content{Text: text, Kind: kind}
	if name == '_' {
		return nil
	}
	if name != 0 && name != Unnamed {
		if err := m.Set(name, c); err != nil {
			return err
		}
		if name >= 'A' && name <= 'Z' {
			c = m.registers[unicode.ToLower(name)]
		}
	} else {
		m.registers['0'] = c
		if m.clipboardDefault && m.clipboard != nil {
			if err := m.writeClipboard(c); err != nil {
				return err
			}
		}
	}
	m.registers[Unnamed] = c
	return nil
}

// Delete records deleted text. Line-wise or multi-line deletes shift
// registers 1-9; smaller ones go to '-'. The unnamed register is always
// written unless name is the black hole.
func (m *Manager) Delete(name rune, text string, kind Kind) error {
	c := Content{Text: text, Kind: kind}
	if name == '_' {
		return nil
	}
	if name != 0 && name != Unnamed {
		if err := m.Set(name, c); err != nil {
			return err
		}
		if name >= 'A' && name <= 'Z' {
			c = m.registers[unicode.ToLower(name)]
		}
	}

	if kind == LineWise || strings.Contains(text, "\n") {
		copy(m.numbered[1:], m.numbered[:8])
		m.numbered[0] = c
	} else if name == 0 || name == Unnamed {
		m.registers['-'] = c
	}
	if (name == 0 || name == Unnamed) && m.clipboardDefault && m.clipboard != nil {
		if err := m.writeClipboard(c); err != nil {
			return err
		}
	}
	m.registers[Unnamed] = c
	return nil
}

// SetLastCommand records the last executed command line in ':'.
func (m *Manager) SetLastCommand(cmd string) {
	m.registers[':'] = Content{Text: cmd}
}

// Entry is a non-empty register for display.
type Entry struct {
	Name    rune
	Content Content
}

// List returns the non-empty registers in display order.
func (m *Manager) List() []Entry {
	var out []Entry
	add := func(name rune, c Content) {
		if !c.IsEmpty() {
			out = append(out, Entry{Name: name, Content: c})
		}
	}
	add(Unnamed, m.registers[Unnamed])
	add('0', m.registers['0'])
	for i, c := range m.numbered {
		add(rune('1'+i), c)
	}
	for r := 'a'; r <= 'z'; r++ {
		add(r, m.registers[r])
	}
	add('-', m.registers['-'])
	add(':', m.registers[':'])
	return out
}
