package mode

import (
	"errors"
	"fmt"

	"github.com/dshills/kestrel/internal/engine/cursor"
)

// ErrInvalidTransition is returned for a mode change the editor does not
// allow, such as Insert to Visual.
var ErrInvalidTransition = errors.New("invalid mode transition")

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Machine is the modal state: the mode tag, the pending command record, the
// visual anchor and the command line being typed.
type Machine struct {
	mode    Mode
	pending Pending

	// anchor is the fixed end of the visual selection.
	anchor cursor.Pos

	// cmdline is the text typed in Command mode after prompt.
	cmdline []rune
	prompt  rune

	// recording is the register a macro is being recorded into, 0 if none.
	recording rune

	callbacks []ChangeCallback
}

// New creates a machine in Normal mode.
func New() *Machine {
	return &Machine{}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Pending returns the pending record for the key interpreter to update.
func (m *Machine) Pending() *Pending {
	return &m.pending
}

// ClearPending discards any partially typed command.
func (m *Machine) ClearPending() {
	m.pending.Reset()
}

// OnChange registers a callback for mode changes.
func (m *Machine) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// allowed lists the targets reachable from each mode. Every mode can return
// to Normal.
var allowed = map[Mode][]Mode{
	Normal:     {Insert, Visual, VisualLine, Command, Finder},
	Visual:     {VisualLine, Insert},
	VisualLine: {Visual, Insert},
}

// CanSwitch reports whether the machine may move from the current mode to to.
func (m *Machine) CanSwitch(to Mode) bool {
	if to == Normal || to == m.mode {
		return true
	}
	for _, t := range allowed[m.mode] {
		if t == to {
			return true
		}
	}
	return false
}

// Switch changes the mode and clears the pending record. Leaving Command
// mode discards the command line.
func (m *Machine) Switch(to Mode) error {
	if !m.CanSwitch(to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, m.mode, to)
	}
	from := m.mode
	m.mode = to
	m.pending.Reset()
	if from == Command && to != Command {
		m.cmdline = m.cmdline[:0]
	}
	if from != to {
		for _, cb := range m.callbacks {
			cb(from, to)
		}
	}
	return nil
}

// Reset returns to Normal with nothing pending.
func (m *Machine) Reset() {
	_ = m.Switch(Normal)
}

// EnterVisual switches to Visual or VisualLine with the selection anchored
// at p. Switching between the two visual modes keeps the existing anchor.
func (m *Machine) EnterVisual(to Mode, p cursor.Pos) error {
	if !to.IsVisual() {
		return fmt.Errorf("%w: %s is not a visual mode", ErrInvalidTransition, to)
	}
	keep := m.mode.IsVisual()
	if err := m.Switch(to); err != nil {
		return err
	}
	if !keep {
		m.anchor = p
	}
	return nil
}

// Anchor returns the visual selection anchor.
func (m *Machine) Anchor() cursor.Pos {
	return m.anchor
}

// SetAnchor moves the visual selection anchor.
func (m *Machine) SetAnchor(p cursor.Pos) {
	m.anchor = p
}

// EnterCommand switches to Command mode with an empty ":" command line.
func (m *Machine) EnterCommand() error {
	return m.EnterPrompt(':')
}

// EnterPrompt switches to Command mode with an empty line after prompt:
// ':' for ex commands, '/' or '?' for searches.
func (m *Machine) EnterPrompt(prompt rune) error {
	if err := m.Switch(Command); err != nil {
		return err
	}
	m.cmdline = m.cmdline[:0]
	m.prompt = prompt
	return nil
}

// Prompt returns the prompt of the command line.
func (m *Machine) Prompt() rune {
	if m.prompt == 0 {
		return ':'
	}
	return m.prompt
}

// SetRecording marks a macro recording into register r; 0 stops it.
func (m *Machine) SetRecording(r rune) {
	m.recording = r
}

// Recording returns the register being recorded into, 0 if none.
func (m *Machine) Recording() rune {
	return m.recording
}

// CommandText returns the command line typed so far.
func (m *Machine) CommandText() string {
	return string(m.cmdline)
}

// AppendCommand adds r to the command line.
func (m *Machine) AppendCommand(r rune) {
	m.cmdline = append(m.cmdline, r)
}

// BackspaceCommand removes the last command line character. It reports
// false when the line was already empty.
func (m *Machine) BackspaceCommand() bool {
	if len(m.cmdline) == 0 {
		return false
	}
	m.cmdline = m.cmdline[:len(m.cmdline)-1]
	return true
}
