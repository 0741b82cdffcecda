package mode

import (
	"errors"
	"testing"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/key"
)

func TestNewMachineStartsNormal(t *testing.T) {
	m := New()
	if m.Mode() != Normal {
		t.Errorf("Mode() = %v, want normal", m.Mode())
	}
	if !m.Pending().IsEmpty() {
		t.Error("new machine should have nothing pending")
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to Mode
		ok       bool
	}{
		{Normal, Insert, true},
		{Normal, Visual, true},
		{Normal, Command, true},
		{Normal, Finder, true},
		{Insert, Normal, true},
		{Insert, Visual, false},
		{Command, Insert, false},
		{Visual, VisualLine, true},
		{VisualLine, Visual, true},
		{Visual, Insert, true},
		{Finder, Command, false},
		{Finder, Normal, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			m := New()
			if tt.from != Normal {
				if err := m.Switch(tt.from); err != nil {
					t.Fatal(err)
				}
			}
			err := m.Switch(tt.to)
			if tt.ok && err != nil {
				t.Errorf("Switch error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Switch error = %v, want ErrInvalidTransition", err)
			}
			if !tt.ok && m.Mode() != tt.from {
				t.Errorf("failed switch changed mode to %v", m.Mode())
			}
		})
	}
}

func TestSwitchClearsPending(t *testing.T) {
	m := New()
	p := m.Pending()
	p.Count = 3
	p.Operator = 'd'
	p.Keys = append(p.Keys, key.NewRuneEvent('3', key.ModNone), key.NewRuneEvent('d', key.ModNone))

	if err := m.Switch(Insert); err != nil {
		t.Fatal(err)
	}
	if !m.Pending().IsEmpty() || m.Pending().Operator != 0 || m.Pending().Count != 0 {
		t.Errorf("pending survived mode change: %+v", *m.Pending())
	}
}

func TestOnChange(t *testing.T) {
	m := New()
	var got []Mode
	m.OnChange(func(from, to Mode) { got = append(got, from, to) })

	_ = m.Switch(Insert)
	_ = m.Switch(Normal)
	_ = m.Switch(Normal)

	want := []Mode{Normal, Insert, Insert, Normal}
	if len(got) != len(want) {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callbacks = %v, want %v", got, want)
		}
	}
}

func TestVisualAnchor(t *testing.T) {
	m := New()
	if err := m.EnterVisual(Visual, cursor.Pos{Line: 2, Col: 4}); err != nil {
		t.Fatal(err)
	}
	if err := m.EnterVisual(VisualLine, cursor.Pos{Line: 9, Col: 9}); err != nil {
		t.Fatal(err)
	}
	if m.Anchor() != (cursor.Pos{Line: 2, Col: 4}) {
		t.Errorf("switching visual kind moved the anchor to %v", m.Anchor())
	}
	if err := m.EnterVisual(Insert, cursor.Pos{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("EnterVisual(Insert) error = %v", err)
	}
}

func TestCommandLine(t *testing.T) {
	m := New()
	if err := m.EnterCommand(); err != nil {
		t.Fatal(err)
	}
	for _, r := range "wq" {
		m.AppendCommand(r)
	}
	if m.CommandText() != "wq" {
		t.Errorf("CommandText = %q", m.CommandText())
	}
	m.BackspaceCommand()
	m.BackspaceCommand()
	if m.BackspaceCommand() {
		t.Error("BackspaceCommand on an empty line should report false")
	}

	m.AppendCommand('x')
	m.Reset()
	if m.Mode() != Normal || m.CommandText() != "" {
		t.Errorf("leaving command mode kept %q", m.CommandText())
	}
}

func TestPromptAndRecording(t *testing.T) {
	m := New()
	if m.Prompt() != ':' {
		t.Errorf("default prompt = %q", m.Prompt())
	}
	if err := m.EnterPrompt('?'); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != Command || m.Prompt() != '?' {
		t.Errorf("after EnterPrompt: mode %v prompt %q", m.Mode(), m.Prompt())
	}
	m.Reset()
	if err := m.EnterCommand(); err != nil {
		t.Fatal(err)
	}
	if m.Prompt() != ':' {
		t.Errorf("EnterCommand prompt = %q", m.Prompt())
	}

	m.SetRecording('q')
	m.Reset()
	if m.Recording() != 'q' {
		t.Error("recording must survive mode changes")
	}
	m.SetRecording(0)
	if m.Recording() != 0 {
		t.Error("SetRecording(0) should stop recording")
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		count, opCount, want int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{0, 4, 4},
		{2, 3, 6},
		{MaxCount, 2, MaxCount},
	}
	for _, tt := range tests {
		p := Pending{Count: tt.count, OperatorCount: tt.opCount}
		if got := p.TotalCount(); got != tt.want {
			t.Errorf("TotalCount(%d, %d) = %d, want %d", tt.count, tt.opCount, got, tt.want)
		}
	}

	n := 0
	for _, d := range "99999999" {
		n = AccumulateDigit(n, d)
	}
	if n != MaxCount {
		t.Errorf("AccumulateDigit saturates at %d, got %d", MaxCount, n)
	}
}

func TestOperatorPending(t *testing.T) {
	p := Pending{Count: 2}
	if p.IsOperatorPending() {
		t.Error("a count alone is not an operator")
	}
	p.Operator = 'd'
	if !p.IsOperatorPending() {
		t.Error("d should be pending")
	}
	p.Reset()
	if p.IsOperatorPending() || p.Count != 0 {
		t.Error("Reset should clear the operator")
	}
}

func TestDisplayNames(t *testing.T) {
	if VisualLine.DisplayName() != "V-LINE" || Insert.CursorStyle() != CursorBar {
		t.Error("mode display attributes")
	}
}
