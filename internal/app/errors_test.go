package app

import (
	"errors"
	"testing"
)

func TestComponentError(t *testing.T) {
	base := errors.New("no tty")
	tests := []struct {
		name string
		err  *ComponentError
		want string
	}{
		{"nil", nil, ""},
		{"component only", &ComponentError{Component: "terminal"}, "terminal"},
		{"with action", &ComponentError{Component: "terminal", Action: "init"}, "terminal: init"},
		{"full", NewComponentError("terminal", "init", base), "terminal: init: no tty"},
		{"no action", &ComponentError{Component: "config", Err: base}, "config: no tty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(NewComponentError("terminal", "init", base), base) {
		t.Error("ComponentError does not unwrap to its cause")
	}
}

func TestRecoveredPanicErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	if !errors.Is(NewRecoveredPanicError(base, ""), base) {
		t.Error("error panic value not unwrapped")
	}
	if errors.Unwrap(NewRecoveredPanicError("text", "")) != nil {
		t.Error("non-error panic value unwrapped")
	}
}
