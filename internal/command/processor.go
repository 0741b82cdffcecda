package command

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned while executing commands.
var (
	// ErrUnsavedChanges blocks quitting or abandoning a modified buffer.
	ErrUnsavedChanges = errors.New("no write since last change (add ! to override)")

	// ErrNoFileName is returned when a write or reload has no path.
	ErrNoFileName = errors.New("no file name")

	// ErrLastWindow is returned by :close on the only window.
	ErrLastWindow = errors.New("cannot close last window")

	// ErrPatternNotFound is returned when :s matches nothing.
	ErrPatternNotFound = errors.New("pattern not found")
)

// WriteInfo describes a completed write.
type WriteInfo struct {
	Path  string
	Lines int
	Bytes int
}

// Host is the editor surface commands act on. Every method applies to the
// active window and its buffer.
type Host interface {
	BufferDirty() bool
	BufferPath() string
	LineCount() int
	CursorLine() int
	WindowCount() int

	// BufferShared reports whether another window shows the active buffer.
	BufferShared() bool

	// WriteBuffer saves the buffer to path, or to its own path when path
	// is empty. force overrides the read-only flag.
	WriteBuffer(path string, force bool) (WriteInfo, error)

	// EditFile loads path into a buffer and shows it in the window.
	// An empty path reloads the current file from disk.
	EditFile(path string) error

	GoToLine(line int)

	// SubstituteLines applies sub to lines first..last (0-based,
	// inclusive) as one change and reports substitutions and lines changed.
	SubstituteLines(sub *Substitution, first, last int) (count, lines int, err error)

	SetOption(arg SetArg) (string, error)
	Options() string

	ShowHelp(topic string) error
	RegisterSummary() string

	SplitWindow(path string) error
	CloseWindow() error
}

// Outcome is the result of a successful command.
type Outcome struct {
	// Message is shown in the status line.
	Message string

	// Quit asks the editor to exit.
	Quit bool
}

// Processor parses and executes command lines.
type Processor struct {
	host Host
}

// NewProcessor creates a processor acting on host.
func NewProcessor(host Host) *Processor {
	return &Processor{host: host}
}

// Execute parses and runs text. Parse errors leave the editor untouched.
func (p *Processor) Execute(text string) (Outcome, error) {
	cmd, err := Parse(text)
	if err != nil {
		return Outcome{}, err
	}
	return p.Run(cmd)
}

// Run executes a parsed command.
func (p *Processor) Run(cmd Command) (Outcome, error) {
	h := p.host
	switch cmd.Kind {
	case Write:
		info, err := h.WriteBuffer(cmd.Arg, cmd.Bang)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: written(info)}, nil

	case Quit:
		return p.quit(cmd.Bang)

	case WriteQuit:
		if _, err := h.WriteBuffer(cmd.Arg, cmd.Bang); err != nil {
			return Outcome{}, err
		}
		return p.quit(true)

	case Exit:
		if h.BufferDirty() {
			if _, err := h.WriteBuffer("", cmd.Bang); err != nil {
				return Outcome{}, err
			}
		}
		return p.quit(true)

	case Edit:
		if h.BufferDirty() && !cmd.Bang {
			return Outcome{}, ErrUnsavedChanges
		}
		if cmd.Arg == "" && h.BufferPath() == "" {
			return Outcome{}, ErrNoFileName
		}
		if err := h.EditFile(cmd.Arg); err != nil {
			return Outcome{}, err
		}
		return Outcome{}, nil

	case GoToLine:
		h.GoToLine(max(cmd.Line-1, 0))
		return Outcome{}, nil

	case LastLine:
		h.GoToLine(h.LineCount() - 1)
		return Outcome{}, nil

	case Substitute:
		return p.substitute(cmd.Sub)

	case Set:
		return p.set(cmd.Options)

	case Help:
		if err := h.ShowHelp(cmd.Arg); err != nil {
			return Outcome{}, err
		}
		return Outcome{}, nil

	case Registers:
		return Outcome{Message: h.RegisterSummary()}, nil

	case Split:
		if err := h.SplitWindow(cmd.Arg); err != nil {
			return Outcome{}, err
		}
		return Outcome{}, nil

	case Close:
		if h.WindowCount() <= 1 {
			return Outcome{}, ErrLastWindow
		}
		if h.BufferDirty() && !h.BufferShared() && !cmd.Bang {
			return Outcome{}, ErrUnsavedChanges
		}
		if err := h.CloseWindow(); err != nil {
			return Outcome{}, err
		}
		return Outcome{}, nil
	}
	return Outcome{}, parseError(cmd.Kind.String(), "not an editor command")
}

// quit closes the window, or exits when it is the last one. A dirty buffer
// shown nowhere else blocks both unless force is set.
func (p *Processor) quit(force bool) (Outcome, error) {
	h := p.host
	if h.WindowCount() > 1 {
		if h.BufferDirty() && !h.BufferShared() && !force {
			return Outcome{}, ErrUnsavedChanges
		}
		return Outcome{}, h.CloseWindow()
	}
	if h.BufferDirty() && !force {
		return Outcome{}, ErrUnsavedChanges
	}
	return Outcome{Quit: true}, nil
}

func (p *Processor) substitute(sub *Substitution) (Outcome, error) {
	h := p.host
	first, last := h.CursorLine(), h.CursorLine()
	if sub.AllLines {
		first, last = 0, h.LineCount()-1
	}
	count, lines, err := h.SubstituteLines(sub, first, last)
	if err != nil {
		return Outcome{}, err
	}
	if count == 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrPatternNotFound, sub.Pattern)
	}
	return Outcome{Message: fmt.Sprintf("%s on %s", plural(count, "substitution"), plural(lines, "line"))}, nil
}

func (p *Processor) set(args []SetArg) (Outcome, error) {
	if len(args) == 0 {
		return Outcome{Message: p.host.Options()}, nil
	}
	var msgs []string
	for _, a := range args {
		msg, err := p.host.SetOption(a)
		if err != nil {
			return Outcome{}, err
		}
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return Outcome{Message: strings.Join(msgs, " ")}, nil
}

func written(info WriteInfo) string {
	return fmt.Sprintf("%q %dL, %dB written", info.Path, info.Lines, info.Bytes)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
