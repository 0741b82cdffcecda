// Package editor coordinates buffers, windows, registers and the mode
// machine. Key events go through the interpreter; the resulting actions are
// applied here, one at a time, by the caller's event loop.
//
// There is no global editor. Tests create as many as they need.
package editor

import (
	"github.com/dshills/kestrel/internal/command"
	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/fuzzy"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
	"github.com/dshills/kestrel/internal/project/vfs"
	"github.com/dshills/kestrel/internal/register"
	"github.com/dshills/kestrel/internal/renderer"
	"github.com/dshills/kestrel/internal/renderer/gutter"
	"github.com/dshills/kestrel/internal/window"
)

// Logger is the logging surface the editor writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Severity classifies a status message.
type Severity uint8

const (
	StatusInfo Severity = iota
	StatusError
)

// Status is the one-line message under the windows.
type Status struct {
	Message  string
	Severity Severity
}

// Options are the settings :set changes at runtime.
type Options struct {
	TabStop   int
	ExpandTab bool

	// ShiftWidth is the indent step; 0 means TabStop.
	ShiftWidth int

	IgnoreCase bool
	SmartCase  bool
	ScrollOff  int
	Number     bool
}

// DefaultOptions returns Vim's defaults.
func DefaultOptions() Options {
	return Options{TabStop: 8, ShiftWidth: 8}
}

// shiftWidth returns the effective indent step.
func (o Options) shiftWidth() int {
	if o.ShiftWidth == 0 {
		return o.TabStop
	}
	return o.ShiftWidth
}

// Hooks let the application react to editor events. Every hook is
// optional and called on the event loop goroutine.
type Hooks struct {
	// FinderOpened asks for a directory walk whose results are delivered
	// with AddFinderCandidates.
	FinderOpened func()

	// FinderClosed cancels a walk still running.
	FinderClosed func()

	// FileOpened and FileClosed track the files to watch.
	FileOpened func(abs string)
	FileClosed func(abs string)
}

// Option configures an Editor.
type Option func(*Editor)

// WithFS sets the file system files are loaded from and saved to.
func WithFS(fsys vfs.FS) Option {
	return func(e *Editor) { e.fs = fsys }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClipboard backs the + and * registers with c. With unnamed set,
// yanks and deletes into the unnamed register also go to the clipboard.
func WithClipboard(c register.Clipboard, unnamed bool) Option {
	return func(e *Editor) {
		e.regs.SetClipboard(c)
		e.regs.SetClipboardDefault(unnamed)
	}
}

// WithOptions sets the initial options.
func WithOptions(o Options) Option {
	return func(e *Editor) { e.opts = o }
}

// WithSize sets the screen size in cells.
func WithSize(width, height int) Option {
	return func(e *Editor) { e.width, e.height = width, height }
}

// WithScorer sets the finder's scoring algorithm.
func WithScorer(s fuzzy.Scorer) Option {
	return func(e *Editor) { e.matcher.SetScorer(s) }
}

// WithMaxResults limits the rows the finder shows.
func WithMaxResults(n int) Option {
	return func(e *Editor) { e.maxResults = n }
}

// WithRoot sets the directory the finder lists. Accepted paths are
// joined to it.
func WithRoot(dir string) Option {
	return func(e *Editor) { e.root = dir }
}

// WithHooks installs application hooks.
func WithHooks(h Hooks) Option {
	return func(e *Editor) { e.hooks = h }
}

// Editor is the editing session.
type Editor struct {
	fs   vfs.FS
	log  Logger
	docs *documents

	windows []*window.Window
	active  int
	nextWin window.ID

	modes  *mode.Machine
	interp *vim.Interpreter
	regs   *register.Manager
	cmds   *command.Processor

	matcher    *fuzzy.Matcher
	finder     *fuzzy.Finder
	maxResults int
	root       string

	opts   Options
	status Status
	hooks  Hooks

	width, height int

	// inserting is set while an insert session holds an undo group open.
	inserting bool
	quit      bool

	lastFind *cursor.Find
	search   searchState

	// last is the change "." repeats; pendingChange collects the insert
	// session that will complete it.
	last          *change
	pendingChange *change
	replaying     bool

	// recorded holds the keys typed since a macro recording started.
	recorded   []key.Event
	lastMacro  rune
	macroDepth int
	macroKeys  int

	// failures counts failed actions so a macro stops at the first one.
	failures int
}

// New creates an editor with one window on an empty scratch buffer.
func New(opts ...Option) *Editor {
	e := &Editor{
		fs:      vfs.NewOSFS(),
		log:     nopLogger{},
		docs:    newDocuments(),
		regs:    register.New(),
		matcher: fuzzy.NewMatcher(fuzzy.DefaultOptions()),
		opts:    DefaultOptions(),
		root:    ".",
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.opts.TabStop = max(e.opts.TabStop, 1)
	e.modes = mode.New()
	e.interp = vim.New(e.modes)
	e.cmds = command.NewProcessor(e)
	e.finder = fuzzy.NewFinder(e.matcher, e.maxResults)

	d := e.newScratch()
	e.windows = []*window.Window{e.newWindow(d.buf)}
	e.layout()
	return e
}

func (e *Editor) newScratch() *document {
	d := &document{buf: buffer.New(), encoding: vfs.UTF8}
	e.docs.add(d)
	return d
}

func (e *Editor) newWindow(buf *buffer.Buffer) *window.Window {
	e.nextWin++
	w := window.New(e.nextWin, buf.ID(), e.width, max(e.height-2, 1))
	w.Viewport().SetScrollOff(e.opts.ScrollOff)
	return w
}

// Mode returns the current mode.
func (e *Editor) Mode() mode.Mode {
	return e.modes.Mode()
}

// Buffer returns the active window's buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.doc().buf
}

// Cursor returns the active window's cursor.
func (e *Editor) Cursor() cursor.Cursor {
	return e.win().Cursor()
}

// Window returns the active window.
func (e *Editor) Window() *window.Window {
	return e.win()
}

// Windows returns the open windows, top to bottom.
func (e *Editor) Windows() []*window.Window {
	return e.windows
}

// Registers returns the register manager.
func (e *Editor) Registers() *register.Manager {
	return e.regs
}

// Status returns the current status message.
func (e *Editor) Status() Status {
	return e.status
}

// Settings returns the current options.
func (e *Editor) Settings() Options {
	return e.opts
}

// Quitting reports whether a command asked the editor to exit.
func (e *Editor) Quitting() bool {
	return e.quit
}

// Pending returns the keys typed toward an unfinished command.
func (e *Editor) Pending() string {
	return e.modes.Pending().String()
}

// Buffers returns the number of buffers in the buffer table.
func (e *Editor) Buffers() int {
	return e.docs.count()
}

// SetStatus shows an informational message.
func (e *Editor) SetStatus(msg string) {
	e.status = Status{Message: msg}
}

// SetError shows err as an error message.
func (e *Editor) SetError(err error) {
	e.status = Status{Message: err.Error(), Severity: StatusError}
}

// Resize changes the screen size and re-lays out the windows.
func (e *Editor) Resize(width, height int) {
	e.width, e.height = max(width, 1), max(height, 1)
	e.layout()
}

// SetReadOnly marks the active buffer read-only.
func (e *Editor) SetReadOnly(ro bool) {
	e.Buffer().SetReadOnly(ro)
}

func (e *Editor) win() *window.Window {
	return e.windows[e.active]
}

func (e *Editor) doc() *document {
	d, ok := e.docs.get(e.win().Buffer())
	if !ok {
		panic("editor: window " + e.win().Buffer().String() + " refers to a closed buffer")
	}
	return d
}

// bound returns how far right the cursor may go in the current mode.
func (e *Editor) bound() cursor.Bound {
	if e.modes.Mode() == mode.Insert {
		return cursor.BoundPastEnd
	}
	return cursor.BoundLastChar
}

// setCursor moves the active cursor, clamped for the current mode.
func (e *Editor) setCursor(c cursor.Cursor) {
	e.win().SetCursor(e.Buffer(), c, e.bound())
}

// moveTo places the cursor at p with a matching desired column.
func (e *Editor) moveTo(p cursor.Pos) {
	e.setCursor(cursor.At(p.Line, p.Col))
}

// changed re-clamps every window showing buf after an edit. The active
// window keeps the bound of the current mode.
func (e *Editor) changed(buf *buffer.Buffer) {
	for i, w := range e.windows {
		if w.Buffer() != buf.ID() {
			continue
		}
		b := cursor.BoundLastChar
		if i == e.active {
			b = e.bound()
		}
		w.Reclamp(buf, b)
	}
}

// layout sizes each window's text area for the current screen.
func (e *Editor) layout() {
	rects := renderer.Split(e.width, e.height, len(e.windows))
	for i, w := range e.windows {
		d, ok := e.docs.get(w.Buffer())
		lines := 1
		if ok {
			lines = d.buf.LineCount()
		}
		gw := gutter.Width(lines, e.opts.Number)
		w.Resize(max(rects[i].Width-gw, 1), max(rects[i].Height-1, 1))
	}
}

// checkInvariants halts when a cursor escapes its buffer. It is a
// programming error, never a user-facing condition.
func (e *Editor) checkInvariants() {
	for _, w := range e.windows {
		d, ok := e.docs.get(w.Buffer())
		if !ok {
			panic("editor: window shows a destroyed buffer")
		}
		b := cursor.BoundLastChar
		if w == e.win() {
			b = e.bound()
		}
		if !w.Cursor().Valid(d.buf, b) {
			panic("editor: cursor " + w.Cursor().String() + " outside buffer " + d.Name())
		}
		if !w.Viewport().IsLineVisible(w.Cursor().Line) {
			panic("editor: cursor line outside viewport")
		}
	}
}
