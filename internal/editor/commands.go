package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/kestrel/internal/command"
	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/project/vfs"
	"github.com/dshills/kestrel/internal/window"
)

// Command errors.
var (
	errReadOnlyWrite = errors.New("'readonly' option is set (add ! to override)")
	errFileExists    = errors.New("file exists (add ! to override)")
	errUnknownOption = errors.New("unknown option")
	errInvalidArg    = errors.New("invalid argument")
	errNoHelp        = errors.New("sorry, no help for")
	errNoRoom        = errors.New("not enough room")
)

var _ command.Host = (*Editor)(nil)

// ExecuteCommand runs an ex command line as if typed after ':'.
func (e *Editor) ExecuteCommand(text string) {
	e.executeCommand(text)
	e.checkInvariants()
}

func (e *Editor) executeCommand(text string) {
	e.modes.Reset()
	if strings.TrimSpace(text) != "" {
		e.regs.SetLastCommand(text)
	}
	e.log.Info("command", "text", text)

	out, err := e.cmds.Execute(text)
	if err != nil {
		e.fail("command", err)
		return
	}
	if out.Message != "" {
		e.SetStatus(out.Message)
	}
	if out.Quit {
		e.log.Info("quit requested")
		e.quit = true
	}
}

// BufferDirty implements command.Host.
func (e *Editor) BufferDirty() bool { return e.Buffer().Dirty() }

// BufferPath implements command.Host.
func (e *Editor) BufferPath() string { return e.Buffer().Path() }

// LineCount implements command.Host.
func (e *Editor) LineCount() int { return e.Buffer().LineCount() }

// CursorLine implements command.Host.
func (e *Editor) CursorLine() int { return e.Cursor().Line }

// WindowCount implements command.Host.
func (e *Editor) WindowCount() int { return len(e.windows) }

// BufferShared implements command.Host.
func (e *Editor) BufferShared() bool {
	id := e.win().Buffer()
	n := 0
	for _, w := range e.windows {
		if w.Buffer() == id {
			n++
		}
	}
	return n > 1
}

// WriteBuffer implements command.Host. Writing a buffer without a name
// names it; writing elsewhere leaves the buffer's own file alone.
func (e *Editor) WriteBuffer(path string, force bool) (command.WriteInfo, error) {
	d := e.doc()
	buf := d.buf
	if buf.ReadOnly() && !force {
		return command.WriteInfo{}, errReadOnlyWrite
	}
	target := path
	if target == "" {
		target = buf.Path()
	}
	if target == "" {
		return command.WriteInfo{}, command.ErrNoFileName
	}
	abs, err := e.fs.Abs(target)
	if err != nil {
		return command.WriteInfo{}, NewOperationError("write", target, err)
	}
	own := d.abs == "" || abs == d.abs
	if !own && !force && e.fs.Exists(abs) {
		return command.WriteInfo{}, fmt.Errorf("%w: %s", errFileExists, target)
	}

	data, err := vfs.Encode(buf.Text(), d.encoding)
	if err != nil {
		return command.WriteInfo{}, NewOperationError("write", target, err).WithContext(string(d.encoding))
	}
	if err := e.fs.WriteFile(abs, data, 0o644); err != nil {
		e.log.Error("write failed", "path", abs, "error", err)
		return command.WriteInfo{}, NewOperationError("write", target, err)
	}

	if own {
		if d.abs == "" {
			buf.SetPath(target)
			d.abs, d.name = abs, ""
			e.fileOpened(abs)
		}
		buf.MarkSaved()
		if fi, err := e.fs.Stat(abs); err == nil {
			d.stamp = stampOf(fi)
		}
	}
	e.log.Info("buffer written", "path", abs, "bytes", len(data))
	return command.WriteInfo{Path: target, Lines: buf.LineCount(), Bytes: len(data)}, nil
}

// EditFile implements command.Host.
func (e *Editor) EditFile(path string) error {
	if path == "" {
		return e.reload()
	}
	d, err := e.open(path)
	if err != nil {
		return err
	}
	e.show(d)
	return nil
}

// Open loads path into the active window, as ":e path" would.
func (e *Editor) Open(path string) error {
	if err := e.EditFile(path); err != nil {
		e.SetError(err)
		return err
	}
	return nil
}

// open finds or loads the document for path. A file that does not exist
// yet gives an empty buffer that will be created on write.
func (e *Editor) open(path string) (*document, error) {
	abs, err := e.fs.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	if d, ok := e.docs.byPath(abs); ok {
		e.SetStatus(fmt.Sprintf("%q %dL", path, d.buf.LineCount()))
		return d, nil
	}

	data, err := e.fs.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		d := &document{buf: buffer.New(buffer.WithPath(path)), abs: abs, encoding: vfs.UTF8}
		e.docs.add(d)
		e.fileOpened(abs)
		e.SetStatus(fmt.Sprintf("%q [New]", path))
		return d, nil
	}
	if err != nil {
		e.log.Error("read failed", "path", abs, "error", err)
		return nil, NewOperationError("read", path, err)
	}
	text, enc, err := vfs.Decode(data)
	if err != nil {
		return nil, NewOperationError("read", path, err).WithContext(string(enc))
	}

	d := &document{buf: buffer.NewFromString(text, buffer.WithPath(path)), abs: abs, encoding: enc}
	if fi, err := e.fs.Stat(abs); err == nil {
		d.stamp = stampOf(fi)
	}
	e.docs.add(d)
	e.fileOpened(abs)
	e.SetStatus(fileInfo(path, d, len(data)))
	e.log.Info("file loaded", "path", abs, "bytes", len(data), "encoding", string(enc))
	return d, nil
}

// reload re-reads the active buffer's file, discarding changes.
func (e *Editor) reload() error {
	d := e.doc()
	if d.abs == "" {
		return command.ErrNoFileName
	}
	data, err := e.fs.ReadFile(d.abs)
	if err != nil {
		return NewOperationError("read", d.buf.Path(), err)
	}
	text, enc, err := vfs.Decode(data)
	if err != nil {
		return NewOperationError("read", d.buf.Path(), err).WithContext(string(enc))
	}
	if e.inserting {
		d.buf.EndGroup()
		e.inserting = false
	}
	d.buf.Load(text)
	d.encoding = enc
	if fi, err := e.fs.Stat(d.abs); err == nil {
		d.stamp = stampOf(fi)
	}
	e.changed(d.buf)
	e.SetStatus(fileInfo(d.buf.Path(), d, len(data)))
	e.log.Info("file reloaded", "path", d.abs)
	return nil
}

// fileInfo is the message shown after a load: "name" 3L, 20B [dos].
func fileInfo(path string, d *document, size int) string {
	msg := fmt.Sprintf("%q %dL, %dB", path, d.buf.LineCount(), size)
	switch d.buf.LineEnding() {
	case buffer.LineEndingCRLF:
		msg += " [dos]"
	case buffer.LineEndingCR:
		msg += " [mac]"
	}
	if d.encoding != vfs.UTF8 && d.encoding != "" {
		msg += " [" + string(d.encoding) + "]"
	}
	return msg
}

// show binds the active window to d and releases the buffer it showed.
func (e *Editor) show(d *document) {
	w := e.win()
	old := w.Buffer()
	if old == d.buf.ID() {
		return
	}
	w.Bind(d.buf.ID(), d.buf)
	e.release(old)
	e.layout()
	e.setCursor(w.Cursor())
}

// release destroys a buffer no window shows any more.
func (e *Editor) release(id buffer.ID) {
	for _, w := range e.windows {
		if w.Buffer() == id {
			return
		}
	}
	d, ok := e.docs.get(id)
	if !ok {
		return
	}
	e.docs.remove(id)
	if d.abs != "" && e.hooks.FileClosed != nil {
		e.hooks.FileClosed(d.abs)
	}
	e.log.Debug("buffer destroyed", "name", d.Name())
}

func (e *Editor) fileOpened(abs string) {
	if e.hooks.FileOpened != nil {
		e.hooks.FileOpened(abs)
	}
}

// GoToLine implements command.Host.
func (e *Editor) GoToLine(line int) {
	buf := e.Buffer()
	line = min(max(line, 0), buf.LineCount()-1)
	e.moveTo(cursor.Pos{Line: line, Col: cursor.FirstNonBlank(buf, line)})
}

// SubstituteLines implements command.Host. All lines change in one undo
// step and the cursor ends on the last changed line.
func (e *Editor) SubstituteLines(sub *command.Substitution, first, last int) (int, int, error) {
	count, lines, lastChanged := 0, 0, -1
	err := e.edit("substitute", func(b *buffer.Buffer) error {
		for l := first; l <= last && l < b.LineCount(); l++ {
			text := b.Line(l)
			out, n := sub.Apply(text)
			if n == 0 {
				continue
			}
			start := b.LineStart(l)
			if err := b.Replace(start, start+utf8.RuneCountInString(text), out); err != nil {
				return err
			}
			added := strings.Count(out, "\n")
			count += n
			lines++
			l += added
			last += added
			lastChanged = l
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if lastChanged >= 0 {
		e.GoToLine(lastChanged)
	}
	return count, lines, nil
}

var optionNames = map[string]string{
	"number": "number", "nu": "number",
	"expandtab": "expandtab", "et": "expandtab",
	"ignorecase": "ignorecase", "ic": "ignorecase",
	"smartcase": "smartcase", "scs": "smartcase",
	"tabstop": "tabstop", "ts": "tabstop",
	"shiftwidth": "shiftwidth", "sw": "shiftwidth",
	"scrolloff": "scrolloff", "so": "scrolloff",
}

// flag returns the boolean option called name, or nil.
func (e *Editor) flag(name string) *bool {
	switch name {
	case "number":
		return &e.opts.Number
	case "expandtab":
		return &e.opts.ExpandTab
	case "ignorecase":
		return &e.opts.IgnoreCase
	case "smartcase":
		return &e.opts.SmartCase
	}
	return nil
}

// numeric returns the number option called name and its range.
func (e *Editor) numeric(name string) (val *int, lo, hi int) {
	switch name {
	case "scrolloff":
		return &e.opts.ScrollOff, 0, 999
	case "shiftwidth":
		return &e.opts.ShiftWidth, 0, 32
	}
	return &e.opts.TabStop, 1, 32
}

// SetOption implements command.Host.
func (e *Editor) SetOption(a command.SetArg) (string, error) {
	name, ok := optionNames[a.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownOption, a.Name)
	}

	if flag := e.flag(name); flag != nil {
		if a.Query {
			return boolOption(name, *flag), nil
		}
		if a.HasValue {
			return "", fmt.Errorf("%w: %s", errInvalidArg, a)
		}
		*flag = !a.Negate
	} else {
		val, lo, hi := e.numeric(name)
		if a.Query || (!a.HasValue && !a.Negate) {
			return fmt.Sprintf("%s=%d", name, *val), nil
		}
		if a.Negate {
			return "", fmt.Errorf("%w: %s", errInvalidArg, a)
		}
		n, err := strconv.Atoi(a.Value)
		if err != nil || n < lo || n > hi {
			return "", fmt.Errorf("%w: %s", errInvalidArg, a)
		}
		*val = n
	}

	e.applyOptions()
	e.log.Debug("option set", "option", a.String())
	return "", nil
}

// Options implements command.Host.
func (e *Editor) Options() string {
	return fmt.Sprintf("%s  %s  %s  scrolloff=%d  shiftwidth=%d  %s  tabstop=%d",
		boolOption("expandtab", e.opts.ExpandTab), boolOption("ignorecase", e.opts.IgnoreCase),
		boolOption("number", e.opts.Number), e.opts.ScrollOff, e.opts.ShiftWidth,
		boolOption("smartcase", e.opts.SmartCase), e.opts.TabStop)
}

func boolOption(name string, on bool) string {
	if on {
		return name
	}
	return "no" + name
}

// applyOptions pushes option changes into the windows.
func (e *Editor) applyOptions() {
	for _, w := range e.windows {
		w.Viewport().SetScrollOff(e.opts.ScrollOff)
	}
	e.layout()
	e.setCursor(e.Cursor())
}

// ShowHelp implements command.Host. The help buffer replaces the active
// window's buffer unless that would abandon unsaved changes, in which case
// it opens in a new window.
func (e *Editor) ShowHelp(topic string) error {
	line, ok := command.HelpLine(topic)
	if !ok {
		return fmt.Errorf("%w: %s", errNoHelp, topic)
	}
	d := e.helpDoc()
	if e.doc() != d {
		if e.BufferDirty() && !e.BufferShared() {
			if err := e.split(d); err != nil {
				return err
			}
		} else {
			e.show(d)
		}
	}
	e.win().Viewport().ScrollTo(line)
	e.moveTo(cursor.Pos{Line: line})
	return nil
}

func (e *Editor) helpDoc() *document {
	for _, d := range e.docs.all() {
		if d.name == command.HelpName {
			return d
		}
	}
	d := &document{
		buf:      buffer.NewFromString(command.HelpText, buffer.WithReadOnly()),
		encoding: vfs.UTF8,
		name:     command.HelpName,
	}
	e.docs.add(d)
	return d
}

// RegisterSummary implements command.Host.
func (e *Editor) RegisterSummary() string {
	entries := e.regs.List()
	if len(entries) == 0 {
		return "registers are empty"
	}
	parts := make([]string, 0, len(entries))
	for _, en := range entries {
		text := strings.ReplaceAll(en.Content.Text, "\n", "^J")
		if utf8.RuneCountInString(text) > 20 {
			text = string([]rune(text)[:20]) + "…"
		}
		parts = append(parts, fmt.Sprintf("\"%c %s", en.Name, text))
	}
	return strings.Join(parts, "  ")
}

// SplitWindow implements command.Host. The new window opens above the
// active one and takes focus.
func (e *Editor) SplitWindow(path string) error {
	if !e.roomForWindow() {
		return errNoRoom
	}
	d := e.doc()
	if path != "" {
		var err error
		if d, err = e.open(path); err != nil {
			return err
		}
	}
	return e.split(d)
}

func (e *Editor) roomForWindow() bool {
	return (len(e.windows)+1)*2 <= e.height-1
}

func (e *Editor) split(d *document) error {
	if !e.roomForWindow() {
		return errNoRoom
	}
	w := e.newWindow(d.buf)
	if d == e.doc() {
		w.SetCursor(d.buf, e.Cursor(), cursor.BoundLastChar)
	}
	e.windows = slices.Insert(e.windows, e.active, w)
	e.layout()
	e.setCursor(e.Cursor())
	e.log.Debug("window split", "windows", len(e.windows))
	return nil
}

// CloseWindow implements command.Host.
func (e *Editor) CloseWindow() error {
	if len(e.windows) <= 1 {
		return command.ErrLastWindow
	}
	w := e.win()
	e.windows = slices.DeleteFunc(e.windows, func(o *window.Window) bool { return o == w })
	e.active = min(e.active, len(e.windows)-1)
	e.release(w.Buffer())
	e.layout()
	e.setCursor(e.Cursor())
	if e.modes.Mode() != mode.Normal {
		e.modes.Reset()
	}
	return nil
}
