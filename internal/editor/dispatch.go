package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/input/vim"
)

// HandleKey feeds one key to the interpreter and applies the action it
// completes, if any. Each key is resolved fully before the next.
func (e *Editor) HandleKey(ev key.Event) {
	if e.modes.Pending().IsEmpty() && e.modes.Mode() == mode.Normal {
		e.status = Status{}
	}
	if e.modes.Recording() != 0 && e.macroDepth == 0 {
		e.recorded = append(e.recorded, ev)
	}

	res := e.interp.Feed(ev)
	if res.Err != nil {
		e.log.Debug("key sequence discarded", "key", ev.String(), "error", res.Err)
	}
	if res.Status == vim.StatusComplete {
		e.dispatch(res.Action)
	}
	e.checkInvariants()
}

// HandleKeys feeds a sequence of keys.
func (e *Editor) HandleKeys(events []key.Event) {
	for _, ev := range events {
		e.HandleKey(ev)
	}
}

// Dispatch applies an action as if the interpreter had produced it.
func (e *Editor) Dispatch(a vim.Action) {
	e.dispatch(a)
	e.checkInvariants()
}

func (e *Editor) dispatch(a vim.Action) {
	e.log.Debug("dispatch", "action", a.Name(), "mode", e.modes.Mode().String())

	head := e.repeatHead(a)
	err := e.apply(a)
	switch {
	case errors.Is(err, errNoTarget):
		e.failures++
		e.log.Debug("nothing to act on", "action", a.Name())
	case err != nil:
		e.fail(a.Name(), err)
	}
	e.record(a, head, err == nil)
}

func (e *Editor) apply(a vim.Action) error {
	switch a := a.(type) {
	case vim.Move:
		return e.move(a)
	case vim.Operate:
		return e.operate(a)
	case vim.DeleteChar:
		return e.deleteChar(a)
	case vim.Paste:
		return e.paste(a)
	case vim.Undo:
		return e.undo(a.Count)
	case vim.Redo:
		return e.redo(a.Count)
	case vim.Join:
		return e.join(a.Count)
	case vim.ReplaceChar:
		return e.replaceChar(a)
	case vim.ToggleCase:
		return e.toggleCase(a.Count)
	case vim.Repeat:
		return e.repeat(a.Count)

	case vim.EnterInsert:
		return e.enterInsert(a.At)
	case vim.ExitInsert:
		e.exitInsert()
	case vim.InsertText:
		return e.insertText(a.Text)
	case vim.Backspace:
		return e.backspace()
	case vim.DeleteForward:
		return e.deleteForward()
	case vim.InsertNewline:
		return e.insertText("\n")

	case vim.EnterVisual:
		return e.enterVisual(a.Linewise)
	case vim.ExitVisual:
		e.exitVisual()
	case vim.SwapAnchor:
		e.swapAnchor()
	case vim.SelectObject:
		e.selectObject(a)
	case vim.VisualOperate:
		return e.visualOperate(a)

	case vim.EnterCommand:
		return e.modes.EnterCommand()
	case vim.ExecuteCommand:
		e.executeCommand(a.Text)
	case vim.CancelCommand:
		e.modes.Reset()
	case vim.EnterSearch:
		return e.enterSearch(a.Backward)
	case vim.Search:
		return e.runSearch(a)

	case vim.SetMark:
		e.setMark(a.Mark)
	case vim.StartRecording:
		e.startRecording(a.Register)
	case vim.StopRecording:
		return e.stopRecording()
	case vim.PlayMacro:
		return e.playMacro(a)

	case vim.OpenFinder:
		return e.openFinder()
	case vim.FinderInput:
		return e.finderInput(a)

	case vim.CycleWindow:
		e.cycleWindow()
	case vim.Scroll:
		e.scroll(a.HalfPages)

	default:
		return fmt.Errorf("unhandled action %s", a.Name())
	}
	return nil
}

// fail reports a recoverable error on the status line.
func (e *Editor) fail(op string, err error) {
	e.failures++
	e.log.Warn("action failed", "action", op, "error", err)
	e.SetError(err)
}

// scroll moves the view and the cursor by half pages.
func (e *Editor) scroll(halfPages int) {
	w := e.win()
	v := w.Viewport()
	buf := e.Buffer()
	delta := halfPages * v.HalfPage()

	top := min(max(v.TopLine()+delta, 0), max(buf.LineCount()-v.Height(), 0))
	v.ScrollTo(top)
	c := w.Cursor()
	c.Line = min(max(c.Line+delta, 0), buf.LineCount()-1)
	c.Col = c.DesiredCol
	e.setCursor(c)
}

func (e *Editor) cycleWindow() {
	if len(e.windows) < 2 {
		return
	}
	e.active = (e.active + 1) % len(e.windows)
	e.setCursor(e.Cursor())
}
