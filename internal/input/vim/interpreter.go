package vim

import (
	"errors"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
)

// ErrUnrecognizedSequence is reported when keys do not form a command. The
// pending record is cleared and nothing else changes.
var ErrUnrecognizedSequence = errors.New("unrecognized key sequence")

// Status indicates the result of feeding a key.
type Status uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending Status = iota

	// StatusComplete indicates an action was produced.
	StatusComplete

	// StatusCancelled indicates Escape discarded the pending input.
	StatusCancelled

	// StatusInvalid indicates the key was not part of any command.
	StatusInvalid
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusCancelled:
		return "cancelled"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result is the outcome of one key. Action is set when Status is
// StatusComplete. Err may accompany any status: after a failed "g" prefix
// the error is reported and the reprocessed key may still complete.
type Result struct {
	Status Status
	Action Action
	Err    error
}

// prefixWindow marks a pending Ctrl+w.
const prefixWindow = 0x17

// Interpreter turns key events into actions. It keeps its state in the mode
// machine and never edits text.
type Interpreter struct {
	m *mode.Machine
}

// New creates an interpreter over m.
func New(m *mode.Machine) *Interpreter {
	return &Interpreter{m: m}
}

// Machine returns the mode machine the interpreter reads.
func (in *Interpreter) Machine() *mode.Machine {
	return in.m
}

// Feed processes one key event.
func (in *Interpreter) Feed(ev key.Event) Result {
	switch in.m.Mode() {
	case mode.Insert:
		return in.feedInsert(ev)
	case mode.Command:
		return in.feedCommand(ev)
	case mode.Finder:
		return in.feedFinder(ev)
	default:
		return in.feedNormal(ev)
	}
}

func (in *Interpreter) complete(a Action) Result {
	in.m.ClearPending()
	return Result{Status: StatusComplete, Action: a}
}

func (in *Interpreter) pending() Result {
	return Result{Status: StatusPending}
}

func (in *Interpreter) invalid() Result {
	in.m.ClearPending()
	return Result{Status: StatusInvalid, Err: ErrUnrecognizedSequence}
}

// feedNormal handles Normal, operator-pending and Visual input.
func (in *Interpreter) feedNormal(ev key.Event) Result {
	p := in.m.Pending()
	if ev.IsEscape() {
		in.m.ClearPending()
		if in.m.Mode().IsVisual() {
			return in.complete(ExitVisual{})
		}
		return Result{Status: StatusCancelled}
	}

	p.Keys = append(p.Keys, ev)

	switch p.Prefix {
	case 'g':
		return in.afterG(ev)
	case '"':
		return in.afterQuote(ev)
	case 'r':
		return in.afterReplace(ev)
	case 'i', 'a':
		return in.afterObjectPrefix(ev)
	case prefixWindow:
		return in.afterWindow(ev)
	case 'f', 'F', 't', 'T':
		return in.afterFind(ev)
	case '\'', '`':
		return in.afterMarkJump(ev)
	case 'm':
		return in.afterSetMark(ev)
	case 'q':
		return in.afterRecord(ev)
	case '@':
		return in.afterPlay(ev)
	}

	if !ev.IsChar() {
		return in.normalSpecial(ev)
	}
	return in.normalRune(ev.Rune)
}

// continuesCount reports whether the key before the current one was a
// digit of a count.
func continuesCount(p *mode.Pending) bool {
	n := len(p.Keys)
	if n < 2 || (p.Count == 0 && p.OperatorCount == 0) {
		return false
	}
	prev := p.Keys[n-2]
	return prev.IsChar() && IsCountDigit(prev.Rune)
}

func (in *Interpreter) normalRune(r rune) Result {
	p := in.m.Pending()
	visual := in.m.Mode().IsVisual()

	if IsCountStart(r) || (r == '0' && continuesCount(p)) {
		if p.IsOperatorPending() {
			p.OperatorCount = mode.AccumulateDigit(p.OperatorCount, r)
		} else {
			p.Count = mode.AccumulateDigit(p.Count, r)
		}
		return in.pending()
	}

	// guu, g~~ and gUU repeat the operator's last key.
	if p.IsOperatorPending() && r == p.Operator {
		return in.operator(Operator(r))
	}

	if m := motions[r]; m != nil {
		return in.motion(m)
	}

	switch {
	case r == 'g':
		p.Prefix = 'g'
		return in.pending()
	case r == '"' && !p.IsOperatorPending():
		p.Prefix = '"'
		return in.pending()
	case IsOperator(r):
		return in.operator(Operator(r))
	case (r == 'i' || r == 'a') && (p.IsOperatorPending() || visual):
		p.Prefix = r
		return in.pending()
	case r == 'f' || r == 'F' || r == 't' || r == 'T' || r == '\'' || r == '`':
		p.Prefix = r
		return in.pending()
	case r == '%':
		if p.TotalCount() > 0 {
			return in.motion(&cursor.PercentLine)
		}
		return in.motion(&cursor.MatchPair)
	case r == ';' || r == ',':
		return in.jump(Jump{Kind: JumpRepeatFind, Reverse: r == ','})
	case r == 'n' || r == 'N':
		return in.jump(Jump{Kind: JumpSearchNext, Reverse: r == 'N'})
	case r == '*' || r == '#':
		return in.jump(Jump{Kind: JumpSearchWord, Reverse: r == '#'})
	case p.IsOperatorPending():
		return in.invalid()
	}

	if visual {
		return in.visualRune(r)
	}

	count := p.TotalCount()
	switch r {
	case 'i':
		return in.complete(EnterInsert{At: InsertBefore})
	case 'I':
		return in.complete(EnterInsert{At: InsertLineStart})
	case 'a':
		return in.complete(EnterInsert{At: Append})
	case 'A':
		return in.complete(EnterInsert{At: AppendLineEnd})
	case 'o':
		return in.complete(EnterInsert{At: OpenBelow})
	case 'O':
		return in.complete(EnterInsert{At: OpenAbove})
	case 'v':
		return in.complete(EnterVisual{})
	case 'V':
		return in.complete(EnterVisual{Linewise: true})
	case 'x':
		return in.complete(DeleteChar{Register: p.Register, Count: count})
	case 'X':
		return in.complete(DeleteChar{Register: p.Register, Count: count, Before: true})
	case 'p':
		return in.complete(Paste{Register: p.Register, Count: count})
	case 'P':
		return in.complete(Paste{Register: p.Register, Count: count, Before: true})
	case 'u':
		return in.complete(Undo{Count: count})
	case 'J':
		return in.complete(Join{Count: count})
	case 'D':
		return in.complete(Operate{Operator: OpDelete, Register: p.Register, Count: count, Motion: &cursor.LineEnd})
	case 'C':
		return in.complete(Operate{Operator: OpChange, Register: p.Register, Count: count, Motion: &cursor.LineEnd})
	case 'Y':
		return in.complete(Operate{Operator: OpYank, Register: p.Register, Count: count, Lines: true})
	case 's':
		return in.complete(Operate{Operator: OpChange, Register: p.Register, Count: count, Motion: &cursor.Right})
	case '~':
		return in.complete(ToggleCase{Count: count})
	case '.':
		return in.complete(Repeat{Count: count})
	case 'r', 'm', '@':
		p.Prefix = r
		return in.pending()
	case 'q':
		if in.m.Recording() != 0 {
			return in.complete(StopRecording{})
		}
		p.Prefix = 'q'
		return in.pending()
	case '/', '?':
		return in.complete(EnterSearch{Backward: r == '?'})
	case ':':
		return in.complete(EnterCommand{})
	}
	return in.invalid()
}

func (in *Interpreter) visualRune(r rune) Result {
	p := in.m.Pending()
	switch r {
	case 'x':
		return in.complete(VisualOperate{Operator: OpDelete, Register: p.Register})
	case 's':
		return in.complete(VisualOperate{Operator: OpChange, Register: p.Register})
	case '~':
		return in.complete(VisualOperate{Operator: OpToggleCase, Register: p.Register})
	case 'u':
		return in.complete(VisualOperate{Operator: OpLower, Register: p.Register})
	case 'U':
		return in.complete(VisualOperate{Operator: OpUpper, Register: p.Register})
	case 'o':
		return in.complete(SwapAnchor{})
	case 'v':
		if in.m.Mode() == mode.Visual {
			return in.complete(ExitVisual{})
		}
		return in.complete(EnterVisual{})
	case 'V':
		if in.m.Mode() == mode.VisualLine {
			return in.complete(ExitVisual{})
		}
		return in.complete(EnterVisual{Linewise: true})
	}
	return in.invalid()
}

func (in *Interpreter) normalSpecial(ev key.Event) Result {
	p := in.m.Pending()
	if m := specialMotions[ev.Key]; m != nil {
		return in.motion(m)
	}
	switch {
	case ev.IsBackspace():
		return in.motion(&cursor.Left)
	case ev.IsEnter():
		return in.motion(&cursor.Down)
	case p.IsOperatorPending():
		return in.invalid()
	case ev.IsCtrl('w'):
		p.Prefix = prefixWindow
		return in.pending()
	case ev.IsCtrl('d'):
		return in.complete(Scroll{HalfPages: max(p.TotalCount(), 1)})
	case ev.IsCtrl('u'):
		return in.complete(Scroll{HalfPages: -max(p.TotalCount(), 1)})
	case in.m.Mode().IsVisual():
		return in.invalid()
	case ev.IsCtrl('r'):
		return in.complete(Redo{Count: p.TotalCount()})
	case ev.IsCtrl('p'):
		return in.complete(OpenFinder{})
	}
	return in.invalid()
}

func (in *Interpreter) motion(m *cursor.Motion) Result {
	p := in.m.Pending()
	if p.IsOperatorPending() {
		return in.complete(Operate{
			Operator: Operator(p.Operator),
			Register: p.Register,
			Count:    p.TotalCount(),
			Motion:   m,
		})
	}
	return in.complete(Move{Motion: m, Count: p.TotalCount()})
}

func (in *Interpreter) jump(j Jump) Result {
	p := in.m.Pending()
	if p.IsOperatorPending() {
		return in.complete(Operate{
			Operator: Operator(p.Operator),
			Register: p.Register,
			Count:    p.TotalCount(),
			Jump:     &j,
		})
	}
	return in.complete(Move{Jump: &j, Count: p.TotalCount()})
}

func (in *Interpreter) operator(op Operator) Result {
	p := in.m.Pending()
	switch {
	case in.m.Mode().IsVisual():
		return in.complete(VisualOperate{Operator: op, Register: p.Register})
	case !p.IsOperatorPending():
		p.Operator = rune(op)
		return in.pending()
	case p.Operator == rune(op):
		return in.complete(Operate{
			Operator: op,
			Register: p.Register,
			Count:    p.TotalCount(),
			Lines:    true,
		})
	}
	return in.invalid()
}

// afterG resolves the key after 'g'. Anything but a g-motion or a case
// operator is an unrecognized sequence, and the key is then interpreted
// afresh.
func (in *Interpreter) afterG(ev key.Event) Result {
	p := in.m.Pending()
	if r, ok := ev.Char(); ok {
		if m := gMotions[r]; m != nil {
			p.Prefix = 0
			return in.motion(m)
		}
		if op, ok := gOperators[r]; ok {
			p.Prefix = 0
			return in.operator(op)
		}
	}
	in.m.ClearPending()
	res := in.feedNormal(ev)
	res.Err = ErrUnrecognizedSequence
	return res
}

func (in *Interpreter) afterQuote(ev key.Event) Result {
	p := in.m.Pending()
	r, ok := ev.Char()
	if !ok || !IsValidRegister(r) {
		return in.invalid()
	}
	p.Register = r
	p.Prefix = 0
	return in.pending()
}

func (in *Interpreter) afterReplace(ev key.Event) Result {
	p := in.m.Pending()
	r, ok := ev.Char()
	if !ok {
		return in.invalid()
	}
	return in.complete(ReplaceChar{Char: r, Count: p.TotalCount()})
}

func (in *Interpreter) afterFind(ev key.Event) Result {
	p := in.m.Pending()
	r, ok := ev.Char()
	if !ok {
		return in.invalid()
	}
	return in.jump(Jump{Kind: JumpFind, Find: cursor.Find{
		Char:     r,
		Backward: p.Prefix == 'F' || p.Prefix == 'T',
		Till:     p.Prefix == 't' || p.Prefix == 'T',
	}})
}

func (in *Interpreter) afterMarkJump(ev key.Event) Result {
	p := in.m.Pending()
	r, ok := ev.Char()
	if !ok || !IsJumpMark(r) {
		return in.invalid()
	}
	return in.jump(Jump{Kind: JumpMark, Mark: r, Linewise: p.Prefix == '\''})
}

func (in *Interpreter) afterSetMark(ev key.Event) Result {
	r, ok := ev.Char()
	if !ok || !IsValidMark(r) {
		return in.invalid()
	}
	return in.complete(SetMark{Mark: r})
}

func (in *Interpreter) afterRecord(ev key.Event) Result {
	r, ok := ev.Char()
	if !ok || !IsMacroRegister(r) {
		return in.invalid()
	}
	return in.complete(StartRecording{Register: r})
}

func (in *Interpreter) afterPlay(ev key.Event) Result {
	p := in.m.Pending()
	r, ok := ev.Char()
	if !ok || (r != '@' && !IsMacroRegister(r)) {
		return in.invalid()
	}
	return in.complete(PlayMacro{Register: r, Count: p.TotalCount()})
}

func (in *Interpreter) afterObjectPrefix(ev key.Event) Result {
	p := in.m.Pending()
	r, _ := ev.Char()
	obj := textObjects[r]
	if obj == nil {
		return in.invalid()
	}
	inner := p.Prefix == 'i'
	if in.m.Mode().IsVisual() {
		return in.complete(SelectObject{Object: obj, Inner: inner})
	}
	return in.complete(Operate{
		Operator: Operator(p.Operator),
		Register: p.Register,
		Count:    p.TotalCount(),
		Object:   obj,
		Inner:    inner,
	})
}

func (in *Interpreter) afterWindow(ev key.Event) Result {
	if ev.Is('w') || ev.IsCtrl('w') {
		return in.complete(CycleWindow{})
	}
	return in.invalid()
}

func (in *Interpreter) feedInsert(ev key.Event) Result {
	switch {
	case ev.IsEscape():
		return in.complete(ExitInsert{})
	case ev.IsEnter():
		return in.complete(InsertNewline{})
	case ev.IsBackspace():
		return in.complete(Backspace{})
	case ev.Key == key.KeyDelete:
		return in.complete(DeleteForward{})
	case ev.Key == key.KeyTab:
		return in.complete(InsertText{Text: "\t"})
	}
	if r, ok := ev.Char(); ok {
		return in.complete(InsertText{Text: string(r)})
	}
	if m := specialMotions[ev.Key]; m != nil {
		return in.complete(Move{Motion: m})
	}
	return Result{Status: StatusInvalid}
}

func (in *Interpreter) feedCommand(ev key.Event) Result {
	switch {
	case ev.IsEscape():
		return in.complete(CancelCommand{})
	case ev.IsEnter():
		if pr := in.m.Prompt(); pr == '/' || pr == '?' {
			return in.complete(Search{Pattern: in.m.CommandText(), Backward: pr == '?'})
		}
		return in.complete(ExecuteCommand{Text: in.m.CommandText()})
	case ev.IsBackspace():
		if !in.m.BackspaceCommand() {
			return in.complete(CancelCommand{})
		}
		return in.pending()
	}
	if r, ok := ev.Char(); ok {
		in.m.AppendCommand(r)
		return in.pending()
	}
	return Result{Status: StatusInvalid}
}

func (in *Interpreter) feedFinder(ev key.Event) Result {
	switch {
	case ev.IsEscape():
		return in.complete(FinderInput{Op: FinderClose})
	case ev.IsEnter():
		return in.complete(FinderInput{Op: FinderAccept})
	case ev.IsBackspace():
		return in.complete(FinderInput{Op: FinderBackspace})
	case ev.IsCtrl('u'):
		return in.complete(FinderInput{Op: FinderClear})
	case ev.IsCtrl('n'), ev.Key == key.KeyDown:
		return in.complete(FinderInput{Op: FinderNext})
	case ev.IsCtrl('p'), ev.Key == key.KeyUp:
		return in.complete(FinderInput{Op: FinderPrev})
	}
	if r, ok := ev.Char(); ok {
		return in.complete(FinderInput{Op: FinderType, Rune: r})
	}
	return Result{Status: StatusInvalid}
}
