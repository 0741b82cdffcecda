package vim

import "github.com/dshills/kestrel/internal/engine/cursor"

// Action is a fully resolved command. The set of actions is closed; the
// editor switches on the concrete type.
type Action interface {
	// Name identifies the action in logs.
	Name() string
	action()
}

// Operator is an operator key. The case operators are typed after 'g'.
type Operator rune

// Operators.
const (
	OpDelete     Operator = 'd'
	OpYank       Operator = 'y'
	OpChange     Operator = 'c'
	OpIndent     Operator = '>'
	OpOutdent    Operator = '<'
	OpLower      Operator = 'u'
	OpUpper      Operator = 'U'
	OpToggleCase Operator = '~'
)

// String returns the operator name.
func (o Operator) String() string {
	switch o {
	case OpDelete:
		return "delete"
	case OpYank:
		return "yank"
	case OpChange:
		return "change"
	case OpIndent:
		return "indent"
	case OpOutdent:
		return "outdent"
	case OpLower:
		return "lower"
	case OpUpper:
		return "upper"
	case OpToggleCase:
		return "toggleCase"
	}
	return string(rune(o))
}

// InsertPoint says where an insert session starts.
type InsertPoint uint8

const (
	InsertBefore    InsertPoint = iota // i
	InsertLineStart                    // I
	Append                             // a
	AppendLineEnd                      // A
	OpenBelow                          // o
	OpenAbove                          // O
)

// FinderOp is an edit to the finder session.
type FinderOp uint8

const (
	FinderType FinderOp = iota
	FinderBackspace
	FinderClear
	FinderNext
	FinderPrev
	FinderAccept
	FinderClose
)

// JumpKind selects a target the editor resolves from its own state.
type JumpKind uint8

const (
	JumpFind       JumpKind = iota // f F t T
	JumpRepeatFind                 // ; ,
	JumpSearchNext                 // n N
	JumpSearchWord                 // * #
	JumpMark                       // ' `
)

// Jump is a motion whose target depends on more than the text: the last
// character search, the last pattern or a mark.
type Jump struct {
	Kind JumpKind
	Find cursor.Find

	// Reverse runs a repeated search the other way (",", "N", "#").
	Reverse bool

	Mark rune

	// Linewise jumps to the first non-blank of the mark's line.
	Linewise bool
}

// Move moves the cursor by a motion or a jump.
type Move struct {
	Motion *cursor.Motion
	Jump   *Jump
	Count  int
}

// Operate applies an operator to the span of a motion, a jump, a text
// object or, when Lines is set, Count whole lines.
type Operate struct {
	Operator Operator
	Register rune
	Count    int

	Motion *cursor.Motion
	Jump   *Jump
	Object *cursor.TextObject
	Inner  bool
	Lines  bool
}

// EnterInsert starts an insert session.
type EnterInsert struct {
	At InsertPoint
}

// ExitInsert ends the insert session.
type ExitInsert struct{}

// InsertText types text at the cursor.
type InsertText struct {
	Text string
}

// Backspace deletes the character before the cursor in Insert mode.
type Backspace struct{}

// DeleteForward deletes the character under the cursor in Insert mode.
type DeleteForward struct{}

// InsertNewline splits the line at the cursor.
type InsertNewline struct{}

// DeleteChar is x (or X when Before is set).
type DeleteChar struct {
	Register rune
	Count    int
	Before   bool
}

// Paste is p (or P when Before is set).
type Paste struct {
	Register rune
	Count    int
	Before   bool
}

// Undo reverts Count changes.
type Undo struct {
	Count int
}

// Redo reapplies Count undone changes.
type Redo struct {
	Count int
}

// Join joins Count lines (at least two) starting at the cursor line.
type Join struct {
	Count int
}

// ReplaceChar replaces Count characters under the cursor with Char.
type ReplaceChar struct {
	Char  rune
	Count int
}

// EnterVisual starts or switches a visual selection.
type EnterVisual struct {
	Linewise bool
}

// ExitVisual leaves Visual mode.
type ExitVisual struct{}

// SwapAnchor exchanges the cursor and the visual anchor.
type SwapAnchor struct{}

// SelectObject sets the visual selection to a text object.
type SelectObject struct {
	Object *cursor.TextObject
	Inner  bool
}

// VisualOperate applies an operator to the visual selection.
type VisualOperate struct {
	Operator Operator
	Register rune
}

// EnterCommand opens the command line.
type EnterCommand struct{}

// ExecuteCommand runs the typed command line.
type ExecuteCommand struct {
	Text string
}

// CancelCommand closes the command line without running it.
type CancelCommand struct{}

// OpenFinder opens the fuzzy file finder.
type OpenFinder struct{}

// FinderInput edits or navigates the finder.
type FinderInput struct {
	Op   FinderOp
	Rune rune
}

// EnterSearch opens the search prompt, "/" or "?" when Backward.
type EnterSearch struct {
	Backward bool
}

// Search runs the pattern typed at the search prompt. An empty pattern
// reuses the last one.
type Search struct {
	Pattern  string
	Backward bool
}

// Repeat is ".": the last change again, with Count replacing its count
// when set.
type Repeat struct {
	Count int
}

// SetMark records the cursor position under a mark name.
type SetMark struct {
	Mark rune
}

// ToggleCase is "~": switch the case of Count characters and move past
// them.
type ToggleCase struct {
	Count int
}

// StartRecording records typed keys into Register until StopRecording.
type StartRecording struct {
	Register rune
}

// StopRecording ends a recording.
type StopRecording struct{}

// PlayMacro replays the keys in Register Count times. Register '@' is the
// last register played.
type PlayMacro struct {
	Register rune
	Count    int
}

// CycleWindow moves focus to the next window.
type CycleWindow struct{}

// Scroll moves the view by half pages: positive down, negative up.
type Scroll struct {
	HalfPages int
}

func (Move) Name() string { return "cursor.move" }
func (o Operate) Name() string { return "operator." + o.Operator.String() }
func (EnterInsert) Name() string { return "mode.insert" }
func (ExitInsert) Name() string { return "mode.normal" }
func (InsertText) Name() string { return "insert.text" }
func (Backspace) Name() string { return "insert.backspace" }
func (DeleteForward) Name() string { return "insert.delete" }
func (InsertNewline) Name() string { return "insert.newline" }
func (DeleteChar) Name() string { return "editor.deleteChar" }
func (Paste) Name() string { return "editor.paste" }
func (Undo) Name() string { return "editor.undo" }
func (Redo) Name() string { return "editor.redo" }
func (Join) Name() string { return "editor.join" }
func (ReplaceChar) Name() string { return "editor.replace" }
func (EnterVisual) Name() string { return "mode.visual" }
func (ExitVisual) Name() string { return "mode.normal" }
func (SwapAnchor) Name() string { return "visual.swap" }
func (SelectObject) Name() string { return "visual.select" }
func (VisualOperate) Name() string { return "visual.operate" }
func (EnterCommand) Name() string { return "mode.command" }
func (ExecuteCommand) Name() string { return "command.execute" }
func (CancelCommand) Name() string { return "command.cancel" }
func (OpenFinder) Name() string { return "finder.open" }
func (FinderInput) Name() string { return "finder.input" }
func (EnterSearch) Name() string { return "mode.search" }
func (Search) Name() string { return "search.run" }
func (Repeat) Name() string { return "editor.repeat" }
func (SetMark) Name() string { return "mark.set" }
func (ToggleCase) Name() string { return "editor.toggleCase" }
func (StartRecording) Name() string { return "macro.record" }
func (StopRecording) Name() string { return "macro.stop" }
func (PlayMacro) Name() string { return "macro.play" }
func (CycleWindow) Name() string { return "window.next" }
func (Scroll) Name() string { return "view.scroll" }

func (Move) action() {}
func (Operate) action() {}
func (EnterInsert) action() {}
func (ExitInsert) action() {}
func (InsertText) action() {}
func (Backspace) action() {}
func (DeleteForward) action() {}
func (InsertNewline) action() {}
func (DeleteChar) action() {}
func (Paste) action() {}
func (Undo) action() {}
func (Redo) action() {}
func (Join) action() {}
func (ReplaceChar) action() {}
func (EnterVisual) action() {}
func (ExitVisual) action() {}
func (SwapAnchor) action() {}
func (SelectObject) action() {}
func (VisualOperate) action() {}
func (EnterCommand) action() {}
func (ExecuteCommand) action() {}
func (CancelCommand) action() {}
func (OpenFinder) action() {}
func (FinderInput) action() {}
func (EnterSearch) action() {}
func (Search) action() {}
func (Repeat) action() {}
func (SetMark) action() {}
func (ToggleCase) action() {}
func (StartRecording) action() {}
func (StopRecording) action() {}
func (PlayMacro) action() {}
func (CycleWindow) action() {}
func (Scroll) action() {}
