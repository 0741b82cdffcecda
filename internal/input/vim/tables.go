package vim

import (
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/key"
)

// motions maps single keys to motions.
var motions = map[rune]*cursor.Motion{
	'h': &cursor.Left,
	'l': &cursor.Right,
	'j': &cursor.Down,
	'k': &cursor.Up,
	'w': &cursor.WordForward,
	'b': &cursor.WordBackward,
	'e': &cursor.WordEnd,
	'W': &cursor.BigWordForward,
	'B': &cursor.BigWordBackward,
	'E': &cursor.BigWordEnd,
	'0': &cursor.LineStart,
	'^': &cursor.FirstNonBlankMotion,
	'$': &cursor.LineEnd,
	'G': &cursor.DocumentEnd,
	'{': &cursor.ParagraphBackward,
	'}': &cursor.ParagraphForward,
}

// gMotions maps the key after 'g' to motions.
var gMotions = map[rune]*cursor.Motion{
	'g': &cursor.DocumentStart,
	'e': &cursor.WordEndBackward,
	'E': &cursor.BigWordEndBackward,
}

// gOperators are the operators typed after 'g'.
var gOperators = map[rune]Operator{
	'u': OpLower,
	'U': OpUpper,
	'~': OpToggleCase,
}

// specialMotions maps non-character keys to motions in every editing mode.
var specialMotions = map[key.Key]*cursor.Motion{
	key.KeyLeft:  &cursor.Left,
	key.KeyRight: &cursor.Right,
	key.KeyUp:    &cursor.Up,
	key.KeyDown:  &cursor.Down,
	key.KeyHome:  &cursor.LineStart,
	key.KeyEnd:   &cursor.LineEnd,
}

// textObjects maps the key after 'i' or 'a' to text objects.
var textObjects = map[rune]*cursor.TextObject{
	'w':  &cursor.WordObject,
	'W':  &cursor.BigWordObject,
	'"':  &cursor.DoubleQuoteObject,
	'\'': &cursor.SingleQuoteObject,
	'`':  &cursor.BacktickObject,
	'(':  &cursor.ParenObject,
	')':  &cursor.ParenObject,
	'b':  &cursor.ParenObject,
	'[':  &cursor.BracketObject,
	']':  &cursor.BracketObject,
	'{':  &cursor.BraceObject,
	'}':  &cursor.BraceObject,
	'B':  &cursor.BraceObject,
	'<':  &cursor.AngleObject,
	'>':  &cursor.AngleObject,
}

// IsOperator reports whether r is a single-key operator.
func IsOperator(r rune) bool {
	switch Operator(r) {
	case OpDelete, OpYank, OpChange, OpIndent, OpOutdent:
		return true
	}
	return false
}

// IsValidMark reports whether r names a mark that m can set.
func IsValidMark(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// IsJumpMark reports whether r names a mark that ' and ` can jump to: a
// lowercase mark or the context mark.
func IsJumpMark(r rune) bool {
	return IsValidMark(r) || r == '\'' || r == '`'
}

// IsMacroRegister reports whether r can hold a recording.
func IsMacroRegister(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// IsValidRegister reports whether r names a register.
func IsValidRegister(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '"', r == '-', r == '_', r == '+', r == '*', r == ':':
		return true
	}
	return false
}

// IsCountStart reports whether r can start a count. '0' cannot; it is the
// line-start motion.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// IsCountDigit reports whether r can continue a count.
func IsCountDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
