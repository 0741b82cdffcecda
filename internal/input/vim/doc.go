// Package vim interprets keystrokes into editor actions.
//
// The Interpreter consumes one key event at a time and keeps the partially
// typed command in the mode machine's pending record. Normal mode commands
// follow the grammar
//
//	[register][count][operator][count][motion|text-object]
//	[register][count][operator][operator]  (line-wise: dd, yy, cc)
//	[register][count][command]
//
// Examples:
//   - "5j": count=5, motion=j
//   - "d3w": operator=d, count=3, motion=w
//   - "2d3w": both counts multiply, deleting 6 words
//   - "diw": operator=d, text object=iw
//   - `"ayw`: register=a, operator=y, motion=w
//   - "5dd": operator=d doubled, 5 lines
//
// Multi-key commands such as "gg" are resolved with one key of lookahead
// and no timeout. A lone "g" followed by anything else is reported as
// ErrUnrecognizedSequence and the second key is then interpreted on its own.
//
// The interpreter never touches a buffer. Each completed command is
// returned as an Action for the editor to apply.
package vim
