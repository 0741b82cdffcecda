// Package key defines key events and the notation used to write them.
//
// An Event is a single key press: a special key or a rune, plus modifiers.
// Key specifications use Vim notation:
//
//   - Plain characters: "a", "A", "1", "@"
//   - Bracketed names: "<Esc>", "<CR>", "<BS>", "<Up>", "<Space>"
//   - Modifiers: "<C-p>", "<C-r>", "<A-x>", "<C-S-Left>"
//
// ParseKeys splits a whole keystroke string such as "d2w" or "iZ<Esc>" into
// events, which is how tests and the help text describe input.
package key
