// Package cursor implements the editor cursor, its motions and text objects.
//
// A Cursor is a (line, column) position plus the desired column that
// vertical motions try to return to. Motions are pure functions over a Text
// (anything that can report its lines) and never modify the text; the same
// motion tables serve cursor movement, operator spans and visual selection.
//
// Columns count characters. In Normal mode a cursor rests on a character,
// so its column never reaches the line length on a non-empty line
// (BoundLastChar). In Insert mode and while resolving an operator span the
// column may sit one past the last character (BoundPastEnd).
package cursor
