package buffer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/kestrel/internal/engine/history"
	"github.com/dshills/kestrel/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	ErrOutOfBounds = errors.New("offset out of bounds")
	ErrReadOnly    = errors.New("buffer is read-only")
)

// ID is a buffer's stable identity in the editor's buffer table.
type ID uuid.UUID

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.New())
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Position is a zero-based line and character column.
type Position struct {
	Line int
	Col  int
}

// Compare returns -1, 0 or 1 as p is before, equal to or after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Buffer is an editable text with a dirty flag, optional path and undo
// history.
type Buffer struct {
	id   ID
	rope rope.Rope

	path     string
	readOnly bool

	lineEnding   LineEnding
	finalNewline bool

	dirty    bool
	revision uint64

	history  *history.History
	savedTop *history.Entry
}

// New creates an empty scratch buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:      NewID(),
		rope:    rope.New(),
		history: history.New(0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer and loads text into it.
func NewFromString(text string, opts ...Option) *Buffer {
	b := New(opts...)
	b.Load(text)
	return b
}

// Load replaces the whole content with text. The line ending and final
// newline are detected and remembered; dirty and undo history are cleared.
func (b *Buffer) Load(text string) {
	b.lineEnding = DetectLineEnding(text)
	text = normalizeLineEndings(text)
	b.finalNewline = strings.HasSuffix(text, "\n")
	if b.finalNewline {
		text = text[:len(text)-1]
	}

	b.rope = rope.FromString(text)
	b.revision++
	b.dirty = false
	b.history.Clear()
	b.savedTop = nil
}

// Text returns the content as it should be written to disk, with the
// original line ending and final newline restored.
func (b *Buffer) Text() string {
	s := b.rope.String()
	if b.finalNewline {
		s += "\n"
	}
	if b.lineEnding != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
	}
	return s
}

// String returns the in-memory content with "\n" separators.
func (b *Buffer) String() string {
	return b.rope.String()
}

// ID returns the buffer's identity.
func (b *Buffer) ID() ID {
	return b.id
}

// Len returns the number of characters.
func (b *Buffer) Len() int {
	return b.rope.Len()
}

// IsEmpty reports whether the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines; always at least 1.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

func (b *Buffer) checkLine(line int) error {
	if line < 0 || line >= b.rope.LineCount() {
		return fmt.Errorf("%w: line %d of %d", ErrOutOfBounds, line, b.rope.LineCount())
	}
	return nil
}

func (b *Buffer) checkOffset(off int) error {
	if off < 0 || off > b.rope.Len() {
		return fmt.Errorf("%w: offset %d not in [0,%d]", ErrOutOfBounds, off, b.rope.Len())
	}
	return nil
}

func (b *Buffer) checkRange(start, end int) error {
	if start > end {
		return fmt.Errorf("%w: range [%d,%d) is reversed", ErrOutOfBounds, start, end)
	}
	if err := b.checkOffset(start); err != nil {
		return err
	}
	return b.checkOffset(end)
}

// LineLength returns the number of characters in line, excluding the
// newline.
func (b *Buffer) LineLength(line int) (int, error) {
	if err := b.checkLine(line); err != nil {
		return 0, err
	}
	return b.rope.LineLen(line), nil
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(line int) (string, error) {
	if err := b.checkLine(line); err != nil {
		return "", err
	}
	return b.rope.LineText(line), nil
}

// Line returns the text of line, or "" when line does not exist. It lets a
// Buffer serve directly as the text motions read from.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= b.rope.LineCount() {
		return ""
	}
	return b.rope.LineText(line)
}

// LineStart returns the offset of the first character of line, clamped.
func (b *Buffer) LineStart(line int) int {
	return b.rope.LineStart(line)
}

// CharAt returns the character at off.
func (b *Buffer) CharAt(off int) (rune, error) {
	r, ok := b.rope.RuneAt(off)
	if !ok {
		return 0, fmt.Errorf("%w: no character at %d", ErrOutOfBounds, off)
	}
	return r, nil
}

// OffsetOf converts a line and column to an offset. The column may equal
// the line length, addressing the insert point at the end of the line.
func (b *Buffer) OffsetOf(line, col int) (int, error) {
	if err := b.checkLine(line); err != nil {
		return 0, err
	}
	if n := b.rope.LineLen(line); col < 0 || col > n {
		return 0, fmt.Errorf("%w: column %d of line %d (length %d)", ErrOutOfBounds, col, line, n)
	}
	return b.rope.LineStart(line) + col, nil
}

// PositionOf converts an offset to a line and column.
func (b *Buffer) PositionOf(off int) (Position, error) {
	if err := b.checkOffset(off); err != nil {
		return Position{}, err
	}
	p := b.rope.OffsetToPoint(off)
	return Position{Line: p.Line, Col: p.Column}, nil
}

// Slice returns the characters in [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	return b.rope.Slice(start, end), nil
}

// Insert inserts text at off.
func (b *Buffer) Insert(off int, text string) error {
	return b.Replace(off, off, text)
}

// Delete removes the characters in [start, end).
func (b *Buffer) Delete(start, end int) error {
	return b.Replace(start, end, "")
}

// Replace replaces the characters in [start, end) with text and records the
// change for undo.
func (b *Buffer) Replace(start, end int, text string) error {
	if b.readOnly {
		return ErrReadOnly
	}
	if err := b.checkRange(start, end); err != nil {
		return err
	}
	text = normalizeLineEndings(text)
	if start == end && text == "" {
		return nil
	}

	deleted := b.rope.Slice(start, end)
	b.apply(start, end, text)
	b.history.Record(history.Operation{Offset: start, Deleted: deleted, Inserted: text})
	return nil
}

// ApplyEdit replaces [start, end) with text without recording history.
// It exists for history replay.
func (b *Buffer) ApplyEdit(start, end int, text string) error {
	if err := b.checkRange(start, end); err != nil {
		return err
	}
	b.apply(start, end, text)
	return nil
}

func (b *Buffer) apply(start, end int, text string) {
	b.rope = b.rope.Replace(start, end, text)
	b.revision++
	b.dirty = true
}

// BeginGroup starts an undo group; edits until the matching EndGroup undo
// as one step.
func (b *Buffer) BeginGroup(name string) {
	b.history.BeginGroup(name)
}

// EndGroup closes an undo group.
func (b *Buffer) EndGroup() {
	b.history.EndGroup()
}

// Undo reverts the last undo step and returns the offset where the cursor
// belongs. Undoing back to the saved state clears the dirty flag.
func (b *Buffer) Undo() (int, error) {
	if b.readOnly {
		return 0, ErrReadOnly
	}
	off, err := b.history.Undo(b)
	if err != nil {
		return 0, err
	}
	b.dirty = b.history.Top() != b.savedTop
	return min(off, b.rope.Len()), nil
}

// Redo reapplies the last undone step.
func (b *Buffer) Redo() (int, error) {
	if b.readOnly {
		return 0, ErrReadOnly
	}
	off, err := b.history.Redo(b)
	if err != nil {
		return 0, err
	}
	b.dirty = b.history.Top() != b.savedTop
	return min(off, b.rope.Len()), nil
}

// Dirty reports whether the buffer changed since it was loaded or saved.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkSaved clears the dirty flag after a successful write.
func (b *Buffer) MarkSaved() {
	b.savedTop = b.history.Top()
	b.dirty = false
}

// Revision increases with every change to the text.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Path returns the associated file path, or "".
func (b *Buffer) Path() string {
	return b.path
}

// SetPath associates the buffer with a file path.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// Name returns the display name: the path's base name or "[No Name]".
func (b *Buffer) Name() string {
	if b.path == "" {
		return "[No Name]"
	}
	return filepath.Base(b.path)
}

// ReadOnly reports whether edits are refused.
func (b *Buffer) ReadOnly() bool {
	return b.readOnly
}

// SetReadOnly changes the read-only flag.
func (b *Buffer) SetReadOnly(ro bool) {
	b.readOnly = ro
}

// LineEnding returns the separator Text writes.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// FinalNewline reports whether Text ends with a separator.
func (b *Buffer) FinalNewline() bool {
	return b.finalNewline
}

// CanUndo reports whether an undo step exists.
func (b *Buffer) CanUndo() bool {
	return b.history.CanUndo()
}

// Snapshot returns an immutable view of the current text.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{rope: b.rope, revision: b.revision}
}

// Snapshot is a read-only view of a buffer at one revision.
type Snapshot struct {
	rope     rope.Rope
	revision uint64
}

// LineCount returns the number of lines.
func (s Snapshot) LineCount() int {
	return s.rope.LineCount()
}

// Line returns the text of line, or "" when it does not exist.
func (s Snapshot) Line(line int) string {
	if line < 0 || line >= s.rope.LineCount() {
		return ""
	}
	return s.rope.LineText(line)
}

// LineLen returns the character length of line, or 0 when it does not
// exist.
func (s Snapshot) LineLen(line int) int {
	if line < 0 || line >= s.rope.LineCount() {
		return 0
	}
	return s.rope.LineLen(line)
}

// Len returns the number of characters.
func (s Snapshot) Len() int {
	return s.rope.Len()
}

// Revision returns the revision the snapshot was taken at.
func (s Snapshot) Revision() uint64 {
	return s.revision
}

// String returns the text with "\n" separators.
func (s Snapshot) String() string {
	return s.rope.String()
}
