package rope

import (
	"io"
	"strings"
)

// Rope is an immutable sequence of characters.
// Operations return new Rope values; the original is never modified.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from everything readable from r.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// buildFromChunks builds a balanced tree bottom-up.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	nodes := make([]*Node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaf := make([]Chunk, end-i)
		copy(leaf, chunks[i:end])
		nodes = append(nodes, newLeafNodeWithChunks(leaf))
	}

	for len(nodes) > 1 {
		parents := make([]*Node, 0, len(nodes)/MaxChildren+1)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

func (r Rope) node() *Node {
	if r.root == nil {
		return newLeafNode()
	}
	return r.root
}

// Len returns the number of characters.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// ByteLen returns the UTF-8 byte length.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines, which is one more than the number
// of newline characters. An empty rope has one line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil || r.root.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Summary returns the metrics for the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

func (r Rope) clamp(off int) int {
	return min(max(off, 0), r.Len())
}

// Slice returns the text between character offsets [start, end).
// Offsets are clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return ""
	}
	n := r.node()
	bs, be := n.byteOffset(start), n.byteOffset(end)
	var sb strings.Builder
	sb.Grow(be - bs)
	n.appendRange(&sb, bs, be)
	return sb.String()
}

// RuneAt returns the character at off.
func (r Rope) RuneAt(off int) (rune, bool) {
	if off < 0 || off >= r.Len() {
		return 0, false
	}
	chunk, local := r.root.chunkAt(off)
	if chunk.IsEmpty() {
		return 0, false
	}
	return chunk.runeAt(local), true
}

// Insert returns a rope with text inserted at character offset off.
func (r Rope) Insert(off int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	off = r.clamp(off)
	if r.IsEmpty() {
		return FromString(text)
	}

	n := r.node()
	left, right := n.split(n.byteOffset(off))
	mid := FromString(text).root
	return Rope{root: concat(concat(left, mid), right)}
}

// Delete returns a rope with characters [start, end) removed.
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return r
	}
	if start == 0 && end == r.Len() {
		return New()
	}

	n := r.node()
	bs, be := n.byteOffset(start), n.byteOffset(end)
	left, _ := n.split(bs)
	_, right := n.split(be)
	return Rope{root: concat(left, right)}
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(r.clamp(min(start, end)), text)
}

// Split splits the rope at a character offset.
func (r Rope) Split(off int) (Rope, Rope) {
	n := r.node()
	left, right := n.split(n.byteOffset(r.clamp(off)))
	return Rope{root: left}, Rope{root: right}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// LineStart returns the character offset of the first character of line.
// Lines past the end clamp to the last line.
func (r Rope) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		line = r.LineCount() - 1
	}
	_, chars := r.node().lineStart(line)
	return chars
}

// LineEnd returns the character offset of the end of line, excluding its
// newline.
func (r Rope) LineEnd(line int) int {
	if line < 0 {
		line = 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStart(line+1) - 1
}

// LineLen returns the number of characters in line, excluding the newline.
func (r Rope) LineLen(line int) int {
	return r.LineEnd(line) - r.LineStart(line)
}

// LineText returns the text of line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// OffsetToPoint converts a character offset to a line/column point.
func (r Rope) OffsetToPoint(off int) Point {
	off = r.clamp(off)
	line := r.node().newlinesBefore(off)
	return Point{Line: line, Column: off - r.LineStart(line)}
}

// PointToOffset converts a line/column point to a character offset.
// Columns past the end of the line clamp to the line end.
func (r Rope) PointToOffset(p Point) int {
	if p.Line >= r.LineCount() {
		return r.Len()
	}
	start := r.LineStart(p.Line)
	return start + min(max(p.Column, 0), r.LineEnd(p.Line)-start)
}

// Height returns the tree height; a single leaf has height 0.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height)
}

// ChunkCount returns the number of chunks in the rope.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	total := 0
	for _, child := range n.children {
		total += countChunks(child)
	}
	return total
}

// Equals reports whether two ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.root == other.root {
		return true
	}
	if r.ByteLen() != other.ByteLen() {
		return false
	}
	return r.String() == other.String()
}
