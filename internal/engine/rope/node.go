package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node is a node in the rope B+ tree.
// Leaves (height 0) hold chunks; internal nodes hold children and a cached
// summary per child.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.Summary())
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	summaries := make([]TextSummary, len(children))
	var total TextSummary
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of the subtree.
func (n *Node) Len() int {
	return n.summary.Bytes
}

// Chars returns the character count of the subtree.
func (n *Node) Chars() int {
	return n.summary.Chars
}

func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{summary: n.summary, chunks: chunks}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the bytes in [start, end) of the subtree.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		offset := 0
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Len()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			lo := max(start-offset, 0)
			hi := min(end-offset, chunk.Len())
			sb.WriteString(chunk.String()[lo:hi])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		childEnd := offset + childLen
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, max(start-offset, 0), min(end-offset, childLen))
		offset = childEnd
	}
}

// byteOffset converts a character offset to a byte offset.
func (n *Node) byteOffset(chars int) int {
	if chars <= 0 {
		return 0
	}
	if chars >= n.summary.Chars {
		return n.summary.Bytes
	}

	bytes := 0
	node := n
	for !node.IsLeaf() {
		idx := len(node.children) - 1
		for i, s := range node.childSummaries {
			if chars < s.Chars {
				idx = i
				break
			}
			chars -= s.Chars
			bytes += s.Bytes
		}
		node = node.children[idx]
	}

	for _, chunk := range node.chunks {
		if chars < chunk.Chars() {
			return bytes + chunk.byteOffset(chars)
		}
		chars -= chunk.Chars()
		bytes += chunk.Len()
	}
	return bytes
}

// lineStart returns the byte and character offsets of the first character
// of the given line. The line must exist.
func (n *Node) lineStart(line int) (bytes, chars int) {
	if line <= 0 {
		return 0, 0
	}

	node := n
	for !node.IsLeaf() {
		idx := len(node.children) - 1
		for i, s := range node.childSummaries {
			if line <= s.Lines {
				idx = i
				break
			}
			line -= s.Lines
			bytes += s.Bytes
			chars += s.Chars
		}
		node = node.children[idx]
	}

	for _, chunk := range node.chunks {
		if b, c, ok := chunk.lineStart(line); ok {
			return bytes + b, chars + c
		}
		line -= chunk.Summary().Lines
		bytes += chunk.Len()
		chars += chunk.Chars()
	}
	return bytes, chars
}

// newlinesBefore counts the newlines in the first chars characters.
func (n *Node) newlinesBefore(chars int) int {
	if chars <= 0 {
		return 0
	}
	if chars >= n.summary.Chars {
		return n.summary.Lines
	}

	lines := 0
	node := n
	for !node.IsLeaf() {
		idx := len(node.children) - 1
		for i, s := range node.childSummaries {
			if chars < s.Chars {
				idx = i
				break
			}
			chars -= s.Chars
			lines += s.Lines
		}
		node = node.children[idx]
	}

	for _, chunk := range node.chunks {
		if chars < chunk.Chars() {
			prefix := chunk.String()[:chunk.byteOffset(chars)]
			return lines + strings.Count(prefix, "\n")
		}
		chars -= chunk.Chars()
		lines += chunk.Summary().Lines
	}
	return lines
}

// chunkAt returns the chunk holding the given character and the offset of
// that character inside it.
func (n *Node) chunkAt(chars int) (Chunk, int) {
	node := n
	for !node.IsLeaf() {
		idx := len(node.children) - 1
		for i, s := range node.childSummaries {
			if chars < s.Chars {
				idx = i
				break
			}
			chars -= s.Chars
		}
		node = node.children[idx]
	}
	for _, chunk := range node.chunks {
		if chars < chunk.Chars() {
			return chunk, chars
		}
		chars -= chunk.Chars()
	}
	return Chunk{}, 0
}

// split splits the node at a byte offset.
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Len() {
		return n.clone(), newLeafNode()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var left, right []Chunk
	pos := 0

	for _, chunk := range n.chunks {
		switch {
		case pos+chunk.Len() <= offset:
			left = append(left, chunk)
		case pos >= offset:
			right = append(right, chunk)
		default:
			l, r := chunk.Split(offset - pos)
			if !l.IsEmpty() {
				left = append(left, l)
			}
			if !r.IsEmpty() {
				right = append(right, r)
			}
		}
		pos += chunk.Len()
	}

	return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
}

func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var left, right []*Node
	pos := 0

	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		switch {
		case pos+childLen <= offset:
			left = append(left, child)
		case pos >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - pos)
			if l.Len() > 0 {
				left = append(left, l)
			}
			if r.Len() > 0 {
				right = append(right, r)
			}
		}
		pos += childLen
	}

	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren creates a balanced subtree over children.
// Children may differ in height after a split; shorter ones are lifted so
// every internal node has uniform child height.
func buildNodeFromChildren(children []*Node) *Node {
	switch len(children) {
	case 0:
		return newLeafNode()
	case 1:
		return children[0]
	}

	var height uint8
	for _, c := range children {
		height = max(height, c.height)
	}
	for i, c := range children {
		for c.height < height {
			c = newInternalNode([]*Node{c})
		}
		children[i] = c
	}

	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	parents := make([]*Node, 0, len(children)/MaxChildren+1)
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		group := make([]*Node, end-i)
		copy(group, children[i:end])
		parents = append(parents, newInternalNode(group))
	}
	return buildNodeFromChildren(parents)
}

// concat joins two subtrees.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	return mergeNodes(left, right)
}

// concatLeaves joins two leaves, coalescing the small chunks that meet at
// the seam so repeated single-character inserts do not fragment the leaf.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	if len(chunks) > 0 && len(right.chunks) > 0 {
		if joined, ok := coalesce(chunks[len(chunks)-1], right.chunks[0]); ok {
			chunks[len(chunks)-1] = joined
			chunks = append(chunks, right.chunks[1:]...)
		} else {
			chunks = append(chunks, right.chunks...)
		}
	} else {
		chunks = append(chunks, right.chunks...)
	}

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNodeWithChunks(chunks)
	}

	mid := len(chunks) / 2
	l := make([]Chunk, mid)
	copy(l, chunks[:mid])
	r := make([]Chunk, len(chunks)-mid)
	copy(r, chunks[mid:])
	return newInternalNode([]*Node{newLeafNodeWithChunks(l), newLeafNodeWithChunks(r)})
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)

	if len(all) <= MaxChildren {
		return newInternalNode(all)
	}
	return buildNodeFromChildren(all)
}
