package vox

import "encoding/binary"

// DefaultMaxDepth bounds chunk nesting. Real files nest two or three levels.
const DefaultMaxDepth = 64

// Chunk is one node of a parsed chunk tree.
// Content aliases the input buffer and must be treated as read-only.
// Children holds indexes into ChunkTree.Nodes in file order.
type Chunk struct {
	ID       string
	Offset   int
	Content  []byte
	Children []int
}

// ChunkTree is an arena of chunks; Nodes[0] is the root.
type ChunkTree struct {
	Nodes []Chunk
}

// Root returns the top-level chunk.
func (t *ChunkTree) Root() *Chunk {
	if len(t.Nodes) == 0 {
		return nil
	}
	return &t.Nodes[0]
}

// Children returns the direct children of c in file order.
func (t *ChunkTree) Children(c *Chunk) []*Chunk {
	out := make([]*Chunk, len(c.Children))
	for i, idx := range c.Children {
		out[i] = &t.Nodes[idx]
	}
	return out
}

type frame struct {
	node   int
	cursor int
	end    int
	depth  int
}

// ParseChunks parses the chunk whose header starts at offset, with all of
// its descendants, and returns the tree plus the offset just past the chunk.
// Nesting is walked with an explicit stack; a chunk deeper than maxDepth
// (DefaultMaxDepth when <= 0) is a structure error.
func ParseChunks(data []byte, offset, maxDepth int) (*ChunkTree, int, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if offset < 0 {
		return nil, 0, newError(ErrStructure, "", offset, "negative offset")
	}
	root, childStart, end, err := readChunk(data, offset, len(data))
	if err != nil {
		return nil, 0, err
	}
	tree := &ChunkTree{Nodes: []Chunk{root}}
	stack := []frame{{node: 0, cursor: childStart, end: end, depth: 1}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.cursor == top.end {
			stack = stack[:len(stack)-1]
			continue
		}
		child, cs, ce, err := readChunk(data, top.cursor, top.end)
		if err != nil {
			return nil, 0, err
		}
		depth := top.depth + 1
		if depth > maxDepth {
			return nil, 0, newError(ErrStructure, child.ID, child.Offset, "nesting deeper than %d", maxDepth)
		}
		idx := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, child)
		tree.Nodes[top.node].Children = append(tree.Nodes[top.node].Children, idx)
		top.cursor = ce
		if cs < ce {
			stack = append(stack, frame{node: idx, cursor: cs, end: ce, depth: depth})
		}
	}
	return tree, end, nil
}

// readChunk decodes one chunk header at off. limit is the end of the
// enclosing span; the chunk with its children must fit inside it.
func readChunk(data []byte, off, limit int) (Chunk, int, int, error) {
	if off+ChunkHeaderSize > limit {
		return Chunk{}, 0, 0, newError(ErrStructure, "", off, "truncated chunk header (%d bytes left)", limit-off)
	}
	id := string(data[off : off+4])
	n := int64(binary.LittleEndian.Uint32(data[off+4:]))
	m := int64(binary.LittleEndian.Uint32(data[off+8:]))
	contentStart := int64(off + ChunkHeaderSize)
	childStart := contentStart + n
	end := childStart + m
	if childStart > int64(limit) {
		return Chunk{}, 0, 0, newError(ErrStructure, id, off, "content of %d bytes runs past end (%d bytes left)", n, int64(limit)-contentStart)
	}
	if end > int64(limit) {
		return Chunk{}, 0, 0, newError(ErrStructure, id, off, "children of %d bytes run past end (%d bytes left)", m, int64(limit)-childStart)
	}
	c := Chunk{
		ID:      id,
		Offset:  off,
		Content: data[contentStart:childStart:childStart],
	}
	return c, int(childStart), int(end), nil
}

// ParseFile checks the signature and parses the MAIN chunk that follows it.
func ParseFile(data []byte, maxDepth int) (*ChunkTree, error) {
	if _, err := ParseHeader(data); err != nil {
		return nil, err
	}
	tree, _, err := ParseChunks(data, HeaderSize, maxDepth)
	if err != nil {
		return nil, err
	}
	if root := tree.Root(); root.ID != IDMain {
		return nil, newError(ErrStructure, root.ID, root.Offset, "top-level chunk is not %s", IDMain)
	}
	return tree, nil
}
