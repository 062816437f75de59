package syntax

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"linelimit/internal/source"
)

// Index is the Tree implementation produced by the front-ends. Nodes are
// nested by containment; lookups walk down from the root, so a query costs
// O(depth · log(fan-out)).
type Index struct {
	file    source.FileID
	content []byte
	root    *entry
	trivia  []source.Span // non-doc comments, sorted by start
}

type entry struct {
	node     Node
	order    int
	children []*entry
}

// Builder collects nodes in any order and nests them on Build.
type Builder struct {
	file    source.FileID
	content []byte
	nodes   []Node
	trivia  []source.Span
}

// NewBuilder starts an index for file with the given content.
func NewBuilder(file source.FileID, content []byte) *Builder {
	return &Builder{file: file, content: content}
}

// Add records a node covering [start, end). Empty or inverted ranges are ignored.
func (b *Builder) Add(kind Kind, start, end uint32) {
	if end <= start {
		return
	}
	b.nodes = append(b.nodes, Node{Kind: kind, Span: source.Span{File: b.file, Start: start, End: end}})
}

// AddTrivia records a comment that is not part of any node. A line whose
// code is followed by trivia is looked up without it.
func (b *Builder) AddTrivia(start, end uint32) {
	if end <= start {
		return
	}
	b.trivia = append(b.trivia, source.Span{File: b.file, Start: start, End: end})
}

// Build nests the recorded nodes under a compilation unit root.
// Nodes are ordered by start, then by decreasing length, then by insertion
// order, so a parent that was added before an identically sized child stays
// the outer one. A node that only partially overlaps its predecessor is
// attached to the nearest node that fully contains it.
func (b *Builder) Build() *Index {
	size, err := safecast.Conv[uint32](len(b.content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	root := &entry{node: Node{
		Kind: KindCompilationUnit,
		Span: source.Span{File: b.file, Start: 0, End: size},
	}, order: -1}

	entries := make([]*entry, len(b.nodes))
	for i, n := range b.nodes {
		entries[i] = &entry{node: n, order: i}
	}
	slices.SortStableFunc(entries, func(x, y *entry) int {
		if x.node.Span.Start != y.node.Span.Start {
			return cmpU32(x.node.Span.Start, y.node.Span.Start)
		}
		if x.node.Span.End != y.node.Span.End {
			return cmpU32(y.node.Span.End, x.node.Span.End)
		}
		return x.order - y.order
	})

	stack := []*entry{root}
	for _, e := range entries {
		for len(stack) > 1 && !stack[len(stack)-1].node.Span.Contains(e.node.Span) {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, e)
		stack = append(stack, e)
	}

	trivia := slices.Clone(b.trivia)
	slices.SortFunc(trivia, func(x, y source.Span) int { return cmpU32(x.Start, y.Start) })

	return &Index{file: b.file, content: b.content, root: root, trivia: trivia}
}

// Root returns the compilation unit node.
func (ix *Index) Root() Node {
	return ix.root.node
}

// Walk visits every node below the root depth-first, in start order,
// together with its enclosing node.
func (ix *Index) Walk(fn func(n, parent Node)) {
	var walk func(e *entry)
	walk = func(e *entry) {
		for _, c := range e.children {
			fn(c.node, e.node)
			walk(c)
		}
	}
	walk(ix.root)
}

// NodeAt implements Tree.
func (ix *Index) NodeAt(span source.Span) Node {
	q := ix.narrow(span)

	// спуск к самому глубокому узлу, содержащему q
	path := []*entry{ix.root}
	cur := ix.root
	for {
		next := childContaining(cur, q)
		if next == nil {
			break
		}
		path = append(path, next)
		cur = next
	}

	// при равных span побеждает внешний узел; корень в этом не участвует,
	// иначе однострочный файл всегда классифицировался бы как CompilationUnit
	i := len(path) - 1
	for i > 1 && path[i-1].node.Span == path[i].node.Span {
		i--
	}
	return path[i].node
}

func childContaining(e *entry, q source.Span) *entry {
	// последний ребёнок с Start <= q.Start
	idx, _ := slices.BinarySearchFunc(e.children, q.Start, func(c *entry, start uint32) int {
		if c.node.Span.Start <= start {
			return -1
		}
		return 1
	})
	for i := idx - 1; i >= 0; i-- {
		c := e.children[i]
		if c.node.Span.Contains(q) {
			return c
		}
		// front-ends emit properly nested spans: siblings never overlap
		if c.node.Span.End <= q.Start {
			break
		}
	}
	return nil
}

// narrow trims whitespace around span and drops a trailing comment that
// follows code on the same line.
func (ix *Index) narrow(span source.Span) source.Span {
	start, end := ix.trim(span.Start, span.End)
	if start >= end {
		return source.Span{File: span.File, Start: start, End: start}
	}
	first, _ := slices.BinarySearchFunc(ix.trivia, start, func(t source.Span, off uint32) int {
		if t.Start <= off {
			return -1
		}
		return 1
	})
	for _, t := range ix.trivia[first:] {
		if t.Start >= end {
			break
		}
		if t.End >= end {
			start, end = ix.trim(start, t.Start)
			break
		}
	}
	return source.Span{File: span.File, Start: start, End: end}
}

func (ix *Index) trim(start, end uint32) (uint32, uint32) {
	if size := ix.root.node.Span.End; end > size {
		end = size
	}
	for start < end && isSpace(ix.content[start]) {
		start++
	}
	for end > start && isSpace(ix.content[end-1]) {
		end--
	}
	return start, end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

func cmpU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
