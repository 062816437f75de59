package syntax

import "linelimit/internal/source"

// Node is a tagged span. Only the kind matters to the rules.
type Node struct {
	Kind Kind
	Span source.Span
}

// Tree answers location queries over one compilation unit.
//
// NodeAt returns the smallest node containing span. When several nodes share
// that exact span the outermost one wins. The compilation unit root is
// returned when nothing smaller contains span.
type Tree interface {
	NodeAt(span source.Span) Node
}
