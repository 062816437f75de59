// Package testkit holds structural checks shared by front-end tests and
// fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"linelimit/internal/source"
	"linelimit/internal/syntax"
)

// CheckIndexInvariants runs a minimal set of span invariants on an index:
// 1) the root covers exactly the file content
// 2) every node is non-empty, belongs to the file and lies inside its parent
// 3) children of one parent are visited in start order
func CheckIndexInvariants(ix *syntax.Index, sf *source.File) error {
	if ix == nil || sf == nil {
		return fmt.Errorf("nil index or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	root := ix.Root()
	if root.Kind != syntax.KindCompilationUnit {
		return fmt.Errorf("root kind is %s", root.Kind)
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	if root.Span.Start != 0 || root.Span.End != lenContent {
		return fmt.Errorf("root span %v does not cover %d bytes", root.Span, lenContent)
	}

	var firstErr error
	lastStart := make(map[source.Span]uint32)
	ix.Walk(func(n, parent syntax.Node) {
		if firstErr != nil {
			return
		}
		sp := n.Span
		switch {
		case sp.End <= sp.Start:
			firstErr = fmt.Errorf("empty %s span: %v", n.Kind, sp)
		case sp.File != sf.ID:
			firstErr = fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind, sp.File, sf.ID)
		case !parent.Span.Contains(sp):
			firstErr = fmt.Errorf("%s span %v is outside its parent %s %v", n.Kind, sp, parent.Kind, parent.Span)
		}
		if firstErr != nil {
			return
		}
		// у каждого родителя Start детей не убывает
		if prev, ok := lastStart[parent.Span]; ok && sp.Start < prev {
			firstErr = fmt.Errorf("%s span %v starts before its previous sibling", n.Kind, sp)
			return
		}
		lastStart[parent.Span] = sp.Start
	})
	return firstErr
}
