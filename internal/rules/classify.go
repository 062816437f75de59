package rules

import (
	"linelimit/internal/source"
	"linelimit/internal/syntax"
)

// Verdict is the classifier outcome for a line.
type Verdict uint8

const (
	Reportable Verdict = iota
	Exempt
)

func (v Verdict) String() string {
	if v == Exempt {
		return "exempt"
	}
	return "reportable"
}

// DeclarationExemptions are the contexts in which wrapping a long line is not
// actionable: directives, declarations headers and documentation.
var DeclarationExemptions = syntax.NewKindSet(
	syntax.KindUsingDirective,
	syntax.KindNamespaceDeclaration,
	syntax.KindClassDeclaration,
	syntax.KindEnumDeclaration,
	syntax.KindEnumMemberDeclaration,
	syntax.KindSingleLineDocComment,
	syntax.KindMultiLineDocComment,
)

// Classify locates the node for span and checks it against exempt.
func Classify(tree syntax.Tree, span source.Span, exempt syntax.KindSet) (Verdict, syntax.Node) {
	node := tree.NodeAt(span)
	if exempt.Has(node.Kind) {
		return Exempt, node
	}
	return Reportable, node
}
