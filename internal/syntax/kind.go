// Package syntax is the language-neutral view of a parsed compilation unit
// that the line rules consult: a tree of spans tagged with a Kind, queried by
// location.
package syntax

// Kind tags the syntactic construct a node represents.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindCompilationUnit
	KindUsingDirective
	KindNamespaceDeclaration
	KindClassDeclaration
	KindEnumDeclaration
	KindEnumMemberDeclaration
	KindSingleLineDocComment
	KindMultiLineDocComment
	KindAnonymousMethod
	KindMemberDeclaration
	KindStatement
	KindExpression
	KindAttributeList
	KindBaseList
	KindConstraintClause
)

var kindNames = [...]string{
	KindUnknown:               "Unknown",
	KindCompilationUnit:       "CompilationUnit",
	KindUsingDirective:        "UsingDirective",
	KindNamespaceDeclaration:  "NamespaceDeclaration",
	KindClassDeclaration:      "ClassDeclaration",
	KindEnumDeclaration:       "EnumDeclaration",
	KindEnumMemberDeclaration: "EnumMemberDeclaration",
	KindSingleLineDocComment:  "SingleLineDocumentationCommentTrivia",
	KindMultiLineDocComment:   "MultiLineDocumentationCommentTrivia",
	KindAnonymousMethod:       "AnonymousMethodExpression",
	KindMemberDeclaration:     "MemberDeclaration",
	KindStatement:             "Statement",
	KindExpression:            "Expression",
	KindAttributeList:         "AttributeList",
	KindBaseList:              "BaseList",
	KindConstraintClause:      "TypeParameterConstraintClause",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// KindSet is a bit set of kinds.
type KindSet uint32

// NewKindSet builds a set from the listed kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// With returns a copy of s extended with kinds.
func (s KindSet) With(kinds ...Kind) KindSet {
	return s | NewKindSet(kinds...)
}

// Kinds lists the members of s in declaration order.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for k := Kind(0); int(k) < len(kindNames); k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
