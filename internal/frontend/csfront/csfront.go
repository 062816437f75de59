// Package csfront maps C# sources onto syntax.Index with a lexer and a
// structural parser. Only the constructs the line rules care about are
// recognised precisely: using directives, namespaces, type and enum
// declarations, documentation comments and anonymous methods. Everything
// else is a member, a statement or part of one.
package csfront

import (
	"context"

	"linelimit/internal/diag"
	"linelimit/internal/source"
	"linelimit/internal/syntax"
)

// Extensions handled by this front-end.
var Extensions = []string{".cs"}

// Parse lexes and parses file. Unbalanced brackets and unterminated literals
// are reported as SYN2001; the index is built from whatever was recognised.
func Parse(ctx context.Context, file *source.File, r diag.Reporter) (*syntax.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lx := lex(file.Content)
	b := syntax.NewBuilder(file.ID, file.Content)

	p := newParser(lx.toks, b)
	p.decls(0, len(lx.toks))
	addComments(b, file.Content, lx.comments)

	for _, e := range lx.errs {
		sp := source.Span{File: file.ID, Start: e.off, End: e.off}
		diag.ReportWarning(r, diag.SynParseError, sp, e.msg).Emit()
	}
	for _, e := range p.errs {
		t := lx.toks[e.tok]
		sp := source.Span{File: file.ID, Start: t.start, End: t.end}
		diag.ReportWarning(r, diag.SynParseError, sp, e.msg).Emit()
	}
	return b.Build(), nil
}

// addComments turns documentation comments into nodes, merging consecutive
// `///` lines, and every other comment into trivia.
func addComments(b *syntax.Builder, content []byte, comments []comment) {
	for i := 0; i < len(comments); i++ {
		c := comments[i]
		switch c.kind {
		case cDocLine:
			end := c.end
			for i+1 < len(comments) && comments[i+1].kind == cDocLine && blank(content[end:comments[i+1].start]) {
				i++
				end = comments[i].end
			}
			b.Add(syntax.KindSingleLineDocComment, c.start, end)
		case cDocBlock:
			b.Add(syntax.KindMultiLineDocComment, c.start, c.end)
		default:
			b.AddTrivia(c.start, c.end)
		}
	}
}

func blank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n', '\f', '\v':
		default:
			return false
		}
	}
	return true
}
