// Package gofront maps Go sources onto syntax.Index.
//
// Go has no namespaces or enums, so the closest constructs stand in:
// the package clause is the namespace, an iota const block is the enum and
// a function literal is the anonymous method.
package gofront

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"fortio.org/safecast"

	"linelimit/internal/diag"
	"linelimit/internal/source"
	"linelimit/internal/syntax"
)

// Extensions handled by this front-end.
var Extensions = []string{".go"}

// Parse parses file and indexes it. Syntax errors are reported as SYN2001
// and the partial tree is still indexed.
func Parse(ctx context.Context, file *source.File, r diag.Reporter) (*syntax.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, file.Path, file.Content, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		var list scanner.ErrorList
		if !errors.As(err, &list) {
			return nil, fmt.Errorf("parse %s: %w", file.Path, err)
		}
		reportErrors(file, list, r)
	}
	if astFile == nil {
		return syntax.NewBuilder(file.ID, file.Content).Build(), nil
	}
	return Index(fset.File(astFile.FileStart), astFile, file), nil
}

func reportErrors(file *source.File, list scanner.ErrorList, r diag.Reporter) {
	size := len(file.Content)
	for _, e := range list {
		off := e.Pos.Offset
		if off < 0 || off > size {
			off = size
		}
		start, err := safecast.Conv[uint32](off)
		if err != nil {
			continue
		}
		sp := source.Span{File: file.ID, Start: start, End: start}
		diag.ReportWarning(r, diag.SynParseError, sp, e.Msg).Emit()
	}
}

// Index builds the syntax index of an already parsed file. tf must be the
// token.File of f and file must hold the same content.
func Index(tf *token.File, f *ast.File, file *source.File) *syntax.Index {
	v := &visitor{
		tf:   tf,
		b:    syntax.NewBuilder(file.ID, file.Content),
		docs: make(map[*ast.CommentGroup]bool),
	}
	v.collectDocs(f)
	v.comments(f.Comments)
	v.add(syntax.KindNamespaceDeclaration, f.Package, f.Name.End())
	ast.Inspect(f, v.visit)
	return v.b.Build()
}

type visitor struct {
	tf   *token.File
	b    *syntax.Builder
	docs map[*ast.CommentGroup]bool
}

func (v *visitor) offset(p token.Pos) (uint32, bool) {
	if !p.IsValid() || v.tf == nil {
		return 0, false
	}
	base := v.tf.Base()
	if int(p) < base || int(p) > base+v.tf.Size() {
		return 0, false
	}
	off, err := safecast.Conv[uint32](v.tf.Offset(p))
	if err != nil {
		return 0, false
	}
	return off, true
}

func (v *visitor) add(kind syntax.Kind, from, to token.Pos) {
	start, ok1 := v.offset(from)
	end, ok2 := v.offset(to)
	if ok1 && ok2 {
		v.b.Add(kind, start, end)
	}
}

func (v *visitor) addNode(kind syntax.Kind, n ast.Node) {
	v.add(kind, n.Pos(), n.End())
}

func (v *visitor) collectDocs(f *ast.File) {
	mark := func(cg *ast.CommentGroup) {
		if cg != nil {
			v.docs[cg] = true
		}
	}
	mark(f.Doc)
	ast.Inspect(f, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.GenDecl:
			mark(n.Doc)
		case *ast.FuncDecl:
			mark(n.Doc)
		case *ast.TypeSpec:
			mark(n.Doc)
		case *ast.ValueSpec:
			mark(n.Doc)
		case *ast.ImportSpec:
			mark(n.Doc)
		case *ast.Field:
			mark(n.Doc)
		}
		return true
	})
}

// comments adds doc comments as nodes and every other comment as trivia.
func (v *visitor) comments(groups []*ast.CommentGroup) {
	for _, cg := range groups {
		for _, c := range cg.List {
			if !v.docs[cg] {
				start, ok1 := v.offset(c.Pos())
				end, ok2 := v.offset(c.End())
				if ok1 && ok2 {
					v.b.AddTrivia(start, end)
				}
				continue
			}
			kind := syntax.KindSingleLineDocComment
			if len(c.Text) > 1 && c.Text[1] == '*' {
				kind = syntax.KindMultiLineDocComment
			}
			v.addNode(kind, c)
		}
	}
}

func (v *visitor) visit(n ast.Node) bool {
	switch n := n.(type) {
	case nil, *ast.File, *ast.Ident, *ast.CommentGroup, *ast.Comment:
	case *ast.GenDecl:
		v.genDecl(n)
	case *ast.ImportSpec:
		v.addNode(syntax.KindUsingDirective, n)
	case *ast.TypeSpec:
		v.addNode(syntax.KindClassDeclaration, n)
	case *ast.ValueSpec:
		// const-блоки с iota обрабатываются в genDecl
	case *ast.FuncDecl:
		v.addNode(syntax.KindMemberDeclaration, n)
	case *ast.StructType:
		v.addNode(syntax.KindExpression, n)
		v.fields(n.Fields)
	case *ast.InterfaceType:
		v.addNode(syntax.KindExpression, n)
		v.fields(n.Methods)
	case *ast.Field:
	case *ast.FuncLit:
		v.addNode(syntax.KindAnonymousMethod, n)
	case ast.Stmt:
		v.addNode(syntax.KindStatement, n)
	case ast.Expr:
		v.addNode(syntax.KindExpression, n)
	}
	return true
}

func (v *visitor) genDecl(d *ast.GenDecl) {
	switch d.Tok {
	case token.IMPORT:
		v.addNode(syntax.KindUsingDirective, d)
	case token.TYPE:
		v.addNode(syntax.KindClassDeclaration, d)
	case token.CONST:
		if isEnum(d) {
			v.addNode(syntax.KindEnumDeclaration, d)
			for _, s := range d.Specs {
				v.addNode(syntax.KindEnumMemberDeclaration, s)
			}
			return
		}
		v.memberSpecs(d)
	case token.VAR:
		v.memberSpecs(d)
	}
}

func (v *visitor) memberSpecs(d *ast.GenDecl) {
	v.addNode(syntax.KindMemberDeclaration, d)
	for _, s := range d.Specs {
		v.addNode(syntax.KindMemberDeclaration, s)
	}
}

func (v *visitor) fields(list *ast.FieldList) {
	if list == nil {
		return
	}
	for _, f := range list.List {
		v.addNode(syntax.KindMemberDeclaration, f)
	}
}

// isEnum reports whether d is a parenthesised const block whose first spec
// mentions iota.
func isEnum(d *ast.GenDecl) bool {
	if !d.Lparen.IsValid() || len(d.Specs) == 0 {
		return false
	}
	vs, ok := d.Specs[0].(*ast.ValueSpec)
	if !ok {
		return false
	}
	found := false
	for _, val := range vs.Values {
		ast.Inspect(val, func(n ast.Node) bool {
			if id, ok := n.(*ast.Ident); ok && id.Name == "iota" {
				found = true
			}
			return !found
		})
	}
	return found
}
