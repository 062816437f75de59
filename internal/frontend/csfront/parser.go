package csfront

import (
	"linelimit/internal/syntax"
)

type parseError struct {
	tok int
	msg string
}

// parser recognises declarations and statements by their bracket structure.
// Expressions are not parsed beyond locating anonymous methods and lambda
// bodies.
type parser struct {
	toks  []token
	match []int // index of the matching bracket, -1 if unbalanced
	b     *syntax.Builder
	errs  []parseError
}

func newParser(toks []token, b *syntax.Builder) *parser {
	p := &parser{toks: toks, b: b}
	p.pairBrackets()
	return p
}

var closers = map[string]string{")": "(", "]": "[", "}": "{"}

func (p *parser) pairBrackets() {
	p.match = make([]int, len(p.toks))
	var stack []int
	for i, t := range p.toks {
		p.match[i] = -1
		if t.kind != tPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			stack = append(stack, i)
		case ")", "]", "}":
			open := closers[t.text]
			found := -1
			for s := len(stack) - 1; s >= 0; s-- {
				if p.toks[stack[s]].text == open {
					found = s
					break
				}
			}
			if found < 0 {
				p.errs = append(p.errs, parseError{tok: i, msg: "unexpected '" + t.text + "'"})
				continue
			}
			for _, un := range stack[found+1:] {
				p.errs = append(p.errs, parseError{tok: un, msg: "unclosed '" + p.toks[un].text + "'"})
			}
			o := stack[found]
			p.match[o], p.match[i] = i, o
			stack = stack[:found]
		}
	}
	for _, un := range stack {
		p.errs = append(p.errs, parseError{tok: un, msg: "unclosed '" + p.toks[un].text + "'"})
	}
}

func (p *parser) is(i int, text string) bool {
	return i >= 0 && i < len(p.toks) && p.toks[i].text == text && p.toks[i].kind != tString && p.toks[i].kind != tChar
}

func (p *parser) isOpen(i int) bool {
	return p.is(i, "(") || p.is(i, "[") || p.is(i, "{")
}

func (p *parser) isCloser(i int) bool {
	return p.is(i, ")") || p.is(i, "]") || p.is(i, "}")
}

// close returns the index of the bracket closing i, or hi if it is missing
// or lies beyond hi.
func (p *parser) close(i, hi int) int {
	if c := p.match[i]; c > i && c < hi {
		return c
	}
	return hi
}

func after(c, hi int) int {
	if c+1 < hi {
		return c + 1
	}
	return hi
}

func (p *parser) add(kind syntax.Kind, from, to int) {
	if to > len(p.toks) {
		to = len(p.toks)
	}
	if from < 0 || to <= from {
		return
	}
	p.b.Add(kind, p.toks[from].start, p.toks[to-1].end)
}

// skipTo returns the index past the first ';' at bracket depth 0, the index
// of an unmatched closer, or hi.
func (p *parser) skipTo(i, hi int) int {
	for j := i; j < hi; j++ {
		switch {
		case p.isOpen(j):
			j = p.close(j, hi)
		case p.is(j, ";"):
			return j + 1
		case p.isCloser(j):
			return j
		}
	}
	return hi
}

// skipToColon is skipTo for case labels.
func (p *parser) skipToColon(i, hi int) int {
	for j := i; j < hi; j++ {
		switch {
		case p.isOpen(j):
			j = p.close(j, hi)
		case p.is(j, ":"):
			return j + 1
		case p.isCloser(j):
			return j
		}
	}
	return hi
}

// ---- declarations ----

var modifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "abstract": true, "sealed": true, "partial": true,
	"readonly": true, "virtual": true, "override": true, "unsafe": true,
	"new": true, "async": true, "volatile": true, "required": true,
	"file": true, "ref": true, "const": true, "extern": true,
}

func (p *parser) isModifier(i int) bool {
	t := p.toks[i]
	if t.kind != tIdent {
		return false
	}
	switch t.text {
	case "global":
		return p.is(i+1, "using")
	case "extern":
		return !p.is(i+1, "alias")
	}
	return modifiers[t.text]
}

func (p *parser) decls(lo, hi int) {
	for i := lo; i < hi; {
		next := p.decl(i, hi)
		if next <= i {
			next = i + 1
		}
		i = next
	}
}

func (p *parser) decl(i, hi int) int {
	start := i
	if p.is(i, "[") && p.isGlobalAttribute(i) {
		end := after(p.close(i, hi), hi)
		p.add(syntax.KindAttributeList, i, end)
		return end
	}
	k := p.attributes(i, hi)
	for k < hi && p.isModifier(k) {
		k++
	}
	if k >= hi {
		return hi
	}
	if p.isCloser(k) {
		return k + 1
	}

	switch p.toks[k].text {
	case ";":
		return k + 1
	case "using":
		end := p.skipTo(k, hi)
		p.add(syntax.KindUsingDirective, start, end)
		return end
	case "extern":
		return p.skipTo(k, hi)
	case "namespace":
		return p.namespace(start, k, hi)
	case "class", "struct", "interface":
		return p.typeDecl(start, k, hi)
	case "record":
		if k+1 < hi && p.toks[k+1].kind == tIdent {
			return p.typeDecl(start, k, hi)
		}
	case "enum":
		return p.enumDecl(start, k, hi)
	}
	return p.member(start, k, hi)
}

func (p *parser) isGlobalAttribute(i int) bool {
	return (p.is(i+1, "assembly") || p.is(i+1, "module")) && p.is(i+2, ":")
}

// attributes records the attribute sections starting at i and returns the
// index past them.
func (p *parser) attributes(i, hi int) int {
	for i < hi && p.is(i, "[") {
		end := after(p.close(i, hi), hi)
		p.add(syntax.KindAttributeList, i, end)
		i = end
	}
	return i
}

// typeHeader records the base list and the constraint clauses between the
// declaration keyword k and the body at j. On a single-line header they are
// smaller than the line and never win a lookup.
func (p *parser) typeHeader(k, j int) {
	from, kind := -1, syntax.KindUnknown
	flush := func(to int) {
		if from >= 0 {
			p.add(kind, from, to)
		}
	}
	for m := k + 1; m < j; m++ {
		switch {
		case p.is(m, "(") || p.is(m, "["):
			m = p.close(m, j)
		case p.is(m, "where"):
			flush(m)
			from, kind = m, syntax.KindConstraintClause
		case p.is(m, ":") && from < 0:
			from, kind = m, syntax.KindBaseList
		}
	}
	flush(j)
}

// body finds the '{' or ';' that ends a declaration header.
func (p *parser) body(k, hi int) (int, bool) {
	for j := k + 1; j < hi; j++ {
		switch {
		case p.is(j, "{"):
			return j, true
		case p.is(j, "(") || p.is(j, "["):
			j = p.close(j, hi)
		case p.is(j, ";"):
			return j, false
		case p.isCloser(j):
			return j, false
		}
	}
	return hi, false
}

// closeDecl returns the end of a declaration whose body closes at c, taking
// an optional trailing ';'.
func (p *parser) closeDecl(c, hi int) int {
	end := after(c, hi)
	if end < hi && p.is(end, ";") {
		end++
	}
	return end
}

func (p *parser) headerOnly(kind syntax.Kind, start, j, hi int) int {
	end := j
	if j < hi && p.is(j, ";") {
		end = j + 1
	}
	p.add(kind, start, end)
	return end
}

func (p *parser) namespace(start, k, hi int) int {
	j, block := p.body(k, hi)
	if !block {
		if j < hi && p.is(j, ";") {
			// file-scoped: охватывает всё до конца области
			p.add(syntax.KindNamespaceDeclaration, start, hi)
			p.decls(j+1, hi)
			return hi
		}
		return p.headerOnly(syntax.KindNamespaceDeclaration, start, j, hi)
	}
	c := p.close(j, hi)
	end := p.closeDecl(c, hi)
	p.add(syntax.KindNamespaceDeclaration, start, end)
	p.decls(j+1, c)
	return end
}

func (p *parser) typeDecl(start, k, hi int) int {
	j, block := p.body(k, hi)
	p.typeHeader(k, j)
	if !block {
		return p.headerOnly(syntax.KindClassDeclaration, start, j, hi)
	}
	c := p.close(j, hi)
	end := p.closeDecl(c, hi)
	p.add(syntax.KindClassDeclaration, start, end)
	p.decls(j+1, c)
	return end
}

func (p *parser) enumDecl(start, k, hi int) int {
	j, block := p.body(k, hi)
	p.typeHeader(k, j)
	if !block {
		return p.headerOnly(syntax.KindEnumDeclaration, start, j, hi)
	}
	c := p.close(j, hi)
	end := p.closeDecl(c, hi)
	p.add(syntax.KindEnumDeclaration, start, end)

	from := j + 1
	for m := from; m <= c; m++ {
		if m < c && p.isOpen(m) {
			m = p.close(m, c)
			continue
		}
		if m == c || p.is(m, ",") {
			p.attributes(from, m)
			p.add(syntax.KindEnumMemberDeclaration, from, m)
			from = m + 1
		}
	}
	return end
}

func (p *parser) member(start, k, hi int) int {
	for j := k; j < hi; j++ {
		switch {
		case p.is(j, "(") || p.is(j, "["):
			c := p.close(j, hi)
			p.nested(j+1, c)
			j = c
		case p.is(j, "=>") || p.is(j, "="):
			end := p.expression(j+1, hi)
			p.add(syntax.KindMemberDeclaration, start, end)
			return end
		case p.is(j, "{"):
			c := p.close(j, hi)
			p.block(j, c, hi)
			end := after(c, hi)
			switch {
			case end < hi && p.is(end, "="):
				end = p.expression(end+1, hi)
			case end < hi && p.is(end, ";"):
				end++
			}
			p.add(syntax.KindMemberDeclaration, start, end)
			return end
		case p.is(j, ";"):
			p.add(syntax.KindMemberDeclaration, start, j+1)
			return j + 1
		case p.isCloser(j):
			p.add(syntax.KindMemberDeclaration, start, j)
			return j
		}
	}
	p.add(syntax.KindMemberDeclaration, start, hi)
	return hi
}

// ---- statements ----

// block records the statement block opened at open and closed at c.
func (p *parser) block(open, c, hi int) {
	p.add(syntax.KindStatement, open, after(c, hi))
	p.stmts(open+1, c)
}

func (p *parser) stmts(lo, hi int) {
	for i := lo; i < hi; {
		next := p.statement(i, hi)
		if next <= i {
			next = i + 1
		}
		i = next
	}
}

var headed = map[string]bool{
	"if": true, "while": true, "for": true, "foreach": true,
	"lock": true, "fixed": true, "switch": true, "using": true,
}

var accessors = map[string]bool{
	"get": true, "set": true, "init": true, "add": true, "remove": true,
}

func (p *parser) statement(i, hi int) int {
	t := p.toks[i]
	if t.kind == tIdent || t.kind == tPunct {
		switch {
		case t.text == "{":
			c := p.close(i, hi)
			p.block(i, c, hi)
			return after(c, hi)
		case t.text == ";":
			p.add(syntax.KindStatement, i, i+1)
			return i + 1
		case p.isCloser(i):
			return i + 1
		case headed[t.text] && p.is(i+1, "("):
			return p.headedStmt(i, i, hi)
		case t.text == "await" && (p.is(i+1, "foreach") || p.is(i+1, "using")) && p.is(i+2, "("):
			return p.headedStmt(i, i+1, hi)
		case t.text == "do":
			return p.doStmt(i, hi)
		case t.text == "try":
			return p.tryStmt(i, hi)
		case (t.text == "checked" || t.text == "unchecked" || t.text == "unsafe") && p.is(i+1, "{"):
			c := p.close(i+1, hi)
			p.block(i+1, c, hi)
			end := after(c, hi)
			p.add(syntax.KindStatement, i, end)
			return end
		case accessors[t.text] && p.is(i+1, "{"):
			c := p.close(i+1, hi)
			p.block(i+1, c, hi)
			end := after(c, hi)
			p.add(syntax.KindStatement, i, end)
			return end
		case t.text == "case" || t.text == "default" && p.is(i+1, ":"):
			end := p.skipToColon(i, hi)
			p.nested(i, end)
			return end
		}
	}
	return p.simple(i, hi)
}

// headedStmt parses `kw (...) body [else body]` starting at start with the
// keyword at k.
func (p *parser) headedStmt(start, k, hi int) int {
	c := p.close(k+1, hi)
	p.nested(k+2, c)
	end := after(c, hi)

	if p.is(k, "switch") {
		if end < hi && p.is(end, "{") {
			cc := p.close(end, hi)
			p.stmts(end+1, cc)
			end = after(cc, hi)
		}
		p.add(syntax.KindStatement, start, end)
		return end
	}

	if end < hi {
		end = p.statement(end, hi)
	}
	if p.is(k, "if") && end < hi && p.is(end, "else") && end+1 < hi {
		end = p.statement(end+1, hi)
	}
	p.add(syntax.KindStatement, start, end)
	return end
}

func (p *parser) doStmt(i, hi int) int {
	end := hi
	if i+1 < hi {
		end = p.statement(i+1, hi)
	}
	if end < hi && p.is(end, "while") {
		from := end
		end = p.skipTo(end, hi)
		p.nested(from, end)
	}
	p.add(syntax.KindStatement, i, end)
	return end
}

func (p *parser) tryStmt(i, hi int) int {
	j := i + 1
	for j < hi {
		switch {
		case p.is(j, "{"):
			c := p.close(j, hi)
			p.block(j, c, hi)
			j = after(c, hi)
			if !p.is(j, "catch") && !p.is(j, "finally") {
				p.add(syntax.KindStatement, i, j)
				return j
			}
		case p.is(j, "catch") || p.is(j, "finally") || p.is(j, "when"):
			j++
		case p.is(j, "("):
			c := p.close(j, hi)
			p.nested(j+1, c)
			j = after(c, hi)
		default:
			p.add(syntax.KindStatement, i, j)
			return j
		}
	}
	p.add(syntax.KindStatement, i, hi)
	return hi
}

// assigning tokens rule out a local function when a '{' follows ')'.
func (p *parser) assigning(i int) bool {
	t := p.toks[i]
	switch t.text {
	case "==", "!=", "<=", ">=":
		return false
	case "=>", "new", "return", "throw", "yield", "await", "switch", "?", "??", "with":
		return true
	}
	return t.kind == tPunct && len(t.text) > 0 && t.text[len(t.text)-1] == '='
}

// simple parses an expression statement, a local declaration or a local
// function.
func (p *parser) simple(i, hi int) int {
	assign, where := false, false
	for j := i; j < hi; j++ {
		switch {
		case p.is(j, ";"):
			p.nested(i, j+1)
			p.add(syntax.KindStatement, i, j+1)
			return j + 1
		case p.isCloser(j):
			if j == i {
				return i + 1
			}
			p.nested(i, j)
			p.add(syntax.KindStatement, i, j)
			return j
		case p.is(j, "(") || p.is(j, "["):
			j = p.close(j, hi)
		case p.is(j, "{"):
			c := p.close(j, hi)
			if !assign && j > i && (p.is(j-1, ")") || where) {
				end := after(c, hi)
				p.nested(i, j)
				p.block(j, c, hi)
				p.add(syntax.KindStatement, i, end)
				return end
			}
			j = c
		case p.is(j, "where"):
			where = true
		case p.assigning(j):
			assign = true
		}
	}
	p.nested(i, hi)
	p.add(syntax.KindStatement, i, hi)
	return hi
}

// ---- expressions ----

// expression scans an initializer or expression body up to its ';'.
func (p *parser) expression(i, hi int) int {
	end := p.skipTo(i, hi)
	p.nested(i, end)
	return end
}

// nested finds anonymous methods and lambda bodies inside [lo, hi).
func (p *parser) nested(lo, hi int) {
	for j := lo; j < hi; j++ {
		switch {
		case p.is(j, "delegate") && (p.is(j+1, "(") || p.is(j+1, "{")):
			j = p.anonymous(j, hi) - 1
		case p.is(j, "=>") && p.is(j+1, "{") && j+1 < hi:
			c := p.close(j+1, hi)
			p.block(j+1, c, hi)
			j = c
		}
	}
}

func (p *parser) anonymous(k, hi int) int {
	j := k + 1
	if p.is(j, "(") {
		c := p.close(j, hi)
		j = after(c, hi)
	}
	if j >= hi || !p.is(j, "{") {
		p.add(syntax.KindAnonymousMethod, k, j)
		return max(j, k+1)
	}
	c := p.close(j, hi)
	end := after(c, hi)
	p.add(syntax.KindAnonymousMethod, k, end)
	p.block(j, c, hi)
	return end
}
