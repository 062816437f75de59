package csfront

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"linelimit/internal/source"
)

type tokKind uint8

const (
	tIdent tokKind = iota // identifiers and keywords
	tPunct
	tString
	tChar
	tNumber
)

type token struct {
	kind  tokKind
	text  string
	start uint32
	end   uint32
}

type commentKind uint8

const (
	cLine commentKind = iota
	cBlock
	cDocLine
	cDocBlock
	cDirective
)

type comment struct {
	kind  commentKind
	start uint32
	end   uint32
}

type lexError struct {
	off uint32
	msg string
}

type lexer struct {
	src      []byte
	pos      int
	toks     []token
	comments []comment
	errs     []lexError
}

func lex(src []byte) *lexer {
	lx := &lexer{src: src}
	lx.run()
	return lx
}

func off32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

func (lx *lexer) errorf(off int, format string, args ...any) {
	lx.errs = append(lx.errs, lexError{off: off32(off), msg: fmt.Sprintf(format, args...)})
}

func (lx *lexer) peek(i int) byte {
	if i < len(lx.src) {
		return lx.src[i]
	}
	return 0
}

// lineStart reports whether only whitespace precedes i on its line.
func (lx *lexer) lineStart(i int) bool {
	for j := i - 1; j >= 0; j-- {
		if source.LineBreakBefore(lx.src, j+1) > 0 {
			return true
		}
		switch lx.src[j] {
		case ' ', '\t', '\f', '\v':
		default:
			return false
		}
	}
	return true
}

func (lx *lexer) run() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		start := lx.pos
		switch {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			lx.pos++
		case source.LineBreakLen(lx.src, start) > 0:
			lx.pos += source.LineBreakLen(lx.src, start)
		case c == '#' && lx.lineStart(start):
			lx.pos = lx.lineEnd(start)
			lx.addComment(cDirective, start, lx.pos)
		case c == '/' && lx.peek(start+1) == '/':
			lx.pos = lx.lineEnd(start)
			kind := cLine
			// ровно три слэша, и только в начале строки
			if lx.peek(start+2) == '/' && lx.peek(start+3) != '/' && lx.lineStart(start) {
				kind = cDocLine
			}
			lx.addComment(kind, start, lx.pos)
		case c == '/' && lx.peek(start+1) == '*':
			lx.blockComment(start)
		case c == '"' || c == '$' || (c == '@' && (lx.peek(start+1) == '"' || lx.peek(start+1) == '$')):
			if end, ok := lx.stringEnd(start); ok {
				lx.pos = end
				lx.addToken(tString, start, end)
				continue
			}
			lx.pos++
			lx.addToken(tPunct, start, lx.pos)
		case c == '\'':
			lx.pos = lx.charEnd(start)
			lx.addToken(tChar, start, lx.pos)
		case c >= '0' && c <= '9' || c == '.' && isDigit(lx.peek(start+1)):
			lx.pos = lx.numberEnd(start)
			lx.addToken(tNumber, start, lx.pos)
		case c == '@' || c == '_' || isLetterAt(lx.src, start):
			lx.pos = lx.identEnd(start)
			lx.addToken(tIdent, start, lx.pos)
		default:
			lx.pos = start + punctLen(lx.src[start:])
			lx.addToken(tPunct, start, lx.pos)
		}
	}
}

func (lx *lexer) addToken(kind tokKind, start, end int) {
	lx.toks = append(lx.toks, token{kind: kind, text: string(lx.src[start:end]), start: off32(start), end: off32(end)})
}

func (lx *lexer) addComment(kind commentKind, start, end int) {
	lx.comments = append(lx.comments, comment{kind: kind, start: off32(start), end: off32(end)})
}

func (lx *lexer) lineEnd(i int) int {
	for i < len(lx.src) && source.LineBreakLen(lx.src, i) == 0 {
		i++
	}
	return i
}

func (lx *lexer) blockComment(start int) {
	i := start + 2
	for i+1 < len(lx.src) && (lx.src[i] != '*' || lx.src[i+1] != '/') {
		i++
	}
	end := i + 2
	if i+1 >= len(lx.src) {
		lx.errorf(start, "unterminated block comment")
		end = len(lx.src)
	}
	lx.pos = end
	kind := cBlock
	if lx.peek(start+2) == '*' && lx.peek(start+3) != '/' && lx.peek(start+3) != '*' && lx.lineStart(start) {
		kind = cDocBlock
	}
	lx.addComment(kind, start, end)
}

func (lx *lexer) identEnd(i int) int {
	if lx.src[i] == '@' {
		i++
	}
	for i < len(lx.src) {
		c := lx.src[i]
		if c == '_' || isDigit(c) || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			i++
			continue
		}
		if c < utf8.RuneSelf {
			break
		}
		r, size := utf8.DecodeRune(lx.src[i:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Pc, r) {
			break
		}
		i += size
	}
	return i
}

func (lx *lexer) numberEnd(i int) int {
	for i < len(lx.src) {
		c := lx.src[i]
		switch {
		case isDigit(c), c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			i++
		case c == '.' && isDigit(lx.peek(i+1)):
			i++
		case (c == '+' || c == '-') && (lx.src[i-1] == 'e' || lx.src[i-1] == 'E') && isDigit(lx.peek(i+1)):
			i++
		default:
			return i
		}
	}
	return i
}

func (lx *lexer) charEnd(start int) int {
	i := start + 1
	for i < len(lx.src) {
		switch lx.src[i] {
		case '\\':
			i += 2
			continue
		case '\'':
			return i + 1
		case '\n':
			lx.errorf(start, "unterminated character literal")
			return i
		}
		i++
	}
	lx.errorf(start, "unterminated character literal")
	return len(lx.src)
}

// stringEnd returns the end of the string literal at start, including
// interpolated, verbatim and raw forms. ok is false when start does not open
// a string.
func (lx *lexer) stringEnd(start int) (end int, ok bool) {
	i := start
	dollars, verbatim := 0, false
	for i < len(lx.src) {
		switch lx.src[i] {
		case '$':
			dollars++
			i++
			continue
		case '@':
			if verbatim {
				return 0, false
			}
			verbatim = true
			i++
			continue
		}
		break
	}
	if lx.peek(i) != '"' {
		return 0, false
	}

	quotes := 0
	for lx.peek(i+quotes) == '"' {
		quotes++
	}
	switch {
	case quotes >= 3 && !verbatim:
		return lx.rawEnd(start, i, quotes), true
	case verbatim:
		return lx.quotedEnd(start, i+1, dollars > 0, true), true
	default:
		return lx.quotedEnd(start, i+1, dollars > 0, false), true
	}
}

func (lx *lexer) rawEnd(start, i, quotes int) int {
	i += quotes
	for i < len(lx.src) {
		if lx.src[i] != '"' {
			i++
			continue
		}
		n := 0
		for lx.peek(i+n) == '"' {
			n++
		}
		if n >= quotes {
			return i + n
		}
		i += n
	}
	lx.errorf(start, "unterminated raw string literal")
	return len(lx.src)
}

func (lx *lexer) quotedEnd(start, i int, interpolated, verbatim bool) int {
	for i < len(lx.src) {
		c := lx.src[i]
		switch {
		case c == '\\' && !verbatim:
			i += 2
			continue
		case c == '"':
			if verbatim && lx.peek(i+1) == '"' {
				i += 2
				continue
			}
			return i + 1
		case c == '\n' && !verbatim:
			lx.errorf(start, "unterminated string literal")
			return i
		case c == '{' && interpolated:
			if lx.peek(i+1) == '{' {
				i += 2
				continue
			}
			i = lx.holeEnd(i + 1)
			continue
		}
		i++
	}
	lx.errorf(start, "unterminated string literal")
	return len(lx.src)
}

// holeEnd skips an interpolation hole, including nested strings.
func (lx *lexer) holeEnd(i int) int {
	depth := 1
	for i < len(lx.src) {
		c := lx.src[i]
		switch {
		case c == '"' || c == '$' || c == '@' && lx.peek(i+1) == '"':
			if end, ok := lx.stringEnd(i); ok {
				i = end
				continue
			}
		case c == '\'':
			i = lx.charEnd(i)
			continue
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}

var puncts3 = []string{"??=", "<<=", ">>=", "..."}

var puncts2 = []string{
	"=>", "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"??", "?.", "::", "->", "++", "--", "&&", "||", "..",
}

func punctLen(b []byte) int {
	for _, p := range puncts3 {
		if len(b) >= 3 && string(b[:3]) == p {
			return 3
		}
	}
	for _, p := range puncts2 {
		if len(b) >= 2 && string(b[:2]) == p {
			return 2
		}
	}
	if b[0] >= utf8.RuneSelf {
		_, size := utf8.DecodeRune(b)
		return size
	}
	return 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetterAt(src []byte, i int) bool {
	c := src[i]
	if c < utf8.RuneSelf {
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
	}
	r, _ := utf8.DecodeRune(src[i:])
	return unicode.IsLetter(r)
}
