package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MMinusOne/endium/pkg/token"
)

// LexError reports the first lexical problem found in the source.
type LexError struct {
	Message string
	Line    int
	Column  int
	Offset  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Lexer converts source text into tokens. A Lexer is single-use. It keeps
// the byte width of every rune so offsets stay exact when invalid bytes
// decode to U+FFFD.
type Lexer struct {
	src    []rune
	widths []int
	pos    int
	end    int
	line   int
	column int
	offset int
	start  token.Position
}

// Tokenize lexes the whole source. The result always ends with an EOF token.
func Tokenize(source string) ([]token.Token, error) {
	return New(source).Tokenize()
}

// New returns a lexer positioned at the start of source.
func New(source string) *Lexer {
	src := make([]rune, 0, len(source))
	widths := make([]int, 0, len(source))
	for i := 0; i < len(source); {
		r, width := utf8.DecodeRuneInString(source[i:])
		src = append(src, r)
		widths = append(widths, width)
		i += width
	}
	return &Lexer{src: src, widths: widths, end: len(src), line: 1, column: 1}
}

// sub returns a lexer over src[l.pos:end] that reports absolute positions.
func (l *Lexer) sub(end int) *Lexer {
	return &Lexer{
		src:    l.src,
		widths: l.widths,
		pos:    l.pos,
		end:    end,
		line:   l.line,
		column: l.column,
		offset: l.offset,
	}
}

// Tokenize runs the lexer to completion, halting on the first error.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	l.markStart()

	ch, ok := l.current()
	if !ok {
		return l.emit(token.EOF, ""), nil
	}

	switch {
	case ch == '\n' || ch == '\r':
		l.consumeNewline()
		return l.emit(token.Newline, ""), nil
	case ch == '"' || ch == '\'':
		return l.lexString(ch)
	case ch == '`':
		return l.lexTemplate()
	case isDigit(ch):
		return l.lexNumber()
	case isIdentStart(ch):
		return l.lexIdentifier(), nil
	case ch == '/' && (l.peek(1) == '/' || l.peek(1) == '*'):
		if l.peek(1) == '/' {
			return l.lexLineComment(), nil
		}
		return l.lexBlockComment()
	case ch == '.' && isDigit(l.peek(1)):
		return l.lexNumber()
	case ch == '.' && l.peek(1) == '.' && l.peek(2) != '.':
		return token.Token{}, l.errorf("invalid token '..'")
	case ch == '?' && l.peek(1) == '.' && isDigit(l.peek(2)):
		// `a?.5:1` is a conditional, not optional chaining.
		l.advance()
		return l.emit(token.Question, ""), nil
	}

	if op, ok := l.matchOperator(); ok {
		for n := 0; n < len(op.text); n++ {
			l.advance()
		}
		return l.emit(op.kind, ""), nil
	}

	return token.Token{}, l.errorf("unexpected character '%c'", ch)
}

func (l *Lexer) matchOperator() (operator, bool) {
	for _, op := range operators {
		if l.hasPrefix(op.text) {
			return op, true
		}
	}
	return operator{}, false
}

func (l *Lexer) lexIdentifier() token.Token {
	var b strings.Builder
	for {
		ch, ok := l.current()
		if !ok || !isIdentPart(ch) {
			break
		}
		b.WriteRune(ch)
		l.advance()
	}
	ident := b.String()
	kind := token.LookupIdent(ident)
	if kind == token.Identifier {
		return l.emit(kind, ident)
	}
	return l.emit(kind, "")
}

func (l *Lexer) lexNumber() (token.Token, error) {
	var b strings.Builder
	sawDot, sawExponent := false, false

	if ch, _ := l.current(); ch == '.' {
		sawDot = true
		b.WriteRune('.')
		l.advance()
	}
	for {
		ch, ok := l.current()
		if !ok {
			break
		}
		if isDigit(ch) {
			b.WriteRune(ch)
			l.advance()
			continue
		}
		if ch == '.' && !sawDot {
			sawDot = true
			b.WriteRune(ch)
			l.advance()
			continue
		}
		if ch == 'e' || ch == 'E' {
			sawExponent = true
			b.WriteRune(ch)
			l.advance()
			if sign, _ := l.current(); sign == '+' || sign == '-' {
				b.WriteRune(sign)
				l.advance()
			}
			for {
				d, ok := l.current()
				if !ok || !isDigit(d) {
					break
				}
				b.WriteRune(d)
				l.advance()
			}
		}
		break
	}

	if ch, _ := l.current(); ch == 'n' && !sawDot && !sawExponent {
		l.advance()
		return l.emit(token.BigNumber, b.String()), nil
	}
	return l.emit(token.Number, b.String()), nil
}

func (l *Lexer) lexLineComment() token.Token {
	l.advance()
	l.advance()
	var b strings.Builder
	for {
		ch, ok := l.current()
		if !ok || ch == '\n' || ch == '\r' {
			break
		}
		b.WriteRune(ch)
		l.advance()
	}
	return l.emit(token.Comment, b.String())
}

func (l *Lexer) lexBlockComment() (token.Token, error) {
	l.advance()
	l.advance()
	var b strings.Builder
	for {
		ch, ok := l.current()
		if !ok {
			return token.Token{}, l.errorAtStart("unterminated block comment")
		}
		if ch == '*' && l.peek(1) == '/' {
			l.advance()
			l.advance()
			return l.emit(token.BlockComment, b.String()), nil
		}
		b.WriteRune(ch)
		l.advance()
	}
}

func (l *Lexer) lexString(quote rune) (token.Token, error) {
	l.advance()
	var b strings.Builder
	for {
		ch, ok := l.current()
		if !ok || ch == '\n' || ch == '\r' {
			return token.Token{}, l.errorAtStart("unterminated string literal")
		}
		if ch == quote {
			l.advance()
			return l.emit(token.String, b.String()), nil
		}
		if ch == '\\' {
			l.advance()
			esc, ok := l.current()
			if !ok {
				return token.Token{}, l.errorAtStart("unterminated string literal")
			}
			writeEscape(&b, esc)
			l.advance()
			continue
		}
		b.WriteRune(ch)
		l.advance()
	}
}

func writeEscape(b *strings.Builder, esc rune) {
	switch esc {
	case 'n':
		b.WriteRune('\n')
	case 't':
		b.WriteRune('\t')
	case 'r':
		b.WriteRune('\r')
	case '0':
		b.WriteRune(0)
	case '\\', '\'', '"', '`', '$':
		b.WriteRune(esc)
	default:
		b.WriteRune('\\')
		b.WriteRune(esc)
	}
}

func (l *Lexer) lexTemplate() (token.Token, error) {
	l.advance()
	var parts []token.Token
	var b strings.Builder
	segStart := l.position()

	flush := func() {
		if b.Len() == 0 {
			return
		}
		parts = append(parts, token.Token{Kind: token.String, Text: b.String(), Pos: segStart})
		b.Reset()
	}

	for {
		ch, ok := l.current()
		if !ok {
			return token.Token{}, l.errorAtStart("unterminated template literal")
		}
		switch {
		case ch == '`':
			flush()
			l.advance()
			return l.emitParts(token.TemplateString, parts), nil
		case ch == '\\':
			if b.Len() == 0 {
				segStart = l.position()
			}
			l.advance()
			esc, ok := l.current()
			if !ok {
				return token.Token{}, l.errorAtStart("unterminated template literal")
			}
			writeEscape(&b, esc)
			l.advance()
		case ch == '$' && l.peek(1) == '{':
			flush()
			expr, err := l.lexInterpolation()
			if err != nil {
				return token.Token{}, err
			}
			parts = append(parts, expr)
			segStart = l.position()
		default:
			if b.Len() == 0 {
				segStart = l.position()
			}
			b.WriteRune(ch)
			l.advance()
		}
	}
}

// lexInterpolation lexes a `${...}` span recursively into a TemplateExpr.
func (l *Lexer) lexInterpolation() (token.Token, error) {
	exprPos := l.position()
	l.advance()
	l.advance()

	inner := l.sub(0)
	closing, err := l.skipBalanced()
	if err != nil {
		return token.Token{}, &LexError{
			Message: err.Error(),
			Line:    exprPos.Line,
			Column:  exprPos.Column,
			Offset:  exprPos.Offset,
		}
	}
	inner.end = closing

	tokens, err := inner.Tokenize()
	if err != nil {
		return token.Token{}, err
	}
	// The nested stream ends at the closing brace; its EOF is not a part.
	tokens = tokens[:len(tokens)-1]
	l.advance()
	return token.Token{Kind: token.TemplateExpr, Parts: tokens, Pos: exprPos}, nil
}

// skipBalanced advances to the `}` closing the current interpolation and
// returns its index. Braces inside quoted text do not count.
func (l *Lexer) skipBalanced() (int, error) {
	depth := 1
	var quote rune
	for {
		ch, ok := l.current()
		if !ok {
			return 0, fmt.Errorf("unterminated template interpolation")
		}
		switch {
		case quote != 0:
			if ch == '\\' {
				l.advance()
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'' || ch == '`':
			quote = ch
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return l.pos, nil
			}
		}
		l.advance()
	}
}

func (l *Lexer) consumeNewline() {
	ch, _ := l.current()
	l.advance()
	if ch == '\r' {
		if next, ok := l.current(); ok && next == '\n' {
			l.advance()
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.current()
		if !ok {
			return
		}
		switch ch {
		case ' ', '\t', '\f', '\v', '\uFEFF':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) current() (rune, bool) {
	if l.pos < l.end {
		return l.src[l.pos], true
	}
	return 0, false
}

func (l *Lexer) peek(n int) rune {
	if l.pos+n < l.end {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *Lexer) hasPrefix(text string) bool {
	i := 0
	for _, r := range text {
		if l.pos+i >= l.end || l.src[l.pos+i] != r {
			return false
		}
		i++
	}
	return true
}

func (l *Lexer) advance() {
	ch, ok := l.current()
	if !ok {
		return
	}
	l.offset += l.widths[l.pos]
	l.pos++
	if ch == '\n' || (ch == '\r' && l.peek(0) != '\n') {
		l.line++
		l.column = 1
		return
	}
	l.column++
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.offset}
}

func (l *Lexer) markStart() {
	l.start = l.position()
}

func (l *Lexer) emit(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text, Pos: l.start}
}

func (l *Lexer) emitParts(kind token.Kind, parts []token.Token) token.Token {
	return token.Token{Kind: kind, Parts: parts, Pos: l.start}
}

func (l *Lexer) errorf(format string, args ...any) *LexError {
	return &LexError{
		Message: fmt.Sprintf(format, args...),
		Line:    l.line,
		Column:  l.column,
		Offset:  l.offset,
	}
}

func (l *Lexer) errorAtStart(message string) *LexError {
	return &LexError{
		Message: message,
		Line:    l.start.Line,
		Column:  l.start.Column,
		Offset:  l.start.Offset,
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
