package interpreter

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

// evaluator performs one forward scan over a token sequence. Nested spans
// (declaration right-hand sides, call arguments, template expressions,
// function bodies) each get their own evaluator and a child scope.
type evaluator struct {
	interp     *Interpreter
	scope      *runtime.Scope
	tokens     []token.Token
	pos        int
	result     runtime.Value
	depth      int
	inFunction bool
	recover    bool
}

func (i *Interpreter) newEvaluator(scope *runtime.Scope, tokens []token.Token, depth int) *evaluator {
	return &evaluator{
		interp: i,
		scope:  scope,
		tokens: tokens,
		result: runtime.UndefinedValue{},
		depth:  depth,
	}
}

func (ev *evaluator) run() (runtime.Value, error) {
	var errs []error
	for {
		tok := ev.peek()
		if tok.Kind == token.EOF {
			break
		}
		start := ev.pos
		if err := ev.statement(); err != nil {
			if _, ok := err.(returnSignal); ok {
				return ev.result, err
			}
			err = wrapAt(tok.Pos, err)
			if !ev.recover {
				return ev.result, err
			}
			ev.interp.logger.Debug("statement abandoned",
				slog.String("pos", tok.Pos.String()),
				slog.String("error", err.Error()))
			errs = append(errs, err)
			ev.pos = statementEnd(ev.tokens, start)
		}
	}
	return ev.result, errors.Join(errs...)
}

func (ev *evaluator) statement() error {
	tok := ev.peek()
	switch tok.Kind {
	case token.Const, token.Let, token.Var:
		return ev.declaration()
	case token.Function:
		return ev.functionLiteral()
	case token.Return:
		return ev.returnStatement()
	case token.Identifier:
		return ev.identifierStatement()
	case token.Increment, token.Decrement:
		return ev.prefixUpdate()
	case token.Number, token.BigNumber:
		ev.pos++
		val, err := parseNumber(tok)
		if err != nil {
			return err
		}
		ev.result = val
	case token.String:
		ev.pos++
		ev.result = runtime.NewString(tok.Text)
	case token.TemplateString:
		ev.pos++
		val, err := ev.template(tok)
		if err != nil {
			return err
		}
		ev.result = val
	case token.True:
		ev.pos++
		ev.result = runtime.BoolValue{Val: true}
	case token.False:
		ev.pos++
		ev.result = runtime.BoolValue{Val: false}
	case token.Null:
		ev.pos++
		ev.result = runtime.NullValue{}
	case token.Undefined:
		ev.pos++
		ev.result = runtime.UndefinedValue{}
	default:
		// Comments, terminators and operators without a handler.
		ev.pos++
	}
	return nil
}

func (ev *evaluator) returnStatement() error {
	tok := ev.next()
	if !ev.inFunction {
		return syntaxErrorf(tok.Pos, "return outside function")
	}
	val, err := ev.nested(ev.collectValueTokens())
	if err != nil {
		return err
	}
	return returnSignal{value: val}
}

// nested evaluates a span in a fresh child scope and returns its value.
func (ev *evaluator) nested(tokens []token.Token) (runtime.Value, error) {
	if ev.depth+1 > ev.interp.opts.MaxDepth {
		return nil, &runtime.RecursionLimitError{Limit: ev.interp.opts.MaxDepth}
	}
	ev.interp.logger.Debug("scope push", slog.Int("depth", ev.depth+1))
	child := ev.interp.newEvaluator(ev.scope.Extend(), tokens, ev.depth+1)
	return child.run()
}

func (ev *evaluator) template(tok token.Token) (runtime.Value, error) {
	var b strings.Builder
	for _, part := range tok.Parts {
		switch part.Kind {
		case token.String:
			b.WriteString(part.Text)
		case token.TemplateExpr:
			val, err := ev.nested(part.Parts)
			if err != nil {
				return nil, err
			}
			val, err = ev.interp.heap.Deref(val)
			if err != nil {
				return nil, err
			}
			b.WriteString(runtime.ToString(val))
		}
	}
	return runtime.NewString(b.String()), nil
}

func parseNumber(tok token.Token) (runtime.Value, error) {
	f, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &runtime.MalformedNumericLiteralError{Text: tok.Text}
	}
	return runtime.NumberValue{Val: f}, nil
}

//-----------------------------------------------------------------------------
// Cursor helpers
//-----------------------------------------------------------------------------

var eofToken = token.Token{Kind: token.EOF}

// peek returns the current token; running off the end reads as EOF so
// spans sliced out of a larger sequence need no terminator of their own.
func (ev *evaluator) peek() token.Token {
	return ev.peekAt(0)
}

func (ev *evaluator) peekAt(offset int) token.Token {
	idx := ev.pos + offset
	if idx >= len(ev.tokens) {
		if len(ev.tokens) > 0 {
			last := ev.tokens[len(ev.tokens)-1]
			return token.Token{Kind: token.EOF, Pos: last.Pos}
		}
		return eofToken
	}
	return ev.tokens[idx]
}

func (ev *evaluator) next() token.Token {
	tok := ev.peek()
	if ev.pos < len(ev.tokens) {
		ev.pos++
	}
	return tok
}

// skipComments steps over comment tokens without leaving the statement.
func (ev *evaluator) skipComments() {
	for ev.peek().IsTrivia() {
		ev.pos++
	}
}

func (ev *evaluator) skipTrivia() {
	for {
		tok := ev.peek()
		if tok.Kind != token.Newline && !tok.IsTrivia() {
			return
		}
		ev.pos++
	}
}

// collectValueTokens returns the tokens from the cursor up to the first
// Newline, Semicolon or EOF at bracket depth zero. The terminator is
// consumed but not included.
func (ev *evaluator) collectValueTokens() []token.Token {
	start := ev.pos
	end, next := spanEnd(ev.tokens, start)
	ev.pos = next
	return ev.tokens[start:end]
}

func statementEnd(tokens []token.Token, start int) int {
	_, next := spanEnd(tokens, start)
	if next <= start && start < len(tokens) {
		return start + 1
	}
	return next
}

// spanEnd finds the end of the span starting at start and the index just
// past its terminator. EOF is never consumed.
func spanEnd(tokens []token.Token, start int) (end, next int) {
	depth := 0
	for idx := start; idx < len(tokens); idx++ {
		switch tokens[idx].Kind {
		case token.LeftParen, token.LeftBrace, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBrace, token.RightBracket:
			if depth > 0 {
				depth--
			}
		case token.EOF:
			return idx, idx
		case token.Newline, token.Semicolon:
			if depth == 0 {
				return idx, idx + 1
			}
		}
	}
	return len(tokens), len(tokens)
}
