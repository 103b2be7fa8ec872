package interpreter

import (
	"log/slog"

	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

func (ev *evaluator) declaration() error {
	keyword := ev.next()
	mutable := keyword.Kind != token.Const
	ev.skipComments()
	target := ev.peek()
	switch target.Kind {
	case token.Identifier:
	case token.LeftBrace, token.LeftBracket:
		return syntaxErrorf(target.Pos, "destructuring declarations are not supported")
	default:
		return syntaxErrorf(target.Pos, "expected identifier after %s", declarationKeyword(keyword.Kind))
	}
	ev.pos++
	name := target.Text

	var value runtime.Value = runtime.UndefinedValue{}
	ev.skipComments()
	next := ev.peek()
	switch {
	case next.Kind == token.Assign:
		ev.pos++
		val, err := ev.nested(ev.collectValueTokens())
		if err != nil {
			return err
		}
		value = val
	case next.IsTerminator():
		if !mutable {
			return syntaxErrorf(next.Pos, "missing initializer in const declaration '%s'", name)
		}
		ev.collectValueTokens()
	default:
		return syntaxErrorf(next.Pos, "expected '=' after '%s'", name)
	}

	bound := ev.interp.bindable(value)
	ev.scope.Declare(name, bound, mutable)
	ev.interp.logger.Debug("declare",
		slog.String("name", name),
		slog.String("keyword", declarationKeyword(keyword.Kind)),
		slog.String("kind", bound.Kind().String()),
		slog.Int("depth", ev.scope.Depth()))
	return nil
}

func declarationKeyword(kind token.Kind) string {
	switch kind {
	case token.Const:
		return "const"
	case token.Let:
		return "let"
	default:
		return "var"
	}
}

// functionLiteral handles `function [name](params) { body }` in both
// statement and value position. A name is bound in the current scope.
func (ev *evaluator) functionLiteral() error {
	ev.next()
	ev.skipComments()
	name := ""
	if ev.peek().Kind == token.Identifier {
		name = ev.next().Text
		ev.skipComments()
	}
	open := ev.peek()
	if open.Kind != token.LeftParen {
		return syntaxErrorf(open.Pos, "expected '(' in function declaration")
	}
	ev.pos++
	params, err := ev.parameters(open)
	if err != nil {
		return err
	}
	body, err := ev.block()
	if err != nil {
		return err
	}

	fn := &runtime.FunctionValue{Name: name, Params: params, Body: body, Closure: ev.scope}
	var result runtime.Value = fn
	if name != "" {
		result = ev.interp.bindable(fn)
		ev.scope.Declare(name, result, true)
		ev.interp.logger.Debug("declare",
			slog.String("name", name),
			slog.String("keyword", "function"),
			slog.Int("params", len(params)),
			slog.Int("depth", ev.scope.Depth()))
	}
	ev.result = result
	return nil
}

func (ev *evaluator) parameters(open token.Token) ([]string, error) {
	var params []string
	for {
		ev.skipTrivia()
		tok := ev.next()
		switch tok.Kind {
		case token.RightParen:
			return params, nil
		case token.Identifier:
			params = append(params, tok.Text)
		case token.EOF:
			return nil, syntaxErrorf(open.Pos, "unterminated parameter list")
		default:
			return nil, syntaxErrorf(tok.Pos, "unexpected %s in parameter list", tok.Kind)
		}
		ev.skipTrivia()
		switch sep := ev.peek(); sep.Kind {
		case token.Comma:
			ev.pos++
		case token.RightParen:
		case token.EOF:
			return nil, syntaxErrorf(open.Pos, "unterminated parameter list")
		default:
			return nil, syntaxErrorf(sep.Pos, "expected ',' or ')' in parameter list")
		}
	}
}

// block returns the tokens between a `{` and its matching `}`.
func (ev *evaluator) block() ([]token.Token, error) {
	ev.skipTrivia()
	open := ev.peek()
	if open.Kind != token.LeftBrace {
		return nil, syntaxErrorf(open.Pos, "expected '{' to open function body")
	}
	ev.pos++
	start := ev.pos
	depth := 1
	for ; ev.pos < len(ev.tokens); ev.pos++ {
		switch ev.tokens[ev.pos].Kind {
		case token.LeftBrace:
			depth++
		case token.RightBrace:
			depth--
			if depth == 0 {
				body := ev.tokens[start:ev.pos]
				ev.pos++
				return body, nil
			}
		case token.EOF:
			return nil, syntaxErrorf(open.Pos, "unterminated function body")
		}
	}
	return nil, syntaxErrorf(open.Pos, "unterminated function body")
}
