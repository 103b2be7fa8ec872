package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/MMinusOne/endium/pkg/interpreter"
	"github.com/MMinusOne/endium/pkg/lexer"
	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

const (
	historyFile = ".endium_history"
	promptMain  = "> "
	promptCont  = "... "
)

func (c *cli) repl(args []string) int {
	opts, rest, ok := c.parseFlags("repl", args)
	if !ok {
		return exitUsage
	}
	if len(rest) != 0 {
		fmt.Fprintln(c.stderr, "endium repl takes no arguments")
		return exitUsage
	}
	cfg, ok := c.loadConfig(opts, ".")
	if !ok {
		return exitConfigError
	}
	interp := c.newInterpreter(cfg)

	if !c.isTerminal() {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			fmt.Fprintf(c.stderr, "read stdin: %v\n", err)
			return exitUsage
		}
		return c.execute(interp, cfg, string(data), "<stdin>")
	}
	return c.interactive(interp)
}

func (c *cli) interactive(interp *interpreter.Interpreter) int {
	fmt.Fprintf(c.stdout, "%s (type :help for commands)\n", cliToolVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := resolveHistoryPath()
	if err != nil {
		fmt.Fprintf(c.stderr, "warning: history disabled: %v\n", err)
	} else {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		code, ok := readChunk(ln)
		if !ok {
			fmt.Fprintln(c.stdout)
			return exitOK
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if c.replCommand(interp, trimmed) {
				return exitOK
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		c.evalInteractive(interp, code)
	}
}

// readChunk reads lines until the input no longer looks incomplete.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C (liner.ErrPromptAborted) discards the pending chunk.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// needsMoreInput reports whether src ends inside a template literal, a
// block comment or an unclosed bracket.
func needsMoreInput(src string) bool {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		var lexErr *lexer.LexError
		if !errors.As(err, &lexErr) {
			return false
		}
		switch lexErr.Message {
		case "unterminated template literal", "unterminated template interpolation", "unterminated block comment":
			return true
		}
		return false
	}
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LeftParen, token.LeftBrace, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBrace, token.RightBracket:
			depth--
		}
	}
	return depth > 0
}

// replCommand handles `:`-prefixed input and reports whether to exit.
func (c *cli) replCommand(interp *interpreter.Interpreter, cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":vars":
		globals, err := interp.Globals()
		if err != nil {
			fmt.Fprintf(c.stderr, "%v\n", err)
			return false
		}
		for _, g := range globals {
			keyword := "let"
			if !g.Mutable {
				keyword = "const"
			}
			fmt.Fprintf(c.stdout, "%s %s = %s\n", keyword, g.Name, g.Value)
		}
	case ":help":
		fmt.Fprintln(c.stdout, ":vars  list global bindings")
		fmt.Fprintln(c.stdout, ":quit  leave the REPL")
	default:
		fmt.Fprintln(c.stdout, "unknown command. Type :quit to exit.")
	}
	return false
}

func (c *cli) evalInteractive(interp *interpreter.Interpreter, code string) {
	tokens, err := lexer.Tokenize(code)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return
	}
	val, err := interp.Run(tokens)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return
	}
	if val == nil || val.Kind() == runtime.KindUndefined {
		return
	}
	text, err := interp.Inspect(val)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return
	}
	fmt.Fprintln(c.stdout, text)
}

// resolveHistoryPath honours ENDIUM_HISTORY, defaulting to
// ~/.endium_history.
func resolveHistoryPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv("ENDIUM_HISTORY")); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve ENDIUM_HISTORY %q: %w", path, err)
		}
		return abs, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(home, historyFile), nil
}
