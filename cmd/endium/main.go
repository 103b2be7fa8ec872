package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/MMinusOne/endium/pkg/driver"
	"github.com/MMinusOne/endium/pkg/interpreter"
	"github.com/MMinusOne/endium/pkg/lexer"
	"github.com/MMinusOne/endium/pkg/runtime"
	"github.com/MMinusOne/endium/pkg/token"
)

const cliToolVersion = "endium 0.1.0-dev"

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitNotFound
	exitLexError
	exitRuntimeError
	exitConfigError
)

type cli struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
}

func main() {
	c := &cli{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.printUsage()
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h", "help":
		c.printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return exitOK
	case "run":
		return c.runFile(args[1:])
	case "tokens":
		return c.dumpTokens(args[1:])
	case "repl":
		return c.repl(args[1:])
	default:
		return c.runFile(args)
	}
}

type cliOptions struct {
	config      string
	trace       bool
	stopOnError bool
}

// parseFlags returns the remaining positional arguments, or an exit code
// when parsing fails.
func (c *cli) parseFlags(name string, args []string) (cliOptions, []string, bool) {
	var opts cliOptions
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&opts.config, "config", "", "path to endium.yml")
	fs.BoolVar(&opts.trace, "trace", false, "log evaluation steps to stderr")
	fs.BoolVar(&opts.stopOnError, "stop-on-error", false, "stop at the first failing statement")
	if err := fs.Parse(args); err != nil {
		return opts, nil, false
	}
	return opts, fs.Args(), true
}

func (c *cli) loadConfig(opts cliOptions, start string) (*driver.Config, bool) {
	cfg, err := driver.ResolveConfig(opts.config, start)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return nil, false
	}
	if opts.trace {
		cfg.Trace = true
	}
	if opts.stopOnError {
		cfg.StopOnError = true
	}
	return cfg, true
}

func (c *cli) newInterpreter(cfg *driver.Config) *interpreter.Interpreter {
	return interpreter.NewWithOptions(interpreter.Options{
		MaxDepth:    cfg.MaxDepth,
		StopOnError: cfg.StopOnError,
		Logger:      c.traceLogger(cfg),
	})
}

func (c *cli) traceLogger(cfg *driver.Config) *slog.Logger {
	if !cfg.Trace {
		return nil
	}
	handlerOpts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if cfg.LogFormat == driver.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(c.stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(c.stderr, handlerOpts))
}

func (c *cli) readSource(path string) (string, int) {
	src, err := driver.LoadSource(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		if errors.Is(err, driver.ErrSourceNotFound) {
			return "", exitNotFound
		}
		return "", exitUsage
	}
	return src, exitOK
}

func (c *cli) runFile(args []string) int {
	opts, rest, ok := c.parseFlags("run", args)
	if !ok {
		return exitUsage
	}
	if len(rest) != 1 {
		fmt.Fprintln(c.stderr, "endium run requires exactly one source file")
		return exitUsage
	}
	path := rest[0]
	src, code := c.readSource(path)
	if code != exitOK {
		return code
	}
	cfg, ok := c.loadConfig(opts, filepath.Dir(path))
	if !ok {
		return exitConfigError
	}
	return c.execute(c.newInterpreter(cfg), cfg, src, path)
}

// execute tokenizes and runs one program, printing its result unless it is
// undefined.
func (c *cli) execute(interp *interpreter.Interpreter, cfg *driver.Config, src, name string) int {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", name, err)
		return exitLexError
	}
	if cfg.PrintTokens {
		writeTokens(c.stderr, tokens)
	}

	val, runErr := interp.Run(tokens)
	if runErr == nil || !cfg.StopOnError {
		if val != nil && val.Kind() != runtime.KindUndefined {
			text, err := interp.Stringify(val)
			if err != nil {
				fmt.Fprintf(c.stderr, "%s: %v\n", name, err)
				return exitRuntimeError
			}
			fmt.Fprintln(c.stdout, text)
		}
	}
	if runErr != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", name, runErr)
		return exitRuntimeError
	}
	return exitOK
}

func (c *cli) dumpTokens(args []string) int {
	_, rest, ok := c.parseFlags("tokens", args)
	if !ok {
		return exitUsage
	}
	if len(rest) != 1 {
		fmt.Fprintln(c.stderr, "endium tokens requires exactly one source file")
		return exitUsage
	}
	src, code := c.readSource(rest[0])
	if code != exitOK {
		return code
	}
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		fmt.Fprintf(c.stderr, "%s: %v\n", rest[0], err)
		return exitLexError
	}
	writeTokens(c.stdout, tokens)
	return exitOK
}

func writeTokens(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s %s\n", tok.Pos, tok)
	}
}

func (c *cli) printUsage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  endium [flags] <file>")
	fmt.Fprintln(c.stderr, "  endium run [flags] <file>")
	fmt.Fprintln(c.stderr, "  endium tokens <file>")
	fmt.Fprintln(c.stderr, "  endium repl [flags]")
	fmt.Fprintln(c.stderr, "Flags:")
	fmt.Fprintln(c.stderr, "  --config <path>  use this endium.yml instead of searching upward")
	fmt.Fprintln(c.stderr, "  --trace          log evaluation steps to stderr")
	fmt.Fprintln(c.stderr, "  --stop-on-error  stop at the first failing statement")
}
