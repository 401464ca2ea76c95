package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"pyrite/interpreter-go/pkg/driver"
	"pyrite/interpreter-go/pkg/interpreter"
	"pyrite/interpreter-go/pkg/runtime"
)

const (
	replPrompt             = ">>> "
	replContinuationPrompt = "... "
)

func (c *cli) runRepl(args []string, flags globalFlags) int {
	if len(args) > 0 {
		fmt.Fprintf(c.stderr, "pyrite repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	cfg, logger, ok := c.loadSettings(".", flags)
	if !ok {
		return 1
	}
	session := newReplSession(c.stdout, interpreter.New(interpreter.Options{
		Stdout:       c.stdout,
		Logger:       &logger,
		MaxCallDepth: cfg.MaxCallDepth,
	}))

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(session.complete)

	historyPath := cfg.HistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			logger.Warn().Err(err).Str("history", historyPath).Msg("history not loaded")
		}
		f.Close()
	}
	defer func() {
		f, err := os.Create(historyPath)
		if err != nil {
			logger.Warn().Err(err).Str("history", historyPath).Msg("history not saved")
			return
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			logger.Warn().Err(err).Str("history", historyPath).Msg("history not saved")
		}
	}()

	fmt.Fprintln(c.stdout, cliToolVersion)
	fmt.Fprintln(c.stdout, "Ctrl+D exits, Ctrl+C clears the current input")

	for {
		prompt := replPrompt
		if session.pending() {
			prompt = replContinuationPrompt
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				session.reset()
				fmt.Fprintln(c.stdout, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.stdout)
				return 0
			}
			fmt.Fprintf(c.stderr, "error reading input: %v\n", err)
			return 1
		}
		if source, done := session.feed(input); done && source != "" {
			line.AppendHistory(source)
		}
	}
}

// replSession accumulates input lines and evaluates each complete entry in
// a persistent interpreter.
type replSession struct {
	out    io.Writer
	interp *interpreter.Interpreter
	lines  []string
}

func newReplSession(out io.Writer, interp *interpreter.Interpreter) *replSession {
	return &replSession{out: out, interp: interp}
}

func (r *replSession) pending() bool {
	return len(r.lines) > 0
}

func (r *replSession) reset() {
	r.lines = r.lines[:0]
}

// feed consumes one input line. A line ending in ':' opens a block that
// continues until an empty line. It returns the evaluated source and true
// once an entry is complete.
func (r *replSession) feed(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if !r.pending() {
		if trimmed == "" {
			return "", false
		}
		r.lines = append(r.lines, input)
		if strings.HasSuffix(trimmed, ":") {
			return "", false
		}
	} else if trimmed != "" {
		r.lines = append(r.lines, input)
		return "", false
	}
	source := strings.Join(r.lines, "\n")
	r.reset()
	r.evaluate(source)
	return source, true
}

func (r *replSession) evaluate(source string) {
	module, err := driver.ParseSource([]byte(source + "\n"))
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	val, err := r.interp.EvaluateModule(module)
	if err != nil {
		fmt.Fprintf(r.out, "runtime error: %v\n", err)
		return
	}
	if val != nil && val.Kind() != runtime.KindNone {
		fmt.Fprintln(r.out, interpreter.Display(val))
	}
}

// complete offers builtins, defined functions and globals matching the
// identifier under the cursor.
func (r *replSession) complete(line string) []string {
	start := len(line)
	for start > 0 && isIdentByte(line[start-1]) {
		start--
	}
	prefix := line[start:]
	if prefix == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(names []string) {
		for _, name := range names {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, line[:start]+name)
		}
	}
	add(interpreter.BuiltinNames())
	add(r.interp.Functions().Names())
	add(r.interp.Scope().Globals())
	add([]string{"def", "return", "while", "break", "continue", "pass", "True", "False", "None", "and", "or", "not", "elif", "else"})
	sort.Strings(out)
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
