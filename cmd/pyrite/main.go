package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"pyrite/interpreter-go/pkg/driver"
	"pyrite/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "pyrite 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr}
	return c.run(args)
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
}

// globalFlags hold command-line overrides for pyrite.yml settings.
type globalFlags struct {
	logLevel  string
	logFormat string
	maxDepth  int
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		c.printUsage()
		return 1
	}

	flags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	if len(remaining) == 0 {
		c.printUsage()
		return 1
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		c.printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return 0
	case "run":
		return c.runProgram(remaining[1:], flags)
	case "ast":
		return c.printAST(remaining[1:])
	case "repl":
		return c.runRepl(remaining[1:], flags)
	default:
		return c.runProgram(remaining, flags)
	}
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--log-level", "--log-format", "--max-depth":
		default:
			remaining = append(remaining, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("%s expects a value", name)
			}
			value = args[i+1]
			i++
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return flags, nil, fmt.Errorf("%s expects a value", name)
		}
		switch name {
		case "--log-level":
			flags.logLevel = strings.ToLower(value)
		case "--log-format":
			flags.logFormat = strings.ToLower(value)
		case "--max-depth":
			depth, err := strconv.Atoi(value)
			if err != nil || depth <= 0 {
				return flags, nil, fmt.Errorf("--max-depth expects a positive integer (got '%s')", value)
			}
			flags.maxDepth = depth
		}
	}
	return flags, remaining, nil
}

// loadSettings resolves pyrite.yml from dir and applies flag overrides.
func (c *cli) loadSettings(dir string, flags globalFlags) (*driver.Config, zerolog.Logger, bool) {
	cfg, err := driver.ResolveConfig(dir)
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load config: %v\n", err)
		return nil, zerolog.Nop(), false
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	if flags.maxDepth > 0 {
		cfg.MaxCallDepth = flags.maxDepth
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, zerolog.Nop(), false
	}
	logger, err := driver.NewLogger(c.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, zerolog.Nop(), false
	}
	if cfg.Path != "" {
		logger.Debug().Str("config", cfg.Path).Msg("loaded config")
	}
	return cfg, logger, true
}

func (c *cli) runProgram(args []string, flags globalFlags) int {
	if len(args) != 1 {
		if len(args) == 0 {
			fmt.Fprintln(c.stderr, "pyrite run expects a program file")
		} else {
			fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		}
		return 1
	}
	path := args[0]
	cfg, logger, ok := c.loadSettings(filepath.Dir(path), flags)
	if !ok {
		return 1
	}

	module, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	logger.Debug().Str("path", path).Int("statements", len(module.Body)).Msg("program loaded")

	interp := interpreter.New(interpreter.Options{
		Stdout:       c.stdout,
		Logger:       &logger,
		MaxCallDepth: cfg.MaxCallDepth,
	})
	if _, err := interp.EvaluateModule(module); err != nil {
		fmt.Fprintf(c.stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) printAST(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "pyrite ast expects exactly one program file")
		return 1
	}
	module, err := driver.LoadProgram(args[0])
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	if err := driver.EncodeModule(c.stdout, module); err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	return 0
}
