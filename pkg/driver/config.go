package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"pyrite/interpreter-go/pkg/interpreter"
)

// ConfigFileName is discovered by walking up from the program's directory.
const ConfigFileName = "pyrite.yml"

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds session settings from pyrite.yml.
type Config struct {
	Path         string
	MaxCallDepth int
	LogLevel     string
	LogFormat    string
	HistoryFile  string
}

type configFile struct {
	MaxCallDepth *int   `yaml:"max_call_depth"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	HistoryFile  string `yaml:"history_file"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no pyrite.yml is found.
func DefaultConfig() *Config {
	return &Config{
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
		LogLevel:     zerolog.LevelWarnValue,
		LogFormat:    LogFormatConsole,
		HistoryFile:  "~/.pyrite_history",
	}
}

// LoadConfig parses and validates a config file. Omitted keys keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := DefaultConfig()
	cfg.Path = absPath
	if raw.MaxCallDepth != nil {
		cfg.MaxCallDepth = *raw.MaxCallDepth
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.LogFormat != "" {
		cfg.LogFormat = raw.LogFormat
	}
	if raw.HistoryFile != "" {
		cfg.HistoryFile = raw.HistoryFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive (got %d)", c.MaxCallDepth))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_format must be %q or %q (got %q)", LogFormatConsole, LogFormatJSON, c.LogFormat))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath expands a leading ~ in HistoryFile.
func (c *Config) HistoryPath() string {
	path := c.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// FindConfig walks up from start looking for pyrite.yml.
func FindConfig(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolveConfig loads the pyrite.yml governing start, or the defaults when
// there is none.
func ResolveConfig(start string) (*Config, error) {
	path, ok := FindConfig(start)
	if !ok {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
