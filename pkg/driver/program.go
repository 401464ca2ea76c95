package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pyrite/interpreter-go/pkg/ast"
	"pyrite/interpreter-go/pkg/parser"
)

// LoadProgram reads a program from disk. Python source (.py) goes through
// the tree-sitter front end; .yml, .yaml and .json files are syntax-tree
// documents.
func LoadProgram(path string) (*ast.Module, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".py":
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return ParseSource(source)
	case ".yml", ".yaml", ".json":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()
		module, err := DecodeModule(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return module, nil
	default:
		return nil, fmt.Errorf("unsupported program file %s (want .py, .yml, .yaml or .json)", path)
	}
}

// ParseSource parses Python-syntax source with a short-lived parser.
func ParseSource(source []byte) (*ast.Module, error) {
	p, err := parser.NewModuleParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseModule(source)
}
