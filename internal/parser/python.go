package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// newPythonParser creates a tree-sitter parser configured for Python.
func newPythonParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return parser, nil
}
