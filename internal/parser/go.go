package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// newGoParser creates a tree-sitter parser configured for Go.
func newGoParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	return parser, nil
}
