package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// newPHPParser creates a tree-sitter parser configured for PHP.
func newPHPParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())
	return parser, nil
}
