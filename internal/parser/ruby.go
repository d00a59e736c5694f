package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// newRubyParser creates a tree-sitter parser configured for Ruby.
func newRubyParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(ruby.GetLanguage())
	return parser, nil
}
