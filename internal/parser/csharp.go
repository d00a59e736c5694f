package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	csharp "github.com/smacker/go-tree-sitter/csharp"
)

// newCSharpParser creates a tree-sitter parser configured for C#.
func newCSharpParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())
	return parser, nil
}
