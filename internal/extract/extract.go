// Package extract walks a parsed AST and produces the semantic entities
// defined by the spec's data model: functions, methods, structs,
// classes, enums, traits, interfaces and type aliases, each with a
// stable id, line range, body text, structural hash and syntactically
// extracted outgoing references.
package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sirupsen/logrus"

	"github.com/entitytriage/triage/internal/model"
	"github.com/entitytriage/triage/internal/parser"
)

// FromSource parses source in the given language and extracts its
// entities, keyed by filePath for id construction. Parse failures
// propagate to the caller, which per §4.1 must degrade to an empty
// entity set rather than treat the error as fatal.
func FromSource(filePath string, lang parser.Language, source []byte) ([]model.Entity, error) {
	p, err := parser.NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	result, err := p.Parse(source)
	if err != nil {
		logrus.WithField("file", filePath).WithError(err).Warn("parse failed, degrading to empty entity set")
		return nil, err
	}
	defer result.Close()

	kindMap := kindMapFor(string(lang))
	if kindMap == nil {
		return nil, nil
	}

	var entities []model.Entity
	var walk func(node *sitter.Node, enclosing string)
	walk = func(node *sitter.Node, enclosing string) {
		if node == nil {
			return
		}

		kind, isEntity := kindMap[node.Type()]
		nextEnclosing := enclosing
		if isEntity {
			name := entityName(node, source)
			if name == "" {
				logrus.WithFields(logrus.Fields{
					"file": filePath,
					"kind": kind,
					"line": node.StartPoint().Row + 1,
				}).Warn("entity node had no discoverable name, dropping it")
			} else {
				qualified := name
				if enclosing != "" {
					qualified = enclosing + "." + name
				}

				body := node.Content(source)
				entities = append(entities, model.Entity{
					ID:             model.EntityID(filePath, kind, qualified),
					Name:           qualified,
					Kind:           kind,
					FilePath:       filePath,
					StartLine:      node.StartPoint().Row + 1,
					EndLine:        node.EndPoint().Row + 1,
					BodyText:       body,
					StructuralHash: structuralHash(body),
					OutgoingRefs:   outgoingRefs(body, qualified),
				})

				if kind == model.KindClass || kind == model.KindStruct || kind == model.KindInterface || kind == model.KindTrait {
					nextEnclosing = name
				}
			}
		}

		count := int(node.ChildCount())
		for i := 0; i < count; i++ {
			walk(node.Child(i), nextEnclosing)
		}
	}

	walk(result.Root, "")
	return entities, nil
}

// identifierNodeTypes are the tree-sitter node types that denote a bare
// identifier across the supported grammars.
var identifierNodeTypes = map[string]struct{}{
	"identifier":        {},
	"type_identifier":   {},
	"field_identifier":  {},
	"property_identifier": {},
	"constant":          {},
}

// entityName finds the declared name of an entity node by scanning its
// direct children for the first identifier-shaped child, then searching
// each child's subtree the same way (some grammars nest the name deeper,
// e.g. behind a declarator), and finally falling back to a regex over
// the node's own text.
func entityName(node *sitter.Node, source []byte) string {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(i)
		if _, ok := identifierNodeTypes[child.Type()]; ok {
			return child.Content(source)
		}
	}

	for i := 0; i < count; i++ {
		if name := entityName(node.Child(i), source); name != "" {
			return name
		}
	}

	return regexName(node.Content(source))
}
