// Package classify assigns the ConGra (Text/Syntax/Functional) taxonomy to
// a semantic change by diffing before/after content line by line.
package classify

import (
	"strings"

	"github.com/entitytriage/triage/internal/model"
)

// Change classifies a semantic change using the ConGra taxonomy.
func Change(c *model.SemanticChange) model.ChangeClassification {
	before := derefOrEmpty(c.BeforeContent)
	after := derefOrEmpty(c.AfterContent)

	// Added or deleted entities are always functional.
	if before == "" || after == "" {
		return model.ClassFunctional
	}

	// structural_change == Some(false) means purely cosmetic.
	if c.StructuralChange != nil && !*c.StructuralChange {
		return model.ClassText
	}

	beforeSet := trimmedNonEmptyLineSet(before)
	afterSet := trimmedNonEmptyLineSet(after)

	var hasText, hasSyntax, hasFunctional bool

	for line := range beforeSet {
		if _, ok := afterSet[line]; !ok {
			categorizeLine(line, &hasText, &hasSyntax, &hasFunctional)
		}
	}
	for line := range afterSet {
		if _, ok := beforeSet[line]; !ok {
			categorizeLine(line, &hasText, &hasSyntax, &hasFunctional)
		}
	}

	if !hasText && !hasSyntax && !hasFunctional {
		if strings.TrimSpace(before) != strings.TrimSpace(after) {
			hasFunctional = true
		} else {
			hasText = true // whitespace-only
		}
	}

	switch {
	case hasText && hasSyntax && hasFunctional:
		return model.ClassTextSyntaxFunctional
	case hasText && hasSyntax:
		return model.ClassTextSyntax
	case hasText && hasFunctional:
		return model.ClassTextFunctional
	case hasSyntax && hasFunctional:
		return model.ClassSyntaxFunctional
	case hasSyntax:
		return model.ClassSyntax
	case hasFunctional:
		return model.ClassFunctional
	default:
		return model.ClassText
	}
}

func categorizeLine(line string, hasText, hasSyntax, hasFunctional *bool) {
	switch {
	case isCommentLine(line):
		*hasText = true
	case isSyntaxLine(line):
		*hasSyntax = true
	default:
		*hasFunctional = true
	}
}

func isCommentLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "#["):
		return false
	case strings.HasPrefix(line, "//"),
		strings.HasPrefix(line, "/*"),
		strings.HasPrefix(line, "*"),
		strings.HasPrefix(line, "///"),
		strings.HasPrefix(line, "/**"),
		strings.HasPrefix(line, `"""`),
		strings.HasPrefix(line, "#"):
		return true
	default:
		return false
	}
}

var syntaxPrefixes = []string{
	"fn ", "pub fn ", "pub(crate) fn ", "async fn ", "pub async fn ",
	"def ", "class ",
	"struct ", "pub struct ",
	"enum ", "pub enum ",
	"trait ", "pub trait ",
	"impl ",
	"interface ",
	"type ",
	"function ", "export function ", "export default ", "export ",
}

var syntaxTokens = []string{
	"->", "=> ", ": &", ": Vec<", ": Option<", ": Result<",
}

func isSyntaxLine(line string) bool {
	for _, p := range syntaxPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	for _, tok := range syntaxTokens {
		if strings.Contains(line, tok) {
			return true
		}
	}
	return false
}

func trimmedNonEmptyLineSet(content string) map[string]struct{} {
	lines := strings.Split(content, "\n")
	set := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
