package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// blockCommentPattern strips /* */ block comments and Python-style
// triple-quoted docstrings; both can span multiple lines.
var blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/|""".*?"""`)

// lineCommentPattern strips a trailing // or # line comment. The
// pattern is applied one line at a time so it never runs past a
// newline.
var lineCommentPattern = regexp.MustCompile(`(//|#).*$`)

// whitespacePattern collapses any run of whitespace to a single space.
var whitespacePattern = regexp.MustCompile(`\s+`)

// normalizeBody strips comments and collapses whitespace so two bodies
// that differ only in formatting normalize to the same string. A line
// whose comment marker is "#[" is left alone: that's a Rust attribute,
// not a comment.
func normalizeBody(body string) string {
	stripped := blockCommentPattern.ReplaceAllString(body, "")

	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		if strings.Contains(line, "#[") {
			continue
		}
		lines[i] = lineCommentPattern.ReplaceAllString(line, "")
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(strings.Join(lines, "\n"), " "))
}

// structuralHash computes the entity's structural_hash: a normalization
// of body that ignores comments, whitespace and formatting, truncated
// to a short hex digest.
func structuralHash(body string) string {
	sum := sha256.Sum256([]byte(normalizeBody(body)))
	return hex.EncodeToString(sum[:])[:16]
}

// identifierPattern matches a bare identifier token across all
// supported grammars (ASCII identifier rules are a superset-safe
// approximation for every language in the registry).
var identifierPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)

// keywords are tokens that look like identifiers but never resolve to
// an entity; excluding them keeps outgoing_refs from being dominated by
// control-flow noise across languages.
var keywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "while": {}, "return": {}, "break": {},
	"continue": {}, "switch": {}, "case": {}, "default": {}, "do": {},
	"func": {}, "function": {}, "def": {}, "fn": {}, "class": {}, "struct": {},
	"interface": {}, "enum": {}, "trait": {}, "impl": {}, "type": {},
	"public": {}, "private": {}, "protected": {}, "static": {}, "const": {},
	"let": {}, "var": {}, "pub": {}, "mut": {}, "new": {}, "this": {}, "self": {},
	"true": {}, "false": {}, "nil": {}, "null": {}, "none": {}, "None": {},
	"import": {}, "package": {}, "export": {}, "from": {}, "as": {}, "use": {},
	"try": {}, "catch": {}, "finally": {}, "throw": {}, "throws": {}, "raise": {},
	"async": {}, "await": {}, "yield": {}, "in": {}, "of": {}, "is": {}, "not": {},
	"and": {}, "or": {}, "end": {}, "module": {}, "namespace": {}, "using": {},
}

// outgoingRefs extracts unresolved identifier references syntactically
// from body, dropping keywords, the entity's own (qualified) name, and
// duplicates. Resolution (if any) happens in the graph package.
func outgoingRefs(body, ownName string) []string {
	seen := make(map[string]struct{})
	var refs []string

	for _, tok := range identifierPattern.FindAllString(body, -1) {
		if _, isKeyword := keywords[tok]; isKeyword {
			continue
		}
		if tok == ownName {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		refs = append(refs, tok)
	}

	return refs
}

// regexName falls back to a syntactic scan for the first identifier
// token that follows a declaration keyword, for grammars whose name
// node isn't a direct identifier-shaped child.
var declKeywordPattern = regexp.MustCompile(`\b(?:function|func|def|class|struct|enum|trait|interface|type|fn)\s+([A-Za-z_][A-Za-z0-9_]*)`)

func regexName(text string) string {
	m := declKeywordPattern.FindStringSubmatch(text)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
