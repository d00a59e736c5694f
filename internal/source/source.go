// Package source decides whether a file path is source code and which
// language it is, by extension.
package source

import (
	"path/filepath"
	"strings"

	"github.com/entitytriage/triage/internal/parser"
)

// Extensions is the fixed set of file extensions the engine considers
// source code, independent of the broader alias set parser.Language
// dispatch accepts (e.g. ".h" parses as C but is not itself a
// top-level extension the loader walks for).
var Extensions = map[string]struct{}{
	".rs":   {},
	".ts":   {},
	".tsx":  {},
	".js":   {},
	".jsx":  {},
	".py":   {},
	".go":   {},
	".java": {},
	".c":    {},
	".cpp":  {},
	".rb":   {},
	".cs":   {},
	".php":  {},
}

// IsSourceFile reports whether path has one of the recognized source
// extensions.
func IsSourceFile(path string) bool {
	_, ok := Extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LanguageFor returns the parser.Language for path and whether it was
// resolved. It delegates to parser.LanguageFromExtension so any
// extension alias the parser registry understands is honored, then
// narrows to the set IsSourceFile accepts.
func LanguageFor(path string) (parser.Language, bool) {
	if !IsSourceFile(path) {
		return "", false
	}
	lang := parser.LanguageFromExtension(strings.ToLower(filepath.Ext(path)))
	return lang, lang != ""
}
