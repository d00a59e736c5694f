package extract

import (
	"testing"

	"github.com/entitytriage/triage/internal/model"
)

func TestKindMapForKnownLanguages(t *testing.T) {
	for _, lang := range []string{"go", "rust", "python", "typescript", "javascript", "java", "csharp", "c", "cpp", "ruby", "php"} {
		if kindMapFor(lang) == nil {
			t.Errorf("kindMapFor(%q) = nil, want a populated map", lang)
		}
	}
}

func TestKindMapForUnknownLanguage(t *testing.T) {
	if kindMapFor("cobol") != nil {
		t.Error("kindMapFor(cobol) should be nil")
	}
}

func TestGoKindMapCoversFunctionAndMethod(t *testing.T) {
	m := kindMapFor("go")
	if m["function_declaration"] != model.KindFunction {
		t.Error("go function_declaration should map to KindFunction")
	}
	if m["method_declaration"] != model.KindMethod {
		t.Error("go method_declaration should map to KindMethod")
	}
}
