package extract

import "github.com/entitytriage/triage/internal/model"

// kindMaps maps, per language, tree-sitter node type to the semantic
// EntityKind it represents. Node types are grounded in each grammar's
// own naming convention as observed across the parser registry; only
// node types corresponding to the spec's eight entity kinds are listed
// here, unlike a full node-type inventory.
var kindMaps = map[string]map[string]model.EntityKind{
	"go": {
		"function_declaration": model.KindFunction,
		"method_declaration":   model.KindMethod,
		"type_spec":            model.KindType,
	},
	"rust": {
		"function_item": model.KindFunction,
		"struct_item":   model.KindStruct,
		"enum_item":     model.KindEnum,
		"trait_item":    model.KindTrait,
		"type_item":     model.KindType,
	},
	"python": {
		"function_definition": model.KindFunction,
		"class_definition":    model.KindClass,
	},
	"typescript": {
		"function_declaration":   model.KindFunction,
		"method_definition":      model.KindMethod,
		"class_declaration":      model.KindClass,
		"interface_declaration":  model.KindInterface,
		"type_alias_declaration": model.KindType,
		"enum_declaration":       model.KindEnum,
	},
	"javascript": {
		"function_declaration": model.KindFunction,
		"method_definition":    model.KindMethod,
		"class_declaration":    model.KindClass,
	},
	"java": {
		"class_declaration":     model.KindClass,
		"interface_declaration": model.KindInterface,
		"enum_declaration":      model.KindEnum,
		"method_declaration":    model.KindMethod,
	},
	"csharp": {
		"class_declaration":     model.KindClass,
		"interface_declaration": model.KindInterface,
		"struct_declaration":    model.KindStruct,
		"enum_declaration":      model.KindEnum,
		"method_declaration":    model.KindMethod,
	},
	"c": {
		"function_definition": model.KindFunction,
		"struct_specifier":    model.KindStruct,
		"enum_specifier":      model.KindEnum,
	},
	"cpp": {
		"function_definition": model.KindFunction,
		"class_specifier":     model.KindClass,
		"struct_specifier":    model.KindStruct,
		"enum_specifier":      model.KindEnum,
	},
	"ruby": {
		"method": model.KindMethod,
		"class":  model.KindClass,
	},
	"php": {
		"function_definition":   model.KindFunction,
		"method_declaration":    model.KindMethod,
		"class_declaration":     model.KindClass,
		"interface_declaration": model.KindInterface,
		"enum_declaration":      model.KindEnum,
	},
}

// kindMapFor returns the node-type-to-kind table for lang, or nil if the
// language is not supported by the extractor.
func kindMapFor(lang string) map[string]model.EntityKind {
	return kindMaps[lang]
}
