package introspect

import (
	"path/filepath"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Language identifies a supported source language.
type Language string

const (
	Go     Language = "go"
	Python Language = "python"
)

// Languages lists every supported language.
var Languages = []Language{Go, Python}

var extensions = map[string]Language{
	".go":  Go,
	".py":  Python,
	".pyi": Python,
}

// queries select the definitions each extractor starts from.
var queries = map[Language]string{
	Go: `
		(type_declaration (type_spec name: (type_identifier) @name) @def)
		(method_declaration name: (field_identifier) @name) @def
	`,
	Python: `
		(class_definition name: (identifier) @name) @def
	`,
}

// LanguageForPath returns the language of path by extension.
func LanguageForPath(path string) (Language, bool) {
	l, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// ParseLanguage parses a language name.
func ParseLanguage(s string) (Language, bool) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case Go, Python:
		return l, true
	case "py":
		return Python, true
	case "golang":
		return Go, true
	}
	return "", false
}

func grammar(l Language) *tree_sitter.Language {
	var ptr unsafe.Pointer
	switch l {
	case Go:
		ptr = tree_sitter_go.Language()
	case Python:
		ptr = tree_sitter_python.Language()
	default:
		return nil
	}
	return tree_sitter.NewLanguage(ptr)
}
