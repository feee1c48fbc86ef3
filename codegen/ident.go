package codegen

import (
	"github.com/ettle/strcase"
)

var rustKeywords = map[string]struct{}{
	"abstract": {}, "as": {}, "async": {}, "await": {}, "become": {}, "box": {}, "break": {},
	"const": {}, "continue": {}, "do": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {},
	"false": {}, "final": {}, "fn": {}, "for": {}, "if": {}, "impl": {}, "in": {}, "let": {},
	"loop": {}, "macro": {}, "match": {}, "mod": {}, "move": {}, "mut": {}, "override": {},
	"priv": {}, "pub": {}, "ref": {}, "return": {}, "static": {}, "struct": {}, "trait": {},
	"true": {}, "try": {}, "type": {}, "typeof": {}, "unsafe": {}, "unsized": {}, "use": {},
	"virtual": {}, "where": {}, "while": {}, "yield": {},
}

// these cannot be raw identifiers
var reservedPathKeywords = map[string]struct{}{
	"crate": {}, "self": {}, "Self": {}, "super": {},
}

// toDeclarationCase converts a type name to UpperCamelCase.
func toDeclarationCase(name string) string {
	return strcase.ToPascal(name)
}

// ident makes name usable as a Rust identifier.
func ident(name string) string {
	if _, ok := reservedPathKeywords[name]; ok {
		return name + "_"
	}
	if _, ok := rustKeywords[name]; ok {
		return "r#" + name
	}
	return name
}
