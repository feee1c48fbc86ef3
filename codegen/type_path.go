package codegen

import (
	"fmt"
	"strings"

	"github.com/Yamashou/scalegen/metadata"
)

// TypePath is the resolved, renderable reference to a type as it appears in a
// field or generic argument of a generated declaration.
type TypePath interface {
	// String returns the Rust type expression.
	String() string
	// IsCompact reports whether the path is a compact encoded number that must be
	// annotated with #[codec(compact)].
	IsCompact() bool
	// TypeParams returns the parameters of the enclosing declaration that are
	// referenced somewhere in the path.
	TypeParams() []TypeParameter
}

var (
	_ TypePath = TypeParameter{}
	_ TypePath = (*namedPath)(nil)
	_ TypePath = (*vecPath)(nil)
	_ TypePath = (*arrayPath)(nil)
	_ TypePath = (*tuplePath)(nil)
	_ TypePath = primitivePath("")
	_ TypePath = (*compactPath)(nil)
	_ TypePath = (*bitVecPath)(nil)
	_ TypePath = (*phantomDataPath)(nil)
)

// preludePaths maps std types that scale-info records by their bare name to the
// fully qualified Rust path. No declarations are generated for them.
var preludePaths = map[string]string{
	"Option":         "::core::option::Option",
	"Result":         "::core::result::Result",
	"Cow":            "::std::borrow::Cow",
	"BTreeMap":       "::std::collections::BTreeMap",
	"BTreeSet":       "::std::collections::BTreeSet",
	"Range":          "::core::ops::Range",
	"RangeInclusive": "::core::ops::RangeInclusive",
}

func preludePath(path []string) (string, bool) {
	if len(path) != 1 {
		return "", false
	}
	p, ok := preludePaths[path[0]]
	return p, ok
}

// namedPath is a path to a composite or variant type, a prelude type or a
// substitute, with its generic arguments.
type namedPath struct {
	path   string
	params []TypePath
}

func (p *namedPath) String() string {
	if len(p.params) == 0 {
		return p.path
	}
	return p.path + "<" + joinTypePaths(p.params) + ">"
}

func (p *namedPath) IsCompact() bool { return false }

func (p *namedPath) TypeParams() []TypeParameter { return typeParamsOf(p.params...) }

type vecPath struct {
	of TypePath
}

func (p *vecPath) String() string { return "::std::vec::Vec<" + p.of.String() + ">" }

func (p *vecPath) IsCompact() bool { return false }

func (p *vecPath) TypeParams() []TypeParameter { return p.of.TypeParams() }

type arrayPath struct {
	len uint32
	of  TypePath
}

func (p *arrayPath) String() string { return fmt.Sprintf("[%s; %d]", p.of, p.len) }

func (p *arrayPath) IsCompact() bool { return false }

func (p *arrayPath) TypeParams() []TypeParameter { return p.of.TypeParams() }

type tuplePath struct {
	elems []TypePath
}

func (p *tuplePath) String() string {
	switch len(p.elems) {
	case 0:
		return "()"
	case 1:
		return "(" + p.elems[0].String() + ",)"
	default:
		return "(" + joinTypePaths(p.elems) + ")"
	}
}

func (p *tuplePath) IsCompact() bool { return false }

func (p *tuplePath) TypeParams() []TypeParameter { return typeParamsOf(p.elems...) }

type primitivePath metadata.Primitive

func (p primitivePath) String() string {
	if metadata.Primitive(p) == metadata.PrimitiveStr {
		return "::std::string::String"
	}
	return string(p)
}

func (p primitivePath) IsCompact() bool { return false }

func (p primitivePath) TypeParams() []TypeParameter { return nil }

// compactPath renders as the bare inner type when it is the type of a field,
// because such fields carry #[codec(compact)] instead.
type compactPath struct {
	inner   TypePath
	isField bool
}

func (p *compactPath) String() string {
	if p.isField {
		return p.inner.String()
	}
	return "::subxt::ext::codec::Compact<" + p.inner.String() + ">"
}

func (p *compactPath) IsCompact() bool { return true }

func (p *compactPath) TypeParams() []TypeParameter { return p.inner.TypeParams() }

type bitVecPath struct {
	store TypePath
	order TypePath
}

func (p *bitVecPath) String() string {
	return fmt.Sprintf("::subxt::ext::bitvec::vec::BitVec<%s, %s>", p.store, p.order)
}

func (p *bitVecPath) IsCompact() bool { return false }

func (p *bitVecPath) TypeParams() []TypeParameter { return typeParamsOf(p.store, p.order) }

// phantomDataPath references otherwise unused parameters of a declaration.
type phantomDataPath struct {
	params []TypeParameter
}

func (p *phantomDataPath) String() string {
	names := make([]string, 0, len(p.params))
	for _, param := range p.params {
		names = append(names, param.Name)
	}
	if len(names) == 1 {
		return "::core::marker::PhantomData<" + names[0] + ">"
	}
	return "::core::marker::PhantomData<(" + strings.Join(names, ", ") + ")>"
}

func (p *phantomDataPath) IsCompact() bool { return false }

func (p *phantomDataPath) TypeParams() []TypeParameter { return p.params }

func joinTypePaths(paths []TypePath) string {
	s := make([]string, 0, len(paths))
	for _, p := range paths {
		s = append(s, p.String())
	}
	return strings.Join(s, ", ")
}

func typeParamsOf(paths ...TypePath) []TypeParameter {
	var params []TypeParameter
	for _, p := range paths {
		params = append(params, p.TypeParams()...)
	}
	return params
}
