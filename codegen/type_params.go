package codegen

import (
	"fmt"
	"iter"
	"strings"

	"github.com/Yamashou/scalegen/metadata"
)

// TypeParameter is a generic parameter of a generated declaration.
//
// ConcreteTypeID is the registry type the parameter is instantiated with, so
// that any field of that type is rendered as the parameter instead.
// OriginalName is the name used in the source metadata (e.g. "Balance") and
// Name the generated identifier (e.g. "_0").
type TypeParameter struct {
	ConcreteTypeID uint32
	OriginalName   string
	Name           string
}

func (p TypeParameter) String() string { return p.Name }

func (p TypeParameter) IsCompact() bool { return false }

func (p TypeParameter) TypeParams() []TypeParameter { return []TypeParameter{p} }

// typeParametersOf returns the instantiated parameters of ty. Parameters
// without a concrete type are not part of the generated declaration.
func typeParametersOf(ty *metadata.Type) []TypeParameter {
	var params []TypeParameter
	for i, param := range ty.Params {
		if param.Type == nil {
			continue
		}
		params = append(params, TypeParameter{
			ConcreteTypeID: *param.Type,
			OriginalName:   param.Name,
			Name:           fmt.Sprintf("_%d", i),
		})
	}
	return params
}

// TypeDefParameters is the set of generic parameters of one declaration,
// together with the ones that no field refers to.
type TypeDefParameters struct {
	params []TypeParameter
	unused []TypeParameter
}

// NewTypeDefParameters starts with every parameter unused.
func NewTypeDefParameters(params []TypeParameter) TypeDefParameters {
	return TypeDefParameters{
		params: params,
		unused: params,
	}
}

func (p TypeDefParameters) Params() []TypeParameter {
	return p.params
}

func (p TypeDefParameters) Unused() []TypeParameter {
	return p.unused
}

// UpdateUnused marks every parameter referenced by fields as used.
func (p *TypeDefParameters) UpdateUnused(fields iter.Seq[*CompositeDefFieldType]) {
	used := make(map[string]struct{})
	for field := range fields {
		for _, param := range field.TypePath.TypeParams() {
			used[param.Name] = struct{}{}
		}
	}

	var unused []TypeParameter
	for _, param := range p.unused {
		if _, ok := used[param.Name]; !ok {
			unused = append(unused, param)
		}
	}
	p.unused = unused
}

// UnusedParamsPhantomData returns the marker type referencing unused
// parameters, or nil when every parameter is used.
func (p TypeDefParameters) UnusedParamsPhantomData() TypePath {
	if len(p.unused) == 0 {
		return nil
	}
	return &phantomDataPath{params: p.unused}
}

// String renders the generics of the declaration, e.g. "<_0, _1>".
func (p TypeDefParameters) String() string {
	if len(p.params) == 0 {
		return ""
	}
	names := make([]string, 0, len(p.params))
	for _, param := range p.params {
		names = append(names, param.Name)
	}
	return "<" + strings.Join(names, ", ") + ">"
}
