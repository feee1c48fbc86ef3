package codegen

import (
	"fmt"
	"strings"

	"github.com/Yamashou/scalegen/metadata"
)

// TypeDefGen is the generated declaration of one registry type: a struct for
// composite types and an enum for variant types.
type TypeDefGen struct {
	name string
	docs []string
	decl fmt.Stringer
}

// NewTypeDefGen builds the declaration for ty, which must be a composite or a
// variant type with a path.
func NewTypeDefGen(ty *metadata.Type, typeGen TypeResolver) (*TypeDefGen, error) {
	typeName := ty.Path[len(ty.Path)-1]
	typeParams := NewTypeDefParameters(typeParametersOf(ty))

	var decl fmt.Stringer
	switch ty.Def.Kind() {
	case metadata.TypeDefKindComposite:
		fields, err := NewCompositeDefFields(typeName, ty.Def.Composite.Fields, typeParams.Params(), typeGen)
		if err != nil {
			return nil, err
		}
		typeParams.UpdateUnused(fields.FieldTypes())
		decl = NewStructDef(typeName, typeParams, fields, "pub", typeGen)
	case metadata.TypeDefKindVariant:
		variants := make([]enumVariant, 0, len(ty.Def.Variant.Variants))
		for _, v := range ty.Def.Variant.Variants {
			fields, err := NewCompositeDefFields(v.Name, v.Fields, typeParams.Params(), typeGen)
			if err != nil {
				return nil, err
			}
			typeParams.UpdateUnused(fields.FieldTypes())
			variants = append(variants, enumVariant{index: v.Index, def: NewEnumVariantDef(v.Name, fields)})
		}
		decl = &enumDef{
			name:       toDeclarationCase(typeName),
			derives:    typeGen.Derives().Clone(),
			typeParams: typeParams,
			variants:   variants,
		}
	default:
		return nil, fmt.Errorf("cannot generate a declaration for %s type %s", ty.Def.Kind(), typeName)
	}

	return &TypeDefGen{
		name: typeName,
		docs: ty.Docs,
		decl: decl,
	}, nil
}

// Name is the type name as recorded in the registry path.
func (g *TypeDefGen) Name() string {
	return g.name
}

func (g *TypeDefGen) String() string {
	var buf strings.Builder
	for _, doc := range g.docs {
		buf.WriteString("///" + doc + "\n")
	}
	buf.WriteString(g.decl.String())
	return buf.String()
}

type enumVariant struct {
	index uint8
	def   *CompositeDef
}

type enumDef struct {
	name       string
	derives    GeneratedTypeDerives
	typeParams TypeDefParameters
	variants   []enumVariant
}

func (e *enumDef) String() string {
	var buf strings.Builder
	if derives := e.derives.String(); derives != "" {
		buf.WriteString(derives + "\n")
	}
	buf.WriteString(fmt.Sprintf("pub enum %s%s {", ident(e.name), e.typeParams))

	phantomData := e.typeParams.UnusedParamsPhantomData()
	if len(e.variants) == 0 && phantomData == nil {
		buf.WriteString("}")
		return buf.String()
	}

	buf.WriteString("\n")
	for _, v := range e.variants {
		buf.WriteString(indent(fmt.Sprintf("#[codec(index = %d)]\n%s,", v.index, v.def), 1))
		buf.WriteString("\n")
	}
	if phantomData != nil {
		buf.WriteString(indent(fmt.Sprintf("%s\n__Ignore(%s),", codecSkipAttr, phantomData), 1))
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.String()
}
