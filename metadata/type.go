package metadata

// Primitive is the name of a primitive type as serialized by scale-info.
type Primitive string

const (
	PrimitiveBool Primitive = "bool"
	PrimitiveChar Primitive = "char"
	PrimitiveStr  Primitive = "str"
	PrimitiveU8   Primitive = "u8"
	PrimitiveU16  Primitive = "u16"
	PrimitiveU32  Primitive = "u32"
	PrimitiveU64  Primitive = "u64"
	PrimitiveU128 Primitive = "u128"
	PrimitiveU256 Primitive = "u256"
	PrimitiveI8   Primitive = "i8"
	PrimitiveI16  Primitive = "i16"
	PrimitiveI32  Primitive = "i32"
	PrimitiveI64  Primitive = "i64"
	PrimitiveI128 Primitive = "i128"
	PrimitiveI256 Primitive = "i256"
)

// IsUnsignedInt reports whether p is one of u8, u16, u32, u64 or u128.
func (p Primitive) IsUnsignedInt() bool {
	switch p {
	case PrimitiveU8, PrimitiveU16, PrimitiveU32, PrimitiveU64, PrimitiveU128:
		return true
	}
	return false
}

func (p Primitive) supported() bool {
	switch p {
	case PrimitiveBool, PrimitiveChar, PrimitiveStr,
		PrimitiveU8, PrimitiveU16, PrimitiveU32, PrimitiveU64, PrimitiveU128,
		PrimitiveI8, PrimitiveI16, PrimitiveI32, PrimitiveI64, PrimitiveI128:
		return true
	}
	return false
}

type TypeDefKind string

const (
	TypeDefKindComposite   TypeDefKind = "composite"
	TypeDefKindVariant     TypeDefKind = "variant"
	TypeDefKindSequence    TypeDefKind = "sequence"
	TypeDefKindArray       TypeDefKind = "array"
	TypeDefKindTuple       TypeDefKind = "tuple"
	TypeDefKindPrimitive   TypeDefKind = "primitive"
	TypeDefKindCompact     TypeDefKind = "compact"
	TypeDefKindBitSequence TypeDefKind = "bitSequence"
)

type PortableType struct {
	ID   uint32 `json:"id" yaml:"id"`
	Type Type   `json:"type" yaml:"type"`
}

type Type struct {
	Path   []string        `json:"path,omitempty" yaml:"path,omitempty"`
	Params []TypeParameter `json:"params,omitempty" yaml:"params,omitempty"`
	Def    TypeDef         `json:"def" yaml:"def"`
	Docs   []string        `json:"docs,omitempty" yaml:"docs,omitempty"`
}

// TypeParameter is a generic parameter of a type. Type is nil when the
// parameter is not instantiated with a concrete type.
type TypeParameter struct {
	Name string  `json:"name" yaml:"name"`
	Type *uint32 `json:"type" yaml:"type"`
}

// TypeDef is externally tagged: exactly one of its fields is set.
type TypeDef struct {
	Composite   *TypeDefComposite   `json:"composite,omitempty" yaml:"composite,omitempty"`
	Variant     *TypeDefVariant     `json:"variant,omitempty" yaml:"variant,omitempty"`
	Sequence    *TypeDefSequence    `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Array       *TypeDefArray       `json:"array,omitempty" yaml:"array,omitempty"`
	Tuple       *[]uint32           `json:"tuple,omitempty" yaml:"tuple,omitempty"`
	Primitive   *Primitive          `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	Compact     *TypeDefCompact     `json:"compact,omitempty" yaml:"compact,omitempty"`
	BitSequence *TypeDefBitSequence `json:"bitSequence,omitempty" yaml:"bitSequence,omitempty"`
}

// Kinds returns the kinds that are set on d, in declaration order.
func (d TypeDef) Kinds() []TypeDefKind {
	var kinds []TypeDefKind
	if d.Composite != nil {
		kinds = append(kinds, TypeDefKindComposite)
	}
	if d.Variant != nil {
		kinds = append(kinds, TypeDefKindVariant)
	}
	if d.Sequence != nil {
		kinds = append(kinds, TypeDefKindSequence)
	}
	if d.Array != nil {
		kinds = append(kinds, TypeDefKindArray)
	}
	if d.Tuple != nil {
		kinds = append(kinds, TypeDefKindTuple)
	}
	if d.Primitive != nil {
		kinds = append(kinds, TypeDefKindPrimitive)
	}
	if d.Compact != nil {
		kinds = append(kinds, TypeDefKindCompact)
	}
	if d.BitSequence != nil {
		kinds = append(kinds, TypeDefKindBitSequence)
	}
	return kinds
}

// Kind returns the kind of d. It is only meaningful on a validated registry.
func (d TypeDef) Kind() TypeDefKind {
	kinds := d.Kinds()
	if len(kinds) == 0 {
		return ""
	}
	return kinds[0]
}

type TypeDefComposite struct {
	Fields []Field `json:"fields" yaml:"fields"`
}

type TypeDefVariant struct {
	Variants []Variant `json:"variants" yaml:"variants"`
}

type TypeDefSequence struct {
	Type uint32 `json:"type" yaml:"type"`
}

type TypeDefArray struct {
	Len  uint32 `json:"len" yaml:"len"`
	Type uint32 `json:"type" yaml:"type"`
}

type TypeDefCompact struct {
	Type uint32 `json:"type" yaml:"type"`
}

type TypeDefBitSequence struct {
	BitStoreType uint32 `json:"bitStoreType" yaml:"bitStoreType"`
	BitOrderType uint32 `json:"bitOrderType" yaml:"bitOrderType"`
}

// Field is a field of a composite type or of an enum variant. Name is nil for
// tuple-like fields. TypeName is the type as written in the source, e.g.
// "Box<T::Call>", and is nil when the source did not record it.
type Field struct {
	Name     *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Type     uint32   `json:"type" yaml:"type"`
	TypeName *string  `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	Docs     []string `json:"docs,omitempty" yaml:"docs,omitempty"`
}

type Variant struct {
	Name   string   `json:"name" yaml:"name"`
	Fields []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Index  uint8    `json:"index" yaml:"index"`
	Docs   []string `json:"docs,omitempty" yaml:"docs,omitempty"`
}
