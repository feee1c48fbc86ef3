package codegen

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/Yamashou/scalegen/metadata"
)

// TypeResolver は CompositeDef の構築に必要な型解決を提供する。
// TypeGenerator がこれを実装する。
type TypeResolver interface {
	// ResolveType はレジストリに登録された型定義を返す。
	ResolveType(id uint32) *metadata.Type
	// ResolveTypePath はフィールドの型を、外側の宣言のジェネリックパラメータを考慮して解決する。
	ResolveTypePath(id uint32, parentTypeParams []TypeParameter) TypePath
	// Derives は全ての宣言に付与する derive の集合を返す。
	Derives() GeneratedTypeDerives
}

// MixedFieldNamingError は名前付きフィールドと名前なしフィールドが混在していることを表す。
//
// メタデータの構造的な契約違反であり、生成全体を中断する。
type MixedFieldNamingError struct {
	TypeName string
}

func (e *MixedFieldNamingError) Error() string {
	return fmt.Sprintf("'%s': fields should either be all named or all unnamed", e.TypeName)
}

// CompositeDefKind は CompositeDef がどちらの形の宣言を生成するかを表す。
type CompositeDefKind string

const (
	// CompositeDefKindStruct は単独の struct 宣言。
	CompositeDefKindStruct CompositeDefKind = "Struct"
	// CompositeDefKindEnumVariant は enum のバリアント。
	CompositeDefKindEnumVariant CompositeDefKind = "EnumVariant"
)

// CompositeDef はフィールドの集合からなる型を表し、単独の struct 宣言または
// enum のバリアントとしてレンダリングされる。
//
// フィールドはどちらの場合も、全て名前付きか全て名前なしのいずれかである。
// derives、typeParams、fieldVisibility は Kind が CompositeDefKindStruct の場合にのみ使われる。
type CompositeDef struct {
	Name   string
	Kind   CompositeDefKind
	Fields CompositeDefFields

	derives         GeneratedTypeDerives
	typeParams      TypeDefParameters
	fieldVisibility string
}

// NewStructDef は単独の struct 宣言を生成する CompositeDef を作成する。
//
// 型の derive は typeGen.Derives() の複製から始まり、フィールドが1つだけで、
// その型が宣言自身のジェネリックパラメータではなく、符号なし整数 (u8〜u128) の
// プリミティブである場合に CompactAs が追加される。
//
// パラメータ:
//   - name: 型名。UpperCamelCase に変換される
//   - typeParams: 宣言のジェネリックパラメータ（未使用パラメータの更新後）
//   - fields: 正規化済みのフィールド
//   - fieldVisibility: フィールドの可視性（例: "pub"）。空文字列の場合は付与しない
//   - typeGen: 型解決と derive の提供元
//
// 戻り値: struct 宣言用の CompositeDef
func NewStructDef(
	name string,
	typeParams TypeDefParameters,
	fields CompositeDefFields,
	fieldVisibility string,
	typeGen TypeResolver,
) *CompositeDef {
	derives := typeGen.Derives().Clone()
	if isCompactAsCandidate(typeParams, fields, typeGen) {
		derives.PushCodecCompactAs()
	}

	return &CompositeDef{
		Name:            toDeclarationCase(name),
		Kind:            CompositeDefKindStruct,
		Fields:          fields,
		derives:         derives,
		typeParams:      typeParams,
		fieldVisibility: fieldVisibility,
	}
}

// isCompactAsCandidate は具体的な符号なし整数1つだけをラップする型かどうかを判定する。
//
// 判定は解決済みのレジストリ型に対して行うため、フィールドが Box で包まれているかどうかには依存しない。
func isCompactAsCandidate(typeParams TypeDefParameters, fields CompositeDefFields, typeGen TypeResolver) bool {
	fieldTypes := slices.Collect(fields.FieldTypes())
	if len(fieldTypes) != 1 {
		return false
	}

	field := fieldTypes[0]
	isTypeParam := slices.ContainsFunc(typeParams.Params(), func(tp TypeParameter) bool {
		return field.TypeName != nil && tp.OriginalName == *field.TypeName
	})
	if isTypeParam {
		return false
	}

	ty := typeGen.ResolveType(field.TypeID)
	return ty.Def.Primitive != nil && ty.Def.Primitive.IsUnsignedInt()
}

// NewEnumVariantDef は enum のバリアントを生成する CompositeDef を作成する。
//
// バリアント名はメタデータの表記のまま使用する。
func NewEnumVariantDef(name string, fields CompositeDefFields) *CompositeDef {
	return &CompositeDef{
		Name:   name,
		Kind:   CompositeDefKindEnumVariant,
		Fields: fields,
	}
}

// Derives は struct 宣言に付与される derive を返す。
func (d *CompositeDef) Derives() GeneratedTypeDerives {
	return d.derives
}

// String は宣言をレンダリングする。
//
// struct の場合:
//
//	#[derive(...)]
//	pub struct Name<_0> { ... }
//
// フィールドなし、または名前なしフィールドの場合は末尾に ";" が付く。
//
// バリアントの場合は derive、可視性、ジェネリクスなしで "Name { ... }" または "Name(...)" となる。
func (d *CompositeDef) String() string {
	name := ident(d.Name)

	switch d.Kind {
	case CompositeDefKindStruct:
		var buf strings.Builder
		if derives := d.derives.String(); derives != "" {
			buf.WriteString(derives)
			buf.WriteString("\n")
		}
		fields := d.Fields.StructFields(d.typeParams.UnusedParamsPhantomData(), d.fieldVisibility)
		buf.WriteString(fmt.Sprintf("pub struct %s%s", name, d.typeParams))
		buf.WriteString(fieldsSeparator(d.Fields))
		buf.WriteString(fields)
		if d.Fields.Kind() != CompositeDefFieldsKindNamed {
			buf.WriteString(";")
		}
		return buf.String()
	case CompositeDefKindEnumVariant:
		return name + fieldsSeparator(d.Fields) + d.Fields.EnumVariantFields()
	}
	panic(fmt.Sprintf("unexpected composite def kind: %q", d.Kind))
}

func fieldsSeparator(fields CompositeDefFields) string {
	if fields.Kind() == CompositeDefFieldsKindNamed {
		return " "
	}
	return ""
}

// CompositeDefFieldsKind は CompositeDefFields の形を表す。
type CompositeDefFieldsKind string

const (
	CompositeDefFieldsKindNone    CompositeDefFieldsKind = "NoFields"
	CompositeDefFieldsKindNamed   CompositeDefFieldsKind = "Named"
	CompositeDefFieldsKindUnnamed CompositeDefFieldsKind = "Unnamed"
)

// NamedField は名前付きフィールドを表す。
type NamedField struct {
	Name string
	Type *CompositeDefFieldType
}

// CompositeDefFields は全てのフィールドが名前付きか名前なしのどちらかであるという不変条件を保つ。
// ゼロ値はフィールドなし (NoFields) を表す。
type CompositeDefFields struct {
	named   []NamedField
	unnamed []*CompositeDefFieldType
}

// NewNamedFields は名前付きフィールドの集合を作成する。空の場合は NoFields になる。
func NewNamedFields(fields ...NamedField) CompositeDefFields {
	return CompositeDefFields{named: fields}
}

// NewUnnamedFields は名前なしフィールドの集合を作成する。空の場合は NoFields になる。
func NewUnnamedFields(fields ...*CompositeDefFieldType) CompositeDefFields {
	return CompositeDefFields{unnamed: fields}
}

// NewCompositeDefFields はメタデータのフィールドから CompositeDefFields を作成する。
//
// フィールドの型は parentTypeParams を考慮して即座に解決される。入力の順序は保たれる。
//
// パラメータ:
//   - name: フィールドを持つ型（またはバリアント）の名前。エラーメッセージに使用される
//   - fields: メタデータのフィールド
//   - parentTypeParams: 外側の宣言のジェネリックパラメータ
//   - typeGen: 型解決に使用する TypeResolver
//
// 戻り値:
//   - CompositeDefFields: 正規化されたフィールド
//   - error: 名前付きと名前なしのフィールドが混在する場合は *MixedFieldNamingError
func NewCompositeDefFields(
	name string,
	fields []metadata.Field,
	parentTypeParams []TypeParameter,
	typeGen TypeResolver,
) (CompositeDefFields, error) {
	if len(fields) == 0 {
		return CompositeDefFields{}, nil
	}

	var namedFields []NamedField
	var unnamedFields []*CompositeDefFieldType

	for _, field := range fields {
		typePath := typeGen.ResolveTypePath(field.Type, parentTypeParams)
		fieldType := NewCompositeDefFieldType(field.Type, typePath, field.TypeName)

		if field.Name != nil {
			namedFields = append(namedFields, NamedField{Name: *field.Name, Type: fieldType})
		} else {
			unnamedFields = append(unnamedFields, fieldType)
		}
	}

	if len(namedFields) > 0 && len(unnamedFields) > 0 {
		return CompositeDefFields{}, &MixedFieldNamingError{TypeName: name}
	}

	if len(namedFields) > 0 {
		return NewNamedFields(namedFields...), nil
	}
	return NewUnnamedFields(unnamedFields...), nil
}

// Kind はフィールドの形を返す。
func (f CompositeDefFields) Kind() CompositeDefFieldsKind {
	switch {
	case len(f.named) > 0:
		return CompositeDefFieldsKindNamed
	case len(f.unnamed) > 0:
		return CompositeDefFieldsKindUnnamed
	default:
		return CompositeDefFieldsKindNone
	}
}

// Named は名前付きフィールドを返す。
func (f CompositeDefFields) Named() []NamedField {
	return f.named
}

// Unnamed は名前なしフィールドを返す。
func (f CompositeDefFields) Unnamed() []*CompositeDefFieldType {
	return f.unnamed
}

// FieldTypes は宣言順に全てのフィールドの型を返す。何度でも反復できる。
func (f CompositeDefFields) FieldTypes() iter.Seq[*CompositeDefFieldType] {
	return func(yield func(*CompositeDefFieldType) bool) {
		for _, field := range f.named {
			if !yield(field.Type) {
				return
			}
		}
		for _, field := range f.unnamed {
			if !yield(field) {
				return
			}
		}
	}
}

// StructFields は struct を構成するフィールドのコードを生成する。
//
// phantomData が nil でない場合、未使用のジェネリックパラメータを参照するマーカーフィールドを追加する。
//
// パラメータ:
//   - phantomData: 未使用パラメータのマーカー型。全て使用されている場合は nil
//   - visibility: フィールドの可視性。空文字列の場合は付与しない
//
// 戻り値: フィールドリストのコード（例: "{ ... }" や "(pub u32)"）
func (f CompositeDefFields) StructFields(phantomData TypePath, visibility string) string {
	vis := ""
	if visibility != "" {
		vis = visibility + " "
	}

	switch f.Kind() {
	case CompositeDefFieldsKindNamed:
		var buf strings.Builder
		buf.WriteString("{\n")
		for _, field := range f.named {
			writeNamedField(&buf, field.Type.compactAttr(), vis+ident(field.Name), field.Type.String())
		}
		if phantomData != nil {
			writeNamedField(&buf, codecSkipAttr, vis+"__subxt_unused_type_params", phantomData.String())
		}
		buf.WriteString("}")
		return buf.String()
	case CompositeDefFieldsKindUnnamed:
		fields := make([]string, 0, len(f.unnamed)+1)
		for _, field := range f.unnamed {
			fields = append(fields, attrPrefix(field.compactAttr())+vis+field.String())
		}
		if phantomData != nil {
			fields = append(fields, attrPrefix(codecSkipAttr)+vis+phantomData.String())
		}
		return "(" + strings.Join(fields, ", ") + ")"
	default:
		if phantomData != nil {
			return "(" + phantomData.String() + ")"
		}
		return ""
	}
}

// EnumVariantFields は enum のバリアントを構成するフィールドのコードを生成する。
//
// 可視性やジェネリックパラメータのマーカーは付与しない。
func (f CompositeDefFields) EnumVariantFields() string {
	switch f.Kind() {
	case CompositeDefFieldsKindNamed:
		var buf strings.Builder
		buf.WriteString("{\n")
		for _, field := range f.named {
			writeNamedField(&buf, field.Type.compactAttr(), ident(field.Name), field.Type.String())
		}
		buf.WriteString("}")
		return buf.String()
	case CompositeDefFieldsKindUnnamed:
		fields := make([]string, 0, len(f.unnamed))
		for _, field := range f.unnamed {
			fields = append(fields, attrPrefix(field.compactAttr())+field.String())
		}
		return "(" + strings.Join(fields, ", ") + ")"
	default:
		return ""
	}
}

const (
	codecCompactAttr = "#[codec(compact)]"
	codecSkipAttr    = "#[codec(skip)]"
)

func writeNamedField(buf *strings.Builder, attr, name, ty string) {
	if attr != "" {
		buf.WriteString(indentUnit + attr + "\n")
	}
	buf.WriteString(fmt.Sprintf("%s%s: %s,\n", indentUnit, name, ty))
}

func attrPrefix(attr string) string {
	if attr == "" {
		return ""
	}
	return attr + " "
}

// CompositeDefFieldType は生成される複合型のフィールドを表す。
type CompositeDefFieldType struct {
	TypeID   uint32
	TypePath TypePath
	// TypeName はメタデータに記録された元の型名（例: "Box<T::Call>"）。記録がない場合は nil。
	TypeName *string
}

// NewCompositeDefFieldType は新しい CompositeDefFieldType を作成する。
func NewCompositeDefFieldType(typeID uint32, typePath TypePath, typeName *string) *CompositeDefFieldType {
	return &CompositeDefFieldType{
		TypeID:   typeID,
		TypePath: typePath,
		TypeName: typeName,
	}
}

// IsBoxed はフィールドが ::std::boxed::Box かどうかを返す。
//
// メタデータの型構造では Box が消去されるため、元の型名に "Box<" が含まれるかで判定する。
// 型名が偶然 "Box<" を含む場合は誤判定するが、既知の制限として扱う。
func (t *CompositeDefFieldType) IsBoxed() bool {
	return t.TypeName != nil && strings.Contains(*t.TypeName, "Box<")
}

// compactAttr は型が compact エンコードの場合に #[codec(compact)] を返す。
func (t *CompositeDefFieldType) compactAttr() string {
	if t.TypePath.IsCompact() {
		return codecCompactAttr
	}
	return ""
}

// String はフィールドの型をレンダリングする。Box の場合は ::std::boxed::Box で包む。
func (t *CompositeDefFieldType) String() string {
	if t.IsBoxed() {
		return "::std::boxed::Box<" + t.TypePath.String() + ">"
	}
	return t.TypePath.String()
}
