package codegen

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yamashou/scalegen/metadata"
)

const testDerives = "#[derive(::subxt::ext::codec::Decode, ::subxt::ext::codec::Encode, Debug)]"

const testDerivesCompactAs = "#[derive(::subxt::ext::codec::Decode, ::subxt::ext::codec::Encode, Debug, ::subxt::ext::codec::CompactAs)]"

func primitiveType(id uint32, p metadata.Primitive) metadata.PortableType {
	return metadata.PortableType{ID: id, Type: metadata.Type{Def: metadata.TypeDef{Primitive: &p}}}
}

// newCompositeTestTypeGenerator returns a generator over
// 0: u8, 1: u32, 2: u128, 3: bool, 4: Compact<u32>, 5: Vec<u8>, 6: str.
func newCompositeTestTypeGenerator(t *testing.T) *TypeGenerator {
	t.Helper()

	registry, err := metadata.NewRegistry([]metadata.PortableType{
		primitiveType(0, metadata.PrimitiveU8),
		primitiveType(1, metadata.PrimitiveU32),
		primitiveType(2, metadata.PrimitiveU128),
		primitiveType(3, metadata.PrimitiveBool),
		{ID: 4, Type: metadata.Type{Def: metadata.TypeDef{Compact: &metadata.TypeDefCompact{Type: 1}}}},
		{ID: 5, Type: metadata.Type{Def: metadata.TypeDef{Sequence: &metadata.TypeDefSequence{Type: 0}}}},
		primitiveType(6, metadata.PrimitiveStr),
	})
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	return NewTypeGenerator(registry)
}

func namedField(name string, ty uint32, typeName string) metadata.Field {
	field := unnamedField(ty, typeName)
	field.Name = &name
	return field
}

func unnamedField(ty uint32, typeName string) metadata.Field {
	field := metadata.Field{Type: ty}
	if typeName != "" {
		field.TypeName = &typeName
	}
	return field
}

// newTestStructDef builds a struct the same way NewTypeDefGen does.
func newTestStructDef(t *testing.T, typeGen TypeResolver, name string, params []TypeParameter, fields []metadata.Field) *CompositeDef {
	t.Helper()

	typeParams := NewTypeDefParameters(params)
	compositeFields, err := NewCompositeDefFields(name, fields, typeParams.Params(), typeGen)
	if err != nil {
		t.Fatalf("NewCompositeDefFields() error = %v", err)
	}
	typeParams.UpdateUnused(compositeFields.FieldTypes())

	return NewStructDef(name, typeParams, compositeFields, "pub", typeGen)
}

func TestNewCompositeDefFields(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)

	type want struct {
		kind  CompositeDefFieldsKind
		names []string
		types []string
	}

	tests := []struct {
		name   string
		fields []metadata.Field
		want   want
	}{
		{
			name:   "フィールドがない場合は NoFields",
			fields: nil,
			want:   want{kind: CompositeDefFieldsKindNone},
		},
		{
			name: "全て名前付きの場合は Named で順序が保たれる",
			fields: []metadata.Field{
				namedField("b", 1, "u32"),
				namedField("a", 0, "u8"),
				namedField("c", 5, "Vec<u8>"),
			},
			want: want{
				kind:  CompositeDefFieldsKindNamed,
				names: []string{"b", "a", "c"},
				types: []string{"u32", "u8", "::std::vec::Vec<u8>"},
			},
		},
		{
			name: "全て名前なしの場合は Unnamed で順序が保たれる",
			fields: []metadata.Field{
				unnamedField(3, ""),
				unnamedField(6, "String"),
			},
			want: want{
				kind:  CompositeDefFieldsKindUnnamed,
				types: []string{"bool", "::std::string::String"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCompositeDefFields("Test", tt.fields, nil, typeGen)
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}

			var names []string
			for _, field := range got.Named() {
				names = append(names, field.Name)
			}
			var types []string
			for field := range got.FieldTypes() {
				types = append(types, field.String())
			}

			if diff := cmp.Diff(tt.want.kind, got.Kind()); diff != "" {
				t.Errorf("kind diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.want.names, names); diff != "" {
				t.Errorf("names diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.want.types, types); diff != "" {
				t.Errorf("types diff(-want +got): %s", diff)
			}
		})
	}
}

func TestNewCompositeDefFields_MixedFieldNaming(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)

	fields := []metadata.Field{
		namedField("a", 0, "u8"),
		unnamedField(1, "u32"),
	}

	got, err := NewCompositeDefFields("AccountInfo", fields, nil, typeGen)

	var mixedErr *MixedFieldNamingError
	if !errors.As(err, &mixedErr) {
		t.Fatalf("error = %v, want *MixedFieldNamingError", err)
	}
	if diff := cmp.Diff("AccountInfo", mixedErr.TypeName); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff(CompositeDefFieldsKindNone, got.Kind()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}

func TestCompositeDefFields_FieldTypes(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)

	fields, err := NewCompositeDefFields("Test", []metadata.Field{
		namedField("a", 0, ""),
		namedField("b", 1, ""),
	}, nil, typeGen)
	if err != nil {
		t.Fatalf("error = %v, want nil", err)
	}

	first := slices.Collect(fields.FieldTypes())
	second := slices.Collect(fields.FieldTypes())

	if diff := cmp.Diff(2, len(first)); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if !slices.Equal(first, second) {
		t.Errorf("FieldTypes() must yield the same fields on every call")
	}

	// stopping early must not panic
	for range fields.FieldTypes() {
		break
	}
}

func TestCompositeDefFields_StructFields(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)
	phantomData := NewTypeDefParameters([]TypeParameter{{ConcreteTypeID: 2, OriginalName: "T", Name: "_0"}}).UnusedParamsPhantomData()

	type args struct {
		fields      []metadata.Field
		phantomData TypePath
		visibility  string
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "フィールドもマーカーもない場合は空",
			args: args{visibility: "pub"},
			want: "",
		},
		{
			name: "フィールドがなくマーカーがある場合はマーカーのみ",
			args: args{phantomData: phantomData, visibility: "pub"},
			want: "(::core::marker::PhantomData<_0>)",
		},
		{
			name: "名前付きフィールドは compact 属性とマーカーを含む",
			args: args{
				fields: []metadata.Field{
					namedField("value", 4, "Compact<u32>"),
					namedField("owner", 3, "bool"),
				},
				phantomData: phantomData,
				visibility:  "pub",
			},
			want: `{
    #[codec(compact)]
    pub value: u32,
    pub owner: bool,
    #[codec(skip)]
    pub __subxt_unused_type_params: ::core::marker::PhantomData<_0>,
}`,
		},
		{
			name: "名前なしフィールドは compact 属性とマーカーを含む",
			args: args{
				fields: []metadata.Field{
					unnamedField(4, "Compact<u32>"),
					unnamedField(3, "bool"),
				},
				phantomData: phantomData,
				visibility:  "pub",
			},
			want: "(#[codec(compact)] pub u32, pub bool, #[codec(skip)] pub ::core::marker::PhantomData<_0>)",
		},
		{
			name: "可視性が空の場合は付与しない",
			args: args{
				fields: []metadata.Field{unnamedField(0, "u8")},
			},
			want: "(u8)",
		},
		{
			name: "予約語のフィールド名は raw identifier になる",
			args: args{
				fields: []metadata.Field{namedField("type", 0, "u8")},
			},
			want: "{\n    r#type: u8,\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields, err := NewCompositeDefFields("Test", tt.args.fields, nil, typeGen)
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}

			got := fields.StructFields(tt.args.phantomData, tt.args.visibility)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestCompositeDefFields_EnumVariantFields(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)

	tests := []struct {
		name   string
		fields []metadata.Field
		want   string
	}{
		{
			name: "フィールドがない場合は空",
			want: "",
		},
		{
			name: "名前付きフィールドは可視性なしの波括弧",
			fields: []metadata.Field{
				namedField("value", 4, "Compact<u32>"),
				namedField("owner", 3, "bool"),
			},
			want: "{\n    #[codec(compact)]\n    value: u32,\n    owner: bool,\n}",
		},
		{
			name: "名前なしフィールドは丸括弧",
			fields: []metadata.Field{
				unnamedField(4, "Compact<u32>"),
				unnamedField(3, "bool"),
			},
			want: "(#[codec(compact)] u32, bool)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields, err := NewCompositeDefFields("Test", tt.fields, nil, typeGen)
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}

			if diff := cmp.Diff(tt.want, fields.EnumVariantFields()); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestNewStructDef_CompactAs(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)
	balance := TypeParameter{ConcreteTypeID: 1, OriginalName: "Balance", Name: "_0"}

	type args struct {
		params []TypeParameter
		fields []metadata.Field
	}

	tests := []struct {
		name          string
		args          args
		wantCompactAs bool
	}{
		{
			name:          "符号なし整数1つのラッパーは CompactAs を持つ",
			args:          args{fields: []metadata.Field{unnamedField(1, "u32")}},
			wantCompactAs: true,
		},
		{
			name:          "名前付きでも符号なし整数1つなら CompactAs を持つ",
			args:          args{fields: []metadata.Field{namedField("value", 0, "u8")}},
			wantCompactAs: true,
		},
		{
			name:          "Box で包まれていても解決後の型が u128 なら CompactAs を持つ",
			args:          args{fields: []metadata.Field{namedField("amount", 2, "Box<u128>")}},
			wantCompactAs: true,
		},
		{
			name: "フィールドが2つ以上の場合は CompactAs を持たない",
			args: args{fields: []metadata.Field{
				unnamedField(1, "u32"),
				unnamedField(1, "u32"),
			}},
			wantCompactAs: false,
		},
		{
			name: "フィールドの型が自身のジェネリックパラメータの場合は CompactAs を持たない",
			args: args{
				params: []TypeParameter{balance},
				fields: []metadata.Field{unnamedField(1, "Balance")},
			},
			wantCompactAs: false,
		},
		{
			name:          "bool の場合は CompactAs を持たない",
			args:          args{fields: []metadata.Field{unnamedField(3, "bool")}},
			wantCompactAs: false,
		},
		{
			name:          "compact 型の場合は CompactAs を持たない",
			args:          args{fields: []metadata.Field{unnamedField(4, "Compact<u32>")}},
			wantCompactAs: false,
		},
		{
			name:          "フィールドがない場合は CompactAs を持たない",
			args:          args{},
			wantCompactAs: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := newTestStructDef(t, typeGen, "Test", tt.args.params, tt.args.fields)

			got := slices.Contains(def.Derives().Derives(), codecCompactAs)
			if diff := cmp.Diff(tt.wantCompactAs, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestNewStructDef_DoesNotChangeAmbientDerives(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)

	newTestStructDef(t, typeGen, "Test", nil, []metadata.Field{unnamedField(1, "u32")})

	if diff := cmp.Diff(DefaultDerives, typeGen.Derives().Derives()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}

func TestCompositeDef_String(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)
	param := TypeParameter{ConcreteTypeID: 3, OriginalName: "T", Name: "_0"}

	type args struct {
		name   string
		params []TypeParameter
		fields []metadata.Field
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "フィールドがない struct は末尾にセミコロンが付く",
			args: args{name: "unit"},
			want: testDerives + "\npub struct Unit;",
		},
		{
			name: "未使用のパラメータを持つフィールドなしの struct はマーカーのみを持つ",
			args: args{name: "Unit", params: []TypeParameter{param}},
			want: testDerives + "\npub struct Unit<_0>(::core::marker::PhantomData<_0>);",
		},
		{
			name: "名前なしフィールドの struct は末尾にセミコロンが付く",
			args: args{name: "perbill", fields: []metadata.Field{unnamedField(1, "u32")}},
			want: testDerivesCompactAs + "\npub struct Perbill(pub u32);",
		},
		{
			name: "名前付きフィールドの struct は末尾にセミコロンが付かない",
			args: args{
				name: "account_data",
				fields: []metadata.Field{
					namedField("free", 2, "Balance"),
					namedField("reserved", 2, "Balance"),
				},
			},
			want: testDerives + `
pub struct AccountData {
    pub free: u128,
    pub reserved: u128,
}`,
		},
		{
			name: "使用されているパラメータはマーカーを生成しない",
			args: args{
				name:   "Wrapper",
				params: []TypeParameter{param},
				fields: []metadata.Field{unnamedField(3, "T"), unnamedField(0, "u8")},
			},
			want: testDerives + "\npub struct Wrapper<_0>(pub _0, pub u8);",
		},
		{
			// the derive is decided on the registry type, not on boxing
			name: "Box のフィールドと未使用のパラメータ",
			args: args{
				name:   "Deposit",
				params: []TypeParameter{param},
				fields: []metadata.Field{namedField("amount", 2, "Box<u128>")},
			},
			want: testDerivesCompactAs + `
pub struct Deposit<_0> {
    pub amount: ::std::boxed::Box<u128>,
    #[codec(skip)]
    pub __subxt_unused_type_params: ::core::marker::PhantomData<_0>,
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := newTestStructDef(t, typeGen, tt.args.name, tt.args.params, tt.args.fields)

			if diff := cmp.Diff(CompositeDefKindStruct, def.Kind); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.want, def.String()); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestCompositeDef_String_EnumVariant(t *testing.T) {
	t.Parallel()

	typeGen := newCompositeTestTypeGenerator(t)

	tests := []struct {
		name        string
		variantName string
		fields      []metadata.Field
		want        string
	}{
		{
			name:        "フィールドなしのバリアントは名前のみ",
			variantName: "None",
			want:        "None",
		},
		{
			name:        "名前なしフィールドのバリアント",
			variantName: "Some",
			fields:      []metadata.Field{unnamedField(0, "u8")},
			want:        "Some(u8)",
		},
		{
			name:        "バリアント名は変換されない",
			variantName: "transfer_all",
			fields:      []metadata.Field{namedField("keep_alive", 3, "bool")},
			want:        "transfer_all {\n    keep_alive: bool,\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields, err := NewCompositeDefFields(tt.variantName, tt.fields, nil, typeGen)
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}

			def := NewEnumVariantDef(tt.variantName, fields)

			if diff := cmp.Diff(CompositeDefKindEnumVariant, def.Kind); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.want, def.String()); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestCompositeDefFieldType_IsBoxed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typeName *string
		want     bool
		wantType string
	}{
		{name: "Box を含む型名", typeName: ptr("Box<u128>"), want: true, wantType: "::std::boxed::Box<u8>"},
		{name: "ネストした Box", typeName: ptr("Vec<Box<Call>>"), want: true, wantType: "::std::boxed::Box<u8>"},
		{name: "Box を含まない型名", typeName: ptr("u128"), want: false, wantType: "u8"},
		{name: "BoxedCall は Box< を含まない", typeName: ptr("BoxedCall"), want: false, wantType: "u8"},
		{name: "型名がない", typeName: nil, want: false, wantType: "u8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			field := NewCompositeDefFieldType(0, primitivePath(metadata.PrimitiveU8), tt.typeName)

			if diff := cmp.Diff(tt.want, field.IsBoxed()); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.wantType, field.String()); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func ptr[T any](t T) *T {
	return &t
}
