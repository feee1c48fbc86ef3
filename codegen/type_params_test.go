package codegen

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yamashou/scalegen/metadata"
)

func TestTypeDefParameters(t *testing.T) {
	t.Parallel()

	a := TypeParameter{ConcreteTypeID: 1, OriginalName: "A", Name: "_0"}
	b := TypeParameter{ConcreteTypeID: 2, OriginalName: "B", Name: "_1"}

	type want struct {
		generics    string
		unused      []TypeParameter
		phantomData string
	}

	tests := []struct {
		name   string
		params []TypeParameter
		used   [][]TypePath
		want   want
	}{
		{
			name: "パラメータがない場合",
			want: want{},
		},
		{
			name:   "全て未使用の場合はタプルのマーカー",
			params: []TypeParameter{a, b},
			want: want{
				generics:    "<_0, _1>",
				unused:      []TypeParameter{a, b},
				phantomData: "::core::marker::PhantomData<(_0, _1)>",
			},
		},
		{
			name:   "1つだけ未使用の場合はタプルにならない",
			params: []TypeParameter{a, b},
			used:   [][]TypePath{{&vecPath{of: a}}},
			want: want{
				generics:    "<_0, _1>",
				unused:      []TypeParameter{b},
				phantomData: "::core::marker::PhantomData<_1>",
			},
		},
		{
			name:   "複数回の更新で使用済みが累積される",
			params: []TypeParameter{a, b},
			used:   [][]TypePath{{a}, {primitivePath(metadata.PrimitiveU8)}, {b}},
			want: want{
				generics: "<_0, _1>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := NewTypeDefParameters(tt.params)
			for _, paths := range tt.used {
				var fields []*CompositeDefFieldType
				for _, path := range paths {
					fields = append(fields, NewCompositeDefFieldType(0, path, nil))
				}
				params.UpdateUnused(slices.Values(fields))
			}

			phantomData := ""
			if p := params.UnusedParamsPhantomData(); p != nil {
				phantomData = p.String()
			}

			if diff := cmp.Diff(tt.want.generics, params.String()); diff != "" {
				t.Errorf("generics diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.want.unused, params.Unused()); diff != "" {
				t.Errorf("unused diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.want.phantomData, phantomData); diff != "" {
				t.Errorf("phantomData diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(tt.params, params.Params()); diff != "" {
				t.Errorf("params diff(-want +got): %s", diff)
			}
		})
	}
}

func TestTypeParametersOf(t *testing.T) {
	t.Parallel()

	ty := &metadata.Type{
		Params: []metadata.TypeParameter{
			{Name: "T", Type: nil},
			{Name: "Balance", Type: ptr[uint32](4)},
		},
	}

	want := []TypeParameter{{ConcreteTypeID: 4, OriginalName: "Balance", Name: "_1"}}
	if diff := cmp.Diff(want, typeParametersOf(ty)); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}

func TestGeneratedTypeDerives(t *testing.T) {
	t.Parallel()

	derives := NewGeneratedTypeDerives("Debug", "Clone", "Debug")
	clone := derives.Clone()
	clone.PushCodecCompactAs()
	clone.PushCodecCompactAs()

	if diff := cmp.Diff("#[derive(Debug, Clone)]", derives.String()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff("#[derive(Debug, Clone, ::subxt::ext::codec::CompactAs)]", clone.String()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
	if diff := cmp.Diff("", NewGeneratedTypeDerives().String()); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}

func TestIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{name: "value", want: "value"},
		{name: "type", want: "r#type"},
		{name: "match", want: "r#match"},
		{name: "self", want: "self_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, ident(tt.name)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestToDeclarationCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{name: "account_data", want: "AccountData"},
		{name: "AccountData", want: "AccountData"},
		{name: "perbill", want: "Perbill"},
		{name: "raw_origin", want: "RawOrigin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, toDeclarationCase(tt.name)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}
