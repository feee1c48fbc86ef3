package metadata

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Registry is an indexed, validated set of portable types.
type Registry struct {
	types map[uint32]*Type
}

// NewRegistry indexes types by id and checks that the registry is well formed.
func NewRegistry(types []PortableType) (*Registry, error) {
	r := &Registry{types: make(map[uint32]*Type, len(types))}
	for _, pt := range types {
		if _, ok := r.types[pt.ID]; ok {
			return nil, fmt.Errorf("duplicate type id %d", pt.ID)
		}
		r.types[pt.ID] = &pt.Type
	}

	for _, id := range r.ids() {
		if err := r.validate(r.types[id]); err != nil {
			return nil, fmt.Errorf("type %d: %w", id, err)
		}
	}

	return r, nil
}

// Resolve returns the type registered under id.
func (r *Registry) Resolve(id uint32) (*Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Types returns all registered types in ascending id order.
func (r *Registry) Types() []PortableType {
	types := make([]PortableType, 0, len(r.types))
	for _, id := range r.ids() {
		types = append(types, PortableType{ID: id, Type: *r.types[id]})
	}
	return types
}

func (r *Registry) Len() int {
	return len(r.types)
}

func (r *Registry) ids() []uint32 {
	return slices.Sorted(maps.Keys(r.types))
}

func (r *Registry) validate(t *Type) error {
	kinds := t.Def.Kinds()
	switch len(kinds) {
	case 0:
		return errors.New("no type definition")
	case 1:
	default:
		return fmt.Errorf("ambiguous type definition %v", kinds)
	}

	for _, param := range t.Params {
		if param.Type != nil {
			if err := r.exists(*param.Type); err != nil {
				return fmt.Errorf("param %s: %w", param.Name, err)
			}
		}
	}

	if (kinds[0] == TypeDefKindComposite || kinds[0] == TypeDefKindVariant) && len(t.Path) == 0 {
		return fmt.Errorf("%s type without path", kinds[0])
	}

	switch d := t.Def; kinds[0] {
	case TypeDefKindComposite:
		return r.validateFields(d.Composite.Fields)
	case TypeDefKindVariant:
		seen := make(map[uint8]string, len(d.Variant.Variants))
		for _, v := range d.Variant.Variants {
			if other, ok := seen[v.Index]; ok {
				return fmt.Errorf("variants %s and %s share index %d", other, v.Name, v.Index)
			}
			seen[v.Index] = v.Name
			if err := r.validateFields(v.Fields); err != nil {
				return fmt.Errorf("variant %s: %w", v.Name, err)
			}
		}
	case TypeDefKindSequence:
		return r.exists(d.Sequence.Type)
	case TypeDefKindArray:
		return r.exists(d.Array.Type)
	case TypeDefKindTuple:
		for _, elem := range *d.Tuple {
			if err := r.exists(elem); err != nil {
				return err
			}
		}
	case TypeDefKindPrimitive:
		if !d.Primitive.supported() {
			return fmt.Errorf("unsupported primitive %q", *d.Primitive)
		}
	case TypeDefKindCompact:
		return r.exists(d.Compact.Type)
	case TypeDefKindBitSequence:
		if err := r.exists(d.BitSequence.BitStoreType); err != nil {
			return err
		}
		return r.exists(d.BitSequence.BitOrderType)
	}

	return nil
}

func (r *Registry) validateFields(fields []Field) error {
	for i, field := range fields {
		if err := r.exists(field.Type); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

func (r *Registry) exists(id uint32) error {
	if _, ok := r.types[id]; !ok {
		return fmt.Errorf("unknown type id %d", id)
	}
	return nil
}
