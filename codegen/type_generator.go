package codegen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Yamashou/scalegen/metadata"
)

const DefaultRootModule = "runtime_types"

var _ TypeResolver = (*TypeGenerator)(nil)

// TypeGenerator generates declarations for the types of a registry.
type TypeGenerator struct {
	registry    *metadata.Registry
	rootModule  string
	derives     GeneratedTypeDerives
	substitutes map[string]string
	logger      *zap.Logger
}

type Option func(*TypeGenerator)

// WithRootModule sets the module that contains all generated types.
func WithRootModule(name string) Option {
	return func(g *TypeGenerator) {
		g.rootModule = name
	}
}

// WithDerives appends derives to the defaults.
func WithDerives(derives ...string) Option {
	return func(g *TypeGenerator) {
		g.derives.Append(derives...)
	}
}

// WithSubstitutes replaces types whose path (e.g. "sp_core::crypto::AccountId32")
// is a key of substitutes with the given Rust path. No declaration is
// generated for a substituted type.
func WithSubstitutes(substitutes map[string]string) Option {
	return func(g *TypeGenerator) {
		for path, substitute := range substitutes {
			g.substitutes[path] = substitute
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *TypeGenerator) {
		g.logger = logger
	}
}

func NewTypeGenerator(registry *metadata.Registry, options ...Option) *TypeGenerator {
	g := &TypeGenerator{
		registry:    registry,
		rootModule:  DefaultRootModule,
		derives:     NewGeneratedTypeDerives(DefaultDerives...),
		substitutes: map[string]string{},
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(g)
	}

	return g
}

// Generate builds the module tree of every composite and variant type in the
// registry, in type id order.
func (g *TypeGenerator) Generate() (*Module, error) {
	root := NewModule(g.rootModule, g.rootModule)
	seen := make(map[string]struct{})

	for _, pt := range g.registry.Types() {
		kind := pt.Type.Def.Kind()
		if kind != metadata.TypeDefKindComposite && kind != metadata.TypeDefKindVariant {
			continue
		}

		path := strings.Join(pt.Type.Path, "::")
		if _, ok := preludePath(pt.Type.Path); ok {
			g.logger.Debug("skip prelude type", zap.Uint32("id", pt.ID), zap.String("path", path))
			continue
		}
		if _, ok := g.substitutes[path]; ok {
			g.logger.Debug("skip substituted type", zap.Uint32("id", pt.ID), zap.String("path", path))
			continue
		}
		// every instance of a generic type shares one declaration
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		typeDef, err := NewTypeDefGen(&pt.Type, g)
		if err != nil {
			return nil, fmt.Errorf("type %d (%s): %w", pt.ID, path, err)
		}
		root.Insert(pt.Type.Path[:len(pt.Type.Path)-1], typeDef)
		g.logger.Debug("generated type", zap.Uint32("id", pt.ID), zap.String("path", path), zap.String("kind", string(kind)))
	}

	return root, nil
}

// ResolveType returns the registry type with id.
func (g *TypeGenerator) ResolveType(id uint32) *metadata.Type {
	ty, ok := g.registry.Resolve(id)
	if !ok {
		// the registry validates every reference, so this never happens for ids taken from it
		panic(fmt.Sprintf("type %d not found in registry", id))
	}
	return ty
}

// ResolveTypePath resolves the type of a field. A type that is the concrete
// type of one of parentTypeParams is rendered as that parameter.
func (g *TypeGenerator) ResolveTypePath(id uint32, parentTypeParams []TypeParameter) TypePath {
	return g.resolveTypePath(id, parentTypeParams, true)
}

func (g *TypeGenerator) resolveTypePath(id uint32, parentTypeParams []TypeParameter, isField bool) TypePath {
	for _, param := range parentTypeParams {
		if param.ConcreteTypeID == id {
			return param
		}
	}

	ty := g.ResolveType(id)

	switch def := ty.Def; def.Kind() {
	case metadata.TypeDefKindComposite, metadata.TypeDefKindVariant:
		params := make([]TypePath, 0, len(ty.Params))
		for _, param := range ty.Params {
			if param.Type != nil {
				params = append(params, g.resolveTypePath(*param.Type, parentTypeParams, false))
			}
		}
		return &namedPath{path: g.qualifiedPath(ty.Path), params: params}
	case metadata.TypeDefKindSequence:
		return &vecPath{of: g.resolveTypePath(def.Sequence.Type, parentTypeParams, false)}
	case metadata.TypeDefKindArray:
		return &arrayPath{len: def.Array.Len, of: g.resolveTypePath(def.Array.Type, parentTypeParams, false)}
	case metadata.TypeDefKindTuple:
		elems := make([]TypePath, 0, len(*def.Tuple))
		for _, elem := range *def.Tuple {
			elems = append(elems, g.resolveTypePath(elem, parentTypeParams, false))
		}
		return &tuplePath{elems: elems}
	case metadata.TypeDefKindPrimitive:
		return primitivePath(*def.Primitive)
	case metadata.TypeDefKindCompact:
		return &compactPath{inner: g.resolveTypePath(def.Compact.Type, parentTypeParams, false), isField: isField}
	case metadata.TypeDefKindBitSequence:
		return &bitVecPath{
			store: g.resolveTypePath(def.BitSequence.BitStoreType, parentTypeParams, false),
			order: g.resolveTypePath(def.BitSequence.BitOrderType, parentTypeParams, false),
		}
	}
	panic(fmt.Sprintf("type %d has an unexpected definition %v", id, ty.Def.Kinds()))
}

func (g *TypeGenerator) qualifiedPath(path []string) string {
	joined := strings.Join(path, "::")
	if substitute, ok := g.substitutes[joined]; ok {
		return substitute
	}
	if prelude, ok := preludePath(path); ok {
		return prelude
	}

	segments := make([]string, 0, len(path)+1)
	segments = append(segments, g.rootModule)
	for i, segment := range path {
		if i == len(path)-1 {
			segments = append(segments, ident(toDeclarationCase(segment)))
		} else {
			segments = append(segments, ident(segment))
		}
	}
	return strings.Join(segments, "::")
}

// Derives returns the derives attached to every generated declaration.
func (g *TypeGenerator) Derives() GeneratedTypeDerives {
	return g.derives.Clone()
}

func (g *TypeGenerator) RootModule() string {
	return g.rootModule
}
