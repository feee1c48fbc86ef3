package codegen

import (
	"maps"
	"slices"
	"strings"
)

const indentUnit = "    "

const generatedHeader = "// Code generated by scalegen. DO NOT EDIT.\n\n"

// Module is a Rust module holding generated declarations and child modules.
type Module struct {
	name       string
	rootModule string
	children   map[string]*Module
	types      []*TypeDefGen
}

func NewModule(name, rootModule string) *Module {
	return &Module{
		name:       name,
		rootModule: rootModule,
		children:   map[string]*Module{},
	}
}

func (m *Module) Name() string {
	return m.name
}

// Child returns the direct child module called name.
func (m *Module) Child(name string) (*Module, bool) {
	child, ok := m.children[name]
	return child, ok
}

// Children returns the direct child modules sorted by name.
func (m *Module) Children() []*Module {
	names := slices.Sorted(maps.Keys(m.children))
	children := make([]*Module, 0, len(names))
	for _, name := range names {
		children = append(children, m.children[name])
	}
	return children
}

func (m *Module) Types() []*TypeDefGen {
	return m.types
}

// Insert adds typeDef to the module found by following namespace from m,
// creating intermediate modules as needed.
func (m *Module) Insert(namespace []string, typeDef *TypeDefGen) {
	mod := m
	for _, segment := range namespace {
		child, ok := mod.children[segment]
		if !ok {
			child = NewModule(segment, m.rootModule)
			mod.children[segment] = child
		}
		mod = child
	}
	mod.types = append(mod.types, typeDef)
}

func (m *Module) String() string {
	items := []string{"use super::" + m.rootModule + ";"}
	for _, child := range m.Children() {
		items = append(items, child.String())
	}
	for _, t := range m.types {
		items = append(items, t.String())
	}

	var buf strings.Builder
	buf.WriteString("pub mod " + ident(m.name) + " {\n")
	buf.WriteString(indent(strings.Join(items, "\n\n"), 1))
	buf.WriteString("\n}")
	return buf.String()
}

// Render returns the complete generated source file for the root module.
func Render(root *Module) string {
	return generatedHeader +
		"#[allow(dead_code, unused_imports, non_camel_case_types)]\n" +
		root.String() + "\n"
}

// indent prefixes every non-empty line of s with level indentation units.
func indent(s string, level int) string {
	prefix := strings.Repeat(indentUnit, level)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
