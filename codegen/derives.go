package codegen

import (
	"slices"
	"strings"
)

const codecCompactAs = "::subxt::ext::codec::CompactAs"

// DefaultDerives are attached to every generated declaration.
var DefaultDerives = []string{
	"::subxt::ext::codec::Decode",
	"::subxt::ext::codec::Encode",
	"Debug",
}

// GeneratedTypeDerives is an ordered set of derive macros.
type GeneratedTypeDerives struct {
	derives []string
}

func NewGeneratedTypeDerives(derives ...string) GeneratedTypeDerives {
	var d GeneratedTypeDerives
	d.Append(derives...)
	return d
}

// Clone returns a copy that can be extended independently of d.
func (d GeneratedTypeDerives) Clone() GeneratedTypeDerives {
	return GeneratedTypeDerives{derives: slices.Clone(d.derives)}
}

// Append adds derives that are not yet present, keeping their order.
func (d *GeneratedTypeDerives) Append(derives ...string) {
	for _, derive := range derives {
		if !slices.Contains(d.derives, derive) {
			d.derives = append(d.derives, derive)
		}
	}
}

// PushCodecCompactAs adds the CompactAs derive, which lets a single field
// wrapper around an unsigned integer be encoded as that integer in compact form.
func (d *GeneratedTypeDerives) PushCodecCompactAs() {
	d.Append(codecCompactAs)
}

func (d GeneratedTypeDerives) Derives() []string {
	return slices.Clone(d.derives)
}

// String renders the derive attribute, or "" when there are no derives.
func (d GeneratedTypeDerives) String() string {
	if len(d.derives) == 0 {
		return ""
	}
	return "#[derive(" + strings.Join(d.derives, ", ") + ")]"
}
