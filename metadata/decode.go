package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/goccy/go-yaml"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromFilename picks the format from the file extension. Anything that
// is not .yml or .yaml is read as JSON.
func FormatFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type document struct {
	Types []PortableType `json:"types" yaml:"types"`
}

// Decode parses a serialized type registry of the form {"types": [...]}.
func Decode(data []byte, format Format) (*Registry, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported metadata format %q", format)
	}

	registry, err := NewRegistry(doc.Types)
	if err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}

	return registry, nil
}

// Load reads and decodes the registry stored in filename.
func Load(filename string) (*Registry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read metadata: %w", err)
	}

	registry, err := Decode(data, FormatFromFilename(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return registry, nil
}
