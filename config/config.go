package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// DefaultConfigFilenames are searched by FindConfigFile in this order.
var DefaultConfigFilenames = []string{".scalegen.yml", "scalegen.yml", ".scalegen.yaml", "scalegen.yaml"}

// Config represents the config file.
type Config struct {
	// Metadata is a JSON or YAML file holding the type registry.
	Metadata *string `yaml:"metadata,omitempty"`
	// Endpoint serves the type registry as JSON over HTTP.
	Endpoint *EndPointConfig `yaml:"endpoint,omitempty"`
	// Output is the generated Rust source file.
	Output string `yaml:"output"`
	// Module is the name of the root module of the generated types.
	Module string `yaml:"module,omitempty"`
	// Derives are added to every generated type.
	Derives []string `yaml:"derives,omitempty"`
	// Substitutes maps registry paths such as "sp_core::crypto::AccountId32"
	// to Rust paths used instead of generating the type.
	Substitutes map[string]string `yaml:"substitutes,omitempty"`
}

// EndPointConfig are the allowed options for the 'endpoint' config.
type EndPointConfig struct {
	Headers http.Header  `yaml:"headers,omitempty"`
	URL     string       `yaml:"url"`
	Client  *http.Client `yaml:"-"`
}

// LoadConfig loads and parses the config file. Relative file paths in the
// config are resolved against the directory of the config file.
func LoadConfig(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var c Config

	yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(configContent)))), yaml.DisallowUnknownField())
	if err := yamlDecoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	// validation
	if c.Metadata != nil && c.Endpoint != nil {
		return nil, errors.New("'metadata' and 'endpoint' both specified. Use metadata to load from a local file, use endpoint to load from a remote server")
	}

	if c.Metadata == nil && c.Endpoint == nil {
		return nil, errors.New("neither 'metadata' nor 'endpoint' specified. Use metadata to load from a local file, use endpoint to load from a remote server")
	}

	if c.Endpoint != nil && c.Endpoint.URL == "" {
		return nil, errors.New("endpoint: 'url' must be specified")
	}

	if c.Output == "" {
		return nil, errors.New("'output' must be specified")
	}

	dir := filepath.Dir(configFilename)
	if c.Metadata != nil {
		metadataFilename := resolvePath(dir, *c.Metadata)
		c.Metadata = &metadataFilename
	}
	c.Output = resolvePath(dir, c.Output)

	if c.Module == "" {
		c.Module = "runtime_types"
	}

	return &c, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// FindConfigFile searches dir and its parents for the first of filenames.
func FindConfigFile(dir string, filenames []string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("unable to resolve directory: %w", err)
	}

	for {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("none of %v found in %s or its parents", filenames, dir)
		}
		dir = parent
	}
}
