package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yamashou/scalegen/client"
	"github.com/Yamashou/scalegen/metadata"
)

// LoadRegistry loads the type registry from the local file or the endpoint.
func (c *Config) LoadRegistry(ctx context.Context) (*metadata.Registry, error) {
	switch {
	case c.Metadata != nil:
		registry, err := metadata.Load(*c.Metadata)
		if err != nil {
			return nil, fmt.Errorf("load local metadata failed: %w", err)
		}
		return registry, nil
	case c.Endpoint != nil:
		options := []client.Option{client.WithHTTPHeader(c.Endpoint.Headers)}
		if c.Endpoint.Client != nil {
			options = append(options, client.WithHTTPClient(c.Endpoint.Client))
		}
		registry, err := client.NewClient(c.Endpoint.URL, options...).Registry(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch remote metadata failed: %w", err)
		}
		return registry, nil
	default:
		return nil, errors.New("neither 'metadata' nor 'endpoint' specified. Use metadata to load from a local file, use endpoint to load from a remote server")
	}
}
