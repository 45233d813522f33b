// Package engine wraps the Docker engine API for redcell.
//
// All real work (pulls, builds, container lifecycle) is delegated to the
// engine; this package only shapes requests and decodes the engine's
// response streams.
package engine

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"
)

// Client wraps the Docker client
type Client struct {
	docker *client.Client
}

// NewClient creates a new Docker client and verifies the daemon is reachable
func NewClient(ctx context.Context) (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	if _, err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &Client{docker: cli}, nil
}

// Close closes the Docker client connection
func (c *Client) Close() error {
	return c.docker.Close()
}
