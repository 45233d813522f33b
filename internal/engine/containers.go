package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/mount"

	"redcell/internal/telemetry"
)

// CreateOptions shapes a new environment container.
type CreateOptions struct {
	Name        string
	Image       string
	Hostname    string
	Privileged  bool
	NetworkHost bool
	Binds       []mount.Mount
	Devices     []string
	Envs        []string
	Caps        []string
}

// ContainerSummary describes one managed container.
type ContainerSummary struct {
	ID       string
	Name     string
	State    string
	ImageTag string
	Mounts   []string
	Devices  []string
	Envs     []string
	Features ContainerFeatures
}

// ContainerFeatures summarizes the security-relevant creation options.
type ContainerFeatures struct {
	Privileged  bool
	NetworkHost bool
}

// ListContainers returns the containers whose names carry the given prefix.
func (c *Client) ListContainers(ctx context.Context, prefix string) ([]ContainerSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "engine.list_containers")
	defer span.End()
	span.SetAttributes(telemetry.String("container.prefix", prefix))

	list, err := c.docker.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", prefix)),
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	summaries := make([]ContainerSummary, 0, len(list))
	for _, ctr := range list {
		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		summary, err := c.inspectSummary(ctx, ctr.ID, name)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	span.SetAttributes(telemetry.Int("container.count", len(summaries)))
	return summaries, nil
}

func (c *Client) inspectSummary(ctx context.Context, id, name string) (ContainerSummary, error) {
	info, err := c.docker.ContainerInspect(ctx, id)
	if err != nil {
		return ContainerSummary{}, fmt.Errorf("failed to inspect container %s: %w", name, err)
	}

	summary := ContainerSummary{
		ID:       shortID(id),
		Name:     name,
		State:    info.State.Status,
		ImageTag: info.Config.Image,
		Envs:     info.Config.Env,
	}
	for _, m := range info.Mounts {
		summary.Mounts = append(summary.Mounts, fmt.Sprintf("%s:%s", m.Source, m.Destination))
	}
	if info.HostConfig != nil {
		for _, dev := range info.HostConfig.Devices {
			summary.Devices = append(summary.Devices, dev.PathOnHost)
		}
		summary.Features = ContainerFeatures{
			Privileged:  info.HostConfig.Privileged,
			NetworkHost: string(info.HostConfig.NetworkMode) == "host",
		}
	}
	return summary, nil
}

// CreateContainer creates a stopped container from opts.
func (c *Client) CreateContainer(ctx context.Context, opts CreateOptions) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "engine.create_container")
	defer span.End()
	span.SetAttributes(
		telemetry.String("container.name", opts.Name),
		telemetry.String("image.ref", opts.Image),
	)

	cfg := &container.Config{
		Image:     opts.Image,
		Hostname:  opts.Hostname,
		Env:       opts.Envs,
		Tty:       true,
		OpenStdin: true,
		Cmd:       []string{"/bin/sh"},
	}
	hostCfg := &container.HostConfig{
		Privileged: opts.Privileged,
		Mounts:     opts.Binds,
		CapAdd:     opts.Caps,
	}
	if opts.NetworkHost {
		hostCfg.NetworkMode = "host"
	}
	for _, dev := range opts.Devices {
		hostCfg.Devices = append(hostCfg.Devices, container.DeviceMapping{
			PathOnHost:        dev,
			PathInContainer:   dev,
			CgroupPermissions: "rwm",
		})
	}

	resp, err := c.docker.ContainerCreate(ctx, cfg, hostCfg, nil, nil, opts.Name)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to create container %s: %w", opts.Name, err)
	}
	return resp.ID, nil
}

// StartContainer starts a created or stopped container.
func (c *Client) StartContainer(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "engine.start_container")
	defer span.End()

	if err := c.docker.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

// StopContainer stops a running container.
func (c *Client) StopContainer(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "engine.stop_container")
	defer span.End()

	if err := c.docker.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

// RemoveContainer force-removes a container.
func (c *Client) RemoveContainer(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "engine.remove_container")
	defer span.End()

	if err := c.docker.ContainerRemove(ctx, id, container.RemoveOptions{Force: true}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to remove container: %w", err)
	}
	return nil
}
