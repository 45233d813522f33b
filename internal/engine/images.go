package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/pkg/archive"

	"redcell/internal/telemetry"
)

// ImageSummary describes one locally installed image.
type ImageSummary struct {
	ID       string
	RepoTags []string
	Digests  []string // registry manifest digests, "sha256:..." only
	Size     int64
}

// ListImages returns the locally installed images for the given repository.
func (c *Client) ListImages(ctx context.Context, repo string) ([]ImageSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "engine.list_images")
	defer span.End()
	span.SetAttributes(telemetry.String("image.repo", repo))

	list, err := c.docker.ImageList(ctx, image.ListOptions{All: false})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var summaries []ImageSummary
	for _, img := range list {
		var tags []string
		for _, tag := range img.RepoTags {
			if repoOf(tag) == repo {
				tags = append(tags, tag)
			}
		}
		if len(tags) == 0 {
			continue
		}
		var digests []string
		for _, d := range img.RepoDigests {
			if i := strings.LastIndex(d, "@"); i >= 0 {
				digests = append(digests, d[i+1:])
			}
		}
		summaries = append(summaries, ImageSummary{
			ID:       shortID(img.ID),
			RepoTags: tags,
			Digests:  digests,
			Size:     img.Size,
		})
	}
	return summaries, nil
}

// PullImage starts an image pull and returns the engine's event stream.
// The caller owns the stream and must close it.
func (c *Client) PullImage(ctx context.Context, ref string) (*EventStream, error) {
	ctx, span := telemetry.StartSpan(ctx, "engine.pull_image")
	defer span.End()
	span.SetAttributes(telemetry.String("image.ref", ref))

	body, err := c.docker.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	return NewEventStream(body), nil
}

// BuildImage starts a local image build from buildDir and returns the
// engine's event stream. The caller owns the stream and must close it.
func (c *Client) BuildImage(ctx context.Context, buildDir, tag string, buildArgs map[string]*string) (*EventStream, error) {
	ctx, span := telemetry.StartSpan(ctx, "engine.build_image")
	defer span.End()
	span.SetAttributes(telemetry.String("image.tag", tag))

	buildCtx, err := archive.TarWithOptions(buildDir, &archive.TarOptions{})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to prepare build context: %w", err)
	}

	resp, err := c.docker.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:      []string{tag},
		Remove:    true,
		BuildArgs: buildArgs,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build image %s: %w", tag, err)
	}
	return NewEventStream(resp.Body), nil
}

// RemoveImage deletes a local image.
func (c *Client) RemoveImage(ctx context.Context, ref string) error {
	ctx, span := telemetry.StartSpan(ctx, "engine.remove_image")
	defer span.End()
	span.SetAttributes(telemetry.String("image.ref", ref))

	if _, err := c.docker.ImageRemove(ctx, ref, image.RemoveOptions{PruneChildren: true}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to remove image %s: %w", ref, err)
	}
	return nil
}

func repoOf(tag string) string {
	for i := len(tag) - 1; i >= 0; i-- {
		if tag[i] == ':' {
			return tag[:i]
		}
		if tag[i] == '/' {
			break
		}
	}
	return tag
}

func shortID(id string) string {
	const prefix = "sha256:"
	if len(id) > len(prefix) && id[:len(prefix)] == prefix {
		id = id[len(prefix):]
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}
