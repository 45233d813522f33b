// Package manager binds the engine, registry and terminal layers into the
// operations the CLI exposes. The CLI calls only this package.
package manager

import (
	"context"
	"strings"
	"time"

	"redcell/internal/cache"
	"redcell/internal/config"
	"redcell/internal/engine"
	"redcell/internal/logging"
	"redcell/internal/model"
	"redcell/internal/registry"
	"redcell/internal/tui"
)

// cacheTTL bounds how long cached registry metadata is trusted before a
// refetch.
const cacheTTL = 24 * time.Hour

// Engine is the subset of the engine client the manager drives.
type Engine interface {
	ListImages(ctx context.Context, repo string) ([]engine.ImageSummary, error)
	PullImage(ctx context.Context, ref string) (*engine.EventStream, error)
	BuildImage(ctx context.Context, buildDir, tag string, buildArgs map[string]*string) (*engine.EventStream, error)
	RemoveImage(ctx context.Context, ref string) error
	ListContainers(ctx context.Context, prefix string) ([]engine.ContainerSummary, error)
	CreateContainer(ctx context.Context, opts engine.CreateOptions) (string, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string) error
	RemoveContainer(ctx context.Context, id string) error
	ExecShell(ctx context.Context, id string, cmd []string) error
	ExecBackground(ctx context.Context, id string, cmd []string) error
}

// Registry is the remote metadata source backing image status columns.
type Registry interface {
	ListTags(ctx context.Context, repo string) ([]registry.RemoteImage, error)
}

// Manager orchestrates one invocation's worth of work.
type Manager struct {
	cfg      *config.Config
	engine   Engine
	registry Registry
	cache    *cache.Cache
	console  *tui.Console
	log      *logging.Logger
}

// New wires a manager. The metadata cache is best-effort: when it cannot be
// opened every lookup goes straight to the registry.
func New(cfg *config.Config, eng Engine, console *tui.Console) *Manager {
	m := &Manager{
		cfg:      cfg,
		engine:   eng,
		registry: registry.NewClient(),
		console:  console,
		log:      console.Log,
	}
	c, err := cache.Open(cfg.CachePath)
	if err != nil {
		m.log.Debug("metadata cache unavailable: %s", err)
	} else {
		m.cache = c
	}
	return m
}

// Close releases the manager's cache handle.
func (m *Manager) Close() error {
	if m.cache == nil {
		return nil
	}
	return m.cache.Close()
}

// remoteTags returns registry metadata for the configured repository,
// served from the cache when fresh enough and refreshed otherwise. Registry
// failures degrade to stale cache data rather than failing the command.
func (m *Manager) remoteTags(ctx context.Context) []registry.RemoteImage {
	var cached []registry.RemoteImage
	var fetchedAt time.Time
	if m.cache != nil {
		var err error
		cached, fetchedAt, err = m.cache.GetTags(m.cfg.ImageRepo)
		if err != nil {
			m.log.Debug("metadata cache read failed: %s", err)
		}
		if len(cached) > 0 && time.Since(fetchedAt) < cacheTTL {
			return cached
		}
	}

	remote, err := m.registry.ListTags(ctx, m.cfg.ImageRepo)
	if err != nil {
		m.log.Warning("Unable to reach the registry: %s", err)
		return cached
	}
	if m.cache != nil {
		if err := m.cache.PutTags(m.cfg.ImageRepo, remote); err != nil {
			m.log.Debug("metadata cache write failed: %s", err)
		}
	}
	return remote
}

// ListImages merges locally installed images with registry metadata into
// the display records.
func (m *Manager) ListImages(ctx context.Context) ([]model.Image, error) {
	local, err := m.engine.ListImages(ctx, m.cfg.ImageRepo)
	if err != nil {
		return nil, err
	}
	remote := m.remoteTags(ctx)
	return mergeImages(m.cfg.ImageRepo, local, remote), nil
}

// mergeImages joins local engine state with remote registry metadata.
// Installed images keep remote tags' download sizes; remote-only tags show
// as not installed; tags unknown to the registry are local builds.
func mergeImages(repo string, local []engine.ImageSummary, remote []registry.RemoteImage) []model.Image {
	remoteByTag := make(map[string]registry.RemoteImage, len(remote))
	for _, r := range remote {
		remoteByTag[r.Tag] = r
	}

	var images []model.Image
	installed := make(map[string]struct{})
	for _, summary := range local {
		for _, repoTag := range summary.RepoTags {
			tag := strings.TrimPrefix(repoTag, repo+":")
			installed[tag] = struct{}{}
			img := model.Image{
				Tag:      tag,
				ID:       summary.ID,
				DiskSize: summary.Size,
			}
			if r, ok := remoteByTag[tag]; ok {
				img.Type = model.TypeRemote
				img.DownloadSize = r.DownloadSize
				img.Status = model.StatusUpToDate
				if r.Digest != "" && !hasDigest(summary.Digests, r.Digest) {
					img.Status = model.StatusUpdateAvailable
				}
			} else {
				img.Type = model.TypeLocal
				img.Status = model.StatusLocal
			}
			images = append(images, img)
		}
	}
	for _, r := range remote {
		if _, ok := installed[r.Tag]; ok {
			continue
		}
		images = append(images, model.Image{
			Tag:          r.Tag,
			Status:       model.StatusNotInstalled,
			Type:         model.TypeRemote,
			DownloadSize: r.DownloadSize,
		})
	}
	return images
}

func hasDigest(digests []string, want string) bool {
	for _, d := range digests {
		if d == want {
			return true
		}
	}
	return false
}

// ResolveImage returns the image for tag, or prompts when tag is empty.
func (m *Manager) ResolveImage(ctx context.Context, tag string) (model.Image, error) {
	images, err := m.ListImages(ctx)
	if err != nil {
		return model.Image{}, err
	}
	return m.selectOrFind(images, tag)
}

func (m *Manager) imageRef(tag string) string {
	return m.cfg.ImageRepo + ":" + tag
}

func (m *Manager) containerRef(name string) string {
	return m.cfg.ContainerPrefix + name
}
