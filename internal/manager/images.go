package manager

import (
	"context"
	"fmt"

	"redcell/internal/config"
	"redcell/internal/model"
	"redcell/internal/progress"
)

// Install pulls an image from the registry, or builds it locally when
// buildDir is set. An empty tag prompts over the registry's tags.
func (m *Manager) Install(ctx context.Context, tag, buildDir string) error {
	if buildDir != "" {
		return m.build(ctx, buildDir)
	}

	img, err := m.ResolveImage(ctx, tag)
	if err != nil {
		return err
	}
	if img.Type == model.TypeLocal {
		return fmt.Errorf("image %q is a local build, re-install it with --build", img.Tag)
	}
	return m.pull(ctx, img.Tag)
}

// Update refreshes an installed image from the registry. An empty tag
// prompts over the images that have an update available, falling back to
// every installed image when none does.
func (m *Manager) Update(ctx context.Context, tag string) error {
	images, err := m.ListImages(ctx)
	if err != nil {
		return err
	}
	if tag == "" {
		candidates := filterImages(images, func(img model.Image) bool {
			return img.Status == model.StatusUpdateAvailable
		})
		if len(candidates) == 0 {
			candidates = filterImages(images, func(img model.Image) bool {
				return img.Installed() && img.Type == model.TypeRemote
			})
		}
		img, err := m.selectOrFind(candidates, "")
		if err != nil {
			return err
		}
		tag = img.Tag
	}
	return m.pull(ctx, tag)
}

// Uninstall removes a locally installed image. An empty tag prompts over
// the installed images.
func (m *Manager) Uninstall(ctx context.Context, tag string) error {
	images, err := m.ListImages(ctx)
	if err != nil {
		return err
	}
	installed := filterImages(images, model.Image.Installed)
	img, err := m.selectOrFind(installed, tag)
	if err != nil {
		return err
	}
	if err := m.engine.RemoveImage(ctx, m.imageRef(img.Tag)); err != nil {
		return err
	}
	m.log.Success("Image %s removed", img.Tag)
	return nil
}

func (m *Manager) pull(ctx context.Context, tag string) error {
	ref := m.imageRef(tag)
	m.log.Info("Pulling %s", ref)
	stream, err := m.engine.PullImage(ctx, ref)
	if err != nil {
		return err
	}
	defer stream.Close()

	surface := m.console.NewSurface()
	err = progress.ConsumePull(stream, surface, m.log, false)
	surface.Close()
	return err
}

func (m *Manager) build(ctx context.Context, buildDir string) error {
	ref := m.imageRef(config.LocalImageTag)
	m.log.Info("Building %s from %s", ref, buildDir)
	stream, err := m.engine.BuildImage(ctx, buildDir, ref, nil)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := progress.ConsumeBuild(stream, m.console.NewSurface, m.log); err != nil {
		return err
	}
	m.log.Success("Image %s built", ref)
	return nil
}

func (m *Manager) selectOrFind(images []model.Image, tag string) (model.Image, error) {
	if tag != "" {
		for _, img := range images {
			if img.Tag == tag {
				return img, nil
			}
		}
		return model.Image{}, fmt.Errorf("unknown image tag %q", tag)
	}
	return m.console.SelectImage(images, "")
}

func filterImages(images []model.Image, keep func(model.Image) bool) []model.Image {
	var out []model.Image
	for _, img := range images {
		if keep(img) {
			out = append(out, img)
		}
	}
	return out
}
