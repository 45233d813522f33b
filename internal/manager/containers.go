package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/mount"
	"github.com/google/uuid"

	"redcell/internal/engine"
	"redcell/internal/model"
	"redcell/internal/profile"
	"redcell/internal/tui"
)

const workspaceTarget = "/workspace"

// ListContainers returns the managed containers as display records, names
// stripped of the managed prefix.
func (m *Manager) ListContainers(ctx context.Context) ([]model.Container, error) {
	summaries, err := m.engine.ListContainers(ctx, m.cfg.ContainerPrefix)
	if err != nil {
		return nil, err
	}
	containers := make([]model.Container, 0, len(summaries))
	for _, s := range summaries {
		containers = append(containers, model.Container{
			Name:        strings.TrimPrefix(s.Name, m.cfg.ContainerPrefix),
			ID:          s.ID,
			State:       s.State,
			ImageTag:    strings.TrimPrefix(s.ImageTag, m.cfg.ImageRepo+":"),
			Privileged:  s.Features.Privileged,
			NetworkHost: s.Features.NetworkHost,
			Mounts:      s.Mounts,
			Devices:     s.Devices,
			Envs:        s.Envs,
		})
	}
	return containers, nil
}

// ResolveContainer returns the container for name, or prompts when name is
// empty.
func (m *Manager) ResolveContainer(ctx context.Context, name string) (model.Container, error) {
	containers, err := m.ListContainers(ctx)
	if err != nil {
		return model.Container{}, err
	}
	if name != "" {
		for _, ctr := range containers {
			if ctr.Name == name {
				return ctr, nil
			}
		}
		return model.Container{}, fmt.Errorf("unknown container %q", name)
	}
	return m.console.SelectContainer(containers, "")
}

// Start brings a named container up and attaches a shell. A container that
// does not exist yet is created first from a selected image and profile.
func (m *Manager) Start(ctx context.Context, name, imageTag, profileName string) error {
	containers, err := m.ListContainers(ctx)
	if err != nil {
		return err
	}

	var target model.Container
	found := false
	if name == "" && len(containers) > 0 {
		target, err = m.console.SelectContainer(containers, "")
		if err != nil {
			return err
		}
		name = target.Name
		found = true
	} else {
		for _, ctr := range containers {
			if ctr.Name == name {
				target = ctr
				found = true
				break
			}
		}
	}
	if name == "" {
		return fmt.Errorf("a container name is required to create a new environment")
	}

	if !found {
		if _, err := m.create(ctx, name, imageTag, profileName); err != nil {
			return err
		}
	} else if !target.Running() {
		if err := m.engine.StartContainer(ctx, m.containerRef(name)); err != nil {
			return err
		}
	}

	m.log.Info("Attaching to %s", name)
	return m.engine.ExecShell(ctx, m.containerRef(name), []string{"/bin/sh"})
}

// create builds the engine options for a new environment container and
// creates and starts it. The image must be installed.
func (m *Manager) create(ctx context.Context, name, imageTag, profileName string) (string, error) {
	images, err := m.ListImages(ctx)
	if err != nil {
		return "", err
	}
	installed := filterImages(images, model.Image.Installed)
	img, err := m.selectOrFind(installed, imageTag)
	if err != nil {
		if errors.Is(err, tui.ErrEmptyInput) {
			return "", fmt.Errorf("no image installed, run install first")
		}
		return "", err
	}

	prof, err := m.selectProfile(profileName)
	if err != nil {
		return "", err
	}

	workspace := filepath.Join(m.cfg.WorkspaceDir, name)
	if err := os.MkdirAll(workspace, 0o750); err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}

	opts := engine.CreateOptions{
		Name:        m.containerRef(name),
		Image:       m.imageRef(img.Tag),
		Hostname:    m.containerRef(name),
		Privileged:  prof.Privileged,
		NetworkHost: prof.NetworkHost,
		Devices:     prof.Devices,
		Envs:        prof.EnvList(),
		Caps:        prof.Caps,
		Binds: []mount.Mount{{
			Type:   mount.TypeBind,
			Source: workspace,
			Target: workspaceTarget,
		}},
	}
	for _, vol := range prof.Volumes {
		src, dst, ok := strings.Cut(vol, ":")
		if !ok {
			return "", fmt.Errorf("malformed volume %q in profile %s", vol, prof.Name)
		}
		opts.Binds = append(opts.Binds, mount.Mount{
			Type:   mount.TypeBind,
			Source: src,
			Target: dst,
		})
	}

	m.log.Info("Creating %s from %s (profile %s)", name, img.Tag, prof.Name)
	id, err := m.engine.CreateContainer(ctx, opts)
	if err != nil {
		return "", err
	}
	if err := m.engine.StartContainer(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Manager) selectProfile(name string) (profile.Profile, error) {
	profiles, err := profile.Load(m.cfg.ProfilesPath)
	if err != nil {
		return profile.Profile{}, err
	}
	if name != "" {
		p, ok := profiles[name]
		if !ok {
			return profile.Profile{}, fmt.Errorf("unknown profile %q", name)
		}
		return p, nil
	}
	return tui.SelectValue(m.console, "a profile", "Profile", profiles, "default")
}

// Stop stops a running container.
func (m *Manager) Stop(ctx context.Context, name string) error {
	ctr, err := m.ResolveContainer(ctx, name)
	if err != nil {
		return err
	}
	if err := m.engine.StopContainer(ctx, m.containerRef(ctr.Name)); err != nil {
		return err
	}
	m.log.Success("Container %s stopped", ctr.Name)
	return nil
}

// Remove deletes a container and its workspace directory is left in place
// for the user to reclaim.
func (m *Manager) Remove(ctx context.Context, name string) error {
	ctr, err := m.ResolveContainer(ctx, name)
	if err != nil {
		return err
	}
	if err := m.engine.RemoveContainer(ctx, m.containerRef(ctr.Name)); err != nil {
		return err
	}
	m.log.Success("Container %s removed", ctr.Name)
	m.log.Info("Workspace kept at %s", filepath.Join(m.cfg.WorkspaceDir, ctr.Name))
	return nil
}

// Exec runs a command in a container. With temporary set, a disposable
// container is created from a selected image and removed afterwards. With
// background set the command is detached and redcell returns immediately.
func (m *Manager) Exec(ctx context.Context, name string, cmd []string, background, temporary bool) error {
	if len(cmd) == 0 {
		return fmt.Errorf("a command is required")
	}

	if temporary {
		return m.execTemporary(ctx, cmd, background)
	}

	ctr, err := m.ResolveContainer(ctx, name)
	if err != nil {
		return err
	}
	if !ctr.Running() {
		if err := m.engine.StartContainer(ctx, m.containerRef(ctr.Name)); err != nil {
			return err
		}
	}
	if background {
		m.log.Info("Running in background on %s", ctr.Name)
		return m.engine.ExecBackground(ctx, m.containerRef(ctr.Name), cmd)
	}
	return m.engine.ExecShell(ctx, m.containerRef(ctr.Name), cmd)
}

func (m *Manager) execTemporary(ctx context.Context, cmd []string, background bool) error {
	name := "tmp-" + uuid.NewString()[:8]
	id, err := m.create(ctx, name, "", "")
	if err != nil {
		return err
	}
	m.log.Verbose("Temporary container %s ready", name)

	// A detached command would die with the container, so background
	// temporaries are left for the user to remove.
	if background {
		m.log.Warning("Temporary container %s will not be removed automatically", name)
		return m.engine.ExecBackground(ctx, id, cmd)
	}

	defer func() {
		if err := m.engine.RemoveContainer(ctx, id); err != nil {
			m.log.Warning("Failed to clean up temporary container %s: %s", name, err)
		}
	}()
	return m.engine.ExecShell(ctx, id, cmd)
}
