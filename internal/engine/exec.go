package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types/container"
	"golang.org/x/term"

	"redcell/internal/telemetry"
)

// ExecShell attaches an interactive command to a running container. The
// local terminal is switched to raw mode for the duration of the session.
func (c *Client) ExecShell(ctx context.Context, id string, cmd []string) error {
	ctx, span := telemetry.StartSpan(ctx, "engine.exec_shell")
	defer span.End()

	exec, err := c.docker.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd:          cmd,
		Tty:          true,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create exec: %w", err)
	}

	attach, err := c.docker.ContainerExecAttach(ctx, exec.ID, container.ExecAttachOptions{Tty: true})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to attach exec: %w", err)
	}
	defer attach.Close()

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to set raw terminal: %w", err)
		}
		defer term.Restore(fd, oldState)
	}

	done := make(chan error, 1)
	go func() {
		_, err := io.Copy(os.Stdout, attach.Reader)
		done <- err
	}()
	go func() {
		io.Copy(attach.Conn, os.Stdin)
		attach.CloseWrite()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ExecBackground runs a command in a container without attaching, for
// daemonized tool launches.
func (c *Client) ExecBackground(ctx context.Context, id string, cmd []string) error {
	ctx, span := telemetry.StartSpan(ctx, "engine.exec_background")
	defer span.End()

	exec, err := c.docker.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd:    cmd,
		Detach: true,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create exec: %w", err)
	}
	if err := c.docker.ContainerExecStart(ctx, exec.ID, container.ExecStartOptions{Detach: true}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to start exec: %w", err)
	}
	return nil
}
