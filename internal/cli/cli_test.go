package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"redcell/internal/logging"
)

type fakeOps struct {
	calls  []string
	err    error
	level  logging.Level
	closed bool
}

func (f *fakeOps) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeOps) Start(_ context.Context, name, imageTag, profileName string) error {
	return f.record("start " + name + " " + imageTag + " " + profileName)
}
func (f *fakeOps) Stop(_ context.Context, name string) error { return f.record("stop " + name) }
func (f *fakeOps) Install(_ context.Context, tag, buildDir string) error {
	return f.record("install " + tag + " " + buildDir)
}
func (f *fakeOps) Update(_ context.Context, tag string) error { return f.record("update " + tag) }
func (f *fakeOps) Uninstall(_ context.Context, tag string) error {
	return f.record("uninstall " + tag)
}
func (f *fakeOps) Remove(_ context.Context, name string) error { return f.record("remove " + name) }
func (f *fakeOps) Exec(_ context.Context, name string, cmd []string, background, temporary bool) error {
	call := "exec " + name
	for _, c := range cmd {
		call += " " + c
	}
	if background {
		call += " [bg]"
	}
	if temporary {
		call += " [tmp]"
	}
	return f.record(call)
}
func (f *fakeOps) Info(context.Context) error { return f.record("info") }

func run(t *testing.T, ops *fakeOps, args ...string) int {
	t.Helper()
	factory := func(level logging.Level) (Ops, func(), error) {
		ops.level = level
		return ops, func() { ops.closed = true }, nil
	}
	return Execute(context.Background(), args, factory, "redcell test", io.Discard)
}

func TestCommandsDispatch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"start with flags", []string{"start", "demo", "--image", "full", "--profile", "hw"}, "start demo full hw"},
		{"start bare", []string{"start"}, "start   "},
		{"stop", []string{"stop", "demo"}, "stop demo"},
		{"install", []string{"install", "full"}, "install full "},
		{"install build", []string{"install", "--build", "./images"}, "install  ./images"},
		{"update", []string{"update"}, "update "},
		{"uninstall", []string{"uninstall", "full"}, "uninstall full"},
		{"remove", []string{"remove", "demo"}, "remove demo"},
		{"exec", []string{"exec", "-c", "demo", "-b", "nmap", "-sV"}, "exec demo nmap -sV [bg]"},
		{"exec tmp", []string{"exec", "--tmp", "id"}, "exec  id [tmp]"},
		{"info", []string{"info"}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := &fakeOps{}
			if code := run(t, ops, tt.args...); code != ExitSuccess {
				t.Fatalf("exit code = %d", code)
			}
			if len(ops.calls) != 1 || ops.calls[0] != tt.want {
				t.Errorf("calls = %q, want [%q]", ops.calls, tt.want)
			}
			if !ops.closed {
				t.Error("ops not closed after the command")
			}
		})
	}
}

func TestVerbosityLevels(t *testing.T) {
	tests := []struct {
		args []string
		want logging.Level
	}{
		{[]string{"info"}, logging.LevelInfo},
		{[]string{"-v", "info"}, logging.LevelVerbose},
		{[]string{"-vv", "info"}, logging.LevelDebug},
	}
	for _, tt := range tests {
		ops := &fakeOps{}
		if code := run(t, ops, tt.args...); code != ExitSuccess {
			t.Fatalf("exit code = %d for %v", code, tt.args)
		}
		if ops.level != tt.want {
			t.Errorf("level for %v = %v, want %v", tt.args, ops.level, tt.want)
		}
	}
}

func TestRuntimeErrorExitCode(t *testing.T) {
	ops := &fakeOps{err: errors.New("engine unavailable")}
	if code := run(t, ops, "stop", "demo"); code != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", code, ExitRuntimeError)
	}
}

func TestTooManyArgsExitCode(t *testing.T) {
	ops := &fakeOps{}
	if code := run(t, ops, "stop", "a", "b"); code != ExitInvalidUsage {
		t.Errorf("exit code = %d, want %d", code, ExitInvalidUsage)
	}
}

func TestVersionSkipsOpsFactory(t *testing.T) {
	var out bytes.Buffer
	factory := func(logging.Level) (Ops, func(), error) {
		t.Fatal("ops factory called for version")
		return nil, nil, nil
	}
	cmd := NewRootCommand(factory, "redcell 1.2.3")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("redcell 1.2.3")) {
		t.Errorf("version output = %q", out.String())
	}
}
