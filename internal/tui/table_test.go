package tui

import (
	"bytes"
	"strings"
	"testing"

	"redcell/internal/logging"
	"redcell/internal/model"
)

func consoleAt(level logging.Level) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return &Console{
		Out: &out,
		Log: logging.New(level, &out),
	}, &out
}

func TestPrintImagesNormalColumns(t *testing.T) {
	c, out := consoleAt(logging.LevelInfo)
	c.PrintImages([]model.Image{
		{Tag: "full", DiskSize: 2 << 30, Status: model.StatusUpToDate, Type: model.TypeRemote},
	})
	got := out.String()
	for _, want := range []string{"Image tag", "Size", "Status", "Type", "full", "Up to date"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Download size") {
		t.Error("verbose column shown at normal level")
	}
}

func TestPrintImagesVerboseColumns(t *testing.T) {
	c, out := consoleAt(logging.LevelVerbose)
	c.PrintImages([]model.Image{
		{Tag: "full", ID: "abc123def456", DownloadSize: 1 << 30, DiskSize: 2 << 30,
			Status: model.StatusUpToDate, Type: model.TypeRemote},
	})
	got := out.String()
	for _, want := range []string{"Id", "Download size", "Disk size", "abc123def456"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintImagesEmptyWarns(t *testing.T) {
	c, out := consoleAt(logging.LevelInfo)
	c.PrintImages(nil)
	if !strings.Contains(out.String(), "No images to display") {
		t.Errorf("empty list output = %q", out.String())
	}
	if strings.Contains(out.String(), "Image tag") {
		t.Error("table rendered for empty list")
	}
}

func TestPrintContainersRedaction(t *testing.T) {
	ctr := model.Container{
		Name: "redcell-demo", State: "running", ImageTag: "full",
		Envs: []string{"API_KEY=hunter2", "HTTP_PROXY=off"},
	}

	c, out := consoleAt(logging.LevelVerbose)
	c.PrintContainers([]model.Container{ctr})
	if strings.Contains(out.String(), "hunter2") {
		t.Error("env values leaked at verbose level")
	}
	if !strings.Contains(out.String(), "2 envs") {
		t.Errorf("redacted count missing:\n%s", out.String())
	}

	c, out = consoleAt(logging.LevelDebug)
	c.PrintContainers([]model.Container{ctr})
	if !strings.Contains(out.String(), "API_KEY=hunter2") {
		t.Error("env values not shown at debug level")
	}
}

func TestPrintContainersNormalColumns(t *testing.T) {
	c, out := consoleAt(logging.LevelInfo)
	c.PrintContainers([]model.Container{
		{Name: "redcell-demo", State: "running", ImageTag: "full", NetworkHost: true},
	})
	got := out.String()
	for _, want := range []string{"Container tag", "State", "Image tag", "Configurations", "Running", "Network host"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Mounts") {
		t.Error("verbose column shown at normal level")
	}
}
