package model

import (
	"strings"
	"testing"
)

func TestImageSizeText(t *testing.T) {
	installed := Image{Tag: "env:full", DiskSize: 2 * 1000 * 1000 * 1000, DownloadSize: 500 * 1000 * 1000}
	if got := installed.SizeText(); got != installed.DiskSizeText() {
		t.Errorf("installed image should show disk size, got %q", got)
	}

	remote := Image{Tag: "env:light", DownloadSize: 500 * 1000 * 1000}
	if got := remote.SizeText(); got != remote.DownloadSizeText() {
		t.Errorf("remote image should show download size, got %q", got)
	}

	unknown := Image{Tag: "env:nightly"}
	if got := unknown.SizeText(); got != "-" {
		t.Errorf("unknown size should be -, got %q", got)
	}
}

func TestImageKey(t *testing.T) {
	img := Image{Tag: "redcellsec/environments:full"}
	if img.Key() != img.Tag {
		t.Errorf("Key = %q", img.Key())
	}
}

func TestContainerFeaturesText(t *testing.T) {
	tests := []struct {
		name string
		c    Container
		want string
	}{
		{"default", Container{}, "Default"},
		{"privileged", Container{Privileged: true}, "Privileged"},
		{"both", Container{Privileged: true, NetworkHost: true}, "Privileged, Network host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.FeaturesText(); got != tt.want {
				t.Errorf("FeaturesText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainerRedaction(t *testing.T) {
	c := Container{
		Mounts: []string{"/home/op/project:/workspace", "/tmp/x11:/tmp/.X11-unix"},
		Envs:   []string{"DISPLAY=:0"},
	}

	if got := c.MountsText(false); got != "2 mounts" {
		t.Errorf("redacted mounts = %q", got)
	}
	if got := c.EnvsText(false); got != "1 env" {
		t.Errorf("redacted envs = %q", got)
	}
	if got := c.MountsText(true); !strings.Contains(got, "/workspace") {
		t.Errorf("unredacted mounts missing detail: %q", got)
	}
	if got := c.DevicesText(true); got != "-" {
		t.Errorf("empty devices = %q", got)
	}
}

func TestStateText(t *testing.T) {
	if got := (Container{State: "running"}).StateText(); got != "Running" {
		t.Errorf("StateText = %q", got)
	}
	if got := (Container{}).StateText(); got != "Unknown" {
		t.Errorf("StateText = %q", got)
	}
}
