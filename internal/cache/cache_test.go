package cache

import (
	"path/filepath"
	"testing"
	"time"

	"redcell/internal/registry"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetTagsEmpty(t *testing.T) {
	c := openTestCache(t)

	images, fetchedAt, err := c.GetTags("ops/env")
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("expected empty cache, got %d rows", len(images))
	}
	if !fetchedAt.IsZero() {
		t.Errorf("expected zero fetch time, got %v", fetchedAt)
	}
}

func TestPutAndGetTags(t *testing.T) {
	c := openTestCache(t)

	pushed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	in := []registry.RemoteImage{
		{Tag: "full", DownloadSize: 5000, Digest: "sha256:abc", PushedAt: pushed},
		{Tag: "light", DownloadSize: 1000},
	}
	if err := c.PutTags("ops/env", in); err != nil {
		t.Fatalf("PutTags: %v", err)
	}

	out, fetchedAt, err := c.GetTags("ops/env")
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Tag != "full" || out[0].DownloadSize != 5000 || !out[0].PushedAt.Equal(pushed) {
		t.Errorf("first row = %+v", out[0])
	}
	if fetchedAt.IsZero() {
		t.Error("fetch time not recorded")
	}

	// Repos do not leak into each other.
	other, _, err := c.GetTags("ops/other")
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("unexpected rows for other repo: %d", len(other))
	}
}

func TestPutTagsReplaces(t *testing.T) {
	c := openTestCache(t)

	if err := c.PutTags("ops/env", []registry.RemoteImage{{Tag: "old"}}); err != nil {
		t.Fatalf("PutTags: %v", err)
	}
	if err := c.PutTags("ops/env", []registry.RemoteImage{{Tag: "new"}}); err != nil {
		t.Fatalf("PutTags: %v", err)
	}

	out, _, err := c.GetTags("ops/env")
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(out) != 1 || out[0].Tag != "new" {
		t.Errorf("replacement failed, got %+v", out)
	}
}
