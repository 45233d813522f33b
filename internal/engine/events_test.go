package engine

import (
	"io"
	"strings"
	"testing"
)

func TestEventStreamDecodesInOrder(t *testing.T) {
	body := io.NopCloser(strings.NewReader(
		`{"status":"Pulling fs layer","id":"aaa"}` + "\n" +
			`{"status":"Downloading","id":"aaa","progressDetail":{"current":10,"total":100}}` + "\n" +
			`{"status":"Download complete","id":"aaa"}` + "\n"))
	stream := NewEventStream(body)
	defer stream.Close()

	first, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first.Status != "Pulling fs layer" || first.ID != "aaa" {
		t.Errorf("unexpected first event: %+v", first)
	}

	second, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second.ProgressDetail == nil || second.ProgressDetail.Current == nil || second.ProgressDetail.Total == nil {
		t.Fatalf("progress detail not decoded: %+v", second)
	}
	if *second.ProgressDetail.Current != 10 || *second.ProgressDetail.Total != 100 {
		t.Errorf("progress counters wrong: %+v", *second.ProgressDetail)
	}

	if _, err := stream.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestEventStreamSkipsMalformedLines(t *testing.T) {
	body := io.NopCloser(strings.NewReader(
		"not json at all\n" +
			"\n" +
			`{"status":"Pull complete","id":"bbb"}` + "\n"))
	stream := NewEventStream(body)
	defer stream.Close()

	event, err := stream.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if event.Status != "Pull complete" {
		t.Errorf("malformed lines not skipped, got %+v", event)
	}
}

func TestRepoOf(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"redcellsec/environments:full", "redcellsec/environments"},
		{"redcellsec/environments", "redcellsec/environments"},
		{"registry.local:5000/ops/images:lab", "registry.local:5000/ops/images"},
		{"alpine:3.20", "alpine"},
	}
	for _, tt := range tests {
		if got := repoOf(tt.tag); got != tt.want {
			t.Errorf("repoOf(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	id := "sha256:0123456789abcdef0123456789abcdef"
	if got := shortID(id); got != "0123456789ab" {
		t.Errorf("shortID = %q", got)
	}
}
