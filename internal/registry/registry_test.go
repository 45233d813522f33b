package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListTagsFollowsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"next":"","results":[{"name":"light","full_size":1000}]}`)
			return
		}
		fmt.Fprintf(w, `{"next":"%s/v2/repositories/ops/env/tags?page=2","results":[{"name":"full","full_size":5000,"digest":"sha256:abc"}]}`, server.URL)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
	images, err := client.ListTags(context.Background(), "ops/env")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(images))
	}
	if images[0].Tag != "full" || images[0].DownloadSize != 5000 {
		t.Errorf("first tag = %+v", images[0])
	}
	if images[1].Tag != "light" {
		t.Errorf("second tag = %+v", images[1])
	}
}

func TestListTagsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
	if _, err := client.ListTags(context.Background(), "ops/env"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
