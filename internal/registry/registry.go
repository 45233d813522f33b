// Package registry fetches remote image metadata from the Docker Hub API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"redcell/internal/telemetry"
)

// RemoteImage is one tag of the environment repository as known to the
// registry.
type RemoteImage struct {
	Tag          string
	DownloadSize int64
	Digest       string
	PushedAt     time.Time
}

// Client queries a Docker registry's tag listing API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a registry client for the public Docker Hub.
func NewClient() *Client {
	return &Client{
		BaseURL: "https://hub.docker.com",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tagsResponse struct {
	Next    string `json:"next"`
	Results []struct {
		Name       string    `json:"name"`
		FullSize   int64     `json:"full_size"`
		Digest     string    `json:"digest"`
		LastPushed time.Time `json:"tag_last_pushed"`
	} `json:"results"`
}

// ListTags returns every tag of repo with its compressed download size.
func (c *Client) ListTags(ctx context.Context, repo string) ([]RemoteImage, error) {
	ctx, span := telemetry.StartSpan(ctx, "registry.list_tags")
	defer span.End()
	span.SetAttributes(telemetry.String("image.repo", repo))

	url := fmt.Sprintf("%s/v2/repositories/%s/tags?page_size=100", c.BaseURL, repo)
	var images []RemoteImage
	for url != "" {
		page, err := c.fetchPage(ctx, url)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		for _, result := range page.Results {
			images = append(images, RemoteImage{
				Tag:          result.Name,
				DownloadSize: result.FullSize,
				Digest:       result.Digest,
				PushedAt:     result.LastPushed,
			})
		}
		url = page.Next
	}
	span.SetAttributes(telemetry.Int("registry.tag_count", len(images)))
	return images, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) (*tagsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "redcell")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var page tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode tag listing: %w", err)
	}
	return &page, nil
}
