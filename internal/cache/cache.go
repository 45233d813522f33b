// Package cache persists remote image metadata between invocations so the
// registry is not queried on every run. The cache is an optimization only:
// callers fall back to the live registry on any miss or error.
package cache

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"redcell/internal/registry"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Cache is a SQLite-backed store of registry tag listings.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database and applies pending
// migrations.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run cache migrations: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetTags returns the cached tag listing for repo and when it was fetched.
// A repo that was never cached returns an empty slice and zero time.
func (c *Cache) GetTags(repo string) ([]registry.RemoteImage, time.Time, error) {
	rows, err := c.db.Query(
		`SELECT tag, download_size, digest, pushed_at, fetched_at
		 FROM remote_images WHERE repo = ? ORDER BY tag`, repo)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query cache: %w", err)
	}
	defer rows.Close()

	var images []registry.RemoteImage
	var fetchedAt time.Time
	for rows.Next() {
		var img registry.RemoteImage
		var pushed, fetched string
		if err := rows.Scan(&img.Tag, &img.DownloadSize, &img.Digest, &pushed, &fetched); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan cache row: %w", err)
		}
		img.PushedAt, _ = time.Parse(time.RFC3339, pushed)
		if t, err := time.Parse(time.RFC3339, fetched); err == nil && t.After(fetchedAt) {
			fetchedAt = t
		}
		images = append(images, img)
	}
	return images, fetchedAt, rows.Err()
}

// PutTags replaces the cached tag listing for repo.
func (c *Cache) PutTags(repo string, images []registry.RemoteImage) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM remote_images WHERE repo = ?`, repo); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.Prepare(
		`INSERT INTO remote_images (repo, tag, download_size, digest, pushed_at, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for _, img := range images {
		pushed := img.PushedAt.UTC().Format(time.RFC3339)
		if _, err := stmt.Exec(repo, img.Tag, img.DownloadSize, img.Digest, pushed, now); err != nil {
			return fmt.Errorf("failed to insert cache row: %w", err)
		}
	}
	return tx.Commit()
}
