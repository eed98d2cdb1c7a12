package kv

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type storeFile struct {
	Version int               `yaml:"version"`
	Entries map[string]string `yaml:"entries"`
}

// FileBackend keeps every key in one YAML document and rewrites the whole
// file on each change.
type FileBackend struct {
	path    string
	entries map[string]string
	loaded  bool
	mu      sync.RWMutex
}

func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return &FileBackend{
		path:    path,
		entries: make(map[string]string),
	}, nil
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.loadUnlocked(); err != nil {
		return "", false, err
	}
	v, ok := b.entries[key]
	return v, ok, nil
}

func (b *FileBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.loadUnlocked(); err != nil {
		return err
	}
	next := maps.Clone(b.entries)
	next[key] = value
	return b.commitUnlocked(next)
}

func (b *FileBackend) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.loadUnlocked(); err != nil {
		return err
	}
	if _, ok := b.entries[key]; !ok {
		return nil
	}
	next := maps.Clone(b.entries)
	delete(next, key)
	return b.commitUnlocked(next)
}

func (b *FileBackend) All(_ context.Context) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.loadUnlocked(); err != nil {
		return nil, err
	}
	return maps.Clone(b.entries), nil
}

func (b *FileBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.commitUnlocked(make(map[string]string))
}

func (b *FileBackend) Persistent() bool {
	return true
}

func (b *FileBackend) Close() error {
	return nil
}

// commitUnlocked only swaps the in-memory copy once the file is on disk, so
// a failed write leaves the backend reflecting what is actually stored.
func (b *FileBackend) commitUnlocked(next map[string]string) error {
	file := storeFile{
		Version: 1,
		Entries: next,
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}

	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return err
	}

	b.entries = next
	b.loaded = true
	return nil
}

func (b *FileBackend) loadUnlocked() error {
	if b.loaded {
		return nil
	}

	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		b.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse store file %q: %w", b.path, err)
	}

	b.entries = make(map[string]string, len(file.Entries))
	maps.Copy(b.entries, file.Entries)
	b.loaded = true
	return nil
}
