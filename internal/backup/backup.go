// Package backup moves the whole key/value namespace in and out as one
// document, and seeds first-run defaults.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"startpage/internal/kv"
	"startpage/internal/prefs"
)

const (
	Version = "1.0.0"

	KeyVersion = "extensionVersion"
)

var ErrInvalidBundle = errors.New("invalid import data")

type Bundle struct {
	Timestamp string            `json:"timestamp,omitempty"`
	Version   string            `json:"version,omitempty"`
	Data      map[string]string `json:"data"`
}

func Export(ctx context.Context, store kv.Store, now time.Time) Bundle {
	return Bundle{
		Timestamp: now.UTC().Format(time.RFC3339),
		Version:   Version,
		Data:      store.GetAll(ctx),
	}
}

// Import writes every key in b over what is stored. Keys absent from b are
// left as they are.
func Import(ctx context.Context, store kv.Store, b Bundle) (int, error) {
	if b.Data == nil {
		return 0, ErrInvalidBundle
	}
	for k, v := range b.Data {
		store.Set(ctx, k, v)
	}
	return len(b.Data), nil
}

func Reset(ctx context.Context, store kv.Store) {
	store.Clear(ctx)
}

// EnsureDefaults seeds theme and sidebar state the first time the store is
// used and records the current version on upgrades. It reports whether this
// was a first run.
func EnsureDefaults(ctx context.Context, store kv.Store) bool {
	prev, ok := store.Get(ctx, KeyVersion)
	if !ok {
		store.Set(ctx, prefs.KeySelectedTheme, prefs.DefaultTheme)
		store.Set(ctx, prefs.KeySidebarCollapsed, "false")
		store.Set(ctx, KeyVersion, Version)
		return true
	}
	if prev != Version {
		store.Set(ctx, KeyVersion, Version)
	}
	return false
}

func Encode(b Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

func Decode(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	if b.Data == nil {
		return Bundle{}, ErrInvalidBundle
	}
	return b, nil
}

func WriteFile(path string, b Bundle) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func ReadFile(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	return Decode(data)
}
