package kv

import (
	"context"
	"errors"
	"fmt"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend is a persistence layer that is allowed to fail.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	Persistent() bool
	Close() error
}

// Store is what the rest of the application talks to. It never reports
// failures; see SafeStore.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
	GetAll(ctx context.Context) map[string]string
	Clear(ctx context.Context)
	IsPersistent() bool
}

type Kind string

const (
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

func Kinds() []Kind {
	return []Kind{KindYAML, KindSQLite, KindMemory}
}

func OpenBackend(kind Kind, path string) (Backend, error) {
	switch kind {
	case "", KindYAML:
		return NewFileBackend(path)
	case KindSQLite:
		return NewSQLiteBackend(path)
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
