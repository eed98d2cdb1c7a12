package proptest

import (
	"context"
	"os"
	"path/filepath"
	"startpage/internal/kv"
	"startpage/internal/links"
	"testing"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"
)

const (
	typicalMinLinks = 1
	typicalMaxLinks = 12
	storeFileName   = "store.yaml"
)

type Harness struct {
	T   *rapid.T
	Dir string
}

func (h *Harness) StorePath() string {
	return filepath.Join(h.Dir, storeFileName)
}

// OpenRepository loads a fresh repository over the harness's store file.
func (h *Harness) OpenRepository() (*links.Repository, *kv.SafeStore) {
	backend, err := kv.NewFileBackend(h.StorePath())
	if err != nil {
		h.T.Fatalf("failed to open store: %v", err)
	}
	store := kv.NewSafeStore(backend, zerolog.Nop())
	repo := links.NewRepository(store, zerolog.Nop())
	repo.Load(context.Background())
	return repo, store
}

type RepoHarness struct {
	Harness
	Repo  *links.Repository
	Store *kv.SafeStore
}

func (h *RepoHarness) MustAddLink(l links.Link) links.Link {
	added, err := h.Repo.AddLink(context.Background(), l.Title, l.URL, l.Category)
	if err != nil {
		h.T.Fatalf("failed to add link %v: %v", l, err)
	}
	return added
}

func (h *RepoHarness) AddLinks(minCount, maxCount int) []links.Link {
	n := rapid.IntRange(minCount, maxCount).Draw(h.T, "numLinks")
	added := make([]links.Link, 0, n)
	for range n {
		added = append(added, h.MustAddLink(linkGen().Draw(h.T, "link")))
	}
	return added
}

func newIterDir(rt *rapid.T, tempDir string) string {
	iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
	if err := os.RemoveAll(iterDir); err != nil {
		rt.Fatalf("failed to clear iter dir: %v", err)
	}
	if err := os.MkdirAll(iterDir, 0o755); err != nil {
		rt.Fatalf("failed to create iter dir: %v", err)
	}
	return iterDir
}

func RunWithRepository(t *testing.T, fn func(h *RepoHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		h := &RepoHarness{Harness: Harness{T: rt, Dir: newIterDir(rt, tempDir)}}
		h.Repo, h.Store = h.OpenRepository()
		defer h.Store.Close()

		fn(h)
	})
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		fn(&Harness{T: rt, Dir: newIterDir(rt, tempDir)})
	})
}
