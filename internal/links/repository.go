package links

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"startpage/internal/kv"
)

const (
	KeyLinks      = "customLinksWithCategories"
	KeyCategories = "customCategories"
)

// Repository owns the ordered link sequence and the category registry for
// one session. Every mutation is written through to the store before the
// call returns; a failed write never undoes the in-memory change.
type Repository struct {
	store kv.Store
	log   zerolog.Logger

	mu         sync.RWMutex
	links      []Link
	categories []string
}

func NewRepository(store kv.Store, log zerolog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With().Str("component", "links").Logger(),
	}
}

// Load replaces the in-memory state with what the store holds. Missing or
// unreadable keys load as empty.
func (r *Repository) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links = decodeList[Link](ctx, r, KeyLinks)
	r.categories = decodeList[string](ctx, r, KeyCategories)
}

func decodeList[T any](ctx context.Context, r *Repository, key string) []T {
	raw, ok := r.store.Get(ctx, key)
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("ignoring unreadable value")
		return nil
	}
	return out
}

func (r *Repository) Save(ctx context.Context) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.persistUnlocked(ctx)
}

func (r *Repository) persistUnlocked(ctx context.Context) {
	linksJSON, err := json.Marshal(nonNil(r.links))
	if err != nil {
		r.log.Error().Err(err).Msg("encoding links")
		return
	}
	catsJSON, err := json.Marshal(nonNil(r.categories))
	if err != nil {
		r.log.Error().Err(err).Msg("encoding categories")
		return
	}
	r.store.Set(ctx, KeyLinks, string(linksJSON))
	r.store.Set(ctx, KeyCategories, string(catsJSON))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *Repository) Links() []Link {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.links)
}

func (r *Repository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.categories)
}

func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}

// CountIn is the number of links tagged with category.
func (r *Repository) CountIn(category string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countInUnlocked(category)
}

func (r *Repository) countInUnlocked(category string) int {
	n := 0
	for _, l := range r.links {
		if l.Category == category {
			n++
		}
	}
	return n
}

// Search returns links whose title, url or category contains query, in
// sequence order. Matching is case-insensitive.
func (r *Repository) Search(query string) []Link {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(r.links)
	}

	var results []Link
	for _, l := range r.links {
		if Matches(l, query) {
			results = append(results, l)
		}
	}
	return results
}

// Matches expects query to be lowercased already.
func Matches(l Link, query string) bool {
	return strings.Contains(strings.ToLower(l.Title), query) ||
		strings.Contains(strings.ToLower(l.URL), query) ||
		strings.Contains(strings.ToLower(l.Category), query)
}

func (r *Repository) indexUnlocked(l Link) int {
	return slices.Index(r.links, l)
}

func (r *Repository) hasCategoryUnlocked(name string) bool {
	return slices.Contains(r.categories, name)
}

func (r *Repository) registerUnlocked(name string) {
	if !r.hasCategoryUnlocked(name) {
		r.categories = append(r.categories, name)
	}
}

func (r *Repository) AddLink(ctx context.Context, title, url, category string) (Link, error) {
	l := NewLink(title, url, category)
	if err := l.Validate(); err != nil {
		return Link{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.registerUnlocked(l.Category)
	r.links = append(r.links, l)
	r.persistUnlocked(ctx)
	return l, nil
}

// EditLink replaces the first link equal to original, keeping its position.
func (r *Repository) EditLink(ctx context.Context, original Link, title, url, category string) (Link, error) {
	updated := NewLink(title, url, category)
	if err := updated.Validate(); err != nil {
		return Link{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexUnlocked(original)
	if i == -1 {
		return Link{}, ErrNotFound
	}

	r.registerUnlocked(updated.Category)
	r.links[i] = updated
	r.persistUnlocked(ctx)
	return updated, nil
}

// DeleteLink removes the first link equal to l once confirm agrees.
func (r *Repository) DeleteLink(ctx context.Context, l Link, confirm Confirm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexUnlocked(l)
	if i == -1 {
		return ErrNotFound
	}
	if !confirm(deleteLinkPrompt(l)) {
		return ErrDeclined
	}

	r.links = slices.Delete(r.links, i, i+1)
	r.persistUnlocked(ctx)
	return nil
}

func (r *Repository) RenameCategory(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &ValidationError{Field: "category"}
	}
	if newName == oldName {
		return ErrCategoryUnchanged
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasCategoryUnlocked(newName) {
		return ErrCategoryExists
	}
	if !r.hasCategoryUnlocked(oldName) && r.countInUnlocked(oldName) == 0 {
		return ErrNotFound
	}

	for i := range r.links {
		if r.links[i].Category == oldName {
			r.links[i].Category = newName
		}
	}
	if i := slices.Index(r.categories, oldName); i != -1 {
		r.categories[i] = newName
	}

	r.persistUnlocked(ctx)
	return nil
}

// DeleteCategory drops name from the registry together with every link in it.
func (r *Repository) DeleteCategory(ctx context.Context, name string, confirm Confirm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.countInUnlocked(name)
	if !r.hasCategoryUnlocked(name) && n == 0 {
		return ErrNotFound
	}
	if !confirm(deleteCategoryPrompt(name, n)) {
		return ErrDeclined
	}

	r.links = slices.DeleteFunc(r.links, func(l Link) bool { return l.Category == name })
	r.categories = slices.DeleteFunc(r.categories, func(c string) bool { return c == name })
	r.persistUnlocked(ctx)
	return nil
}

// MoveLink relocates l into target. Within the same category, index is the
// position among the category's other links. Moving to a different category
// always lands right after that category's last link and ignores index.
func (r *Repository) MoveLink(ctx context.Context, l Link, target string, index int) (Link, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Link{}, &ValidationError{Field: "category"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexUnlocked(l)
	if i == -1 {
		return Link{}, ErrNotFound
	}

	moved := r.links[i]
	from := moved.Category
	rest := slices.Delete(r.links, i, i+1)
	moved.Category = target

	var at int
	if from == target {
		at = sameCategorySlot(rest, target, index)
	} else {
		at = crossCategorySlot(rest, target)
	}

	r.links = slices.Insert(rest, at, moved)
	r.registerUnlocked(target)
	r.persistUnlocked(ctx)
	return moved, nil
}

// sameCategorySlot counts index from the category's first remaining link,
// clamped to the number of links left in it.
func sameCategorySlot(seq []Link, category string, index int) int {
	start := -1
	members := 0
	for i, l := range seq {
		if l.Category != category {
			continue
		}
		if start == -1 {
			start = i
		}
		members++
	}
	if start == -1 {
		return len(seq)
	}
	return min(start+max(0, min(index, members)), len(seq))
}

func crossCategorySlot(seq []Link, category string) int {
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Category == category {
			return i + 1
		}
	}
	return len(seq)
}
