package proptest

import (
	"context"
	"errors"
	"slices"
	"startpage/internal/links"
	"strings"

	"pgregory.net/rapid"
)

// linkModel is a plain-slice restatement of the repository's rules.
type linkModel struct {
	links      []links.Link
	categories []string
}

func (m *linkModel) register(name string) {
	if !slices.Contains(m.categories, name) {
		m.categories = append(m.categories, name)
	}
}

func (m *linkModel) index(l links.Link) int {
	for i, x := range m.links {
		if x == l {
			return i
		}
	}
	return -1
}

func (m *linkModel) members(name string) int {
	n := 0
	for _, l := range m.links {
		if l.Category == name {
			n++
		}
	}
	return n
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (m *linkModel) Add(title, url, category string) error {
	if blank(title) || blank(url) || blank(category) {
		return links.ErrEmptyField
	}
	l := links.NewLink(title, url, category)
	m.register(l.Category)
	m.links = append(m.links, l)
	return nil
}

func (m *linkModel) Edit(original links.Link, title, url, category string) error {
	if blank(title) || blank(url) || blank(category) {
		return links.ErrEmptyField
	}
	i := m.index(original)
	if i == -1 {
		return links.ErrNotFound
	}
	l := links.NewLink(title, url, category)
	m.register(l.Category)
	m.links[i] = l
	return nil
}

func (m *linkModel) Delete(l links.Link) error {
	i := m.index(l)
	if i == -1 {
		return links.ErrNotFound
	}
	m.links = append(m.links[:i:i], m.links[i+1:]...)
	return nil
}

func (m *linkModel) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	switch {
	case newName == "":
		return links.ErrEmptyField
	case newName == oldName:
		return links.ErrCategoryUnchanged
	case slices.Contains(m.categories, newName):
		return links.ErrCategoryExists
	case !slices.Contains(m.categories, oldName) && m.members(oldName) == 0:
		return links.ErrNotFound
	}
	for i := range m.links {
		if m.links[i].Category == oldName {
			m.links[i].Category = newName
		}
	}
	if i := slices.Index(m.categories, oldName); i != -1 {
		m.categories[i] = newName
	}
	return nil
}

func (m *linkModel) DeleteCategory(name string) error {
	if !slices.Contains(m.categories, name) && m.members(name) == 0 {
		return links.ErrNotFound
	}
	var kept []links.Link
	for _, l := range m.links {
		if l.Category != name {
			kept = append(kept, l)
		}
	}
	m.links = kept
	m.categories = slices.DeleteFunc(m.categories, func(c string) bool { return c == name })
	return nil
}

func (m *linkModel) Move(l links.Link, target string, index int) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return links.ErrEmptyField
	}
	i := m.index(l)
	if i == -1 {
		return links.ErrNotFound
	}

	moved := m.links[i]
	rest := append(slices.Clone(m.links[:i]), m.links[i+1:]...)

	var positions []int
	for j, x := range rest {
		if x.Category == target {
			positions = append(positions, j)
		}
	}

	at := len(rest)
	switch {
	case len(positions) == 0:
	case moved.Category == target:
		at = positions[0] + min(max(index, 0), len(positions))
	default:
		at = positions[len(positions)-1] + 1
	}

	moved.Category = target
	m.links = slices.Insert(rest, at, moved)
	m.register(target)
	return nil
}

// CheckedRepository runs every mutation against the repository and the model
// and fails on the first divergence in outcome or state.
type CheckedRepository struct {
	real  *links.Repository
	model *linkModel
	t     *rapid.T
}

func NewCheckedRepository(t *rapid.T, repo *links.Repository) *CheckedRepository {
	return &CheckedRepository{
		real:  repo,
		model: &linkModel{links: repo.Links(), categories: repo.Categories()},
		t:     t,
	}
}

func (c *CheckedRepository) Links() []links.Link {
	return slices.Clone(c.model.links)
}

func (c *CheckedRepository) Categories() []string {
	return slices.Clone(c.model.categories)
}

func (c *CheckedRepository) check(op string, realErr, modelErr error) {
	c.t.Helper()
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("%s divergence: real=%v model=%v", op, realErr, modelErr)
	}
	if modelErr != nil && !errors.Is(realErr, modelErr) {
		c.t.Fatalf("%s error mismatch: real=%v model=%v", op, realErr, modelErr)
	}
	assertLinksEqual(c.t, c.model.links, c.real.Links())
	assertCategoriesEqual(c.t, c.model.categories, c.real.Categories())
	verifyStructuralInvariants(c.t, c.real)
}

func (c *CheckedRepository) Add(title, url, category string) {
	_, err := c.real.AddLink(context.Background(), title, url, category)
	c.check("Add", err, c.model.Add(title, url, category))
}

func (c *CheckedRepository) Edit(original links.Link, title, url, category string) {
	_, err := c.real.EditLink(context.Background(), original, title, url, category)
	c.check("Edit", err, c.model.Edit(original, title, url, category))
}

func (c *CheckedRepository) Delete(l links.Link) {
	err := c.real.DeleteLink(context.Background(), l, links.AlwaysConfirm)
	c.check("Delete", err, c.model.Delete(l))
}

func (c *CheckedRepository) DeleteDeclined(l links.Link) {
	err := c.real.DeleteLink(context.Background(), l, func(string) bool { return false })
	modelErr := links.ErrDeclined
	if c.model.index(l) == -1 {
		modelErr = links.ErrNotFound
	}
	c.check("DeleteDeclined", err, modelErr)
}

func (c *CheckedRepository) Rename(oldName, newName string) {
	err := c.real.RenameCategory(context.Background(), oldName, newName)
	c.check("Rename", err, c.model.Rename(oldName, newName))
}

func (c *CheckedRepository) DeleteCategory(name string) {
	err := c.real.DeleteCategory(context.Background(), name, links.AlwaysConfirm)
	c.check("DeleteCategory", err, c.model.DeleteCategory(name))
}

func (c *CheckedRepository) Move(l links.Link, target string, index int) {
	_, err := c.real.MoveLink(context.Background(), l, target, index)
	c.check("Move", err, c.model.Move(l, target, index))
}
