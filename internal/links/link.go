package links

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDeclined          = errors.New("not confirmed")
	ErrEmptyField        = errors.New("field cannot be empty")
	ErrCategoryExists    = errors.New("a category with that name already exists")
	ErrCategoryUnchanged = errors.New("category name is unchanged")
)

// Link is identified by all three fields together; there is no separate id.
type Link struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

func NewLink(title, url, category string) Link {
	return Link{
		Title:    strings.TrimSpace(title),
		URL:      strings.TrimSpace(url),
		Category: strings.TrimSpace(category),
	}
}

func (l Link) String() string {
	return fmt.Sprintf("%s (%s) [%s]", l.Title, l.URL, l.Category)
}

// ValidationError names the first required field that was empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrEmptyField)
}

func (e *ValidationError) Unwrap() error {
	return ErrEmptyField
}

func (l Link) Validate() error {
	switch {
	case strings.TrimSpace(l.Title) == "":
		return &ValidationError{Field: "title"}
	case strings.TrimSpace(l.URL) == "":
		return &ValidationError{Field: "url"}
	case strings.TrimSpace(l.Category) == "":
		return &ValidationError{Field: "category"}
	}
	return nil
}

// Confirm is the yes/no gate destructive operations must pass.
type Confirm func(prompt string) bool

func AlwaysConfirm(string) bool { return true }

func deleteLinkPrompt(l Link) string {
	return fmt.Sprintf("Are you sure you want to delete %q?", l.Title)
}

func deleteCategoryPrompt(name string, n int) string {
	return fmt.Sprintf("Are you sure you want to delete the %q category and all %d links in it?", name, n)
}
