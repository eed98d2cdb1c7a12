package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"startpage/internal/backup"
	"startpage/internal/links"
	"startpage/internal/reorder"
)

var ErrUnknownIntent = errors.New("unknown intent")

// Intent is a user action. The set is closed; Dispatch handles every member.
type Intent interface {
	intent()
}

type AddLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type EditLink struct {
	Original links.Link `json:"original"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	Category string     `json:"category"`
}

type DeleteLink struct {
	Link links.Link `json:"link"`
}

type RenameCategory struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type DeleteCategory struct {
	Name string `json:"name"`
}

// Drop is a pointer release over the rendered links of the target category.
type Drop struct {
	Pointer reorder.Point  `json:"pointer"`
	Rects   []reorder.Rect `json:"rects"`
}

// MoveLink places Link in Category. When Drop is set the index is derived from
// the pointer position and Index is ignored.
type MoveLink struct {
	Link     links.Link `json:"link"`
	Category string     `json:"category"`
	Index    int        `json:"index"`
	Drop     *Drop      `json:"drop,omitempty"`
}

func (m MoveLink) resolveIndex() int {
	if m.Drop != nil {
		return reorder.InsertionIndex(m.Drop.Pointer, m.Drop.Rects)
	}
	return m.Index
}

type SelectTheme struct {
	Name string `json:"name"`
}

// SetSurface accepts a surface variable name or one of its short aliases.
type SetSurface struct {
	Surface string `json:"surface"`
	Color   string `json:"color"`
}

type SaveCustomTheme struct{}

type ToggleSidebar struct{}

type Search struct {
	Term string `json:"term"`
}

type Import struct {
	Bundle backup.Bundle `json:"bundle"`
}

type Reset struct{}

func (AddLink) intent()         {}
func (EditLink) intent()        {}
func (DeleteLink) intent()      {}
func (RenameCategory) intent()  {}
func (DeleteCategory) intent()  {}
func (MoveLink) intent()        {}
func (SelectTheme) intent()     {}
func (SetSurface) intent()      {}
func (SaveCustomTheme) intent() {}
func (ToggleSidebar) intent()   {}
func (Search) intent()          {}
func (Import) intent()          {}
func (Reset) intent()           {}

type envelope struct {
	Type string `json:"type"`
}

func decodeAs[T Intent](data []byte) (Intent, error) {
	var in T
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decoding %T: %w", in, err)
	}
	return in, nil
}

var decoders = map[string]func([]byte) (Intent, error){
	"addLink":         decodeAs[AddLink],
	"editLink":        decodeAs[EditLink],
	"deleteLink":      decodeAs[DeleteLink],
	"renameCategory":  decodeAs[RenameCategory],
	"deleteCategory":  decodeAs[DeleteCategory],
	"moveLink":        decodeAs[MoveLink],
	"selectTheme":     decodeAs[SelectTheme],
	"setSurface":      decodeAs[SetSurface],
	"saveCustomTheme": decodeAs[SaveCustomTheme],
	"toggleSidebar":   decodeAs[ToggleSidebar],
	"search":          decodeAs[Search],
	"import":          decodeAs[Import],
	"reset":           decodeAs[Reset],
}

// DecodeIntent reads a JSON object whose "type" field names the intent and
// whose remaining fields are the intent's own.
func DecodeIntent(data []byte) (Intent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding intent: %w", err)
	}
	decode, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, env.Type)
	}
	return decode(data)
}
