// Package prefs holds the page's presentation settings: the selected theme,
// per-surface color overrides, a saved custom theme, and the sidebar state.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"startpage/internal/kv"
)

const (
	KeySelectedTheme    = "selectedTheme"
	KeyCustomTheme      = "customTheme"
	KeySidebarCollapsed = "sidebarCollapsed"

	CustomThemeName = "Custom Theme"
)

var (
	ErrUnknownTheme   = errors.New("unknown theme")
	ErrUnknownSurface = errors.New("unknown surface")
	ErrEmptyColor     = errors.New("color cannot be empty")
)

// surfaceDefaults says which palette variable a surface shows until the user
// picks something else.
var surfaceDefaults = map[Surface]string{
	SurfacePageBg:      "--background",
	SurfaceCardBg:      "--secondary",
	SurfaceHeaderColor: "--primary",
	SurfaceTextColor:   "--text",
}

type CustomTheme struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
}

type Prefs struct {
	store kv.Store
	log   zerolog.Logger
}

func New(store kv.Store, log zerolog.Logger) *Prefs {
	return &Prefs{
		store: store,
		log:   log.With().Str("component", "prefs").Logger(),
	}
}

func (p *Prefs) SelectTheme(ctx context.Context, name string) (Theme, error) {
	theme, ok := LookupTheme(strings.TrimSpace(name))
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	p.store.Set(ctx, KeySelectedTheme, theme.Name)
	return theme, nil
}

// CurrentTheme falls back to DefaultTheme when nothing valid is stored.
func (p *Prefs) CurrentTheme(ctx context.Context) Theme {
	if name, ok := p.store.Get(ctx, KeySelectedTheme); ok {
		if theme, ok := LookupTheme(name); ok {
			return theme
		}
		p.log.Debug().Str("theme", name).Msg("stored theme is unknown, using default")
	}
	theme, _ := LookupTheme(DefaultTheme)
	return theme
}

func (p *Prefs) SetSurface(ctx context.Context, s Surface, color string) error {
	if _, ok := surfaceDefaults[s]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSurface, s)
	}
	color = strings.TrimSpace(color)
	if color == "" {
		return ErrEmptyColor
	}
	p.store.Set(ctx, s.Key(), color)
	return nil
}

// Surfaces resolves every surface to a color, using stored overrides first
// and the current palette otherwise.
func (p *Prefs) Surfaces(ctx context.Context) map[Surface]string {
	palette := p.CurrentTheme(ctx).Palette
	out := make(map[Surface]string, len(Surfaces))
	for _, s := range Surfaces {
		if v, ok := p.store.Get(ctx, s.Key()); ok {
			out[s] = v
			continue
		}
		out[s] = palette[surfaceDefaults[s]]
	}
	return out
}

// CSSVars is the full set of custom properties the page renders with.
func (p *Prefs) CSSVars(ctx context.Context) map[string]string {
	vars := make(map[string]string)
	for k, v := range p.CurrentTheme(ctx).Palette {
		vars[k] = v
	}
	for s, v := range p.Surfaces(ctx) {
		vars[string(s)] = v
	}
	return vars
}

func (p *Prefs) SaveCustomTheme(ctx context.Context) CustomTheme {
	custom := CustomTheme{Name: CustomThemeName, Colors: make(map[string]string, len(Surfaces))}
	for s, v := range p.Surfaces(ctx) {
		p.store.Set(ctx, s.Key(), v)
		custom.Colors[string(s)] = v
	}

	data, err := json.Marshal(custom)
	if err != nil {
		p.log.Error().Err(err).Msg("encoding custom theme")
		return custom
	}
	p.store.Set(ctx, KeyCustomTheme, string(data))
	return custom
}

func (p *Prefs) CustomTheme(ctx context.Context) (CustomTheme, bool) {
	raw, ok := p.store.Get(ctx, KeyCustomTheme)
	if !ok {
		return CustomTheme{}, false
	}
	var custom CustomTheme
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		p.log.Warn().Err(err).Msg("ignoring unreadable custom theme")
		return CustomTheme{}, false
	}
	return custom, true
}

func (p *Prefs) SidebarCollapsed(ctx context.Context) bool {
	v, _ := p.store.Get(ctx, KeySidebarCollapsed)
	return v == "true"
}

func (p *Prefs) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	p.store.Set(ctx, KeySidebarCollapsed, fmt.Sprintf("%t", collapsed))
}

// ToggleSidebar flips the sidebar and returns the new collapsed state.
func (p *Prefs) ToggleSidebar(ctx context.Context) bool {
	collapsed := !p.SidebarCollapsed(ctx)
	p.SetSidebarCollapsed(ctx, collapsed)
	return collapsed
}
