// Package app owns the page state and applies user intents to it.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"startpage/internal/backup"
	"startpage/internal/kv"
	"startpage/internal/links"
	"startpage/internal/prefs"
	"startpage/internal/view"
)

const resetPrompt = "Are you sure you want to reset all data? This cannot be undone."

type App struct {
	mu      sync.Mutex
	store   kv.Store
	repo    *links.Repository
	prefs   *prefs.Prefs
	confirm links.Confirm
	log     zerolog.Logger
	now     func() time.Time
	term    string
}

type Option func(*App)

func WithConfirm(c links.Confirm) Option {
	return func(a *App) { a.confirm = c }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New seeds first-run defaults and loads the repository from store.
func New(ctx context.Context, store kv.Store, log zerolog.Logger, opts ...Option) *App {
	a := &App{
		store:   store,
		repo:    links.NewRepository(store, log),
		prefs:   prefs.New(store, log),
		confirm: links.AlwaysConfirm,
		log:     log.With().Str("component", "app").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if backup.EnsureDefaults(ctx, store) {
		a.log.Info().Msg("first run, defaults installed")
	}
	if store.IsPersistent() {
		a.log.Debug().Msg("data will persist")
	} else {
		a.log.Debug().Msg("data will not persist after exit")
	}
	a.repo.Load(ctx)
	return a
}

func (a *App) Repo() *links.Repository {
	return a.repo
}

func (a *App) Prefs() *prefs.Prefs {
	return a.prefs
}

func (a *App) Store() kv.Store {
	return a.store
}

func (a *App) Term() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.term
}

// Page projects the current links through the current search term.
func (a *App) Page() view.Page {
	a.mu.Lock()
	term := a.term
	a.mu.Unlock()
	return view.Project(a.repo.Links(), term)
}

func (a *App) Export(ctx context.Context) backup.Bundle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return backup.Export(ctx, a.store, a.now())
}

func (a *App) Dispatch(ctx context.Context, in Intent) error {
	return a.DispatchWith(ctx, in, a.confirm)
}

// DispatchWith applies in using confirm as the gate for destructive intents.
// Intents that target something missing, or that the gate declines, are
// dropped without an error.
func (a *App) DispatchWith(ctx context.Context, in Intent, confirm links.Confirm) error {
	if confirm == nil {
		confirm = a.confirm
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.apply(ctx, in, confirm)
	if errors.Is(err, links.ErrNotFound) || errors.Is(err, links.ErrDeclined) {
		a.log.Debug().Err(err).Str("intent", fmt.Sprintf("%T", in)).Msg("intent dropped")
		return nil
	}
	return err
}

func (a *App) apply(ctx context.Context, in Intent, confirm links.Confirm) error {
	switch in := in.(type) {
	case AddLink:
		_, err := a.repo.AddLink(ctx, in.Title, in.URL, in.Category)
		return err
	case EditLink:
		_, err := a.repo.EditLink(ctx, in.Original, in.Title, in.URL, in.Category)
		return err
	case DeleteLink:
		return a.repo.DeleteLink(ctx, in.Link, confirm)
	case RenameCategory:
		return a.repo.RenameCategory(ctx, in.Old, in.New)
	case DeleteCategory:
		return a.repo.DeleteCategory(ctx, in.Name, confirm)
	case MoveLink:
		_, err := a.repo.MoveLink(ctx, in.Link, in.Category, in.resolveIndex())
		return err
	case SelectTheme:
		_, err := a.prefs.SelectTheme(ctx, in.Name)
		return err
	case SetSurface:
		surface, ok := prefs.ParseSurface(in.Surface)
		if !ok {
			surface = prefs.Surface(in.Surface)
		}
		return a.prefs.SetSurface(ctx, surface, in.Color)
	case SaveCustomTheme:
		a.prefs.SaveCustomTheme(ctx)
		return nil
	case ToggleSidebar:
		a.prefs.ToggleSidebar(ctx)
		return nil
	case Search:
		a.term = view.NormalizeTerm(in.Term)
		return nil
	case Import:
		n, err := backup.Import(ctx, a.store, in.Bundle)
		if err != nil {
			return err
		}
		a.log.Info().Int("keys", n).Msg("data imported")
		a.repo.Load(ctx)
		return nil
	case Reset:
		if !confirm(resetPrompt) {
			return links.ErrDeclined
		}
		backup.Reset(ctx, a.store)
		a.repo.Load(ctx)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownIntent, in)
	}
}
