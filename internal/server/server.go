// Package server exposes the start page over local HTTP: an HTML rendering of
// the page and a small JSON API that accepts intents.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"startpage/internal/app"
	"startpage/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxBodyBytes = 4 << 20

type Server struct {
	app  *app.App
	log  zerolog.Logger
	page *template.Template
	now  func() time.Time
}

func New(a *app.App, log zerolog.Logger) *Server {
	funcs := template.FuncMap{
		"highlight": view.Highlight,
		"json":      toJSON,
	}
	return &Server{
		app:  a,
		log:  log.With().Str("component", "server").Logger(),
		page: template.Must(template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")),
		now:  time.Now,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(localOnly)

	r.Get("/", s.index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", s.getPage)
		r.Get("/themes", s.getThemes)
		r.Get("/export", s.export)

		// A JSON body cannot be sent cross-origin without a preflight.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/intents", s.postIntent)
			r.Post("/drop-preview", s.previewDrop)
			r.Post("/import", s.importBundle)
			r.Post("/reset", s.reset)
		})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
