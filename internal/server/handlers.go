package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"startpage/internal/app"
	"startpage/internal/backup"
	"startpage/internal/links"
	"startpage/internal/prefs"
	"startpage/internal/reorder"
	"startpage/internal/view"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorBody{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

// stateResponse is everything a client needs to redraw after an intent.
type stateResponse struct {
	Page             view.Page         `json:"page"`
	Summary          string            `json:"summary"`
	Categories       []string          `json:"categories"`
	Theme            string            `json:"theme"`
	Vars             map[string]string `json:"vars"`
	SidebarCollapsed bool              `json:"sidebarCollapsed"`
	Persistent       bool              `json:"persistent"`
}

// pageFor projects with the ?q= term when the request carries one and with
// the app's current term otherwise.
func (s *Server) pageFor(r *http.Request) view.Page {
	if q := r.URL.Query(); q.Has("q") {
		return view.Project(s.app.Repo().Links(), q.Get("q"))
	}
	return s.app.Page()
}

func (s *Server) state(r *http.Request) stateResponse {
	ctx := r.Context()
	page := s.pageFor(r)
	return stateResponse{
		Page:             page,
		Summary:          page.Summary(),
		Categories:       s.app.Repo().Categories(),
		Theme:            s.app.Prefs().CurrentTheme(ctx).Name,
		Vars:             s.app.Prefs().CSSVars(ctx),
		SidebarCollapsed: s.app.Prefs().SidebarCollapsed(ctx),
		Persistent:       s.app.Store().IsPersistent(),
	}
}

func (s *Server) getPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state(r))
}

func (s *Server) getThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, prefs.Themes())
}

// confirmation carries the answer to the gate for destructive intents. The
// browser asks the question; the server only sees the answer.
type confirmation struct {
	Confirm bool `json:"confirm"`
}

func (c confirmation) gate(string) bool {
	return c.Confirm
}

func (s *Server) postIntent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body", "bad_request")
		return
	}

	in, err := app.DecodeIntent(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_intent")
		return
	}
	var c confirmation
	_ = json.Unmarshal(body, &c)

	if err := s.app.DispatchWith(r.Context(), in, c.gate); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state(r))
}

func (s *Server) writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, links.ErrEmptyField),
		errors.Is(err, prefs.ErrUnknownTheme),
		errors.Is(err, prefs.ErrUnknownSurface),
		errors.Is(err, prefs.ErrEmptyColor):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "validation_error")
	case errors.Is(err, links.ErrCategoryExists):
		writeError(w, http.StatusConflict, "A category with that name already exists", "category_exists")
	case errors.Is(err, links.ErrCategoryUnchanged):
		writeError(w, http.StatusConflict, err.Error(), "unchanged")
	case errors.Is(err, backup.ErrInvalidBundle):
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_bundle")
	case errors.Is(err, app.ErrUnknownIntent):
		writeError(w, http.StatusBadRequest, err.Error(), "bad_intent")
	default:
		s.log.Error().Err(err).Msg("dispatch failed")
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
	}
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	b := s.app.Export(r.Context())
	name := fmt.Sprintf("startpage-backup-%s.json", s.now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) importBundle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body", "bad_request")
		return
	}
	b, err := backup.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_bundle")
		return
	}
	if err := s.app.Dispatch(r.Context(), app.Import{Bundle: b}); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state(r))
}

type dropPreview struct {
	Slot  int `json:"slot"`
	Index int `json:"index"`
}

// previewDrop tells a dragging client where its indicator goes. Slot -1 means
// after the last link.
func (s *Server) previewDrop(w http.ResponseWriter, r *http.Request) {
	var d app.Drop
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}
	writeJSON(w, http.StatusOK, dropPreview{
		Slot:  reorder.IndicatorSlot(d.Pointer, d.Rects),
		Index: reorder.InsertionIndex(d.Pointer, d.Rects),
	})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	var c confirmation
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
		return
	}
	if err := s.app.DispatchWith(r.Context(), app.Reset{}, c.gate); err != nil {
		s.writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state(r))
}

// cssValueRE admits color notations (hex, names, rgb()/hsl() forms) and
// nothing that could close the declaration.
var cssValueRE = regexp.MustCompile(`^[#a-zA-Z0-9(),.% ]+$`)

func styleFor(vars map[string]string) template.CSS {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, k := range names {
		v := vars[k]
		if !strings.HasPrefix(k, "--") || !cssValueRE.MatchString(v) {
			continue
		}
		fmt.Fprintf(&b, "%s: %s; ", k, v)
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

type pageData struct {
	Style            template.CSS
	Theme            string
	Themes           []prefs.Theme
	SidebarCollapsed bool
	Persistent       bool
	Term             string
	Summary          string
	Groups           []view.Group
	Categories       []string
	Empty            bool
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	st := s.state(r)
	data := pageData{
		Style:            styleFor(st.Vars),
		Theme:            st.Theme,
		Themes:           prefs.Themes(),
		SidebarCollapsed: st.SidebarCollapsed,
		Persistent:       st.Persistent,
		Term:             st.Page.Term,
		Summary:          st.Summary,
		Groups:           st.Page.VisibleGroups(),
		Categories:       st.Categories,
		Empty:            st.Page.Stats.TotalLinks == 0,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("rendering page")
	}
}
