package main

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/toolcost/internal/catalog"
	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/metrics"
)

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	st := s.sessions.Get(sessionID(r))

	presets, err := s.presets.List(r.Context())
	if err != nil {
		slog.Error("list presets", "error", err)
	}

	data := s.buildHome(st, presets)
	data.baseViewData = baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}

	s.renderTemplate(w, "home.html", data)
}

func (s *server) handleBasis(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.sessions.SetBasis(sessionID(r), parseBasisForm(r, s.defaults))
	s.recordEvaluation(sessionID(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleToolCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	tool, err := parseToolForm(r).Tool()
	if err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	s.sessions.Add(sessionID(r), tool)
	s.recordEvaluation(sessionID(r))
	http.Redirect(w, r, "/?success=Tool+added", http.StatusSeeOther)
}

func (s *server) handleToolDelete(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Remove(sessionID(r), chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	s.recordEvaluation(sessionID(r))
	http.Redirect(w, r, "/?success=Tool+removed", http.StatusSeeOther)
}

func (s *server) handleToolsClear(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(sessionID(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handlePresetAdd(w http.ResponseWriter, r *http.Request) {
	preset, err := s.presets.Get(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load preset", "error", err)
		http.Error(w, "failed to load preset", http.StatusInternalServerError)
		return
	}

	tool, err := preset.Tool()
	if err != nil {
		slog.Error("convert preset", "slug", preset.Slug, "error", err)
		http.Error(w, "invalid preset", http.StatusInternalServerError)
		return
	}

	s.sessions.Add(sessionID(r), tool)
	s.recordEvaluation(sessionID(r))
	http.Redirect(w, r, "/?success="+url.QueryEscape(preset.Spec.Name+" added"), http.StatusSeeOther)
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.sessions.SetComparison(sessionID(r), r.FormValue("reference"), r.FormValue("alternative"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// recordEvaluation counts one calculation after a request changed the
// session's tools or basis. Page renders are not counted.
func (s *server) recordEvaluation(id string) {
	st := s.sessions.Get(id)
	ev := consumption.EvaluateBasis(st.Basis, st.Tools())
	if len(ev.Results) > 0 {
		metrics.ObserveEvaluation("web", ev.Results)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
