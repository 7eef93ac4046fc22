package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alan-mat/chatbridge/internal/chat"
)

const (
	promptField  = "q"
	historyField = "h"
)

var errHistoryTooLarge = errors.New("history field exceeds size limit")

type pageData struct {
	chat.View
	EncodedHistory string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	slog.Debug("received index request", "id", requestID(r.Context()))
	s.render(w, r, s.session.Index(nil), nil)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	history := historyFromRequest(r)
	prompt := r.PostFormValue(promptField)
	slog.Info("received generate request", "id", id, "history", len(history))

	view, history := s.session.Submit(r.Context(), history, prompt)
	if view.Notice != nil {
		slog.Info("generate request answered with notice", "id", id, "level", view.Notice.Level, "err", view.Notice.Err)
	}
	s.render(w, r, view, history)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	slog.Info("received clear request", "id", requestID(r.Context()))
	view, history := s.session.Clear(historyFromRequest(r))
	s.render(w, r, view, history)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.session.Ready() {
		status = "missing_credential"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, view chat.View, history chat.History) {
	data := pageData{
		View:           view,
		EncodedHistory: encodeHistory(history),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.Error("failed to render page", "id", requestID(r.Context()), "err", err)
	}
}
