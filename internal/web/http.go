package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductTrac/internal/productview"
	"ProductTrac/pkg/kit"
)

const (
	readyTimeout = 1 * time.Second
	maxFormBytes = 1 << 16
)

var formFields = []string{"id", "name", "desc", "price"}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Server maps page actions onto a single shared ProductView.
type Server struct {
	View    *productview.View
	Backend Pinger
	Log     *zap.Logger
}

func (s *Server) Routes(mutating func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Get("/", s.page)
	r.Get("/api/state", s.state)

	r.Group(func(pr chi.Router) {
		if mutating != nil {
			pr.Use(mutating)
		}
		pr.Post("/fetch", s.fetch)
		pr.Post("/search", s.search)
		pr.Post("/submit", s.submit)
		pr.Post("/cancel", s.cancel)
		pr.Post("/products/{id}/edit", s.edit)
		pr.Post("/products/{id}/delete", s.delete)
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Backend.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "backend not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	body, err := renderPage(s.View.Snapshot())
	if err != nil {
		s.logger().Error("render page failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) state(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.View.Snapshot())
}

func (s *Server) fetch(w http.ResponseWriter, r *http.Request) {
	_ = s.View.FetchAll(r.Context())
	kit.SeeOther(w, r, "/")
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	s.View.Search(r.FormValue("q"))
	kit.SeeOther(w, r, "/")
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad form", map[string]any{"cause": err.Error()})
		return
	}

	for _, f := range formFields {
		if _, ok := r.PostForm[f]; ok {
			s.View.SetField(f, r.PostForm.Get(f))
		}
	}

	_ = s.View.Submit(r.Context())
	kit.SeeOther(w, r, "/")
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	s.View.CancelEdit()
	kit.SeeOther(w, r, "/")
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, found := s.View.Lookup(id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	s.View.BeginEdit(p)
	kit.SeeOther(w, r, "/")
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	_ = s.View.DeleteByID(r.Context(), id)
	kit.SeeOther(w, r, "/")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
