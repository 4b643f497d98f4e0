// Package server exposes the fusiongen HTTP API: border node config upload,
// fusion router config generation, download, and generation history.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	fuerrors "github.com/fabricware/fusiongen/pkg/errors"
	"github.com/fabricware/fusiongen/pkg/logger"
	"github.com/fabricware/fusiongen/pkg/service"
	"github.com/fabricware/fusiongen/pkg/store"
)

// Server wires the HTTP handlers to the configuration store and workdir.
type Server struct {
	cfg     *service.Config
	log     *logger.Logger
	store   *store.Store
	workdir *store.Workdir
	router  chi.Router
}

// New builds the server and its route table.
func New(cfg *service.Config, log *logger.Logger, st *store.Store, wd *store.Workdir) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		store:   st,
		workdir: wd,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Post("/generate", s.handleGenerate)
		r.Post("/download", s.handleDownload)
		r.Get("/generations", s.handleListGenerations)
		r.Get("/generations/{id}", s.handleGetGeneration)
	})
	r.Get("/healthz", s.handleHealth)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError writes the error envelope, surfacing the structured code when
// the error carries one.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var fe *fuerrors.Error
	if fuerrors.As(err, &fe) {
		resp.Error = fe.Message
		resp.Code = fe.Code
	}
	writeJSON(w, status, resp)
}
