package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
)

// maxBodyBytes bounds the generate request body.
const maxBodyBytes = 64 << 10

// Config wires the HTTP surface.
type Config struct {
	Activities *activity.Service
	// Web serves the browser UI at "/" when set.
	Web http.Handler
	// MCP is mounted at /mcp when set.
	MCP        http.Handler
	CORSOrigin string
	Logger     *slog.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	activities *activity.Service
	logger     *slog.Logger
}

// GenerateRequest is the body of POST /api/generate-project.
type GenerateRequest struct {
	Materials []string `json:"materials"`
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(cfg.Logger))
	if cfg.CORSOrigin != "" {
		r.Use(CORSMiddleware(cfg.CORSOrigin))
	}

	srv := &Server{activities: cfg.Activities, logger: cfg.Logger}

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-project", srv.handleGenerate)
		r.Get("/materials", srv.handleMaterials)
	})
	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}
	if cfg.Web != nil {
		r.Handle("/*", cfg.Web)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMaterials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, material.Catalog())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, activity.NoMaterialsMessage)
		return
	}

	requestID, _ := RequestIDFromContext(r.Context())
	result, err := s.activities.Generate(r.Context(), activity.Request{
		Materials: req.Materials,
		RequestID: requestID,
	})
	if err != nil {
		if errors.Is(err, activity.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, activity.NoMaterialsMessage)
			return
		}
		if s.logger != nil {
			s.logger.Error("generate activity", "request_id", requestID, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result.Activity)
}
