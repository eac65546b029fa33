// Package server exposes the ticket repository over a local JSON API.
//
// Every request reads a fresh snapshot from the store, so responses always
// reflect the current on-disk state. The API is read-only; mutations go
// through the CLI.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/graph"
	"github.com/bodega-dev/bodega/pkg/storage"
)

// Server serves the JSON API for one ticket repository.
type Server struct {
	store  *storage.Store
	logger *log.Logger
	router chi.Router
}

// New builds a server around the given store.
func New(store *storage.Store, logger *log.Logger) *Server {
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tickets", s.handleListTickets)
		r.Get("/tickets/{id}", s.handleGetTicket)
		r.Get("/tickets/{id}/blockers", s.handleBlockers)
		r.Get("/ready", s.handleReady)
		r.Get("/blocked", s.handleBlocked)
		r.Get("/graph", s.handleGraph)
		r.Get("/cycles", s.handleCycles)
		r.Get("/tree", s.handleTree)
	})
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("serving API", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// snapshot loads every ticket and builds a graph over them.
func (s *Server) snapshot() (*graph.Graph, error) {
	tickets, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return graph.New(tickets), nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeTicketNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeAmbiguousID, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidID:
		status = http.StatusBadRequest
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: string(code), Message: errors.UserMessage(err)}})
}
