package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ForecastLens/internal/session"
)

// Server is the HTTP and WebSocket host for chart views.
type Server struct {
	Sessions *session.Manager
	router   *mux.Router
	http     *http.Server
}

// NewServer creates a server listening on addr.
func NewServer(addr string, sessions *session.Manager) *Server {
	s := &Server{Sessions: sessions, router: mux.NewRouter()}
	s.routes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(corsMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/symbols", s.handleSymbols).Methods(http.MethodGet)
	api.HandleFunc("/charts", s.handleOpen).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/charts/{id}", s.handleFrame).Methods(http.MethodGet)
	api.HandleFunc("/charts/{id}", s.handleClose).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/charts/{id}/svg", s.handleSVG).Methods(http.MethodGet)
	api.HandleFunc("/charts/{id}/png", s.handlePNG).Methods(http.MethodGet)
	api.HandleFunc("/charts/{id}/zoom", s.handleZoom).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/charts/{id}/pan", s.handlePan).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/charts/{id}/reset", s.handleReset).Methods(http.MethodPost, http.MethodOptions)

	s.router.HandleFunc("/ws/charts/{id}", s.handleStream)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	log.Printf("[INFO] HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
