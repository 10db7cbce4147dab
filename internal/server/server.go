// Package server exposes quiz sessions over a small JSON API.
//
// The API is single-user: one session lives in memory at a time and starting
// a new one replaces it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/quiz"
	"github.com/abhisek/fincert/internal/session"
)

// Options configures a Server.
type Options struct {
	// AllowOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	AllowOrigin string
	Logger      *zap.Logger
}

// Server serves the quiz API for one learner.
type Server struct {
	svc    *quiz.Service
	logger *zap.Logger
	origin string
	router *mux.Router
	h      http.Handler

	mu   sync.Mutex
	sess *session.Session
}

// New creates a Server backed by svc.
func New(svc *quiz.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origin := opts.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	s := &Server{svc: svc, logger: logger, origin: origin}
	s.router = s.routes()
	s.h = s.withLogging(s.withCORS(s.router))
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/bank", s.handleBank).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	api.HandleFunc("/session", s.handleStart).Methods(http.MethodPost)
	api.HandleFunc("/session", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleDiscard).Methods(http.MethodDelete)
	api.HandleFunc("/session/answer", s.handleAnswer).Methods(http.MethodPost)
	api.HandleFunc("/session/self-grade", s.handleSelfGrade).Methods(http.MethodPost)
	api.HandleFunc("/session/next", s.handleNext).Methods(http.MethodPost)

	api.HandleFunc("/wrong-notes", s.handleWrongNotes).Methods(http.MethodGet)
	api.HandleFunc("/wrong-notes", s.handleClearWrongNotes).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("api shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// current returns the live session. Callers must hold s.mu.
func (s *Server) current() (*session.Session, error) {
	if s.sess == nil {
		return nil, errNoSession
	}
	return s.sess, nil
}
