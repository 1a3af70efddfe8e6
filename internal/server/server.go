// Package server exposes query evaluation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// TrackSource supplies the tracks a request is evaluated against.
// *maker.Library satisfies it.
type TrackSource interface {
	Tracks(ctx context.Context) ([]track.Track, error)
}

// TrackSourceFunc adapts a function to TrackSource.
type TrackSourceFunc func(ctx context.Context) ([]track.Track, error)

func (f TrackSourceFunc) Tracks(ctx context.Context) ([]track.Track, error) {
	return f(ctx)
}

// Server answers queries over the tracks of a source. Tracks are loaded
// on every request so library imports are picked up without a restart.
type Server struct {
	engine *maker.Engine
	source TrackSource
	logger zerolog.Logger
	router *mux.Router
}

// New builds a server; engine's playlists and driver settings are used
// for every request.
func New(engine *maker.Engine, source TrackSource, logger zerolog.Logger) *Server {
	s := &Server{
		engine: engine,
		source: source,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger, recordMetrics)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/query", s.query).Methods(http.MethodPost)
	api.HandleFunc("/check", s.check).Methods(http.MethodGet)
	api.HandleFunc("/playlists", s.playlists).Methods(http.MethodGet)

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
