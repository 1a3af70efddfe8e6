package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/FilipeMCruz/playlist-maker/internal/logging"
	"github.com/FilipeMCruz/playlist-maker/internal/metrics"
)

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *statusWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// requestLogger tags each request with a run id, stores the logger in the
// request context and logs the outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log, runID := logging.WithRunID(s.logger)
		w.Header().Set("X-Run-Id", runID)

		wrapped := newStatusWriter(w)
		start := time.Now()
		next.ServeHTTP(wrapped, r.WithContext(log.WithContext(r.Context())))

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// recordMetrics counts requests by route template to keep label
// cardinality bounded.
func recordMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := newStatusWriter(w)
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
	})
}

// requestLog returns the logger stored by requestLogger.
func requestLog(r *http.Request) zerolog.Logger {
	return *zerolog.Ctx(r.Context())
}
