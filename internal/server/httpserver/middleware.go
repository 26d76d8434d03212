package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/common"
)

// handlerFunc is an HTTP handler that reports failures as errors. The
// adapter in handle writes exactly one error response.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	})
}

// protected runs h behind the auth gate. Gate rejections and h's own errors
// share the same mapping.
func (s *Server) protected(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.gate.Invoke(r.Context(), r.Header.Get(common.AuthorizationHeaderName), func(ctx context.Context) error {
			return h(w, r.WithContext(ctx))
		})
		if err != nil {
			s.writeError(w, r, err)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
