// Package httpserver exposes the book review API over HTTP/JSON.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/dmitrijs2005/bookreviews/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	gate     *auth.Gate
	accounts *services.AccountService
	books    *services.BookService
	reviews  *services.ReviewService
}

func New(address string, l logging.Logger, gate *auth.Gate, as *services.AccountService, bs *services.BookService, rs *services.ReviewService) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		gate:     gate,
		accounts: as,
		books:    bs,
		reviews:  rs,
	}
}

// Handler returns the root http.Handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.Handle("POST /api/auth/signup", s.handle(s.handleSignup))
	mux.Handle("POST /api/auth/login", s.handle(s.handleLogin))
	mux.Handle("GET /api/auth/me", s.protected(s.handleMe))
	mux.Handle("DELETE /api/auth/me", s.protected(s.handleDeleteAccount))

	mux.Handle("GET /api/books", s.protected(s.handleListBooks))
	mux.Handle("POST /api/books", s.protected(s.handleCreateBook))
	mux.Handle("GET /api/books/{id}", s.protected(s.handleGetBook))
	mux.Handle("DELETE /api/books/{id}", s.protected(s.handleDeleteBook))
	mux.Handle("GET /api/books/{id}/reviews", s.protected(s.handleListReviews))
	mux.Handle("POST /api/books/{id}/reviews", s.protected(s.handleCreateReview))

	mux.Handle("POST /api/reviews", s.protected(s.handleCreateReviewForBook))
	mux.Handle("GET /api/reviews/book/{bookId}", s.protected(s.handleListReviews))
	mux.Handle("GET /api/reviews/{id}", s.protected(s.handleGetReview))
	mux.Handle("PUT /api/reviews/{id}", s.protected(s.handleUpdateReview))
	mux.Handle("DELETE /api/reviews/{id}", s.protected(s.handleDeleteReview))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})

	return s.loggingMiddleware(mux)
}

// Serve accepts connections on lis until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}
