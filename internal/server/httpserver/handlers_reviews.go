package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/services"
)

type reviewResponse struct {
	Message string         `json:"message,omitempty"`
	Review  *models.Review `json:"review"`
}

type reviewsResponse struct {
	Reviews []models.Review `json:"reviews"`
}

// bookIDParam returns the book id from either route shape.
func bookIDParam(r *http.Request) string {
	if id := r.PathValue("bookId"); id != "" {
		return id
	}
	return r.PathValue("id")
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) error {
	reviews, err := s.reviews.ListByBook(r.Context(), bookIDParam(r))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: reviews})
	return nil
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) error {
	var in services.ReviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	return s.createReview(w, r, r.PathValue("id"), in)
}

type reviewForBookInput struct {
	BookID string `json:"book_id"`
	services.ReviewInput
}

// handleCreateReviewForBook accepts the book id in the body.
func (s *Server) handleCreateReviewForBook(w http.ResponseWriter, r *http.Request) error {
	var in reviewForBookInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	return s.createReview(w, r, in.BookID, in.ReviewInput)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request, bookID string, in services.ReviewInput) error {
	review, err := s.reviews.Create(r.Context(), bookID, in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, reviewResponse{Message: "Review added successfully", Review: review})
	return nil
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) error {
	review, err := s.reviews.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, reviewResponse{Review: review})
	return nil
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) error {
	var in services.ReviewUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	review, err := s.reviews.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, reviewResponse{Message: "Review updated successfully", Review: review})
	return nil
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) error {
	if err := s.reviews.Delete(r.Context(), r.PathValue("id")); err != nil {
		return err
	}
	writeMessage(w, http.StatusOK, "Review deleted successfully")
	return nil
}
