package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/services"
)

type bookResponse struct {
	Message string       `json:"message"`
	Book    *models.Book `json:"book"`
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) error {
	page, err := intQuery(r, "page")
	if err != nil {
		return err
	}
	limit, err := intQuery(r, "limit")
	if err != nil {
		return err
	}

	q := r.URL.Query()
	list, err := s.books.List(r.Context(), services.ListBooksInput{
		Page:   page,
		Limit:  limit,
		Genre:  q.Get("genre"),
		Author: q.Get("author"),
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) error {
	var in services.BookInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	book, err := s.books.Create(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, bookResponse{Message: "Book added successfully", Book: book})
	return nil
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) error {
	details, err := s.books.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, details)
	return nil
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) error {
	if err := s.books.Delete(r.Context(), r.PathValue("id")); err != nil {
		return err
	}
	writeMessage(w, http.StatusOK, "Book deleted successfully")
	return nil
}
