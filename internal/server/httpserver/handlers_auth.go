package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/services"
)

type authResponse struct {
	Message string          `json:"message"`
	User    models.Identity `json:"user"`
	Token   string          `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) error {
	var in services.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	res, err := s.accounts.Register(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, authResponse{Message: "New user registered successfully", User: res.User, Token: res.Token})
	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var in services.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	res, err := s.accounts.Login(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: res.User, Token: res.Token})
	return nil
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) error {
	me, err := s.accounts.Me(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, me)
	return nil
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) error {
	if err := s.accounts.Delete(r.Context()); err != nil {
		return err
	}
	writeMessage(w, http.StatusOK, "User account deleted successfully")
	return nil
}
