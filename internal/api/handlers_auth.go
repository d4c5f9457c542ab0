package api

import (
	"net/http"
)

type registerRequest struct {
	Email             string `json:"email"`
	DisplayName       string `json:"display_name"`
	Password          string `json:"password"`
	PreferredCurrency string `json:"preferred_currency"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.DisplayName == "" {
		badRequest(w, "email and display_name are required")
		return
	}
	if req.PreferredCurrency != "" && len(req.PreferredCurrency) != 3 {
		badRequest(w, "preferred_currency must be a 3-letter code")
		return
	}

	user, err := s.authn.Register(r.Context(), req.Email, req.DisplayName, req.Password, req.PreferredCurrency)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserView(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserView(user)})
}
