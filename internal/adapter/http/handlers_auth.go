package adapthttp

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"bodycomp/internal/app"
	"bodycomp/internal/domain"

	"github.com/go-chi/chi/v5"
)

// Canonical wire fields are English; one legacy client revision sent German
// field names, accepted here as aliases and mapped before anything else sees
// them.
type registerRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email"`
	Age      *int     `json:"age"`
	Gender   *string  `json:"gender"`
	HeightCm *float64 `json:"heightCm"`

	AltUsername string `json:"benutzername"`
	AltPassword string `json:"passwort"`
}

func (req *registerRequest) canonicalize() {
	if req.Username == "" {
		req.Username = req.AltUsername
	}
	if req.Password == "" {
		req.Password = req.AltPassword
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	AltUsername string `json:"benutzername"`
	AltPassword string `json:"passwort"`
}

func (req *loginRequest) canonicalize() {
	if req.Username == "" {
		req.Username = req.AltUsername
	}
	if req.Password == "" {
		req.Password = req.AltPassword
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.canonicalize()

	acct := domain.Account{
		Username: req.Username,
		Email:    req.Email,
		Age:      req.Age,
		Gender:   req.Gender,
		HeightCm: req.HeightCm,
	}
	_, err := s.auth.Register(r.Context(), acct, req.Password)
	switch {
	case errors.Is(err, app.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "please fill in all fields")
	case errors.Is(err, domain.ErrConflict):
		writeMessage(w, http.StatusConflict, "username or email already exists")
	case err != nil:
		log.Printf("register: %v", err)
		writeMessage(w, http.StatusInternalServerError, "server error")
	default:
		writeMessage(w, http.StatusCreated, "registration successful")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.canonicalize()

	tok, acct, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, app.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "please enter username and password")
	case errors.Is(err, app.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid username or password")
	case err != nil:
		log.Printf("login: %v", err)
		writeMessage(w, http.StatusInternalServerError, "server error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "login successful",
			"token":    tok,
			"userId":   acct.ID,
			"username": acct.Username,
		})
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	acct, err := s.auth.Profile(r.Context(), claims.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "user not found")
	case err != nil:
		log.Printf("profile: %v", err)
		writeMessage(w, http.StatusInternalServerError, "server error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"user": acct})
	}
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	err = s.auth.DeleteAccount(r.Context(), claims.UserID, targetID)
	switch {
	case errors.Is(err, app.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "you are not allowed to delete this user")
	case err != nil:
		log.Printf("delete user %d: %v", targetID, err)
		writeMessage(w, http.StatusInternalServerError, "server error")
	default:
		writeMessage(w, http.StatusOK, "user deleted")
	}
}
