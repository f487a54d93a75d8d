package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// SSOConfig holds the optional OIDC login configuration.
type SSOConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.sso.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		writeMessage(w, http.StatusBadRequest, "invalid state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	oauthToken, err := s.sso.OAuth2Config.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Printf("sso exchange: %v", err)
		writeMessage(w, http.StatusInternalServerError, "sso login failed")
		return
	}

	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "sso login failed")
		return
	}

	verifier := s.sso.Provider.Verifier(&oidc.Config{ClientID: s.sso.OAuth2Config.ClientID})
	idToken, err := verifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		log.Printf("sso verify: %v", err)
		writeMessage(w, http.StatusInternalServerError, "sso login failed")
		return
	}

	var claims struct {
		Email string `json:"email"`
		Sub   string `json:"sub"`
	}
	if err = idToken.Claims(&claims); err != nil {
		writeMessage(w, http.StatusInternalServerError, "sso login failed")
		return
	}

	email := claims.Email
	if email == "" {
		email = claims.Sub
	}

	tok, acct, err := s.auth.LoginSSO(r.Context(), email)
	if err != nil {
		log.Printf("sso login: %v", err)
		writeMessage(w, http.StatusInternalServerError, "sso login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "login successful",
		"token":    tok,
		"userId":   acct.ID,
		"username": acct.Username,
	})
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
