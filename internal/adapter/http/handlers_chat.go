package adapthttp

import (
	"errors"
	"log"
	"net/http"

	"bodycomp/internal/app"
)

type chatRequest struct {
	Message string            `json:"message"`
	History []app.ChatMessage `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	reply, err := s.chat.Ask(r.Context(), req.Message, req.History)
	switch {
	case errors.Is(err, app.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "please provide a message")
	case err != nil:
		log.Printf("chat: %v", err)
		writeMessage(w, http.StatusBadGateway, "chat service unavailable")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}
