package app

import (
	"context"
	"errors"
	"strings"
)

// ChatMessage is a single turn in a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompleter is the port to the upstream chat-completion API.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

const chatSystemPrompt = "You are a nutrition and body-composition assistant. " +
	"Answer questions about weight, body fat, muscle mass and healthy habits. " +
	"Keep answers short and do not give medical diagnoses."

// ChatService proxies user messages to the chat-completion API, prefixing
// the fixed system prompt.
type ChatService struct {
	client ChatCompleter
}

// NewChatService creates a ChatService using the given completion client.
func NewChatService(client ChatCompleter) *ChatService {
	return &ChatService{client: client}
}

// Ask forwards the message, preceded by any prior turns the caller replays,
// and returns the assistant's reply.
func (s *ChatService) Ask(ctx context.Context, message string, history []ChatMessage) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrValidation
	}

	msgs := make([]ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ChatMessage{Role: "system", Content: chatSystemPrompt})
	msgs = append(msgs, history...)
	msgs = append(msgs, ChatMessage{Role: "user", Content: message})

	reply, err := s.client.Complete(ctx, msgs)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", errors.New("empty completion")
	}
	return reply, nil
}
