// Package llm wraps the chat completion and embedding providers.
package llm

import (
	"context"
	"errors"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one chat completion call. MaxTokens of 0 leaves the limit to
// the provider.
type Request struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// Completer produces a single chat completion.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, model, text string) ([]float32, error)
}

// Client is a provider that can do both.
type Client interface {
	Completer
	Embedder
}

var (
	ErrUnauthorized  = errors.New("llm: request not authorized")
	ErrTimeout       = errors.New("llm: request timed out")
	ErrEmptyResponse = errors.New("llm: empty response")
	ErrNoKeys        = errors.New("llm: no API keys configured")
)
