package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// keyRing tracks the active API key index across goroutines.
type keyRing struct {
	mu      sync.Mutex
	n       int
	current int
}

func newKeyRing(n int) *keyRing {
	return &keyRing{n: n}
}

func (r *keyRing) get() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// rotate moves past key i. Callers that saw an older index do not skip a key
// another goroutine already rotated to.
func (r *keyRing) rotate(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == i {
		r.current = (r.current + 1) % r.n
	}
}

func (g *implGemini) Complete(ctx context.Context, req Request) (string, error) {
	prompt := flatten(req.Messages)

	var text string
	err := g.withKey(ctx, func(ctx context.Context, client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(prompt), nil)
		if err != nil {
			return err
		}
		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return ErrEmptyResponse
		}
		var b strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			b.WriteString(part.Text)
		}
		text = b.String()
		return nil
	})
	return text, err
}

func (g *implGemini) Embed(ctx context.Context, model, text string) ([]float32, error) {
	var vec []float32
	err := g.withKey(ctx, func(ctx context.Context, client *genai.Client) error {
		result, err := client.Models.EmbedContent(ctx, model, genai.Text(text), nil)
		if err != nil {
			return err
		}
		if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
			return ErrEmptyResponse
		}
		vec = result.Embeddings[0].Values
		return nil
	})
	return vec, err
}

// withKey runs fn with a client for the active key, rotating on quota
// errors until every key has been tried once.
func (g *implGemini) withKey(ctx context.Context, fn func(context.Context, *genai.Client) error) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var lastErr error
	for range len(g.keys) {
		i := g.rot.get()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.keys[i],
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rot.rotate(i)
			continue
		}

		err = fn(ctx, client)
		switch {
		case err == nil:
			return nil
		case isQuotaError(err):
			g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", i+1)
			g.rot.rotate(i)
			lastErr = err
			continue
		default:
			return classifyGemini(err)
		}
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func classifyGemini(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"),
		strings.Contains(msg, "PERMISSION_DENIED"),
		strings.Contains(msg, "UNAUTHENTICATED"):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case isTimeout(err):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("generate content: %w", err)
}

// flatten joins messages into one prompt; the system message leads.
func flatten(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		if c := strings.TrimSpace(m.Content); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}
