package summarizer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
)

const (
	// Categorize and Keywords only look at the start of the transcript.
	headLength        = 1000
	categoryMaxTokens = 30
	keywordsMaxTokens = 100
)

func (s *implSummarizer) Summarize(ctx context.Context, transcript, language string) (string, error) {
	prompt, ok := summarizePrompts[language]
	if !ok {
		return "", ErrUnsupportedLanguage
	}

	s.logger.Info(ctx, "Summarizing %d characters with %s", len(transcript), s.model)
	return s.complete(ctx, "summarize", llm.Request{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt + transcript},
		},
	})
}

func (s *implSummarizer) Categorize(ctx context.Context, transcript, language string) (string, error) {
	prompt, ok := categorizePrompts[language]
	if !ok {
		return "", ErrUnsupportedLanguage
	}

	return s.complete(ctx, "categorize", llm.Request{
		Model:     s.model,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt + head(transcript)}},
		MaxTokens: categoryMaxTokens,
	})
}

func (s *implSummarizer) Keywords(ctx context.Context, transcript, language string) (string, error) {
	prompt, ok := keywordPrompts[language]
	if !ok {
		return "", ErrUnsupportedLanguage
	}

	return s.complete(ctx, "keywords", llm.Request{
		Model:     s.model,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt + head(transcript)}},
		MaxTokens: keywordsMaxTokens,
	})
}

// complete runs req and maps failures to the user-facing errors.
func (s *implSummarizer) complete(ctx context.Context, step string, req llm.Request) (string, error) {
	text, err := s.completer.Complete(ctx, req)
	if err == nil {
		return text, nil
	}

	switch {
	case errors.Is(err, llm.ErrUnauthorized):
		s.logger.Error(ctx, "%s: authentication error while performing API request: %v", step, err)
		return "", ErrNotAuthorized
	case errors.Is(err, llm.ErrTimeout):
		s.logger.Error(ctx, "%s: timeout while performing API request: %v", step, err)
		return "", ErrTimedOut
	default:
		s.logger.Error(ctx, "%s: unexpected error while performing API request: %v", step, err)
		return "", ErrUnexpected
	}
}

func head(s string) string {
	r := []rune(s)
	if len(r) <= headLength {
		return s
	}
	return string(r[:headLength])
}
