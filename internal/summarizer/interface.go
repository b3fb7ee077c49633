package summarizer

import (
	"context"
	"errors"
)

// Summarizer produces the simple, non-retrieval summary of a transcript and
// the extra fields of the extended output.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, language string) (string, error)
	Categorize(ctx context.Context, transcript, language string) (string, error)
	Keywords(ctx context.Context, transcript, language string) (string, error)
}

// Failures are reported with the message shown to the user.
var (
	ErrUnsupportedLanguage = errors.New("Error: summarizer language not supported.")
	ErrNotAuthorized       = errors.New("Error: OpenAI API request was not authorized\nCheck or set your API key")
	ErrTimedOut            = errors.New("Error: OpenAI API request timed out")
	ErrUnexpected          = errors.New("Error: unexpected error while performing OpenAI API request")
)
