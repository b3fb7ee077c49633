package rag

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/recap-flow/internal/speaker"
)

// ErrGenerationFailed wraps every embedding, indexing or generation failure.
var ErrGenerationFailed = errors.New("rag: generation failed")

// Orchestrator indexes a transcript and asks the model for a structured
// meeting summary grounded on the indexed chunks.
type Orchestrator interface {
	Generate(ctx context.Context, utterances []speaker.Utterance, language, model string) (string, error)
}
