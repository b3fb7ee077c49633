package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/speaker"
)

var errNoContent = errors.New("transcript has no content")

// Generate chunks and indexes utterances, retrieves the closest chunks for
// the language prompt and returns the model answer verbatim.
func (o *implOrchestrator) Generate(ctx context.Context, utterances []speaker.Utterance, language, model string) (string, error) {
	chunks, err := Split(utterances, o.cfg.ChunkSize, o.cfg.ChunkOverlap)
	if err != nil {
		return "", fmt.Errorf("%w: chunk: %w", ErrGenerationFailed, err)
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, errNoContent)
	}

	coll, err := o.collection()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	run := uuid.NewString()
	o.logger.Info(ctx, "Indexing %d chunks into %s (run %s)", len(chunks), o.cfg.IndexPath, run)
	if err := o.index(ctx, coll, chunks, run); err != nil {
		return "", fmt.Errorf("%w: index: %w", ErrGenerationFailed, err)
	}

	template := promptFor(language)
	retrieved, err := o.retrieve(ctx, coll, retrievalQuery(template))
	if err != nil {
		return "", fmt.Errorf("%w: retrieve: %w", ErrGenerationFailed, err)
	}
	o.logger.Debug(ctx, "Retrieved %d chunks of %d indexed", len(retrieved), coll.Count())

	answer, err := o.completer.Complete(ctx, llm.Request{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fillPrompt(template, retrieved)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: complete: %w", ErrGenerationFailed, err)
	}
	return answer, nil
}
