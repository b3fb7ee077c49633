package rag

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/recap-flow/internal/speaker"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunk is one indexed piece of transcript.
type Chunk struct {
	ID      string
	Content string
	Speaker string
	Order   int
}

func (c Chunk) metadata(run string) map[string]string {
	return map[string]string{
		"speaker": c.Speaker,
		"order":   strconv.Itoa(c.Order),
		"run":     run,
	}
}

// Split renders each utterance as "speaker : text" and splits it with a
// recursive character splitter. Chunks keep utterance order and every chunk
// gets a fresh ID.
func Split(utterances []speaker.Utterance, size, overlap int) ([]Chunk, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
	)

	chunks := make([]Chunk, 0, len(utterances))
	for _, u := range utterances {
		parts, err := splitter.SplitText(fmt.Sprintf("%s : %s", u.Speaker, u.Text))
		if err != nil {
			return nil, fmt.Errorf("split utterance of %s: %w", u.Speaker, err)
		}
		for _, p := range parts {
			chunks = append(chunks, Chunk{
				ID:      uuid.NewString(),
				Content: p,
				Speaker: u.Speaker,
				Order:   len(chunks),
			})
		}
	}
	return chunks, nil
}
