package summarizer

import (
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

type implSummarizer struct {
	completer llm.Completer
	model     string
	logger    logger.Logger
}

// New creates a Summarizer that sends every request to model.
func New(completer llm.Completer, model string, log logger.Logger) Summarizer {
	return &implSummarizer{
		completer: completer,
		model:     model,
		logger:    log,
	}
}
