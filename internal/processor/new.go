package processor

import (
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/diarize"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/rag"
	"github.com/nguyentantai21042004/recap-flow/internal/sentiment"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcribe"
	"github.com/nguyentantai21042004/recap-flow/internal/youtube"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

// Analyzer labels the sentiment of a transcript.
type Analyzer interface {
	Analyze(text string) sentiment.Label
}

// Deps are the collaborators of a Processor. Diarizer may be nil when no
// diarization service is configured.
type Deps struct {
	Executor     executor.Executor
	Captions     youtube.Source
	Transcriber  transcribe.Transcriber
	Diarizer     diarize.Client
	Summarizer   summarizer.Summarizer
	Orchestrator rag.Orchestrator
	Sentiment    Analyzer
	Progress     transcribe.ProgressReporter
}

type implProcessor struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	if deps.Progress == nil {
		deps.Progress = transcribe.NopReporter()
	}
	return &implProcessor{
		cfg:    cfg,
		deps:   deps,
		logger: log,
	}
}
