package rag

import (
	"sync"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	chromem "github.com/philippgille/chromem-go"
)

// Config holds the chunking, index and retrieval settings.
type Config struct {
	IndexPath      string
	Collection     string
	Compress       bool
	EmbeddingModel string
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
}

type implOrchestrator struct {
	cfg       Config
	completer llm.Completer
	embedder  llm.Embedder
	logger    logger.Logger

	// writes holds one token while the index is written; a channel so a
	// waiting writer can give up on ctx.
	writes chan struct{}

	mu   sync.Mutex
	coll *chromem.Collection
}

// New creates an Orchestrator. The index is opened on the first Generate.
func New(cfg Config, completer llm.Completer, embedder llm.Embedder, log logger.Logger) Orchestrator {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 500
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 50
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
	if cfg.Collection == "" {
		cfg.Collection = "transcripts"
	}

	return &implOrchestrator{
		cfg:       cfg,
		completer: completer,
		embedder:  embedder,
		logger:    log,
		writes:    make(chan struct{}, 1),
	}
}
