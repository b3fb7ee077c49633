package cli

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/diarize"
	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/rag"
	"github.com/nguyentantai21042004/recap-flow/internal/sentiment"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcribe"
	"github.com/nguyentantai21042004/recap-flow/internal/youtube"
)

// diarization of a long recording can take several times its duration
const diarizeTimeout = 30 * time.Minute

// newProcessor wires every collaborator from the loaded config.
func (a *app) newProcessor(progress transcribe.ProgressReporter) (processor.Processor, error) {
	cfg := a.cfg
	timeout := time.Duration(cfg.LLM.Timeout) * time.Second

	chat, err := llm.NewFromProvider(llm.ProviderConfig{
		Provider:   cfg.LLM.Provider,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		GeminiKeys: cfg.LLM.GeminiKeys,
		Timeout:    timeout,
	}, a.log)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	ragKey := ""
	if cfg.RAG.Provider == "openai" {
		ragKey = cfg.LLM.APIKey
	}
	ragClient, err := llm.NewFromProvider(llm.ProviderConfig{
		Provider:   cfg.RAG.Provider,
		APIKey:     ragKey,
		BaseURL:    cfg.RAG.BaseURL,
		GeminiKeys: cfg.LLM.GeminiKeys,
		Timeout:    timeout,
	}, a.log)
	if err != nil {
		return nil, fmt.Errorf("rag client: %w", err)
	}

	trans, err := transcribe.New(transcribe.Config{
		Backend:     cfg.Transcription.Backend,
		BinaryPath:  cfg.Whisper.BinaryPath,
		ModelPath:   cfg.Whisper.ModelPath,
		Threads:     cfg.Whisper.Threads,
		Prompt:      cfg.Whisper.Prompt,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		OpenAIModel: cfg.Transcription.OpenAIModel,
	}, a.exec, a.log)
	if err != nil {
		return nil, fmt.Errorf("transcriber: %w", err)
	}

	deps := processor.Deps{
		Executor:    a.exec,
		Captions:    youtube.New(a.log),
		Transcriber: trans,
		Summarizer:  summarizer.New(chat, a.chatModel(), a.log),
		Orchestrator: rag.New(rag.Config{
			IndexPath:      cfg.Index.Path,
			Collection:     cfg.Index.Collection,
			Compress:       cfg.Index.Compress,
			EmbeddingModel: cfg.RAG.EmbeddingModel,
			ChunkSize:      cfg.RAG.ChunkSize,
			ChunkOverlap:   cfg.RAG.ChunkOverlap,
			TopK:           cfg.RAG.TopK,
		}, ragClient, ragClient, a.log),
		Sentiment: sentiment.New(),
		Progress:  progress,
	}
	if cfg.Diarization.URL != "" {
		deps.Diarizer = diarize.New(cfg.Diarization.URL, cfg.Diarization.Token, diarizeTimeout, a.log)
	}

	return processor.New(cfg, deps, a.log), nil
}

func (a *app) chatModel() string {
	switch {
	case a.flags.model != "":
		return a.flags.model
	case a.cfg.LLM.Provider == "gemini":
		return a.cfg.LLM.GeminiModel
	default:
		return a.cfg.LLM.Model
	}
}
