// Package transcribe provides speech-to-text backends.
//
// Supported backends:
//   - whisper: whisper.cpp command line tool (default)
//   - openai: OpenAI audio transcription API
package transcribe

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

// Result is the text of one audio file and the language it was spoken in.
type Result struct {
	Text     string
	Language string
}

// Options tune a single call. An empty Language asks the backend to detect it.
type Options struct {
	Language string
}

// Transcriber converts mono 16kHz WAV files to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error)
	// DetectLanguage returns the ISO 639-1 code spoken at the start of the file.
	DetectLanguage(ctx context.Context, audioPath string) (string, error)
}

// Config selects and configures a backend.
type Config struct {
	Backend string // "whisper" or "openai"

	BinaryPath string
	ModelPath  string
	Threads    int
	Prompt     string

	APIKey      string
	BaseURL     string
	OpenAIModel string
}

// New creates a Transcriber for cfg.Backend.
func New(cfg Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Backend {
	case "whisper", "":
		return newWhisper(cfg, exec, log), nil
	case "openai":
		return newOpenAI(cfg, log), nil
	default:
		return nil, fmt.Errorf("transcribe: unknown backend %q (supported: whisper, openai)", cfg.Backend)
	}
}
