package llm

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures an OpenAI-compatible endpoint. An empty BaseURL
// targets api.openai.com; Ollama is reached through its /v1 URL.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type implOpenAI struct {
	client *openai.Client
	logger logger.Logger
}

// NewOpenAI creates a Client backed by an OpenAI-compatible API.
func NewOpenAI(cfg OpenAIConfig, log logger.Logger) Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &implOpenAI{
		client: openai.NewClientWithConfig(oc),
		logger: log,
	}
}

type implGemini struct {
	keys    []string
	timeout time.Duration
	logger  logger.Logger
	rot     *keyRing
}

// NewGemini creates a Client that rotates through the supplied Gemini API
// keys when one of them hits its quota.
func NewGemini(keys []string, timeout time.Duration, log logger.Logger) (Client, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	return &implGemini{
		keys:    keys,
		timeout: timeout,
		logger:  log,
		rot:     newKeyRing(len(keys)),
	}, nil
}

// Provider settings used by NewFromProvider.
type ProviderConfig struct {
	Provider   string // "openai", "ollama" or "gemini"
	APIKey     string
	BaseURL    string
	GeminiKeys []string
	Timeout    time.Duration
}

// NewFromProvider picks the implementation for cfg.Provider.
func NewFromProvider(cfg ProviderConfig, log logger.Logger) (Client, error) {
	switch cfg.Provider {
	case "openai", "ollama":
		key := cfg.APIKey
		if key == "" && cfg.Provider == "ollama" {
			key = "ollama"
		}
		return NewOpenAI(OpenAIConfig{APIKey: key, BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, log), nil
	case "gemini":
		return NewGemini(cfg.GeminiKeys, cfg.Timeout, log)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
