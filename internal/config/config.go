package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "config.yaml"

// EnvPath is the dotenv file read before the config.
const EnvPath = ".env"

type Config struct {
	Whisper       WhisperConfig       `yaml:"whisper"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Diarization   DiarizationConfig   `yaml:"diarization"`
	LLM           LLMConfig           `yaml:"llm"`
	RAG           RAGConfig           `yaml:"rag"`
	Index         IndexConfig         `yaml:"index"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Output        OutputConfig        `yaml:"output"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type TranscriptionConfig struct {
	Backend     string `yaml:"backend"` // "whisper" or "openai"
	OpenAIModel string `yaml:"openai_model"`
}

type DiarizationConfig struct {
	URL        string  `yaml:"url"`
	Token      string  `yaml:"token"`
	MaxGap     float64 `yaml:"max_gap"`
	MinSegment float64 `yaml:"min_segment"`
}

type LLMConfig struct {
	Provider    string   `yaml:"provider"` // "openai" or "gemini"
	BaseURL     string   `yaml:"base_url"`
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	GeminiKeys  []string `yaml:"gemini_keys"`
	GeminiModel string   `yaml:"gemini_model"`
	Timeout     int      `yaml:"timeout_seconds"`
}

type RAGConfig struct {
	Provider       string `yaml:"provider"` // "ollama", "openai" or "gemini"
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	TopK           int    `yaml:"top_k"`
}

type IndexConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
	Compress   bool   `yaml:"compress"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Results  string `yaml:"results"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type OutputConfig struct {
	Language string `yaml:"language"`
	Docx     bool   `yaml:"docx"`
}

// Default returns a Config with every optional field filled.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists. An empty path falls back to
// DefaultPath and then to built-in defaults. Environment overrides are
// applied last.
func LoadOrDefault(path string) (*Config, error) {
	if err := LoadEnv(EnvPath); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = Default()
	default:
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// LoadEnv loads the dotenv file at path into the environment. A missing
// file is not an error; a malformed one is.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides secrets and paths from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.LLM.GeminiKeys = splitList(v)
	}
	if v := os.Getenv("HUGGINGFACE_TOKEN"); v != "" && c.Diarization.Token == "" {
		c.Diarization.Token = v
	}
	if v := os.Getenv("RECAP_DIARIZATION_URL"); v != "" {
		c.Diarization.URL = v
	}
	if v := os.Getenv("RECAP_RESULTS_DIR"); v != "" {
		c.Paths.Results = v
	}
	if v := os.Getenv("RECAP_INDEX_PATH"); v != "" {
		c.Index.Path = v
	}
	if v := os.Getenv("RECAP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		c.Whisper.ModelPath = "models/ggml-base.bin"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}

	if c.Transcription.Backend == "" {
		c.Transcription.Backend = "whisper"
	}
	switch c.Transcription.Backend {
	case "whisper", "openai":
	default:
		return fmt.Errorf("transcription.backend must be \"whisper\" or \"openai\", got %q", c.Transcription.Backend)
	}
	if c.Transcription.OpenAIModel == "" {
		c.Transcription.OpenAIModel = "whisper-1"
	}

	if c.Diarization.MaxGap == 0 {
		c.Diarization.MaxGap = 1.0
	}
	if c.Diarization.MaxGap < 0 {
		return fmt.Errorf("diarization.max_gap must be >= 0")
	}
	if c.Diarization.MinSegment == 0 {
		c.Diarization.MinSegment = 1.5
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("llm.provider must be \"openai\" or \"gemini\", got %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.LLM.GeminiModel == "" {
		c.LLM.GeminiModel = "gemini-2.5-flash"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 120
	}

	if c.RAG.Provider == "" {
		c.RAG.Provider = "ollama"
	}
	switch c.RAG.Provider {
	case "ollama", "openai", "gemini":
	default:
		return fmt.Errorf("rag.provider must be ollama, openai or gemini, got %q", c.RAG.Provider)
	}
	if c.RAG.BaseURL == "" && c.RAG.Provider == "ollama" {
		c.RAG.BaseURL = "http://localhost:11434/v1"
	}
	if c.RAG.Model == "" {
		c.RAG.Model = "mistral"
	}
	if c.RAG.EmbeddingModel == "" {
		c.RAG.EmbeddingModel = defaultEmbeddingModel[c.RAG.Provider]
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = 500
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = 50
	}
	if c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("rag.chunk_overlap must be smaller than rag.chunk_size")
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = 4
	}

	if c.Index.Path == "" {
		c.Index.Path = "chroma_db"
	}
	if c.Index.Collection == "" {
		c.Index.Collection = "transcripts"
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/inbox"
	}
	if c.Paths.Results == "" {
		c.Paths.Results = "results"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	if c.Output.Language == "" {
		c.Output.Language = "en"
	}
	if !IsSupportedLanguage(c.Output.Language) {
		return fmt.Errorf("output.language must be \"en\" or \"fr\", got %q", c.Output.Language)
	}

	return nil
}

var defaultEmbeddingModel = map[string]string{
	"ollama": "nomic-embed-text",
	"openai": "text-embedding-3-small",
	"gemini": "text-embedding-004",
}

// IsSupportedLanguage reports whether summaries can be produced in lang.
func IsSupportedLanguage(lang string) bool {
	return lang == "en" || lang == "fr"
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
