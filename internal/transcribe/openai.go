package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/sashabaranov/go-openai"
)

type openAIWhisper struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

func newOpenAI(cfg Config, log logger.Logger) *openAIWhisper {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.OpenAIModel
	if model == "" {
		model = openai.Whisper1
	}
	return &openAIWhisper{
		client: openai.NewClientWithConfig(oc),
		model:  model,
		logger: log,
	}
}

func (o *openAIWhisper) Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error) {
	o.logger.Debug(ctx, "Uploading %s to the transcription API", audioPath)

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: audioPath,
		Language: opts.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return Result{}, fmt.Errorf("openai transcribe: %w", err)
	}

	lang := languageCode(resp.Language)
	if lang == "" {
		lang = opts.Language
	}
	return Result{Text: strings.TrimSpace(resp.Text), Language: lang}, nil
}

func (o *openAIWhisper) DetectLanguage(ctx context.Context, audioPath string) (string, error) {
	res, err := o.Transcribe(ctx, audioPath, Options{})
	if err != nil {
		return "", err
	}
	if res.Language == "" {
		return "", fmt.Errorf("openai: no language detected for %s", audioPath)
	}
	return res.Language, nil
}

// The API reports language names in verbose JSON.
var languageNames = map[string]string{
	"english": "en",
	"french":  "fr",
	"german":  "de",
	"spanish": "es",
	"italian": "it",
}

func languageCode(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if code, ok := languageNames[name]; ok {
		return code
	}
	return name
}
