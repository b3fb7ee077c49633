package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

// detectWindowMs is how much audio is decoded to guess the language.
const detectWindowMs = 30000

type whisperCLI struct {
	cfg      Config
	executor executor.Executor
	logger   logger.Logger
}

func newWhisper(cfg Config, exec executor.Executor, log logger.Logger) *whisperCLI {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "whisper-cli"
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 4
	}
	return &whisperCLI{cfg: cfg, executor: exec, logger: log}
}

// whisperOutput is the part of whisper.cpp's -oj file read here.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *whisperCLI) Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error) {
	out, err := w.run(ctx, audioPath, opts.Language, 0)
	if err != nil {
		return Result{}, err
	}

	parts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}

	lang := out.Result.Language
	if lang == "" {
		lang = opts.Language
	}
	return Result{Text: strings.Join(parts, " "), Language: lang}, nil
}

func (w *whisperCLI) DetectLanguage(ctx context.Context, audioPath string) (string, error) {
	out, err := w.run(ctx, audioPath, "", detectWindowMs)
	if err != nil {
		return "", err
	}
	if out.Result.Language == "" {
		return "", fmt.Errorf("whisper: no language detected for %s", audioPath)
	}
	return out.Result.Language, nil
}

// run invokes whisper.cpp with JSON output and reads the result back. The
// JSON file is removed afterwards.
//
// -m: model path
// -f: input audio
// -oj: JSON output
// -l: language, "auto" to detect
// -t: threads
// -d: duration to process in ms, 0 for the whole file
func (w *whisperCLI) run(ctx context.Context, audioPath, language string, durationMs int) (out whisperOutput, err error) {
	if language == "" {
		language = "auto"
	}
	prefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".whisper"

	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", prefix,
	}
	if durationMs > 0 {
		args = append(args, "-d", strconv.Itoa(durationMs))
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	w.logger.Debug(ctx, "Running whisper on %s (language %s)", audioPath, language)
	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return out, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := prefix + ".json"
	defer func() {
		if rmErr := os.Remove(jsonPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("remove whisper output: %w", rmErr))
		}
	}()

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return out, fmt.Errorf("read whisper output: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("parse whisper output: %w", err)
	}
	return out, nil
}
