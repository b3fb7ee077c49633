package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
)

type fakeExecutor struct {
	available map[string]bool
}

func (f *fakeExecutor) Execute(context.Context, string, ...string) (string, error) {
	return "", errors.New("not expected")
}

func (f *fakeExecutor) Available(name string) bool { return f.available[name] }

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	body := "paths:\n  results: " + filepath.Join(dir, "results") + "\n" +
		"index:\n  path: " + filepath.Join(dir, "index") + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&app{exec: &fakeExecutor{}, stderr: io.Discard})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFileTranscriptOnly(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	input := filepath.Join(dir, "standup.txt")
	if err := os.WriteFile(input, []byte("SPEAKER_00: the release is ready"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "--config", cfgPath, "file", input, "-t", "-f")
	if err != nil {
		t.Fatalf("file -t -f error = %v", err)
	}
	if !strings.Contains(out, "SPEAKER_00: the release is ready") {
		t.Errorf("output missing transcript: %q", out)
	}
	saved := filepath.Join(dir, "results", "standup.txt")
	if !strings.Contains(out, "Saved: "+saved) {
		t.Errorf("output missing saved path: %q", out)
	}
	if _, err := os.Stat(saved); err != nil {
		t.Errorf("transcript not written: %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unsupported file", []string{"--config", cfgPath, "file", "notes.pdf"}, "unsupported file type"},
		{"bad language", []string{"--config", cfgPath, "-l", "de", "doctor"}, "language must be"},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.yaml"), "doctor"}, "load config"},
		{"youtube without url", []string{"--config", cfgPath, "youtube"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDoctor(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "ggml-base.bin")
	if err := os.WriteFile(model, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		available map[string]bool
		apiKey    string
		wantErr   bool
	}{
		{"all present", map[string]bool{"ffmpeg": true, "whisper-cli": true}, "sk-test", false},
		{"no ffmpeg", map[string]bool{"whisper-cli": true}, "sk-test", true},
		{"no api key", map[string]bool{"ffmpeg": true, "whisper-cli": true}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Whisper.ModelPath = model
			cfg.LLM.APIKey = tt.apiKey
			a := &app{cfg: cfg, exec: &fakeExecutor{available: tt.available}, log: logger.Nop()}

			var out bytes.Buffer
			err := a.doctor(&out)
			if (err != nil) != tt.wantErr {
				t.Errorf("doctor() error = %v, wantErr %v\n%s", err, tt.wantErr, out.String())
			}
			// the diarization service is optional
			if !strings.Contains(out.String(), "- diarization service") {
				t.Errorf("optional check not marked: %s", out.String())
			}
		})
	}
}

func TestChatModel(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		flag     string
		want     string
	}{
		{"openai default", "openai", "", "gpt-4o"},
		{"gemini default", "gemini", "", "gemini-2.5-flash"},
		{"flag wins", "gemini", "gpt-4o-mini", "gpt-4o-mini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.LLM.Provider = tt.provider
			a := &app{cfg: cfg, flags: globalFlags{model: tt.flag}}
			if got := a.chatModel(); got != tt.want {
				t.Errorf("chatModel() = %q, want %q", got, tt.want)
			}
		})
	}
}

type stubProcessor struct {
	err error
	req processor.Request
}

func (s *stubProcessor) Process(_ context.Context, req processor.Request) (processor.Output, error) {
	s.req = req
	return processor.Output{}, s.err
}

func TestInboxHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantArchived bool
	}{
		{"success archives", nil, true},
		{"failure stays in inbox", errors.New("whisper failed"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "call.mp4")
			if err := os.WriteFile(input, []byte("v"), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg := config.Default()
			cfg.Paths.Archived = filepath.Join(dir, "archived")
			a := &app{cfg: cfg, log: logger.Nop()}
			proc := &stubProcessor{err: tt.err}

			err := a.inboxHandler(proc, runFlags{rag: true})(context.Background(), input)
			if (err != nil) != (tt.err != nil) {
				t.Fatalf("handler error = %v", err)
			}
			if proc.req.Kind != processor.KindMedia || !proc.req.ToFile || !proc.req.RAG {
				t.Errorf("request = %+v", proc.req)
			}

			_, statErr := os.Stat(filepath.Join(cfg.Paths.Archived, "call.mp4"))
			if archived := statErr == nil; archived != tt.wantArchived {
				t.Errorf("archived = %v, want %v", archived, tt.wantArchived)
			}
		})
	}
}
