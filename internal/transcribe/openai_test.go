package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

func TestOpenAITranscribe(t *testing.T) {
	var gotModel, gotFormat, gotLanguage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotLanguage = r.FormValue("language")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"task":"transcribe","language":"french","duration":2.5,"text":" Bonjour. "}`))
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := newOpenAI(Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, logger.Nop())
	got, err := o.Transcribe(context.Background(), audio, Options{})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != (Result{Text: "Bonjour.", Language: "fr"}) {
		t.Errorf("Transcribe() = %+v", got)
	}
	if gotModel != "whisper-1" || gotFormat != "verbose_json" || gotLanguage != "" {
		t.Errorf("request model=%q format=%q language=%q", gotModel, gotFormat, gotLanguage)
	}

	lang, err := o.DetectLanguage(context.Background(), audio)
	if err != nil || lang != "fr" {
		t.Errorf("DetectLanguage() = %q, %v", lang, err)
	}
}

func TestOpenAITranscribeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := newOpenAI(Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, logger.Nop())
	if _, err := o.Transcribe(context.Background(), audio, Options{}); err == nil {
		t.Error("expected error")
	}
}

func TestLanguageCode(t *testing.T) {
	tests := map[string]string{"French": "fr", "english": "en", "pt": "pt", "": ""}
	for in, want := range tests {
		if got := languageCode(in); got != want {
			t.Errorf("languageCode(%q) = %q, want %q", in, got, want)
		}
	}
}
