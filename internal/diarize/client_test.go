package diarize

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/segment"
)

func writeWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		if hdr.Filename != "call.wav" || string(data) != "RIFF....WAVE" {
			http.Error(w, "bad upload", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/diarize":
			w.Write([]byte(`{"segments":[
				{"speaker":"SPEAKER_01","start":2.5,"end":4.0},
				{"speaker":"SPEAKER_00","start":0.0,"end":2.0}
			]}`))
		case "/vad":
			w.Write([]byte(`{"segments":[{"start":0.1,"end":3.9}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDiarize(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL+"/", "hf_test", 0, logger.Nop())

	got, err := c.Diarize(context.Background(), writeWAV(t))
	if err != nil {
		t.Fatalf("Diarize() error = %v", err)
	}
	want := []segment.SpeakerSegment{
		{Speaker: "SPEAKER_00", Segment: segment.TimeSegment{Start: 0, End: 2}},
		{Speaker: "SPEAKER_01", Segment: segment.TimeSegment{Start: 2.5, End: 4}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diarize() = %v, want %v", got, want)
	}
}

func TestSpeechRegions(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, "hf_test", 0, logger.Nop())

	got, err := c.SpeechRegions(context.Background(), writeWAV(t))
	if err != nil {
		t.Fatalf("SpeechRegions() error = %v", err)
	}
	want := []segment.TimeSegment{{Start: 0.1, End: 3.9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SpeechRegions() = %v, want %v", got, want)
	}
}

func TestErrors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name  string
		token string
		path  string
	}{
		{name: "unauthorized", token: "", path: writeWAV(t)},
		{name: "missing file", token: "hf_test", path: filepath.Join(t.TempDir(), "none.wav")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(srv.URL, tt.token, 0, logger.Nop())
			if _, err := c.Diarize(context.Background(), tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"segments":`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 0, logger.Nop())
	if _, err := c.SpeechRegions(context.Background(), writeWAV(t)); err == nil {
		t.Error("expected decode error")
	}
}
