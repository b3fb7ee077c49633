package youtube

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kkdai/youtube/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

type fakeClient struct {
	video         *youtube.Video
	videoErr      error
	transcript    youtube.VideoTranscript
	transcriptErr error
	gotLang       string
}

func (f *fakeClient) GetVideoContext(_ context.Context, _ string) (*youtube.Video, error) {
	return f.video, f.videoErr
}

func (f *fakeClient) GetTranscriptCtx(_ context.Context, _ *youtube.Video, lang string) (youtube.VideoTranscript, error) {
	f.gotLang = lang
	return f.transcript, f.transcriptErr
}

const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestFetch(t *testing.T) {
	f := &fakeClient{
		video: &youtube.Video{
			ID:    "dQw4w9WgXcQ",
			Title: "Weekly sync",
			CaptionTracks: []youtube.CaptionTrack{
				{LanguageCode: "de"},
				{LanguageCode: "en"},
				{LanguageCode: "fr", Kind: "asr"},
			},
		},
		transcript: youtube.VideoTranscript{
			{Text: "bonjour à tous"},
			{Text: " on commence\n"},
			{Text: ""},
			{Text: "le budget"},
		},
	}

	got, err := newSource(f, logger.Nop()).Fetch(context.Background(), videoURL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if f.gotLang != "fr" {
		t.Errorf("fetched %q captions, want fr", f.gotLang)
	}
	want := Caption{
		VideoID:  "dQw4w9WgXcQ",
		Title:    "Weekly sync",
		Language: "fr",
		Text:     "bonjour à tous on commence le budget",
	}
	if got != want {
		t.Errorf("Fetch() = %+v, want %+v", got, want)
	}
}

func TestFetchWraps(t *testing.T) {
	words := make(youtube.VideoTranscript, 40)
	for i := range words {
		words[i] = youtube.TranscriptSegment{Text: "meeting"}
	}
	f := &fakeClient{
		video:      &youtube.Video{CaptionTracks: []youtube.CaptionTrack{{LanguageCode: "en-US"}}},
		transcript: words,
	}

	got, err := newSource(f, logger.Nop()).Fetch(context.Background(), videoURL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	for _, line := range strings.Split(got.Text, "\n") {
		if len(line) > 80 {
			t.Errorf("line longer than 80 columns: %q", line)
		}
	}
	if strings.Count(got.Text, "meeting") != 40 {
		t.Error("words lost while wrapping")
	}
	if got.Language != "en" {
		t.Errorf("Language = %q", got.Language)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		client  *fakeClient
		wantErr error
	}{
		{
			name:    "listing fails",
			url:     videoURL,
			client:  &fakeClient{videoErr: errors.New("403")},
			wantErr: ErrTranscriptListNotFound,
		},
		{
			name:    "no caption tracks",
			url:     videoURL,
			client:  &fakeClient{video: &youtube.Video{}},
			wantErr: ErrTranscriptListNotFound,
		},
		{
			name: "no french or english",
			url:  videoURL,
			client: &fakeClient{video: &youtube.Video{CaptionTracks: []youtube.CaptionTrack{
				{LanguageCode: "es"},
			}}},
			wantErr: ErrTranscriptNotFound,
		},
		{
			name: "transcript disabled",
			url:  videoURL,
			client: &fakeClient{
				video:         &youtube.Video{CaptionTracks: []youtube.CaptionTrack{{LanguageCode: "en"}}},
				transcriptErr: youtube.ErrTranscriptDisabled,
			},
			wantErr: ErrTranscriptNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSource(tt.client, logger.Nop()).Fetch(context.Background(), tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchBadURL(t *testing.T) {
	_, err := newSource(&fakeClient{}, logger.Nop()).Fetch(context.Background(), "https://example.com/nothing")
	if err == nil {
		t.Error("expected error for URL without video id")
	}
}

func TestPickTrack(t *testing.T) {
	s := newSource(&fakeClient{}, logger.Nop())

	tests := []struct {
		name   string
		tracks []youtube.CaptionTrack
		want   string
		wantOK bool
	}{
		{"manual over auto", []youtube.CaptionTrack{{LanguageCode: "fr", Kind: "asr", BaseURL: "auto"}, {LanguageCode: "fr-CA", BaseURL: "manual"}}, "manual", true},
		{"french before english", []youtube.CaptionTrack{{LanguageCode: "en", BaseURL: "en"}, {LanguageCode: "fr", Kind: "asr", BaseURL: "fr"}}, "fr", true},
		{"none", []youtube.CaptionTrack{{LanguageCode: "it"}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.pickTrack(tt.tracks)
			if ok != tt.wantOK || got.BaseURL != tt.want {
				t.Errorf("pickTrack() = %q, %v; want %q, %v", got.BaseURL, ok, tt.want, tt.wantOK)
			}
		})
	}
}
