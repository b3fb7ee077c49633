package processor

import (
	"context"
	"path/filepath"
	"strings"
)

// Kind says where a transcript comes from.
type Kind int

const (
	KindYouTube Kind = iota
	KindMedia
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindYouTube:
		return "youtube"
	case KindMedia:
		return "media"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

var mediaExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv",
	".wav", ".mp3", ".m4a", ".aac", ".flac", ".ogg", ".opus",
}

// KindFromPath picks KindText for .txt files and KindMedia for known audio
// and video extensions. ok is false for anything else.
func KindFromPath(path string) (kind Kind, ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".txt" {
		return KindText, true
	}
	for _, e := range mediaExtensions {
		if ext == e {
			return KindMedia, true
		}
	}
	return 0, false
}

// Request describes one run.
type Request struct {
	Input string
	Kind  Kind

	// Language of the summary, "en" or "fr". Local media in one of those
	// languages overrides it with the detected language.
	Language string
	// Model overrides the retrieval generation model.
	Model string

	RAG            bool
	Diarize        bool
	Extended       bool
	TranscriptOnly bool
	ToFile         bool
	Docx           bool
}

// Output is what a run produced.
type Output struct {
	Title      string
	Language   string
	Transcript string
	Sentiment  string
	Markdown   string
	// Files written under the results directory.
	Files []string
}

// Processor runs the whole pipeline for one input.
type Processor interface {
	Process(ctx context.Context, req Request) (Output, error)
}
