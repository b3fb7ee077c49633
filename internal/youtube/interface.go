// Package youtube fetches video captions as plain transcript text.
package youtube

import (
	"context"
	"errors"
)

// Caption is the transcript of one video.
type Caption struct {
	VideoID  string
	Title    string
	Language string
	Text     string
}

// Source fetches captions for a video URL or ID.
type Source interface {
	Fetch(ctx context.Context, videoURL string) (Caption, error)
}

// The messages are shown to the user as is.
var (
	ErrTranscriptListNotFound = errors.New("Error: transcript list not found")
	ErrTranscriptNotFound     = errors.New("Error: Transcript not found.")
)
