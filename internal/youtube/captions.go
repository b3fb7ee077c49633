package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/mitchellh/go-wordwrap"
)

// Fetch returns the caption text of the video, joined with spaces and wrapped
// at 80 columns.
func (s *implSource) Fetch(ctx context.Context, videoURL string) (Caption, error) {
	id, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return Caption{}, fmt.Errorf("extract video id from %q: %w", videoURL, err)
	}

	video, err := s.client.GetVideoContext(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to list transcripts of %s: %v", id, err)
		return Caption{}, fmt.Errorf("%w: %w", ErrTranscriptListNotFound, err)
	}
	if len(video.CaptionTracks) == 0 {
		return Caption{}, ErrTranscriptListNotFound
	}

	track, ok := s.pickTrack(video.CaptionTracks)
	if !ok {
		s.logger.Error(ctx, "No transcript in %s for %s", strings.Join(s.languages, " or "), id)
		return Caption{}, ErrTranscriptNotFound
	}
	s.logger.Debug(ctx, "Using %s captions (kind %q) for %s", track.LanguageCode, track.Kind, id)

	segments, err := s.client.GetTranscriptCtx(ctx, video, track.LanguageCode)
	if err != nil {
		s.logger.Error(ctx, "Failed to fetch %s transcript of %s: %v", track.LanguageCode, id, err)
		return Caption{}, fmt.Errorf("%w: %w", ErrTranscriptNotFound, err)
	}

	return Caption{
		VideoID:  id,
		Title:    video.Title,
		Language: baseLanguage(track.LanguageCode),
		Text:     s.join(segments),
	}, nil
}

// pickTrack walks the preferred languages in order. Within a language a
// manually created track beats an automatic one.
func (s *implSource) pickTrack(tracks []youtube.CaptionTrack) (youtube.CaptionTrack, bool) {
	for _, lang := range s.languages {
		var auto *youtube.CaptionTrack
		for i := range tracks {
			if baseLanguage(tracks[i].LanguageCode) != lang {
				continue
			}
			if tracks[i].Kind != "asr" {
				return tracks[i], true
			}
			if auto == nil {
				auto = &tracks[i]
			}
		}
		if auto != nil {
			return *auto, true
		}
	}
	return youtube.CaptionTrack{}, false
}

func (s *implSource) join(segments youtube.VideoTranscript) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			texts = append(texts, t)
		}
	}
	text := strings.Join(strings.Fields(strings.Join(texts, " ")), " ")
	return wordwrap.WrapString(text, s.width)
}

// baseLanguage turns "fr-FR" into "fr".
func baseLanguage(code string) string {
	lang, _, _ := strings.Cut(strings.ToLower(code), "-")
	return lang
}
