package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/segment"
	"github.com/nguyentantai21042004/recap-flow/internal/transcribe"
)

var errNoDiarizer = errors.New("diarization requested but no diarization service is configured")

// transcribeMedia extracts the audio of mediaPath and transcribes it, per
// speaker turn when diarize is set. Temporary audio is removed on every path
// and removal failures are joined to the returned error.
func (p *implProcessor) transcribeMedia(ctx context.Context, mediaPath string, diarize bool) (res transcribe.Result, err error) {
	if diarize && p.deps.Diarizer == nil {
		return res, errNoDiarizer
	}

	audioPath, err := p.extractAudio(ctx, mediaPath)
	defer func() {
		err = errors.Join(err, p.removeTemp(ctx, audioPath))
	}()
	if err != nil {
		return res, fmt.Errorf("extract audio: %w", err)
	}

	if !diarize {
		results, err := transcribe.TranscribeAll(ctx, p.deps.Transcriber, []string{audioPath}, transcribe.Options{}, p.deps.Progress)
		if err != nil {
			return res, err
		}
		return results[0], nil
	}

	return p.transcribeDiarized(ctx, audioPath)
}

// transcribeDiarized groups speaker turns, transcribes one clip per merged
// turn and returns "speaker: text" lines in turn order.
func (p *implProcessor) transcribeDiarized(ctx context.Context, audioPath string) (res transcribe.Result, err error) {
	turns, err := p.deps.Diarizer.Diarize(ctx, audioPath)
	if err != nil {
		return res, err
	}
	speech, err := p.deps.Diarizer.SpeechRegions(ctx, audioPath)
	if err != nil {
		return res, err
	}

	merged, err := segment.Merge(segment.FilterSpeech(turns, speech), p.cfg.Diarization.MaxGap)
	if err != nil {
		return res, fmt.Errorf("merge turns: %w", err)
	}
	merged = segment.DropShort(merged, p.cfg.Diarization.MinSegment)
	p.logger.Info(ctx, "Diarization: %d turns, %d after merge and filtering", len(turns), len(merged))

	lang, err := p.deps.Transcriber.DetectLanguage(ctx, audioPath)
	if err != nil {
		return res, fmt.Errorf("detect language: %w", err)
	}
	p.logger.Info(ctx, "Detected language: %s", lang)

	clipDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "clips-*")
	if err != nil {
		return res, fmt.Errorf("create clip dir: %w", err)
	}
	defer func() {
		err = errors.Join(err, p.removeTemp(ctx, clipDir))
	}()

	clips, err := media.Slice(audioPath, merged, clipDir)
	if err != nil {
		return res, fmt.Errorf("slice audio: %w", err)
	}

	paths := make([]string, len(clips))
	for i, c := range clips {
		paths[i] = c.Path
	}
	results, err := transcribe.TranscribeAll(ctx, p.deps.Transcriber, paths, transcribe.Options{Language: lang}, p.deps.Progress)
	if err != nil {
		return res, err
	}

	lines := make([]string, 0, len(clips))
	for i, c := range clips {
		if text := strings.TrimSpace(results[i].Text); text != "" {
			lines = append(lines, c.Speaker+": "+text)
		}
	}
	return transcribe.Result{Text: strings.Join(lines, "\n"), Language: lang}, nil
}

// summaryLanguage keeps requested unless detected is a supported language.
func summaryLanguage(requested, detected string) string {
	if config.IsSupportedLanguage(detected) {
		return detected
	}
	return requested
}
