package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extractAudio converts the input to a 16kHz mono PCM WAV in the temp
// directory, the format whisper and the diarization service expect.
func (p *implProcessor) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	dir := p.cfg.Paths.Temp
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	f, err := os.CreateTemp(dir, stem+"-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio: %w", err)
	}
	audioPath := f.Name()
	f.Close()

	p.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: 16-bit PCM
	// -y: overwrite the placeholder created above
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.deps.Executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return audioPath, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
