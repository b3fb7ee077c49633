package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/report"
)

// writeResult writes content to name under the results directory.
func (p *implProcessor) writeResult(ctx context.Context, name, content string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Results, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	path := filepath.Join(p.cfg.Paths.Results, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	p.logger.Info(ctx, "Written: %s", path)
	return path, nil
}

// writeDocx writes the docx twin of a markdown result.
func (p *implProcessor) writeDocx(ctx context.Context, title, markdownPath, content string, transcript bool) (string, error) {
	path := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".docx"

	var err error
	if transcript {
		err = report.WriteTranscriptDocx(title, content, path)
	} else {
		err = report.WriteDocx(title, content, path)
	}
	if err != nil {
		return "", fmt.Errorf("write docx: %w", err)
	}
	p.logger.Info(ctx, "Written: %s", path)
	return path, nil
}

// fileStem makes title safe to use as a file name.
func fileStem(title string) string {
	stem := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, title)
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "untitled"
	}
	return stem
}
