package transcribe

import (
	"context"
	"fmt"
)

// ProgressReporter receives progress while a batch of files is transcribed.
type ProgressReporter interface {
	Start(total int, label string)
	Advance(n int)
	Done()
}

type nopReporter struct{}

func (nopReporter) Start(int, string) {}
func (nopReporter) Advance(int)       {}
func (nopReporter) Done()             {}

// NopReporter discards progress.
func NopReporter() ProgressReporter {
	return nopReporter{}
}

// TranscribeAll transcribes paths in order and reports one step per file.
// It stops at the first failure.
func TranscribeAll(ctx context.Context, t Transcriber, paths []string, opts Options, progress ProgressReporter) ([]Result, error) {
	if progress == nil {
		progress = NopReporter()
	}
	progress.Start(len(paths), "Transcribing")
	defer progress.Done()

	results := make([]Result, 0, len(paths))
	for i, p := range paths {
		res, err := t.Transcribe(ctx, p, opts)
		if err != nil {
			return nil, fmt.Errorf("transcribe %d/%d: %w", i+1, len(paths), err)
		}
		results = append(results, res)
		progress.Advance(1)
	}
	return results, nil
}
