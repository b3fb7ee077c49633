package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/transcribe"
	"github.com/nguyentantai21042004/recap-flow/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process every media file or transcript dropped into the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.watch(cmd.Context(), f)
		},
	}
	f.register(cmd, true)
	return cmd
}

func (a *app) watch(ctx context.Context, f runFlags) error {
	cfg := a.cfg
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Results, cfg.Paths.Archived} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	// one bar per file only makes sense when files run one at a time
	var progress transcribe.ProgressReporter = transcribe.NopReporter()
	if cfg.Performance.MaxConcurrent == 1 {
		progress = newBarReporter(a.stderr)
	}
	proc, err := a.newProcessor(progress)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.Config{
		Dir:           cfg.Paths.Input,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		Accept: func(path string) bool {
			_, ok := processor.KindFromPath(path)
			return ok
		},
	}, a.inboxHandler(proc, f), a.log)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.log.Info(ctx, "Results: %s, archive: %s. Press Ctrl+C to stop", cfg.Paths.Results, cfg.Paths.Archived)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.log.Info(ctx, "Watcher stopped")
	return nil
}

// inboxHandler processes one inbox file and archives it on success, so a
// failed input stays in the inbox for the next run.
func (a *app) inboxHandler(proc processor.Processor, f runFlags) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		kind, _ := processor.KindFromPath(path)
		req := a.request(path, kind, f)
		req.ToFile = true

		if _, err := proc.Process(ctx, req); err != nil {
			return err
		}
		dest, err := processor.Archive(path, a.cfg.Paths.Archived)
		if err != nil {
			return err
		}
		a.log.Info(ctx, "Archived %s", dest)
		return nil
	}
}
