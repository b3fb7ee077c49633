package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

type implWatcher struct {
	cfg       Config
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// Start handles files already waiting in the inbox, then every new file
// until ctx is cancelled. In-flight handlers are waited for before it
// returns.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s (max concurrent: %d)", w.cfg.Dir, w.cfg.MaxConcurrent)
	defer w.wg.Wait()

	pending, err := w.pending()
	if err != nil {
		return err
	}
	for _, path := range pending {
		if err := w.dispatch(ctx, path, 0); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.accepts(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New input detected: %s", event.Name)
			if err := w.dispatch(ctx, event.Name, w.cfg.Settle); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// dispatch blocks until a slot is free, then handles path in the background
// after waiting settle.
func (w *implWatcher) dispatch(ctx context.Context, path string, settle time.Duration) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if settle > 0 {
			select {
			case <-time.After(settle):
			case <-ctx.Done():
				return
			}
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) pending() ([]string, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}
	var paths []string
	for _, e := range entries {
		path := filepath.Join(w.cfg.Dir, e.Name())
		if e.Type().IsRegular() && w.accepts(path) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func (w *implWatcher) accepts(path string) bool {
	base := filepath.Base(path)
	// editors and partial downloads
	if base == "" || base[0] == '.' {
		return false
	}
	return w.cfg.Accept(path)
}
