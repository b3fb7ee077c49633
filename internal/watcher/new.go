package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

const defaultSettle = 500 * time.Millisecond

// Config controls which files are picked up and how many run at once.
type Config struct {
	Dir           string
	MaxConcurrent int
	// Settle is the wait between a file appearing and handling it, so
	// copies in progress can finish.
	Settle time.Duration
	// Accept filters inbox files. Nil accepts everything.
	Accept func(path string) bool
}

// New creates a new Watcher instance with concurrency control
func New(cfg Config, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.Settle <= 0 {
		cfg.Settle = defaultSettle
	}
	if cfg.Accept == nil {
		cfg.Accept = func(string) bool { return true }
	}

	return &implWatcher{
		cfg:       cfg,
		handler:   handler,
		logger:    log,
		watcher:   fsw,
		semaphore: make(chan struct{}, cfg.MaxConcurrent),
	}, nil
}
