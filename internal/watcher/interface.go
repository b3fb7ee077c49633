package watcher

import "context"

// Watcher feeds files dropped into an inbox directory to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one inbox file.
type EventHandler func(ctx context.Context, filePath string) error
