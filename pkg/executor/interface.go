package executor

import "context"

// Executor runs external tools (ffmpeg, whisper.cpp) and returns their stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// Available reports whether name resolves to an executable in PATH.
	Available(name string) bool
}
