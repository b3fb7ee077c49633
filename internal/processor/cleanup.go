package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// removeTemp deletes a temporary file or directory. A path that is already
// gone is not an error; any other failure is returned.
func (p *implProcessor) removeTemp(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove temp %s: %w", path, err)
	}
	p.logger.Debug(ctx, "Cleaned up temp path: %s", path)
	return nil
}

// Archive moves a processed inbox file to the archive directory.
func Archive(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	dest := filepath.Join(archiveDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move to archive: %w", err)
	}
	return dest, nil
}
