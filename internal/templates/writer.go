package templates

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes a generated file, creating its parent directories.
// Existing content is replaced. The content goes to a temporary file in the
// same directory first, so dest never holds a partial write.
func WriteFile(dest, content string) error {
	if dest == "" {
		return fmt.Errorf("output path is required")
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	// #nosec G302 -- generated library files are published and must be world readable.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
