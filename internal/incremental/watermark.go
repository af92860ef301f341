package incremental

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
)

// WatermarkFile is the name of the watermark in the cache directory.
const WatermarkFile = "LAST_GENERATION"

// WatermarkPath returns the watermark location for a cache directory.
func WatermarkPath(cacheDir string) string {
	return filepath.Join(cacheDir, WatermarkFile)
}

// LoadWatermark reads the time of the last successful generation. ok is
// false when there is none. An unreadable value is logged and treated as
// missing so every source is rendered again.
func LoadWatermark(cacheDir string) (t time.Time, ok bool, err error) {
	path := WatermarkPath(cacheDir)
	// #nosec G304 -- the watermark lives in the configured cache directory.
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read watermark: %w", err)
	}
	nanos, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		slog.Warn("Ignoring invalid watermark", logfields.Path(path), logfields.Error(err))
		return time.Time{}, false, nil
	}
	return time.Unix(0, nanos), true, nil
}

// SaveWatermark persists t in Unix nanoseconds. The file is replaced
// atomically.
func SaveWatermark(cacheDir string, t time.Time) error {
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(cacheDir, WatermarkFile+".*")
	if err != nil {
		return fmt.Errorf("create watermark: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(strconv.FormatInt(t.UnixNano(), 10)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write watermark: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close watermark: %w", err)
	}
	if err := os.Rename(tmp.Name(), WatermarkPath(cacheDir)); err != nil {
		return fmt.Errorf("replace watermark: %w", err)
	}
	return nil
}
