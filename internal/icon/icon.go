// Package icon resizes raster icons for the library and its sprites.
package icon

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Resize scales the image at src to height pixels, keeping the aspect ratio,
// and saves it to dst in the format given by the dst extension.
func Resize(src, dst string, height int) error {
	if height <= 0 {
		return fmt.Errorf("resize %s: invalid height %d", src, height)
	}
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	b := img.Bounds()
	if b.Dy() == 0 {
		return fmt.Errorf("open %s: empty image", src)
	}
	width := max(height*b.Dx()/b.Dy(), 1)

	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	resized := imaging.Resize(img, width, height, imaging.Linear)
	if err := save(resized, dst, format); err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}
	return nil
}

// save encodes img next to dst and renames it into place.
func save(img image.Image, dst string, format imaging.Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := imaging.Encode(tmp, img, format); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// #nosec G302 -- icons are published with the library.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// IsVector reports whether path names an SVG file, which needs Inkscape.
func IsVector(path string) bool {
	return filepath.Ext(path) == ".svg" || filepath.Ext(path) == ".SVG"
}
