package workspace

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

const maxEntryBytes = 256 * 1024 * 1024

// Unzip extracts archive into dest and returns the number of files
// written. Entries escaping dest are rejected.
func Unzip(archive, dest string) (int, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return 0, ferrors.FileSystemError("open archive " + archive).WithCause(err).Build()
	}
	defer func() { _ = r.Close() }()

	count := 0
	for _, f := range r.File {
		if !filepath.IsLocal(f.Name) {
			return count, ferrors.ValidationError(fmt.Sprintf("archive %s: illegal entry %q", archive, f.Name)).Build()
		}
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return count, ferrors.FileSystemError("create " + target).WithCause(err).Build()
			}
			continue
		}
		if !f.Mode().IsRegular() {
			continue
		}
		if err := extractFile(f, target); err != nil {
			return count, ferrors.FileSystemError(fmt.Sprintf("extract %s from %s", f.Name, archive)).WithCause(err).Build()
		}
		count++
	}
	return count, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	// #nosec G304 -- target is checked to stay inside the destination.
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	n, copyErr := io.Copy(dst, io.LimitReader(src, maxEntryBytes+1))
	closeErr := dst.Close()
	switch {
	case copyErr != nil:
		return copyErr
	case closeErr != nil:
		return closeErr
	case n > maxEntryBytes:
		return fmt.Errorf("entry larger than %d bytes", maxEntryBytes)
	}
	return nil
}
