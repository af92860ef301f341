package plantuml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/retry"
)

const maxDownloadBytes = 512 * 1024 * 1024

// NewHTTPClient creates an HTTP client with safe defaults for release downloads.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Minute,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}

// Download fetches url into dest, retrying transient failures per policy.
// The file is written to a temporary sibling and renamed, so dest is never
// left half written.
func Download(ctx context.Context, client *http.Client, url, dest string, policy retry.Policy) error {
	if client == nil {
		client = NewHTTPClient()
	}
	slog.Info("Downloading", logfields.URL(url), logfields.Path(dest))
	return retry.Do(ctx, policy, "download "+url, func(ctx context.Context) error {
		return downloadOnce(ctx, client, url, dest)
	})
}

func downloadOnce(ctx context.Context, client *http.Client, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return ferrors.NetworkError("build request for " + url).WithCause(err).WithRetry(ferrors.RetryNever).Build()
	}

	resp, err := client.Do(req)
	if err != nil {
		return ferrors.NetworkError("fetch " + url).WithCause(err).WithContext("url", url).Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b := ferrors.NetworkError(fmt.Sprintf("fetch %s: HTTP %d", url, resp.StatusCode)).
			WithContext("url", url).
			WithContext("status", resp.StatusCode)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			b = b.WithRetry(ferrors.RetryNever)
		}
		return b.Build()
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return ferrors.FileSystemError("create " + filepath.Dir(dest)).WithCause(err).Build()
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return ferrors.FileSystemError("create temporary file for " + dest).WithCause(err).Build()
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	n, copyErr := io.Copy(tmp, io.LimitReader(resp.Body, maxDownloadBytes+1))
	closeErr := tmp.Close()
	switch {
	case copyErr != nil:
		return ferrors.NetworkError("read " + url).WithCause(copyErr).WithContext("url", url).Build()
	case closeErr != nil:
		return ferrors.FileSystemError("write " + dest).WithCause(closeErr).Build()
	case n > maxDownloadBytes:
		return ferrors.NetworkError("response too large: " + url).WithRetry(ferrors.RetryNever).Build()
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return ferrors.FileSystemError("move download to " + dest).WithCause(err).Build()
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
