// Package models downloads whisper.cpp ggml models.
package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const defaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Names lists the model sizes that can be downloaded, smallest first.
var Names = []string{"tiny", "base", "small", "medium", "large-v3"}

// FileName returns the file a model is stored as, e.g. "ggml-medium.bin".
func FileName(name string) string {
	return "ggml-" + name + ".bin"
}

// Downloader fetches models into Dir.
type Downloader struct {
	Dir      string
	BaseURL  string
	Client   *http.Client
	Progress io.Writer // receives progress lines; nil discards them
}

// NewDownloader returns a Downloader that stores models in dir.
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		Dir:     dir,
		BaseURL: defaultBaseURL,
		Client:  http.DefaultClient,
	}
}

// Download fetches the named model and returns its path. An existing
// non-empty file is kept as is.
func (d *Downloader) Download(ctx context.Context, name string) (string, error) {
	if !slices.Contains(Names, name) {
		return "", fmt.Errorf("models: unknown model %q (expected one of %s)", name, strings.Join(Names, ", "))
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating models dir: %w", err)
	}

	fileName := FileName(name)
	destPath := filepath.Join(d.Dir, fileName)

	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		d.printf("  Model already exists: %s (%.0f MB)\n", destPath, float64(info.Size())/(1024*1024))
		return destPath, nil
	}

	url := strings.TrimSuffix(d.BaseURL, "/") + "/" + fileName
	d.printf("  URL: %s\n", url)
	d.printf("  Destination: %s\n", destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	// Write to temp file first, then rename.
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	pr := &progressWriter{
		writer: f,
		out:    d.Progress,
		total:  resp.ContentLength,
		label:  fileName,
	}

	written, err := io.Copy(pr, resp.Body)
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing model file: %w", err)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		os.Remove(tmpPath)
		return "", fmt.Errorf("download truncated: got %d of %d bytes", written, resp.ContentLength)
	}

	d.printf("\n  Downloaded %.1f MB\n", float64(written)/(1024*1024))

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("moving model file: %w", err)
	}

	return destPath, nil
}

func (d *Downloader) printf(format string, args ...any) {
	if d.Progress != nil {
		fmt.Fprintf(d.Progress, format, args...)
	}
}

// progressWriter wraps an io.Writer and prints download progress to out.
type progressWriter struct {
	writer  io.Writer
	out     io.Writer
	total   int64
	written int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.out == nil {
		return n, err
	}
	if pw.total > 0 {
		pct := float64(pw.written) / float64(pw.total) * 100
		fmt.Fprintf(pw.out, "\r  %s: %.1f MB / %.1f MB (%.0f%%)",
			pw.label,
			float64(pw.written)/(1024*1024),
			float64(pw.total)/(1024*1024),
			pct)
	} else {
		fmt.Fprintf(pw.out, "\r  %s: %.1f MB downloaded",
			pw.label,
			float64(pw.written)/(1024*1024))
	}
	return n, err
}
