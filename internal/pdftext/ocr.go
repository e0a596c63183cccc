package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// OCRExtractor runs an external OCR command over the file. The command gets
// the path of a temporary copy as its last argument and prints the text.
type OCRExtractor struct {
	command string
	args    []string
	timeout time.Duration
	sem     chan struct{}
}

// NewOCRExtractor creates an OCRExtractor running at most maxProcs commands
// concurrently.
func NewOCRExtractor(command string, args []string, timeout time.Duration, maxProcs int) *OCRExtractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxProcs <= 0 {
		maxProcs = 2
	}
	return &OCRExtractor{command: command, args: args, timeout: timeout, sem: make(chan struct{}, maxProcs)}
}

// Extract writes data to a temp file and returns the command's stdout.
func (o *OCRExtractor) Extract(ctx context.Context, data []byte, ext string) (string, error) {
	if o.command == "" {
		return "", fmt.Errorf("pdftext.OCRExtractor: no OCR command configured")
	}

	select {
	case o.sem <- struct{}{}:
		defer func() { <-o.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	f, err := os.CreateTemp("", "invoice-*."+ext)
	if err != nil {
		return "", fmt.Errorf("pdftext.OCRExtractor: creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("pdftext.OCRExtractor: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pdftext.OCRExtractor: closing temp file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	args := append(append([]string{}, o.args...), f.Name())
	cmd := exec.CommandContext(ctx, o.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftext.OCRExtractor: %s: %w (%s)", o.command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
