// Package output persists the rendered wishlist document.
package output

import (
	"context"
	"fmt"
	"os"

	"github.com/carver/wishforge/pkg/logger"
)

const previewLength = 500

// Writer writes the wishlist to a file and logs a short preview.
type Writer struct {
	path   string
	logger logger.Logger
}

// NewWriter creates a writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{
		path:   path,
		logger: logger.Get().Named("output"),
	}
}

// Write persists the document.
func (w *Writer) Write(ctx context.Context, content string) error {
	if err := os.WriteFile(w.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write wishlist %s: %w", w.path, err)
	}

	preview := content
	if len(preview) > previewLength {
		preview = preview[:previewLength]
	}
	w.logger.Info(ctx, "wishlist written",
		logger.String("path", w.path),
		logger.Int("bytes", len(content)),
	)
	w.logger.Debug(ctx, "wishlist preview", logger.String("head", preview))
	return nil
}
