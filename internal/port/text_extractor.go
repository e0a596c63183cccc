package port

import (
	"context"

	"gstrecon/internal/domain"
)

// TextExtractor pulls raw text out of an uploaded invoice file.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, fileType domain.FileType) (string, error)
}
