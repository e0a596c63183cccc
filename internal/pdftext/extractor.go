package pdftext

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

// PageReader reads the text layer of a PDF.
type PageReader interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ImageReader recognises text in a scanned page or photo.
type ImageReader interface {
	Extract(ctx context.Context, data []byte, ext string) (string, error)
}

type extractor struct {
	pdf PageReader
	ocr ImageReader
}

// NewExtractor returns a port.TextExtractor. PDFs are read from their text
// layer; when that fails or is blank the OCR reader is tried. Images go
// straight to OCR. ocr may be nil.
func NewExtractor(pdfReader PageReader, ocr ImageReader) port.TextExtractor {
	if pdfReader == nil {
		pdfReader = PDFExtractor{}
	}
	return &extractor{pdf: pdfReader, ocr: ocr}
}

func (e *extractor) ExtractText(ctx context.Context, data []byte, fileType domain.FileType) (string, error) {
	if fileType == domain.FileTypePDF {
		text, err := e.pdf.Extract(ctx, data)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err != nil {
			log.Printf("pdftext.ExtractText: text layer unreadable, trying OCR: %v", err)
		}
		if e.ocr == nil {
			return text, err
		}
	}
	if e.ocr == nil {
		return "", fmt.Errorf("pdftext.ExtractText: no OCR reader for %s", fileType)
	}
	return e.ocr.Extract(ctx, data, string(fileType))
}
