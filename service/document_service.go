package service

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Aashish23092/bill-dispute-analyzer/client"
	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

// MinPDFTextChars is the smallest text layer (non-space runes) accepted before a PDF is
// treated as scanned and sent through OCR.
const MinPDFTextChars = 20

// OCREngine recognises text in images.
type OCREngine interface {
	ExtractTextFromBytes(data []byte) (*client.OCRResult, error)
	ExtractTextFromImage(img image.Image) (*client.OCRResult, error)
}

// QRDecoder reads QR payloads out of encoded images.
type QRDecoder interface {
	DecodeBytes(data []byte) (string, error)
}

// DocumentService turns uploaded bills into plain statement text.
type DocumentService struct {
	ocr          OCREngine
	qr           QRDecoder
	pdfProcessor PDFProcessor
}

// NewDocumentService wires the extractors. qr may be nil.
func NewDocumentService(ocr OCREngine, qr QRDecoder, pdfProcessor PDFProcessor) *DocumentService {
	return &DocumentService{
		ocr:          ocr,
		qr:           qr,
		pdfProcessor: pdfProcessor,
	}
}

// ExtractText returns the text content of a bill file, choosing the extractor by extension.
func (s *DocumentService) ExtractText(ctx context.Context, filename string, data []byte, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".csv":
		text = decodePlainText(data)
	case ".pdf":
		text, err = s.extractPDF(ctx, data, password)
	case ".png", ".jpg", ".jpeg":
		text, err = s.extractImage(data)
	default:
		return "", fmt.Errorf("%w: %q", dto.ErrUnsupportedFile, ext)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return "", fmt.Errorf("%w: %s", dto.ErrNoTextExtracted, filename)
	}

	slog.Debug("extracted document text", "file", filename, "chars", len(text))
	return text, nil
}

func (s *DocumentService) extractPDF(ctx context.Context, data []byte, password string) (string, error) {
	text, err := s.pdfProcessor.ExtractText(data, password)
	if err != nil {
		slog.Warn("pdf text layer unreadable, falling back to OCR", "error", err)
	}
	if countNonSpace(text) >= MinPDFTextChars {
		return text, nil
	}
	if s.ocr == nil {
		return text, err
	}

	images, imgErr := s.pdfProcessor.ExtractImages(data, password)
	if imgErr != nil {
		if err != nil {
			return "", fmt.Errorf("failed to read pdf: %w", err)
		}
		return "", imgErr
	}

	pages := make([]string, 0, len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		result, ocrErr := s.ocr.ExtractTextFromImage(img)
		if ocrErr != nil {
			slog.Warn("OCR failed for pdf page image", "index", i, "error", ocrErr)
			continue
		}
		pages = append(pages, result.Text)
	}
	return strings.Join(pages, "\n"), nil
}

func (s *DocumentService) extractImage(data []byte) (string, error) {
	var lines []string

	if s.ocr != nil {
		result, err := s.ocr.ExtractTextFromBytes(data)
		if err != nil {
			return "", fmt.Errorf("OCR extraction failed: %w", err)
		}
		slog.Debug("image OCR complete", "confidence", result.Confidence)
		lines = append(lines, result.Text)
	}

	if s.qr != nil {
		payload, err := s.qr.DecodeBytes(data)
		if err == nil && strings.TrimSpace(payload) != "" {
			lines = append(lines, strings.TrimSpace(payload))
		}
	}

	return strings.Join(lines, "\n"), nil
}

// decodePlainText treats data as UTF-8, falling back to Windows-1252 for exports from
// older billing portals.
func decodePlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
