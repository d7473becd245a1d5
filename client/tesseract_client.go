package client

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: "eng",
	}
}

// OCRResult is recognised text with the mean word confidence (0-100).
type OCRResult struct {
	Text       string
	Confidence float64
}

// ExtractTextFromBytes runs OCR over an encoded image (PNG or JPEG).
func (tc *TesseractClient) ExtractTextFromBytes(data []byte) (*OCRResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		if err := client.SetTessdataPrefix(tc.dataPath); err != nil {
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(tc.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	result := &OCRResult{Text: strings.TrimSpace(text)}

	// Confidence is best effort; a failed box pass still returns the text.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return result, nil
	}
	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	result.Confidence = total / float64(len(boxes))

	return result, nil
}

// ExtractTextFromImage encodes img as PNG and runs OCR over it.
func (tc *TesseractClient) ExtractTextFromImage(img image.Image) (*OCRResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return tc.ExtractTextFromBytes(buf.Bytes())
}
