package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// AnalyzeBillRequest is the JSON body of POST /bills/analyze.
type AnalyzeBillRequest struct {
	Category Category `json:"category" binding:"required"`
	Text     string   `json:"text" binding:"required"`
}

// Validate performs basic validation on the request
func (r *AnalyzeBillRequest) Validate() error {
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
	}
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// BillUploadRequest represents a multipart bill upload
type BillUploadRequest struct {
	File     *multipart.FileHeader
	Category Category
	Password string
}

// Validate validates the upload request
func (r *BillUploadRequest) Validate() error {
	if r.File == nil {
		return fmt.Errorf("file is required")
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
	}

	// Validate file extension
	if !IsSupportedBillFile(r.File.Filename) {
		return fmt.Errorf("%w: supported: PDF, PNG, JPG, TXT", ErrUnsupportedFile)
	}

	return nil
}

// IsSupportedBillFile reports whether the filename has an extension the document service reads.
func IsSupportedBillFile(filename string) bool {
	filename = strings.ToLower(filename)
	validExtensions := []string{".pdf", ".png", ".jpg", ".jpeg", ".txt", ".csv"}
	for _, ext := range validExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
