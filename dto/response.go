package dto

import "errors"

// Custom errors
var (
	ErrUnknownCategory = errors.New("unknown bill category")
	ErrEmptyInput      = errors.New("statement text is empty")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoTextExtracted = errors.New("no text could be extracted from the document")
	ErrNotFound        = errors.New("analysis not found")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// LetterResponse is returned by POST /bills/:id/letter.
type LetterResponse struct {
	AnalysisID string        `json:"analysis_id"`
	Letter     DisputeLetter `json:"letter"`
}
