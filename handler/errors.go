package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/bill-dispute-analyzer/common"
	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

var errFileTooLarge = errors.New("file exceeds upload limit")

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dto.ErrUnknownCategory),
		errors.Is(err, dto.ErrEmptyInput),
		errors.Is(err, dto.ErrUnsupportedFile),
		errors.Is(err, dto.ErrNoTextExtracted):
		return http.StatusBadRequest
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusRequestEntityTooLarge:
		return "FILE_TOO_LARGE"
	default:
		return "ANALYSIS_FAILED"
	}
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		fields := common.Fields{"path": c.FullPath(), "status": statusCode}
		if statusCode >= http.StatusInternalServerError {
			common.LogError(err, message, fields)
		} else {
			common.LogDebug(message+": "+errorMsg, fields)
		}
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   errorCode(statusCode),
		Message: errorMsg,
		Code:    statusCode,
	})
}

// readUpload reads an uploaded file, refusing anything above maxSize bytes.
func readUpload(fileHeader *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && fileHeader.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes", errFileTooLarge, fileHeader.Size)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if maxSize > 0 {
		r = io.LimitReader(file, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", errFileTooLarge, maxSize)
	}
	return data, nil
}
