package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/bill-dispute-analyzer/common"
	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/service"
)

type StatementHandler struct {
	exporter    *service.ExportService
	maxFileSize int64
}

func NewStatementHandler(exporter *service.ExportService, maxFileSize int64) *StatementHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	return &StatementHandler{
		exporter:    exporter,
		maxFileSize: maxFileSize,
	}
}

// AnalyzeStatement handles POST /statements/analyze. The CSV arrives as a multipart
// "file" field or as the raw request body; ?format=xlsx returns a workbook.
func (h *StatementHandler) AnalyzeStatement(c *gin.Context) {
	var data []byte
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			sendError(c, http.StatusBadRequest, "file is required", nil)
			return
		}
		data, err = readUpload(fileHeader, h.maxFileSize)
		if err != nil {
			sendError(c, statusFor(err), "failed to read upload", err)
			return
		}
	} else {
		var err error
		data, err = io.ReadAll(io.LimitReader(c.Request.Body, h.maxFileSize+1))
		if err != nil {
			sendError(c, http.StatusBadRequest, "failed to read body", err)
			return
		}
		if int64(len(data)) > h.maxFileSize {
			sendError(c, http.StatusRequestEntityTooLarge, "failed to read body", errFileTooLarge)
			return
		}
	}

	if strings.TrimSpace(string(data)) == "" {
		sendError(c, http.StatusBadRequest, "statement is empty", dto.ErrEmptyInput)
		return
	}

	analysis := service.AnalyzeStatement(string(data))
	common.LogInfo("Statement analyzed", common.Fields{
		"transactions": analysis.TotalTransactions,
		"recurring":    analysis.RecurringCount,
		"flagged":      analysis.FlaggedCount,
	})

	if c.Query("format") == "xlsx" {
		workbook, err := h.exporter.StatementXLSX(analysis)
		if err != nil {
			sendError(c, http.StatusInternalServerError, "failed to export statement", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="recurring-charges.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, workbook)
		return
	}

	c.JSON(http.StatusOK, analysis)
}
