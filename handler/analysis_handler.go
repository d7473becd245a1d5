package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/bill-dispute-analyzer/common"
	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TextExtractor turns an uploaded bill into statement text.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, data []byte, password string) (string, error)
}

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	documents       TextExtractor
	exporter        *service.ExportService
	maxFileSize     int64
	now             func() time.Time
}

func NewAnalysisHandler(
	analysisService *service.AnalysisService,
	documents TextExtractor,
	exporter *service.ExportService,
	maxFileSize int64,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		documents:       documents,
		exporter:        exporter,
		maxFileSize:     maxFileSize,
		now:             time.Now,
	}
}

// AnalyzeBill handles POST /bills/analyze with either a JSON body or a multipart upload.
func (h *AnalysisHandler) AnalyzeBill(c *gin.Context) {
	var (
		category dto.Category
		text     string
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			sendError(c, http.StatusBadRequest, "file is required", nil)
			return
		}
		upload := &dto.BillUploadRequest{
			File:     fileHeader,
			Category: dto.Category(c.PostForm("category")),
			Password: c.PostForm("password"),
		}
		if err := upload.Validate(); err != nil {
			sendError(c, http.StatusBadRequest, "invalid upload", err)
			return
		}
		if h.documents == nil {
			sendError(c, http.StatusBadRequest, "file uploads are not enabled", nil)
			return
		}

		data, err := readUpload(fileHeader, h.maxFileSize)
		if err != nil {
			sendError(c, statusFor(err), "failed to read upload", err)
			return
		}

		common.LogInfo("Extracting bill text", common.Fields{"file": fileHeader.Filename, "bytes": len(data)})
		text, err = h.documents.ExtractText(c.Request.Context(), fileHeader.Filename, data, upload.Password)
		if err != nil {
			sendError(c, statusFor(err), "failed to extract text", err)
			return
		}
		category = upload.Category
	} else {
		var req dto.AnalyzeBillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if err := req.Validate(); err != nil {
			sendError(c, http.StatusBadRequest, "invalid request", err)
			return
		}
		category, text = req.Category, req.Text
	}

	record, err := h.analysisService.Analyze(c.Request.Context(), category, text)
	if err != nil {
		sendError(c, statusFor(err), "failed to analyze bill", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListAnalyses handles GET /bills.
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(c, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), nil)
			return
		}
		limit = n
	}

	summaries, err := h.analysisService.List(c.Request.Context(), limit)
	if err != nil {
		sendError(c, statusFor(err), "failed to list analyses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": summaries, "count": len(summaries)})
}

// GetAnalysis handles GET /bills/:id.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	record, err := h.analysisService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, statusFor(err), "failed to load analysis", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ExportAnalysis handles GET /bills/:id/export.
func (h *AnalysisHandler) ExportAnalysis(c *gin.Context) {
	record, err := h.analysisService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, statusFor(err), "failed to load analysis", err)
		return
	}

	data, err := h.exporter.AnalysisXLSX(record)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "failed to export analysis", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%s.xlsx"`, record.ID))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GenerateLetter handles POST /bills/:id/letter. The body is optional.
func (h *AnalysisHandler) GenerateLetter(c *gin.Context) {
	var opts dto.LetterOptions
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			sendError(c, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}
	if opts.Date.IsZero() {
		opts.Date = h.now()
	}

	record, err := h.analysisService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, statusFor(err), "failed to load analysis", err)
		return
	}

	letter, err := service.GenerateDisputeLetter(record.Result, opts)
	if err != nil {
		sendError(c, statusFor(err), "failed to generate letter", err)
		return
	}

	c.JSON(http.StatusOK, dto.LetterResponse{AnalysisID: record.ID, Letter: *letter})
}
