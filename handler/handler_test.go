package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
	"github.com/Aashish23092/bill-dispute-analyzer/service"
	"github.com/Aashish23092/bill-dispute-analyzer/storage"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "bills.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exporter := service.NewExportService(nil)
	documents := service.NewDocumentService(nil, nil, service.NewPDFProcessor())
	return SetupRouter(
		NewAnalysisHandler(service.NewAnalysisService(store), documents, exporter, 1024),
		NewStatementHandler(exporter, 4096),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func multipartRequest(t *testing.T, path, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAnalyzeBill_JSON(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bills/analyze", dto.AnalyzeBillRequest{
		Category: dto.CategoryMedical,
		Text:     "99285 Emergency Room Visit Level 5 $2,450.00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var record dto.AnalysisRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, dto.CategoryMedical, record.Result.Category)
	assert.Equal(t, 1740.0, record.Result.PotentialSavings)
	assert.Equal(t, 348.0, record.Fee.Fee)

	// stored and retrievable
	w = doJSON(t, router, http.MethodGet, "/api/v1/bills/"+record.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bills?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Analyses []dto.AnalysisSummary `json:"analyses"`
		Count    int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, record.ID, list.Analyses[0].ID)
}

func TestAnalyzeBill_JSONErrors(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown category", map[string]string{"category": "dental", "text": "x $1.00"}},
		{"missing text", map[string]string{"category": "rent"}},
		{"blank text", map[string]string{"category": "rent", "text": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/v1/bills/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "INVALID_REQUEST", resp.Error)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestAnalyzeBill_Upload(t *testing.T) {
	router := setupTestRouter(t)

	req := multipartRequest(t, "/api/v1/bills/analyze", "rent.txt",
		"Parkview Apartments LLC\nAdmin/Processing Fee $35.00\n",
		map[string]string{"category": "rent"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var record dto.AnalysisRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, 35.0, record.Result.PotentialSavings)
	require.NotNil(t, record.Result.ProviderName)
	assert.Equal(t, dto.FeeTypeQuickWin, record.Fee.FeeType)
}

func TestAnalyzeBill_UploadErrors(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("unsupported extension", func(t *testing.T) {
		req := multipartRequest(t, "/api/v1/bills/analyze", "bill.docx", "x", map[string]string{"category": "rent"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		req := multipartRequest(t, "/api/v1/bills/analyze", "bill.txt", strings.Repeat("a", 2048), map[string]string{"category": "rent"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("nothing extracted", func(t *testing.T) {
		req := multipartRequest(t, "/api/v1/bills/analyze", "bill.txt", "   ", map[string]string{"category": "rent"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetAnalysis_NotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/bills/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error)

	w = doJSON(t, router, http.MethodGet, "/api/v1/bills/nope/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/bills/nope/letter", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAnalyses_BadLimit(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/bills?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportAndLetter(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/bills/analyze", dto.AnalyzeBillRequest{
		Category: dto.CategoryRent,
		Text:     "Parkview Apartments LLC\nBase Rent $1,500.00\nLate Fee $150.00\nGrace period: none",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var record dto.AnalysisRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))

	w = doJSON(t, router, http.MethodGet, "/api/v1/bills/"+record.ID+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), record.ID)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	w = doJSON(t, router, http.MethodPost, "/api/v1/bills/"+record.ID+"/letter", dto.LetterOptions{SenderName: "Jordan Lee"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var letter dto.LetterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &letter))
	assert.Equal(t, record.ID, letter.AnalysisID)
	assert.Equal(t, dto.CategoryRent, letter.Letter.Category)
	assert.Contains(t, letter.Letter.Body, "Parkview Apartments LLC")
	assert.Contains(t, letter.Letter.Body, "LATE_FEE_EXCESS")
	assert.Contains(t, letter.Letter.Body, "Jordan Lee")
	assert.NotEmpty(t, letter.Letter.Instructions)
}

const statementCSV = "Date,Description,Amount\n" +
	"2024-01-05,NETFLIX.COM,-15.49\n" +
	"2024-02-05,NETFLIX.COM,-15.49\n" +
	"2024-03-05,NETFLIX.COM,-22.99\n"

func TestAnalyzeStatement_RawBody(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/analyze", strings.NewReader(statementCSV))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analysis dto.StatementAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, 3, analysis.TotalTransactions)
	assert.Equal(t, 1, analysis.FlaggedCount)
}

func TestAnalyzeStatement_UploadAsXLSX(t *testing.T) {
	router := setupTestRouter(t)

	req := multipartRequest(t, "/api/v1/statements/analyze?format=xlsx", "statement.csv", statementCSV, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
}

func TestAnalyzeStatement_Errors(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/analyze", strings.NewReader("  "))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/statements/analyze", strings.NewReader(strings.Repeat("x", 5000)))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCalculateFee(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/fees?savings=50.01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fee dto.SmartFeeCalculation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fee))
	assert.Equal(t, 10.0, fee.Fee)
	assert.Equal(t, dto.FeeTypeSuccessFee, fee.FeeType)

	w = doJSON(t, router, http.MethodGet, "/api/v1/fees?savings=lots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/fees", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
