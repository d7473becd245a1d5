package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

type memoryRepo struct {
	records map[string]*dto.AnalysisRecord
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[string]*dto.AnalysisRecord{}}
}

func (m *memoryRepo) SaveAnalysis(_ context.Context, record *dto.AnalysisRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[record.ID] = record
	return nil
}

func (m *memoryRepo) GetAnalysis(_ context.Context, id string) (*dto.AnalysisRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dto.ErrNotFound, id)
	}
	return record, nil
}

func (m *memoryRepo) ListAnalyses(_ context.Context, _ int) ([]dto.AnalysisSummary, error) {
	out := make([]dto.AnalysisSummary, 0, len(m.records))
	for id, r := range m.records {
		out = append(out, dto.AnalysisSummary{ID: id, Category: r.Result.Category})
	}
	return out, nil
}

func newTestAnalysisService(repo AnalysisRepository) *AnalysisService {
	s := NewAnalysisService(repo)
	s.newID = func() string { return "fixed-id" }
	s.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestAnalysisService_Analyze(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestAnalysisService(repo)

	record, err := svc.Analyze(context.Background(), dto.CategoryMedical, "99285 Emergency Room Visit Level 5 $2,450.00")
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", record.ID)
	assert.Equal(t, 1740.0, record.Result.PotentialSavings)
	assert.Equal(t, 348.0, record.Fee.Fee)
	assert.Equal(t, 1392.0, record.Fee.NetSavings)
	assert.Equal(t, dto.FeeTypeSuccessFee, record.Fee.FeeType)
	assert.Equal(t, 2024, record.CreatedAt.Year())

	stored, err := svc.Get(context.Background(), "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, record, stored)

	list, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAnalysisService_UnknownCategory(t *testing.T) {
	repo := newMemoryRepo()
	_, err := newTestAnalysisService(repo).Analyze(context.Background(), "dental", "x")
	assert.ErrorIs(t, err, dto.ErrUnknownCategory)
	assert.Empty(t, repo.records)
}

func TestAnalysisService_SaveFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.saveErr = errors.New("disk full")

	_, err := newTestAnalysisService(repo).Analyze(context.Background(), dto.CategoryRent, "Admin Fee $35.00")
	assert.ErrorContains(t, err, "disk full")
}

func TestAnalysisService_WithoutRepository(t *testing.T) {
	svc := NewAnalysisService(nil)

	record, err := svc.Analyze(context.Background(), dto.CategoryRent, "Admin Fee $35.00")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 10.0, record.Fee.Fee)

	_, err = svc.Get(context.Background(), record.ID)
	assert.ErrorIs(t, err, dto.ErrNotFound)

	list, err := svc.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnalysisService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalysisService(nil).Analyze(ctx, dto.CategoryMedical, "99285 $2,450.00")
	assert.ErrorIs(t, err, context.Canceled)
}
