package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

// AnalysisRepository persists analysis records.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, record *dto.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*dto.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, limit int) ([]dto.AnalysisSummary, error)
}

// AnalysisService runs the category analyzers, prices the result and records it.
type AnalysisService struct {
	repo  AnalysisRepository
	now   func() time.Time
	newID func() string
}

// NewAnalysisService creates the service. repo may be nil, in which case nothing is stored.
func NewAnalysisService(repo AnalysisRepository) *AnalysisService {
	return &AnalysisService{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Analyze routes text to the category analyzer and attaches the fee breakdown.
func (s *AnalysisService) Analyze(ctx context.Context, category dto.Category, text string) (*dto.AnalysisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := AnalyzeByCategory(text, category)
	if err != nil {
		return nil, err
	}

	record := &dto.AnalysisRecord{
		ID:        s.newID(),
		Result:    result,
		Fee:       CalculateSmartFee(result.PotentialSavings),
		CreatedAt: s.now(),
	}

	slog.Info("Analysis complete",
		"id", record.ID,
		"category", category,
		"flagged", len(result.LineItems),
		"potential_savings", result.PotentialSavings)

	if s.repo == nil {
		return record, nil
	}
	if err := s.repo.SaveAnalysis(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	return record, nil
}

// Get loads a stored analysis.
func (s *AnalysisService) Get(ctx context.Context, id string) (*dto.AnalysisRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: %s", dto.ErrNotFound, id)
	}
	return s.repo.GetAnalysis(ctx, id)
}

// List returns the most recent analyses.
func (s *AnalysisService) List(ctx context.Context, limit int) ([]dto.AnalysisSummary, error) {
	if s.repo == nil {
		return []dto.AnalysisSummary{}, nil
	}
	return s.repo.ListAnalyses(ctx, limit)
}
