package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aashish23092/bill-dispute-analyzer/dto"
)

// DefaultListLimit applies when ListAnalyses is called with a non-positive limit.
const DefaultListLimit = 20

// SaveAnalysis inserts or replaces an analysis record.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, record *dto.AnalysisRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil || strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("%w: record id is required", ErrInvalidInput)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	var provider sql.NullString
	if record.Result.ProviderName != nil {
		provider = sql.NullString{String: *record.Result.ProviderName, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analyses (
			id, category, dispute_type, provider_name, total_billed, total_fair_price,
			potential_savings, fee, fee_type, net_savings, result_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		string(record.Result.Category),
		string(record.Result.DisputeType),
		provider,
		record.Result.TotalBilled,
		record.Result.TotalFairPrice,
		record.Result.PotentialSavings,
		record.Fee.Fee,
		string(record.Fee.FeeType),
		record.Fee.NetSavings,
		string(payload),
		record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", record.ID, err)
	}
	return nil
}

// GetAnalysis loads one record. Missing ids return dto.ErrNotFound.
func (s *SQLiteStorage) GetAnalysis(ctx context.Context, id string) (*dto.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT result_json FROM analyses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", dto.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var record dto.AnalysisRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &record, nil
}

// ListAnalyses returns summaries newest first.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, limit int) ([]dto.AnalysisSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, dispute_type, provider_name, total_billed,
		       potential_savings, fee, fee_type, created_at
		FROM analyses
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]dto.AnalysisSummary, 0)
	for rows.Next() {
		var (
			summary   dto.AnalysisSummary
			provider  sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(
			&summary.ID,
			&summary.Category,
			&summary.DisputeType,
			&provider,
			&summary.TotalBilled,
			&summary.PotentialSavings,
			&summary.Fee,
			&summary.FeeType,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summary.ProviderName = provider.String
		summary.CreatedAt = createdAt
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return summaries, nil
}
