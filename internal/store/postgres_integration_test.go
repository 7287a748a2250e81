//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/report"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE underwriting_reports")
		s.Close()
	})
	return s
}

func newReport(t *testing.T, key string, mode report.Mode) *report.AnalysisReport {
	t.Helper()
	sample, ok := applicant.SampleByKey(key)
	require.True(t, ok)
	r := report.New(uuid.New(), mode, time.Now(), sample.Application, scoring.Score(sample.Application))
	for _, slot := range agents.Slots {
		r.Set(slot, "narrative for "+string(slot), report.ProvenanceFallback)
	}
	return r
}

func TestSaveAndGetReport(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	r := newReport(t, "high", report.ModeAI)
	require.NoError(t, s.SaveReport(ctx, r))
	// duplicate saves are ignored
	require.NoError(t, s.SaveReport(ctx, r))

	got, err := s.GetReport(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, 100, got.Assessment.Score)
	assert.Equal(t, r.Outputs, got.Outputs)
	assert.Equal(t, "Robert Wilson", got.Application.Applicant.Name)
}

func TestGetReportNotFound(t *testing.T) {
	s := setupTestDB(t)
	got, err := s.GetReport(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListReportsFilters(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, newReport(t, "low", report.ModeRuleBased)))
	require.NoError(t, s.SaveReport(ctx, newReport(t, "medium", report.ModeAI)))
	require.NoError(t, s.SaveReport(ctx, newReport(t, "high", report.ModeAI)))

	all, err := s.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ai := report.ModeAI
	aiOnly, err := s.ListReports(ctx, ReportFilter{Mode: &ai})
	require.NoError(t, err)
	assert.Len(t, aiOnly, 2)

	high, err := s.ListReports(ctx, ReportFilter{Category: "High"})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Robert Wilson", high[0].ApplicantName)
	assert.Equal(t, 4, high[0].FallbackSlots)
}
