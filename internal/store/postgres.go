package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Underwriter/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS underwriting_reports (
	report_id      UUID PRIMARY KEY,
	mode           TEXT        NOT NULL,
	applicant_name TEXT        NOT NULL,
	risk_score     INTEGER     NOT NULL CHECK (risk_score BETWEEN 0 AND 100),
	risk_category  TEXT        NOT NULL,
	fallback_slots INTEGER     NOT NULL DEFAULT 0,
	analysed_at    TIMESTAMPTZ NOT NULL,
	recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	report         JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS underwriting_reports_analysed_at_idx ON underwriting_reports (analysed_at DESC);`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the audit table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// SaveReport appends r. Saving the same report twice is a no-op.
func (s *PostgresStore) SaveReport(ctx context.Context, r *report.AnalysisReport) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO underwriting_reports (report_id, mode, applicant_name, risk_score,
			risk_category, fallback_slots, analysed_at, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (report_id) DO NOTHING`,
		r.ID, string(r.Mode), r.Application.Applicant.Name, r.Assessment.Score,
		string(r.Assessment.Category), r.FallbackCount(), r.Timestamp, body,
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", r.ID, err)
	}
	return nil
}

// GetReport returns nil, nil when no report has the given id.
func (s *PostgresStore) GetReport(ctx context.Context, id uuid.UUID) (*report.AnalysisReport, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `SELECT report FROM underwriting_reports WHERE report_id = $1`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r := &report.AnalysisReport{}
	if err := json.Unmarshal(body, r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return r, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]*AuditRecord, error) {
	query, args := listQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*AuditRecord
	for rows.Next() {
		rec := &AuditRecord{}
		var mode string
		if err := rows.Scan(&rec.ID, &mode, &rec.ApplicantName, &rec.RiskScore,
			&rec.RiskCategory, &rec.FallbackSlots, &rec.AnalysedAt, &rec.RecordedAt); err != nil {
			return nil, err
		}
		rec.Mode = report.Mode(mode)
		out = append(out, rec)
	}
	return out, rows.Err()
}

const auditColumns = `report_id, mode, applicant_name, risk_score, risk_category, fallback_slots, analysed_at, recorded_at`

func listQuery(filter ReportFilter) (string, []interface{}) {
	query := `SELECT ` + auditColumns + ` FROM underwriting_reports WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Mode != nil {
		n++
		query += fmt.Sprintf(" AND mode = $%d", n)
		args = append(args, string(*filter.Mode))
	}
	if filter.Category != "" {
		n++
		query += fmt.Sprintf(" AND risk_category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.Since != nil {
		n++
		query += fmt.Sprintf(" AND analysed_at >= $%d", n)
		args = append(args, *filter.Since)
	}

	query += " ORDER BY analysed_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}
	return query, args
}
