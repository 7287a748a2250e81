package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Underwriter/internal/report"
)

// AuditRecord summarises one stored report.
type AuditRecord struct {
	ID            uuid.UUID   `json:"id"`
	Mode          report.Mode `json:"mode"`
	ApplicantName string      `json:"applicant_name"`
	RiskScore     int         `json:"risk_score"`
	RiskCategory  string      `json:"risk_category"`
	FallbackSlots int         `json:"fallback_slots"`
	AnalysedAt    time.Time   `json:"analysed_at"`
	RecordedAt    time.Time   `json:"recorded_at"`
}

type ReportFilter struct {
	Mode     *report.Mode
	Category string
	Since    *time.Time
	Limit    int
	Offset   int
}

// Store is the append-only audit trail of completed reports. Analysis runs only ever
// write to it.
type Store interface {
	SaveReport(ctx context.Context, r *report.AnalysisReport) error
	GetReport(ctx context.Context, id uuid.UUID) (*report.AnalysisReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]*AuditRecord, error)
	Close() error
}
