package events

import "time"

// AnalysisCompletedEvent is published once per finished analysis run.
type AnalysisCompletedEvent struct {
	ReportID      string            `json:"report_id"`
	Mode          string            `json:"mode"`
	RiskScore     int               `json:"risk_score"`
	RiskCategory  string            `json:"risk_category"`
	TotalClaims   int               `json:"total_claims"`
	Provenance    map[string]string `json:"provenance"`
	FallbackSlots int               `json:"fallback_slots"`
	Timestamp     time.Time         `json:"timestamp"`
}

// AgentFallbackEvent reports that an AI-mode agent call failed and the rule-based
// narrative was used for that slot.
type AgentFallbackEvent struct {
	ReportID string `json:"report_id"`
	Agent    string `json:"agent"`
	Error    string `json:"error"`
}
