package events

const (
	StreamName   = "UNDERWRITING_EVENTS"
	StreamMaxAge = "720h" // 30 days

	subjectPrefix = "underwriting.analysis."
)

func SubjectAnalysisCompleted(reportID string) string {
	return subjectPrefix + reportID + ".completed"
}

func SubjectAgentFallback(reportID string) string {
	return subjectPrefix + reportID + ".fallback"
}
