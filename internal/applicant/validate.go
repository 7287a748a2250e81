package applicant

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrInvalid = errors.New("invalid application")

// ValidationError lists every problem found in an application.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

const (
	MinAge         = 18
	MinCreditScore = 300
	MaxCreditScore = 850

	// MaxAmount bounds coverage and each claim so claim totals stay within int64.
	MaxAmount int64 = 1_000_000_000_000
)

// Validate rejects applications the scorer is not defined for.
func (a Application) Validate() error {
	var problems []string
	p := a.Applicant

	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "applicant.name is required")
	}
	if p.Age < MinAge {
		problems = append(problems, fmt.Sprintf("applicant.age must be at least %d", MinAge))
	}
	if !KnownOccupation(p.Occupation) {
		problems = append(problems, fmt.Sprintf("applicant.occupation %q is not in the catalog", p.Occupation))
	}
	if p.CoverageAmount <= 0 || p.CoverageAmount > MaxAmount {
		problems = append(problems, fmt.Sprintf("applicant.coverage_amount must be between 1 and %d", MaxAmount))
	}
	switch p.HealthStatus {
	case HealthExcellent, HealthGood, HealthFair, HealthPoor:
	default:
		problems = append(problems, fmt.Sprintf("applicant.health_status %q is not recognised", p.HealthStatus))
	}
	for _, l := range p.LifestyleFactors {
		switch l {
		case LifestyleNonSmoker, LifestyleSmoker, LifestyleRegularExercise, LifestyleHighRiskSports, LifestyleAlcoholConsumption:
		default:
			problems = append(problems, fmt.Sprintf("applicant.lifestyle_factors: %q is not recognised", l))
		}
	}

	today := time.Now().UTC()
	var total int64
	for i, c := range a.Claims {
		switch c.Type {
		case ClaimAuto, ClaimProperty, ClaimHealth, ClaimLiability:
		default:
			problems = append(problems, fmt.Sprintf("claims[%d].type %q is not recognised", i, c.Type))
		}
		switch {
		case c.Amount <= 0 || c.Amount > MaxAmount:
			problems = append(problems, fmt.Sprintf("claims[%d].amount must be between 1 and %d", i, MaxAmount))
		case total > math.MaxInt64-c.Amount:
			problems = append(problems, "claims total amount is too large")
		default:
			total += c.Amount
		}
		switch {
		case c.Date.IsZero():
			problems = append(problems, fmt.Sprintf("claims[%d].date is required", i))
		case c.Date.After(today):
			problems = append(problems, fmt.Sprintf("claims[%d].date %s is in the future", i, c.Date))
		}
	}

	r := a.Reports
	if r.CreditScore < MinCreditScore || r.CreditScore > MaxCreditScore {
		problems = append(problems, fmt.Sprintf("external_reports.credit_score must be between %d and %d", MinCreditScore, MaxCreditScore))
	}
	switch r.DrivingRecord {
	case DrivingClean, DrivingMinorViolations, DrivingMajorViolations:
	default:
		problems = append(problems, fmt.Sprintf("external_reports.driving_record %q is not recognised", r.DrivingRecord))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// KnownOccupation matches case-insensitively against the catalog.
func KnownOccupation(occupation string) bool {
	for _, o := range Occupations {
		if strings.EqualFold(o, strings.TrimSpace(occupation)) {
			return true
		}
	}
	return false
}
