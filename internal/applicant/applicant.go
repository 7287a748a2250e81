package applicant

import (
	"strings"
)

type HealthStatus string

const (
	HealthExcellent HealthStatus = "Excellent"
	HealthGood      HealthStatus = "Good"
	HealthFair      HealthStatus = "Fair"
	HealthPoor      HealthStatus = "Poor"
)

var HealthStatuses = []HealthStatus{HealthExcellent, HealthGood, HealthFair, HealthPoor}

type LifestyleFactor string

const (
	LifestyleNonSmoker          LifestyleFactor = "Non-smoker"
	LifestyleSmoker             LifestyleFactor = "Smoker"
	LifestyleRegularExercise    LifestyleFactor = "Regular exercise"
	LifestyleHighRiskSports     LifestyleFactor = "High-risk sports"
	LifestyleAlcoholConsumption LifestyleFactor = "Alcohol consumption"
)

var LifestyleFactors = []LifestyleFactor{
	LifestyleNonSmoker, LifestyleSmoker, LifestyleRegularExercise, LifestyleHighRiskSports, LifestyleAlcoholConsumption,
}

type ClaimType string

const (
	ClaimAuto      ClaimType = "Auto"
	ClaimProperty  ClaimType = "Property"
	ClaimHealth    ClaimType = "Health"
	ClaimLiability ClaimType = "Liability"
)

var ClaimTypes = []ClaimType{ClaimAuto, ClaimProperty, ClaimHealth, ClaimLiability}

type DrivingRecord string

const (
	DrivingClean           DrivingRecord = "Clean"
	DrivingMinorViolations DrivingRecord = "Minor violations"
	DrivingMajorViolations DrivingRecord = "Major violations"
)

var DrivingRecords = []DrivingRecord{DrivingClean, DrivingMinorViolations, DrivingMajorViolations}

// Occupations is the catalog the intake form offers.
var Occupations = []string{
	"Software Engineer",
	"Teacher",
	"Construction Worker",
	"Doctor",
	"Nurse",
	"Lawyer",
	"Sales Manager",
	"Pilot",
	"Firefighter",
	"Police Officer",
	"Truck Driver",
	"Electrician",
	"Roofer",
	"Stunt Person",
	"Accountant",
	"Retail Associate",
}

// Profile is the applicant as submitted on the intake form.
type Profile struct {
	Name             string            `json:"name" yaml:"name"`
	Age              int               `json:"age" yaml:"age"`
	Occupation       string            `json:"occupation" yaml:"occupation"`
	Location         string            `json:"location" yaml:"location"`
	CoverageAmount   int64             `json:"coverage_amount" yaml:"coverage_amount"`
	HealthStatus     HealthStatus      `json:"health_status" yaml:"health_status"`
	LifestyleFactors []LifestyleFactor `json:"lifestyle_factors" yaml:"lifestyle_factors"`
}

// HasLifestyle reports whether f is among the applicant's lifestyle factors.
func (p Profile) HasLifestyle(f LifestyleFactor) bool {
	for _, l := range p.LifestyleFactors {
		if l == f {
			return true
		}
	}
	return false
}

// LifestyleList renders the lifestyle set for prompts and text output.
func (p Profile) LifestyleList() string {
	if len(p.LifestyleFactors) == 0 {
		return "None reported"
	}
	parts := make([]string, len(p.LifestyleFactors))
	for i, l := range p.LifestyleFactors {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

type Claim struct {
	Type   ClaimType `json:"type" yaml:"type"`
	Amount int64     `json:"amount" yaml:"amount"`
	Date   Date      `json:"date" yaml:"date"`
}

// Claims is an applicant's claims history. Order carries no meaning.
type Claims []Claim

func (c Claims) Count() int { return len(c) }

func (c Claims) TotalAmount() int64 {
	var total int64
	for _, cl := range c {
		total += cl.Amount
	}
	return total
}

// Types returns the distinct claim types in first-seen order.
func (c Claims) Types() []ClaimType {
	seen := make(map[ClaimType]bool)
	var out []ClaimType
	for _, cl := range c {
		if !seen[cl.Type] {
			seen[cl.Type] = true
			out = append(out, cl.Type)
		}
	}
	return out
}

type ExternalReports struct {
	CreditScore    int           `json:"credit_score" yaml:"credit_score"`
	CriminalRecord bool          `json:"criminal_record" yaml:"criminal_record"`
	DrivingRecord  DrivingRecord `json:"driving_record" yaml:"driving_record"`
}

// Application bundles the three inputs of one analysis run.
type Application struct {
	Applicant Profile         `json:"applicant" yaml:"applicant"`
	Claims    Claims          `json:"claims" yaml:"claims"`
	Reports   ExternalReports `json:"external_reports" yaml:"external_reports"`
}
