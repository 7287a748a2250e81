package applicant

import "time"

// Sample is a canned application used by the demo UI and CLI.
type Sample struct {
	Key         string      `json:"key"`
	Description string      `json:"description"`
	Application Application `json:"application"`
}

// Samples returns the low, medium and high risk example applications.
func Samples() []Sample {
	return []Sample{
		{
			Key:         "low",
			Description: "Low risk profile: young professional, excellent health, no claims",
			Application: Application{
				Applicant: Profile{
					Name:             "Sarah Johnson",
					Age:              32,
					Occupation:       "Teacher",
					Location:         "Portland, OR",
					CoverageAmount:   300000,
					HealthStatus:     HealthExcellent,
					LifestyleFactors: []LifestyleFactor{LifestyleNonSmoker, LifestyleRegularExercise},
				},
				Claims: Claims{},
				Reports: ExternalReports{
					CreditScore:   780,
					DrivingRecord: DrivingClean,
				},
			},
		},
		{
			Key:         "medium",
			Description: "Medium risk profile: manual trade, fair health, two prior claims",
			Application: Application{
				Applicant: Profile{
					Name:             "Mike Davis",
					Age:              45,
					Occupation:       "Construction Worker",
					Location:         "Houston, TX",
					CoverageAmount:   500000,
					HealthStatus:     HealthFair,
					LifestyleFactors: []LifestyleFactor{LifestyleNonSmoker},
				},
				Claims: Claims{
					{Type: ClaimAuto, Amount: 6000, Date: NewDate(2023, time.March, 14)},
					{Type: ClaimProperty, Amount: 6000, Date: NewDate(2024, time.August, 2)},
				},
				Reports: ExternalReports{
					CreditScore:   650,
					DrivingRecord: DrivingMinorViolations,
				},
			},
		},
		{
			Key:         "high",
			Description: "High risk profile: senior pilot, poor health, frequent claims, criminal record",
			Application: Application{
				Applicant: Profile{
					Name:             "Robert Wilson",
					Age:              68,
					Occupation:       "Pilot",
					Location:         "Miami, FL",
					CoverageAmount:   2000000,
					HealthStatus:     HealthPoor,
					LifestyleFactors: []LifestyleFactor{LifestyleSmoker, LifestyleHighRiskSports},
				},
				Claims: Claims{
					{Type: ClaimHealth, Amount: 12000, Date: NewDate(2021, time.January, 20)},
					{Type: ClaimAuto, Amount: 8000, Date: NewDate(2021, time.November, 3)},
					{Type: ClaimHealth, Amount: 10000, Date: NewDate(2022, time.June, 18)},
					{Type: ClaimLiability, Amount: 9000, Date: NewDate(2023, time.April, 9)},
					{Type: ClaimProperty, Amount: 6000, Date: NewDate(2024, time.February, 27)},
				},
				Reports: ExternalReports{
					CreditScore:    550,
					CriminalRecord: true,
					DrivingRecord:  DrivingMajorViolations,
				},
			},
		},
	}
}

// SampleByKey returns the sample with the given key.
func SampleByKey(key string) (Sample, bool) {
	for _, s := range Samples() {
		if s.Key == key {
			return s, true
		}
	}
	return Sample{}, false
}
