package model

import (
	"slices"
	"time"

	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// Risk factor types, one per scoring rule that can explain itself.
const (
	FactorMissingFields  = "missing_fields"
	FactorVendorSpecific = "vendor_specific"
	FactorClientSpecific = "client_specific"
	FactorSecurity       = "security"
	FactorCompliance     = "compliance"
	FactorBusinessInfo   = "business_info"
	FactorFraud          = "fraud"
	FactorValidation     = "validation"
)

// RiskFactor is one human-readable reason contributing to a score.
type RiskFactor struct {
	Type     string
	Severity valueobject.Severity
	Message  string
	Fields   []string
}

// RiskAssessment is the scorer's verdict on a single record.
type RiskAssessment struct {
	Score      int
	Level      valueobject.RiskLevel
	Status     valueobject.ReviewStatus
	Factors    []RiskFactor
	AssessedAt time.Time
}

// NewRiskAssessment derives level and status from score.
func NewRiskAssessment(score int, factors []RiskFactor, assessedAt time.Time) RiskAssessment {
	if factors == nil {
		factors = []RiskFactor{}
	}
	return RiskAssessment{
		Score:      score,
		Level:      valueobject.RiskLevelFromScore(score),
		Status:     valueobject.ReviewStatusFromScore(score),
		Factors:    factors,
		AssessedAt: assessedAt,
	}
}

// FactorTypes lists the factor types in emission order.
func (a RiskAssessment) FactorTypes() []string {
	types := make([]string, 0, len(a.Factors))
	for _, f := range a.Factors {
		types = append(types, f.Type)
	}
	return types
}

func (a RiskAssessment) clone() RiskAssessment {
	factors := make([]RiskFactor, len(a.Factors))
	for i, f := range a.Factors {
		f.Fields = slices.Clone(f.Fields)
		factors[i] = f
	}
	a.Factors = factors
	return a
}

// Duplicate warning types.
const (
	DuplicateEmail = "email"
	DuplicateTaxID = "taxId"
)

// DuplicateWarning reports that an existing submission shares an identifier
// with the candidate.
type DuplicateWarning struct {
	Type       string
	ExistingID string
	Message    string
}
