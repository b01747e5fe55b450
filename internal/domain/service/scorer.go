package service

import "github.com/onboardiq/onboardiq/internal/domain/model"

// Scorer is implemented by RiskScorer. Use cases depend on this interface.
type Scorer interface {
	Assess(record *model.ApplicationRecord) (model.RiskAssessment, error)
}

// Detector is implemented by DuplicateDetector.
type Detector interface {
	FindDuplicates(candidate *model.ApplicationRecord, existing []ExistingRecord) ([]model.DuplicateWarning, error)
}

var (
	_ Scorer   = (*RiskScorer)(nil)
	_ Detector = (*DuplicateDetector)(nil)
)
