package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/onboardiq/onboardiq/internal/domain/model"
)

// maxScore caps the accumulated points before rounding.
var maxScore = decimal.NewFromInt(100)

// RuleResult is the contribution of a single rule.
type RuleResult struct {
	Points  decimal.Decimal
	Factors []model.RiskFactor
}

// Rule is one independent evaluator in the scoring pipeline.
type Rule struct {
	Name     string
	Evaluate func(record *model.ApplicationRecord) RuleResult
}

// RiskScorer computes a RiskAssessment by folding an ordered list of rules.
// It holds no mutable state and is safe for concurrent use.
type RiskScorer struct {
	rules []Rule
	now   func() time.Time
}

// NewRiskScorer creates a scorer with the standard onboarding rules.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{
		rules: DefaultRules(),
		now:   time.Now,
	}
}

// NewRiskScorerWithClock creates a scorer whose assessment timestamps come
// from now.
func NewRiskScorerWithClock(now func() time.Time) *RiskScorer {
	s := NewRiskScorer()
	s.now = now
	return s
}

// Assess scores a record. Factors are returned in rule order; the only
// failure is a nil record.
func (s *RiskScorer) Assess(record *model.ApplicationRecord) (model.RiskAssessment, error) {
	if record == nil {
		return model.RiskAssessment{}, fmt.Errorf("%w: application record is required", model.ErrInvalidArgument)
	}

	total := decimal.Zero
	factors := make([]model.RiskFactor, 0)
	for _, rule := range s.rules {
		result := rule.Evaluate(record)
		total = total.Add(result.Points)
		factors = append(factors, result.Factors...)
	}

	return model.NewRiskAssessment(FinalScore(total), factors, s.now().UTC()), nil
}

// FinalScore caps points at 100 and rounds half away from zero.
func FinalScore(points decimal.Decimal) int {
	return int(decimal.Min(points, maxScore).Round(0).IntPart())
}
