package valueobject

import "fmt"

// ReviewStatus is the workflow state of an application: approved, sent to
// manual review, or flagged.
type ReviewStatus struct {
	value string
}

var (
	ReviewStatusApproved = ReviewStatus{value: "approved"}
	ReviewStatusReview   = ReviewStatus{value: "review"}
	ReviewStatusFlagged  = ReviewStatus{value: "flagged"}
)

// ReviewStatusFromString reconstructs a ReviewStatus from its string representation.
func ReviewStatusFromString(s string) (ReviewStatus, error) {
	switch s {
	case "approved":
		return ReviewStatusApproved, nil
	case "review":
		return ReviewStatusReview, nil
	case "flagged":
		return ReviewStatusFlagged, nil
	default:
		return ReviewStatus{}, fmt.Errorf("invalid review status: %s", s)
	}
}

// ReviewStatusFromScore derives the status implied by a final score. It uses
// the same thresholds as RiskLevelFromScore so the two always agree.
func ReviewStatusFromScore(score int) ReviewStatus {
	switch {
	case score >= HighRiskThreshold:
		return ReviewStatusFlagged
	case score >= MediumRiskThreshold:
		return ReviewStatusReview
	default:
		return ReviewStatusApproved
	}
}

func (s ReviewStatus) String() string {
	return s.value
}

func (s ReviewStatus) IsZero() bool {
	return s.value == ""
}

func (s ReviewStatus) Equal(other ReviewStatus) bool {
	return s.value == other.value
}
