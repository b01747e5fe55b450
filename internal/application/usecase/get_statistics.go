package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// GetStatistics aggregates counts and the average score over all submissions.
type GetStatistics struct {
	repo port.SubmissionRepository
}

func NewGetStatistics(repo port.SubmissionRepository) *GetStatistics {
	return &GetStatistics{repo: repo}
}

// Execute computes the statistics. Status counts use the effective status,
// so manual overrides are reflected.
func (uc *GetStatistics) Execute(ctx context.Context) (dto.StatisticsResponse, error) {
	submissions, _, err := uc.repo.List(ctx, port.ListQuery{Sort: port.SortOldest})
	if err != nil {
		return dto.StatisticsResponse{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	resp := dto.StatisticsResponse{
		Total: len(submissions),
		ByStatus: map[string]int{
			valueobject.ReviewStatusApproved.String(): 0,
			valueobject.ReviewStatusReview.String():   0,
			valueobject.ReviewStatusFlagged.String():  0,
		},
		ByEntityType: map[string]int{
			valueobject.EntityTypeVendor.String(): 0,
			valueobject.EntityTypeClient.String(): 0,
		},
		ByRiskLevel: map[string]int{
			valueobject.RiskLevelLow.String():    0,
			valueobject.RiskLevelMedium.String(): 0,
			valueobject.RiskLevelHigh.String():   0,
		},
	}
	if len(submissions) == 0 {
		return resp, nil
	}

	sum := decimal.Zero
	for _, s := range submissions {
		a := s.Assessment()
		resp.ByStatus[s.Status().String()]++
		resp.ByEntityType[s.EntityType().String()]++
		resp.ByRiskLevel[a.Level.String()]++
		sum = sum.Add(decimal.NewFromInt(int64(a.Score)))
	}
	resp.AverageRiskScore = int(sum.Div(decimal.NewFromInt(int64(len(submissions)))).Round(0).IntPart())

	return resp, nil
}
