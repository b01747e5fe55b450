package usecase

import (
	"context"
	"fmt"

	"github.com/onboardiq/onboardiq/internal/application/dto"
	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/port"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// ListSubmissions is the use case behind the review dashboard.
type ListSubmissions struct {
	repo port.SubmissionRepository
}

func NewListSubmissions(repo port.SubmissionRepository) *ListSubmissions {
	return &ListSubmissions{repo: repo}
}

// Execute returns one page of submissions filtered by effective status.
func (uc *ListSubmissions) Execute(ctx context.Context, req dto.ListSubmissionsRequest) (dto.ListSubmissionsResponse, error) {
	query, err := toListQuery(req)
	if err != nil {
		return dto.ListSubmissionsResponse{}, err
	}

	submissions, total, err := uc.repo.List(ctx, query)
	if err != nil {
		return dto.ListSubmissionsResponse{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	resp := dto.ListSubmissionsResponse{
		Submissions: make([]dto.SubmissionResponse, 0, len(submissions)),
		TotalCount:  total,
	}
	for _, s := range submissions {
		resp.Submissions = append(resp.Submissions, dto.FromModel(s))
	}
	return resp, nil
}

func toListQuery(req dto.ListSubmissionsRequest) (port.ListQuery, error) {
	var query port.ListQuery

	if req.Status != "" && req.Status != "all" {
		status, err := valueobject.ReviewStatusFromString(req.Status)
		if err != nil {
			return port.ListQuery{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
		}
		query.Status = status
	}

	sort, err := port.ParseSortOrder(req.Sort)
	if err != nil {
		return port.ListQuery{}, err
	}
	query.Sort = sort

	if req.Limit < 0 || req.Offset < 0 {
		return port.ListQuery{}, fmt.Errorf("%w: limit and offset must not be negative", model.ErrInvalidArgument)
	}
	query.Limit = req.Limit
	query.Offset = req.Offset

	return query, nil
}
