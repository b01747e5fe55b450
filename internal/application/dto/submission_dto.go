package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitApplicationRequest stores a new application.
type SubmitApplicationRequest struct {
	Application ApplicationInput
}

// GetSubmissionRequest fetches a submission by ID.
type GetSubmissionRequest struct {
	ID uuid.UUID
}

// ListSubmissionsRequest filters and pages the submission list. Empty Status
// lists all statuses and empty Sort means newest first.
type ListSubmissionsRequest struct {
	Status string
	Sort   string
	Limit  int
	Offset int
}

// UpdateSubmissionRequest edits a submission and triggers reassessment.
type UpdateSubmissionRequest struct {
	ID      uuid.UUID
	Changes ApplicationPatch
}

// OverrideStatusRequest sets the review status by hand.
type OverrideStatusRequest struct {
	ID         uuid.UUID
	Status     string
	ReviewerID string
}

// DeleteSubmissionRequest removes a submission.
type DeleteSubmissionRequest struct {
	ID uuid.UUID
}

// SubmissionResponse is the stored shape of an application.
type SubmissionResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Application      ApplicationInput           `json:"application"`
	RiskAssessment   RiskAssessmentResponse     `json:"riskAssessment"`
	Duplicates       []DuplicateWarningResponse `json:"duplicates"`
	Status           string                     `json:"status"`
	StatusOverridden bool                       `json:"statusOverridden"`
	Version          int                        `json:"version"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
}

// ListSubmissionsResponse is one page of submissions.
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	TotalCount  int                  `json:"totalCount"`
}

// StatisticsResponse summarizes all stored submissions.
type StatisticsResponse struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"byStatus"`
	ByEntityType     map[string]int `json:"byEntityType"`
	ByRiskLevel      map[string]int `json:"byRiskLevel"`
	AverageRiskScore int            `json:"averageRiskScore"`
}
