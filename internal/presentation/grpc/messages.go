package grpc

import "github.com/onboardiq/onboardiq/internal/application/dto"

// AssessApplicationRequest scores an application without storing it.
// ExcludeID, when set, ignores that submission during duplicate detection.
type AssessApplicationRequest struct {
	Application dto.ApplicationInput `json:"application"`
	ExcludeID   string               `json:"excludeId,omitempty"`
}

// SubmitApplicationRequest stores an application.
type SubmitApplicationRequest struct {
	Application dto.ApplicationInput `json:"application"`
}

// SubmissionReply wraps a single submission.
type SubmissionReply struct {
	Submission dto.SubmissionResponse `json:"submission"`
}

// GetSubmissionRequest fetches one submission.
type GetSubmissionRequest struct {
	ID string `json:"id"`
}

// ListSubmissionsRequest filters and pages submissions.
type ListSubmissionsRequest struct {
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
	Limit  int32  `json:"limit,omitempty"`
	Offset int32  `json:"offset,omitempty"`
}

// UpdateSubmissionRequest edits a submission.
type UpdateSubmissionRequest struct {
	ID      string               `json:"id"`
	Changes dto.ApplicationPatch `json:"changes"`
}

// OverrideStatusRequest sets a submission's review status by hand. The
// reviewer is taken from the caller's token.
type OverrideStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// DeleteSubmissionRequest removes a submission.
type DeleteSubmissionRequest struct {
	ID string `json:"id"`
}

// DeleteSubmissionResponse is empty.
type DeleteSubmissionResponse struct{}

// GetStatisticsRequest is empty.
type GetStatisticsRequest struct{}
