package model

import "errors"

var (
	// ErrInvalidArgument is returned for absent or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSubmissionNotFound is returned when no submission has the requested ID.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrConcurrentUpdate is returned when a submission changed between read and write.
	ErrConcurrentUpdate = errors.New("submission was modified concurrently")
)
