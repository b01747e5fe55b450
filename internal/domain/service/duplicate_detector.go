package service

import (
	"fmt"

	"github.com/onboardiq/onboardiq/internal/domain/model"
)

// ExistingRecord is a previously stored application with its identifier.
type ExistingRecord struct {
	ID     string
	Record model.ApplicationRecord
}

// DuplicateDetector compares a candidate against stored applications by
// email and tax ID. It is stateless and safe for concurrent use.
type DuplicateDetector struct{}

func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{}
}

// FindDuplicates returns one warning per matching identifier per existing
// record, in the order of existing. Records without an ID are skipped.
func (d *DuplicateDetector) FindDuplicates(candidate *model.ApplicationRecord, existing []ExistingRecord) ([]model.DuplicateWarning, error) {
	if candidate == nil {
		return nil, fmt.Errorf("%w: candidate record is required", model.ErrInvalidArgument)
	}

	email := candidate.NormalizedEmail()
	taxDigits := candidate.TaxIDDigits()

	warnings := make([]model.DuplicateWarning, 0)
	for _, e := range existing {
		if e.ID == "" {
			continue
		}

		if email != "" && e.Record.Email != "" && e.Record.NormalizedEmail() == email {
			warnings = append(warnings, model.DuplicateWarning{
				Type:       model.DuplicateEmail,
				ExistingID: e.ID,
				Message:    "Email already exists in system",
			})
		}

		// Empty digit forms never match: two records without a tax ID are
		// not duplicates of each other.
		if taxDigits != "" && e.Record.TaxIDDigits() == taxDigits {
			warnings = append(warnings, model.DuplicateWarning{
				Type:       model.DuplicateTaxID,
				ExistingID: e.ID,
				Message:    "Tax ID already exists in system",
			})
		}
	}
	return warnings, nil
}
