package dto

import (
	"errors"
	"fmt"
	"slices"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// ToRecord converts the input into a domain record. Unknown entity types or
// control answers fail with model.ErrInvalidArgument.
func (in ApplicationInput) ToRecord() (model.ApplicationRecord, error) {
	entityType, err := valueobject.EntityTypeFromString(in.EntityType)
	if err != nil {
		return model.ApplicationRecord{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}

	var errs []error
	answer := func(field, s string) valueobject.ControlAnswer {
		a, err := valueobject.ControlAnswerFromString(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return a
	}

	record := model.ApplicationRecord{
		EntityType:               entityType,
		CompanyName:              in.CompanyName,
		ContactName:              in.ContactName,
		Email:                    in.Email,
		Phone:                    in.Phone,
		TaxID:                    in.TaxID,
		Address:                  in.Address,
		City:                     in.City,
		State:                    in.State,
		ZipCode:                  in.ZipCode,
		Country:                  in.Country,
		Industry:                 in.Industry,
		Website:                  in.Website,
		AnnualRevenue:            in.AnnualRevenue,
		EmployeeCount:            in.EmployeeCount,
		BusinessType:             in.BusinessType,
		ServiceType:              in.ServiceType,
		ContractValue:            in.ContractValue,
		ComplianceCertifications: slices.Clone(in.ComplianceCertifications),
		ClientTier:               in.ClientTier,
		ExpectedVolume:           in.ExpectedVolume,
		PaymentTerms:             in.PaymentTerms,
		HasEncryption:            answer("hasEncryption", in.HasEncryption),
		HasAccessControl:         answer("hasAccessControl", in.HasAccessControl),
		HasLogging:               answer("hasLogging", in.HasLogging),
		HasNetworkSecurity:       answer("hasNetworkSecurity", in.HasNetworkSecurity),
		Description:              in.Description,
	}
	if len(errs) > 0 {
		return model.ApplicationRecord{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, errors.Join(errs...))
	}
	return record, nil
}

// FromRecord converts a domain record back into its input form.
func FromRecord(r model.ApplicationRecord) ApplicationInput {
	return ApplicationInput{
		EntityType:               r.EntityType.String(),
		CompanyName:              r.CompanyName,
		ContactName:              r.ContactName,
		Email:                    r.Email,
		Phone:                    r.Phone,
		TaxID:                    r.TaxID,
		Address:                  r.Address,
		City:                     r.City,
		State:                    r.State,
		ZipCode:                  r.ZipCode,
		Country:                  r.Country,
		Industry:                 r.Industry,
		Website:                  r.Website,
		AnnualRevenue:            r.AnnualRevenue,
		EmployeeCount:            r.EmployeeCount,
		BusinessType:             r.BusinessType,
		ServiceType:              r.ServiceType,
		ContractValue:            r.ContractValue,
		ComplianceCertifications: slices.Clone(r.ComplianceCertifications),
		ClientTier:               r.ClientTier,
		ExpectedVolume:           r.ExpectedVolume,
		PaymentTerms:             r.PaymentTerms,
		HasEncryption:            r.HasEncryption.String(),
		HasAccessControl:         r.HasAccessControl.String(),
		HasLogging:               r.HasLogging.String(),
		HasNetworkSecurity:       r.HasNetworkSecurity.String(),
		Description:              r.Description,
	}
}

// Apply overlays the non-nil patch fields onto in.
func (p ApplicationPatch) Apply(in ApplicationInput) ApplicationInput {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&in.EntityType, p.EntityType)
	set(&in.CompanyName, p.CompanyName)
	set(&in.ContactName, p.ContactName)
	set(&in.Email, p.Email)
	set(&in.Phone, p.Phone)
	set(&in.TaxID, p.TaxID)
	set(&in.Address, p.Address)
	set(&in.City, p.City)
	set(&in.State, p.State)
	set(&in.ZipCode, p.ZipCode)
	set(&in.Country, p.Country)
	set(&in.Industry, p.Industry)
	set(&in.Website, p.Website)
	set(&in.AnnualRevenue, p.AnnualRevenue)
	set(&in.EmployeeCount, p.EmployeeCount)
	set(&in.BusinessType, p.BusinessType)
	set(&in.ServiceType, p.ServiceType)
	set(&in.ContractValue, p.ContractValue)
	set(&in.ClientTier, p.ClientTier)
	set(&in.ExpectedVolume, p.ExpectedVolume)
	set(&in.PaymentTerms, p.PaymentTerms)
	set(&in.HasEncryption, p.HasEncryption)
	set(&in.HasAccessControl, p.HasAccessControl)
	set(&in.HasLogging, p.HasLogging)
	set(&in.HasNetworkSecurity, p.HasNetworkSecurity)
	set(&in.Description, p.Description)
	if p.ComplianceCertifications != nil {
		in.ComplianceCertifications = slices.Clone(*p.ComplianceCertifications)
	}
	return in
}

// FromAssessment converts a RiskAssessment to its response form.
func FromAssessment(a model.RiskAssessment) RiskAssessmentResponse {
	factors := make([]RiskFactorResponse, 0, len(a.Factors))
	for _, f := range a.Factors {
		factors = append(factors, RiskFactorResponse{
			Type:     f.Type,
			Severity: f.Severity.String(),
			Message:  f.Message,
			Fields:   slices.Clone(f.Fields),
		})
	}
	return RiskAssessmentResponse{
		Score:      a.Score,
		Level:      a.Level.String(),
		Status:     a.Status.String(),
		Factors:    factors,
		AssessedAt: a.AssessedAt,
	}
}

// FromDuplicates converts duplicate warnings to their response form.
func FromDuplicates(warnings []model.DuplicateWarning) []DuplicateWarningResponse {
	out := make([]DuplicateWarningResponse, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, DuplicateWarningResponse{
			Type:       w.Type,
			ExistingID: w.ExistingID,
			Message:    w.Message,
		})
	}
	return out
}

// FromModel converts a Submission aggregate to a SubmissionResponse.
func FromModel(s *model.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:               s.ID(),
		Application:      FromRecord(s.Record()),
		RiskAssessment:   FromAssessment(s.Assessment()),
		Duplicates:       FromDuplicates(s.Duplicates()),
		Status:           s.Status().String(),
		StatusOverridden: s.StatusOverridden(),
		Version:          s.Version(),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}
