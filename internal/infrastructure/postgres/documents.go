package postgres

import (
	"fmt"
	"time"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// recordDocument is the JSONB shape of an application record.
type recordDocument struct {
	EntityType               string   `json:"entity_type"`
	CompanyName              string   `json:"company_name"`
	ContactName              string   `json:"contact_name"`
	Email                    string   `json:"email"`
	Phone                    string   `json:"phone"`
	TaxID                    string   `json:"tax_id"`
	Address                  string   `json:"address"`
	City                     string   `json:"city"`
	State                    string   `json:"state"`
	ZipCode                  string   `json:"zip_code"`
	Country                  string   `json:"country"`
	Industry                 string   `json:"industry"`
	Website                  string   `json:"website"`
	AnnualRevenue            string   `json:"annual_revenue"`
	EmployeeCount            string   `json:"employee_count"`
	BusinessType             string   `json:"business_type"`
	ServiceType              string   `json:"service_type"`
	ContractValue            string   `json:"contract_value"`
	ComplianceCertifications []string `json:"compliance_certifications"`
	ClientTier               string   `json:"client_tier"`
	ExpectedVolume           string   `json:"expected_volume"`
	PaymentTerms             string   `json:"payment_terms"`
	HasEncryption            string   `json:"has_encryption"`
	HasAccessControl         string   `json:"has_access_control"`
	HasLogging               string   `json:"has_logging"`
	HasNetworkSecurity       string   `json:"has_network_security"`
	Description              string   `json:"description"`
}

type factorDocument struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Fields   []string `json:"fields"`
}

type duplicateDocument struct {
	Type       string `json:"type"`
	ExistingID string `json:"existing_id"`
	Message    string `json:"message"`
}

func toRecordDocument(r model.ApplicationRecord) recordDocument {
	certs := r.ComplianceCertifications
	if certs == nil {
		certs = []string{}
	}
	return recordDocument{
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
		ComplianceCertifications: certs,
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

func (d recordDocument) toModel() (model.ApplicationRecord, error) {
	entityType, err := valueobject.EntityTypeFromString(d.EntityType)
	if err != nil {
		return model.ApplicationRecord{}, fmt.Errorf("invalid entity type in DB: %w", err)
	}

	answers := make([]valueobject.ControlAnswer, 4)
	for i, raw := range []string{d.HasEncryption, d.HasAccessControl, d.HasLogging, d.HasNetworkSecurity} {
		answers[i], err = valueobject.ControlAnswerFromString(raw)
		if err != nil {
			return model.ApplicationRecord{}, fmt.Errorf("invalid control answer in DB: %w", err)
		}
	}

	return model.ApplicationRecord{
		EntityType:               entityType,
		CompanyName:              d.CompanyName,
		ContactName:              d.ContactName,
		Email:                    d.Email,
		Phone:                    d.Phone,
		TaxID:                    d.TaxID,
		Address:                  d.Address,
		City:                     d.City,
		State:                    d.State,
		ZipCode:                  d.ZipCode,
		Country:                  d.Country,
		Industry:                 d.Industry,
		Website:                  d.Website,
		AnnualRevenue:            d.AnnualRevenue,
		EmployeeCount:            d.EmployeeCount,
		BusinessType:             d.BusinessType,
		ServiceType:              d.ServiceType,
		ContractValue:            d.ContractValue,
		ComplianceCertifications: d.ComplianceCertifications,
		ClientTier:               d.ClientTier,
		ExpectedVolume:           d.ExpectedVolume,
		PaymentTerms:             d.PaymentTerms,
		HasEncryption:            answers[0],
		HasAccessControl:         answers[1],
		HasLogging:               answers[2],
		HasNetworkSecurity:       answers[3],
		Description:              d.Description,
	}, nil
}

func toFactorDocuments(factors []model.RiskFactor) []factorDocument {
	out := make([]factorDocument, 0, len(factors))
	for _, f := range factors {
		fields := f.Fields
		if fields == nil {
			fields = []string{}
		}
		out = append(out, factorDocument{
			Type:     f.Type,
			Severity: f.Severity.String(),
			Message:  f.Message,
			Fields:   fields,
		})
	}
	return out
}

func factorsToModel(docs []factorDocument) ([]model.RiskFactor, error) {
	out := make([]model.RiskFactor, 0, len(docs))
	for _, d := range docs {
		severity, err := valueobject.SeverityFromString(d.Severity)
		if err != nil {
			return nil, fmt.Errorf("invalid factor severity in DB: %w", err)
		}
		out = append(out, model.RiskFactor{
			Type:     d.Type,
			Severity: severity,
			Message:  d.Message,
			Fields:   d.Fields,
		})
	}
	return out, nil
}

func toDuplicateDocuments(warnings []model.DuplicateWarning) []duplicateDocument {
	out := make([]duplicateDocument, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, duplicateDocument(w))
	}
	return out
}

func duplicatesToModel(docs []duplicateDocument) []model.DuplicateWarning {
	out := make([]model.DuplicateWarning, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.DuplicateWarning(d))
	}
	return out
}

// assessmentFromColumns rebuilds the computed assessment. Its status is a
// pure function of the score; the stored status column is the effective one.
func assessmentFromColumns(score int, level string, factors []model.RiskFactor, assessedAt time.Time) (model.RiskAssessment, error) {
	riskLevel, err := valueobject.RiskLevelFromString(level)
	if err != nil {
		return model.RiskAssessment{}, fmt.Errorf("invalid risk level in DB: %w", err)
	}
	return model.RiskAssessment{
		Score:      score,
		Level:      riskLevel,
		Status:     valueobject.ReviewStatusFromScore(score),
		Factors:    factors,
		AssessedAt: assessedAt.UTC(),
	}, nil
}
