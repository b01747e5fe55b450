package dto

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationInput is an onboarding application as submitted by a client.
// Field names match the onboarding form.
type ApplicationInput struct {
	EntityType string `json:"entityType" yaml:"entityType"`

	CompanyName string `json:"companyName" yaml:"companyName"`
	ContactName string `json:"contactName" yaml:"contactName"`
	Email       string `json:"email" yaml:"email"`
	Phone       string `json:"phone" yaml:"phone"`
	TaxID       string `json:"taxId" yaml:"taxId"`
	Address     string `json:"address" yaml:"address"`
	City        string `json:"city" yaml:"city"`
	State       string `json:"state" yaml:"state"`
	ZipCode     string `json:"zipCode" yaml:"zipCode"`
	Country     string `json:"country" yaml:"country"`
	Industry    string `json:"industry" yaml:"industry"`
	Website     string `json:"website" yaml:"website"`

	AnnualRevenue string `json:"annualRevenue" yaml:"annualRevenue"`
	EmployeeCount string `json:"employeeCount" yaml:"employeeCount"`
	BusinessType  string `json:"businessType" yaml:"businessType"`

	ServiceType              string   `json:"serviceType" yaml:"serviceType"`
	ContractValue            string   `json:"contractValue" yaml:"contractValue"`
	ComplianceCertifications []string `json:"complianceCertifications" yaml:"complianceCertifications"`

	ClientTier     string `json:"clientTier" yaml:"clientTier"`
	ExpectedVolume string `json:"expectedVolume" yaml:"expectedVolume"`
	PaymentTerms   string `json:"paymentTerms" yaml:"paymentTerms"`

	HasEncryption      string `json:"hasEncryption" yaml:"hasEncryption"`
	HasAccessControl   string `json:"hasAccessControl" yaml:"hasAccessControl"`
	HasLogging         string `json:"hasLogging" yaml:"hasLogging"`
	HasNetworkSecurity string `json:"hasNetworkSecurity" yaml:"hasNetworkSecurity"`

	Description string `json:"description" yaml:"description"`
}

// ApplicationPatch carries a partial edit. Nil fields are left unchanged.
type ApplicationPatch struct {
	EntityType *string `json:"entityType,omitempty"`

	CompanyName *string `json:"companyName,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	TaxID       *string `json:"taxId,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	ZipCode     *string `json:"zipCode,omitempty"`
	Country     *string `json:"country,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Website     *string `json:"website,omitempty"`

	AnnualRevenue *string `json:"annualRevenue,omitempty"`
	EmployeeCount *string `json:"employeeCount,omitempty"`
	BusinessType  *string `json:"businessType,omitempty"`

	ServiceType              *string   `json:"serviceType,omitempty"`
	ContractValue            *string   `json:"contractValue,omitempty"`
	ComplianceCertifications *[]string `json:"complianceCertifications,omitempty"`

	ClientTier     *string `json:"clientTier,omitempty"`
	ExpectedVolume *string `json:"expectedVolume,omitempty"`
	PaymentTerms   *string `json:"paymentTerms,omitempty"`

	HasEncryption      *string `json:"hasEncryption,omitempty"`
	HasAccessControl   *string `json:"hasAccessControl,omitempty"`
	HasLogging         *string `json:"hasLogging,omitempty"`
	HasNetworkSecurity *string `json:"hasNetworkSecurity,omitempty"`

	Description *string `json:"description,omitempty"`
}

// RiskFactorResponse is one explained contribution to a risk score.
type RiskFactorResponse struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Fields   []string `json:"fields,omitempty"`
}

// RiskAssessmentResponse is the scorer's verdict.
type RiskAssessmentResponse struct {
	Score      int                  `json:"score"`
	Level      string               `json:"level"`
	Status     string               `json:"status"`
	Factors    []RiskFactorResponse `json:"factors"`
	AssessedAt time.Time            `json:"timestamp"`
}

// DuplicateWarningResponse reports a prior submission sharing an identifier.
type DuplicateWarningResponse struct {
	Type       string `json:"type"`
	ExistingID string `json:"existingId"`
	Message    string `json:"message"`
}

// AssessApplicationRequest asks for a preview assessment. ExcludeID leaves a
// stored submission out of the duplicate check, for previews while editing.
type AssessApplicationRequest struct {
	Application ApplicationInput
	ExcludeID   uuid.UUID
}

// AssessmentPreviewResponse is the unsaved assessment of an application.
type AssessmentPreviewResponse struct {
	Assessment RiskAssessmentResponse     `json:"riskAssessment"`
	Duplicates []DuplicateWarningResponse `json:"duplicates"`
}
