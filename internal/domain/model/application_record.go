package model

import (
	"slices"
	"strings"
	"unicode"

	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// ApplicationRecord is the applicant-supplied data for a vendor or client.
// Empty strings and zero value objects mean the field was not provided.
type ApplicationRecord struct {
	EntityType valueobject.EntityType

	CompanyName string
	ContactName string
	Email       string
	Phone       string
	TaxID       string
	Address     string
	City        string
	State       string
	ZipCode     string
	Country     string
	Industry    string
	Website     string

	AnnualRevenue string
	EmployeeCount string
	BusinessType  string

	// Vendor only.
	ServiceType              string
	ContractValue            string
	ComplianceCertifications []string

	// Client only.
	ClientTier     string
	ExpectedVolume string
	PaymentTerms   string

	HasEncryption      valueobject.ControlAnswer
	HasAccessControl   valueobject.ControlAnswer
	HasLogging         valueobject.ControlAnswer
	HasNetworkSecurity valueobject.ControlAnswer

	Description string
}

// Clone returns a deep copy of the record.
func (r ApplicationRecord) Clone() ApplicationRecord {
	r.ComplianceCertifications = slices.Clone(r.ComplianceCertifications)
	return r
}

// DistinctCertifications returns the non-blank certifications with duplicates
// removed, in first-seen order.
func (r ApplicationRecord) DistinctCertifications() []string {
	seen := make(map[string]struct{}, len(r.ComplianceCertifications))
	out := make([]string, 0, len(r.ComplianceCertifications))
	for _, c := range r.ComplianceCertifications {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// NormalizedEmail is the lowercased email used for duplicate matching.
func (r ApplicationRecord) NormalizedEmail() string {
	return strings.ToLower(r.Email)
}

// TaxIDDigits is the tax ID with every non-digit removed.
func (r ApplicationRecord) TaxIDDigits() string {
	return strings.Map(func(c rune) rune {
		if c >= '0' && c <= '9' {
			return c
		}
		return -1
	}, r.TaxID)
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(c rune) bool { return !unicode.IsSpace(c) }) < 0
}
