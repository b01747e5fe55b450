package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/onboardiq/onboardiq/internal/domain/model"
	"github.com/onboardiq/onboardiq/internal/domain/valueobject"
)

// Rule weights.
var (
	missingFieldsWeight  = decimal.NewFromInt(20)
	entitySpecificPoints = decimal.NewFromInt(5)
	controlWeight        = decimal.RequireFromString("7.5")
	partialControlPoints = decimal.RequireFromString("3.75")
	noCertPoints         = decimal.NewFromInt(15)
	singleCertPoints     = decimal.RequireFromString("7.5")
	businessInfoWeight   = decimal.NewFromInt(10)
	suspiciousEmailPts   = decimal.NewFromInt(5)
	invalidTaxIDPoints   = decimal.NewFromInt(5)
	websiteSchemePoints  = decimal.NewFromInt(2)
)

// SuspiciousEmailDomains are disposable mailbox providers.
var SuspiciousEmailDomains = []string{
	"tempmail.com",
	"guerrillamail.com",
	"10minutemail.com",
	"mailinator.com",
}

var taxIDPattern = regexp.MustCompile(`^[0-9-]+$`)

type recordField struct {
	name string
	get  func(r *model.ApplicationRecord) string
}

var requiredFields = []recordField{
	{"companyName", func(r *model.ApplicationRecord) string { return r.CompanyName }},
	{"contactName", func(r *model.ApplicationRecord) string { return r.ContactName }},
	{"email", func(r *model.ApplicationRecord) string { return r.Email }},
	{"phone", func(r *model.ApplicationRecord) string { return r.Phone }},
	{"taxId", func(r *model.ApplicationRecord) string { return r.TaxID }},
	{"address", func(r *model.ApplicationRecord) string { return r.Address }},
	{"city", func(r *model.ApplicationRecord) string { return r.City }},
	{"country", func(r *model.ApplicationRecord) string { return r.Country }},
	{"industry", func(r *model.ApplicationRecord) string { return r.Industry }},
}

var businessFields = []recordField{
	{"annualRevenue", func(r *model.ApplicationRecord) string { return r.AnnualRevenue }},
	{"employeeCount", func(r *model.ApplicationRecord) string { return r.EmployeeCount }},
	{"businessType", func(r *model.ApplicationRecord) string { return r.BusinessType }},
	{"website", func(r *model.ApplicationRecord) string { return r.Website }},
}

type securityControl struct {
	name string
	get  func(r *model.ApplicationRecord) valueobject.ControlAnswer
}

var securityControls = []securityControl{
	{"hasEncryption", func(r *model.ApplicationRecord) valueobject.ControlAnswer { return r.HasEncryption }},
	{"hasAccessControl", func(r *model.ApplicationRecord) valueobject.ControlAnswer { return r.HasAccessControl }},
	{"hasLogging", func(r *model.ApplicationRecord) valueobject.ControlAnswer { return r.HasLogging }},
	{"hasNetworkSecurity", func(r *model.ApplicationRecord) valueobject.ControlAnswer { return r.HasNetworkSecurity }},
}

// DefaultRules returns the onboarding rules in evaluation order. The order
// determines the order of factors in an assessment.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "missing_fields", Evaluate: missingFieldsRule},
		{Name: "entity_specific", Evaluate: entitySpecificRule},
		{Name: "security", Evaluate: securityRule},
		{Name: "compliance", Evaluate: complianceRule},
		{Name: "business_info", Evaluate: businessInfoRule},
		{Name: "fraud", Evaluate: suspiciousEmailRule},
		{Name: "validation", Evaluate: taxIDFormatRule},
		{Name: "website", Evaluate: websiteSchemeRule},
	}
}

func missingFieldsRule(r *model.ApplicationRecord) RuleResult {
	missing := make([]string, 0)
	for _, f := range requiredFields {
		if model.IsBlank(f.get(r)) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return RuleResult{Points: decimal.Zero}
	}

	severity := valueobject.SeverityMedium
	if len(missing) > 3 {
		severity = valueobject.SeverityHigh
	}

	points := decimal.NewFromInt(int64(len(missing))).
		Mul(missingFieldsWeight).
		Div(decimal.NewFromInt(int64(len(requiredFields))))

	return RuleResult{
		Points: points,
		Factors: []model.RiskFactor{{
			Type:     model.FactorMissingFields,
			Severity: severity,
			Message:  fmt.Sprintf("Missing %d required field(s)", len(missing)),
			Fields:   missing,
		}},
	}
}

func entitySpecificRule(r *model.ApplicationRecord) RuleResult {
	switch {
	case r.EntityType.IsVendor() && r.ServiceType == "":
		return RuleResult{
			Points: entitySpecificPoints,
			Factors: []model.RiskFactor{{
				Type:     model.FactorVendorSpecific,
				Severity: valueobject.SeverityMedium,
				Message:  "Vendor service type not specified",
			}},
		}
	case r.EntityType.IsClient() && r.ClientTier == "":
		return RuleResult{
			Points: entitySpecificPoints,
			Factors: []model.RiskFactor{{
				Type:     model.FactorClientSpecific,
				Severity: valueobject.SeverityMedium,
				Message:  "Client tier not specified",
			}},
		}
	}
	return RuleResult{Points: decimal.Zero}
}

func securityRule(r *model.ApplicationRecord) RuleResult {
	result := RuleResult{Points: decimal.Zero}
	for _, c := range securityControls {
		switch c.get(r) {
		case valueobject.ControlAnswerNo:
			result.Points = result.Points.Add(controlWeight)
			result.Factors = append(result.Factors, model.RiskFactor{
				Type:     model.FactorSecurity,
				Severity: valueobject.SeverityHigh,
				Message:  fmt.Sprintf("Missing %s control", controlLabel(c.name)),
			})
		case valueobject.ControlAnswerPartial:
			result.Points = result.Points.Add(partialControlPoints)
		}
	}
	return result
}

// controlLabel turns "hasAccessControl" into "Access Control".
func controlLabel(field string) string {
	name := strings.TrimPrefix(field, "has")
	var b strings.Builder
	for i, c := range name {
		if i > 0 && unicode.IsUpper(c) {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func complianceRule(r *model.ApplicationRecord) RuleResult {
	if !r.EntityType.IsVendor() {
		return RuleResult{Points: decimal.Zero}
	}

	switch len(r.DistinctCertifications()) {
	case 0:
		return RuleResult{
			Points: noCertPoints,
			Factors: []model.RiskFactor{{
				Type:     model.FactorCompliance,
				Severity: valueobject.SeverityHigh,
				Message:  "No compliance certifications provided",
			}},
		}
	case 1:
		return RuleResult{
			Points: singleCertPoints,
			Factors: []model.RiskFactor{{
				Type:     model.FactorCompliance,
				Severity: valueobject.SeverityMedium,
				Message:  "Limited compliance certifications",
			}},
		}
	}
	return RuleResult{Points: decimal.Zero}
}

func businessInfoRule(r *model.ApplicationRecord) RuleResult {
	missing := 0
	for _, f := range businessFields {
		if f.get(r) == "" {
			missing++
		}
	}

	result := RuleResult{
		Points: decimal.NewFromInt(int64(missing)).
			Mul(businessInfoWeight).
			Div(decimal.NewFromInt(int64(len(businessFields)))),
	}
	if missing > 2 {
		result.Factors = []model.RiskFactor{{
			Type:     model.FactorBusinessInfo,
			Severity: valueobject.SeverityMedium,
			Message:  "Incomplete business information",
		}}
	}
	return result
}

func suspiciousEmailRule(r *model.ApplicationRecord) RuleResult {
	at := strings.LastIndex(r.Email, "@")
	if r.Email == "" || at < 0 {
		return RuleResult{Points: decimal.Zero}
	}

	domain := r.Email[at+1:]
	for _, d := range SuspiciousEmailDomains {
		if strings.Contains(domain, d) {
			return RuleResult{
				Points: suspiciousEmailPts,
				Factors: []model.RiskFactor{{
					Type:     model.FactorFraud,
					Severity: valueobject.SeverityHigh,
					Message:  "Suspicious email domain detected",
				}},
			}
		}
	}
	return RuleResult{Points: decimal.Zero}
}

func taxIDFormatRule(r *model.ApplicationRecord) RuleResult {
	if r.TaxID == "" {
		return RuleResult{Points: decimal.Zero}
	}

	stripped := strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, r.TaxID)
	if taxIDPattern.MatchString(stripped) {
		return RuleResult{Points: decimal.Zero}
	}

	return RuleResult{
		Points: invalidTaxIDPoints,
		Factors: []model.RiskFactor{{
			Type:     model.FactorValidation,
			Severity: valueobject.SeverityMedium,
			Message:  "Tax ID format appears invalid",
		}},
	}
}

// websiteSchemeRule adds points without a factor.
func websiteSchemeRule(r *model.ApplicationRecord) RuleResult {
	if r.Website != "" && !strings.HasPrefix(r.Website, "http") {
		return RuleResult{Points: websiteSchemePoints}
	}
	return RuleResult{Points: decimal.Zero}
}
