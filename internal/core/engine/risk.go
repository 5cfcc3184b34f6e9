package engine

import (
	"sort"
	"time"

	"nomadtax/internal/core/domain"
)

// residencyDocTypes are the document types that bind a user to a country's
// residency rules and flip the risk classification to document-based.
var residencyDocTypes = map[domain.DocumentType]bool{
	domain.DocResidencyPermit: true,
	domain.DocVisa:            true,
}

// stayDocTypes additionally cover tourist visas, which legitimize a stay but
// do not ground a residency classification.
var stayDocTypes = map[domain.DocumentType]bool{
	domain.DocResidencyPermit: true,
	domain.DocVisa:            true,
	domain.DocTouristVisa:     true,
}

// ComputeTaxRisks classifies tax-residency exposure for every country the
// user has travelled to. Countries with no country rule fall back to the
// 183-day default; a malformed travel row is skipped, never fatal.
func ComputeTaxRisks(
	travels []TravelInterval,
	documents []Document,
	rules []CountryRule,
	statuses map[string]TaxStatus,
	period Period,
	now time.Time,
) []TaxRisk {
	ruleIndex := indexRules(rules)

	var risks []TaxRisk
	for _, country := range countriesVisited(travels) {
		days := DaysInCountry(travels, country, period, now)

		rule, hasRule := ruleIndex[country]
		threshold := domain.DefaultResidencyThreshold
		countryName := ""
		if hasRule {
			threshold = rule.Threshold()
			countryName = rule.Name
		}

		status := statuses[country]
		docBased := hasDocumentFor(documents, country, residencyDocTypes, now)

		risks = append(risks, classify(country, countryName, days, threshold, docBased, status))
	}

	// Highest exposure first, then by country for a stable dashboard order.
	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].Days != risks[j].Days {
			return risks[i].Days > risks[j].Days
		}
		return risks[i].Country < risks[j].Country
	})
	return risks
}

// classify turns a day count into a risk record.
//
// Document-based with a resident status: the goal inverts — the user needs to
// REACH the threshold to keep their status. Otherwise the usual exposure
// bands apply: under 60% low, 60-80% medium, 80%+ high.
func classify(country, countryName string, days, threshold int, docBased bool, status TaxStatus) TaxRisk {
	if days < 0 {
		days = 0
	}
	if threshold <= 0 {
		threshold = domain.DefaultResidencyThreshold
	}

	risk := TaxRisk{
		Country:       country,
		CountryName:   countryName,
		Days:          days,
		Threshold:     threshold,
		DocumentBased: docBased,
	}

	if docBased && status.ResidencyStatus.IsResident() {
		required := threshold
		if status.RequiredPresence > 0 {
			required = status.RequiredPresence
			risk.Threshold = required
		}
		if days >= required {
			risk.Status = domain.RiskLow
			risk.DaysNeeded = 0
			return risk
		}
		risk.DaysNeeded = required - days
		switch {
		case risk.DaysNeeded <= 30:
			risk.Status = domain.RiskHigh
		case risk.DaysNeeded < 60:
			risk.Status = domain.RiskMedium
		default:
			risk.Status = domain.RiskLow
		}
		return risk
	}

	risk.DocumentBased = false
	risk.DaysNeeded = threshold - days
	percentage := float64(days) / float64(threshold) * 100
	switch {
	case percentage >= 80:
		risk.Status = domain.RiskHigh
	case percentage >= 60:
		risk.Status = domain.RiskMedium
	default:
		risk.Status = domain.RiskLow
	}
	return risk
}

// hasDocumentFor reports whether an active document of one of the given
// types exists for the country, and is not already expired as of now.
func hasDocumentFor(documents []Document, country string, types map[domain.DocumentType]bool, now time.Time) bool {
	for _, d := range documents {
		if !d.Active() || !types[d.Type] {
			continue
		}
		if NormalizeCountry(d.IssuingCountry) != country {
			continue
		}
		if d.ExpiryDate != nil && d.ExpiryDate.Before(now) {
			continue
		}
		return true
	}
	return false
}

// indexRules resolves the country->rule join once per computation instead of
// scanning the rule slice per lookup.
func indexRules(rules []CountryRule) map[string]CountryRule {
	index := make(map[string]CountryRule, len(rules))
	for _, r := range rules {
		code := NormalizeCountry(r.CountryCode)
		if code == "" {
			continue
		}
		index[code] = r
	}
	return index
}
