package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"nomadtax/internal/core/domain"
)

const (
	// approachWindowDays is how close (in days) to the residency threshold a
	// non-document-based risk must get before the "approaching" alert fires.
	approachWindowDays = 30

	// stayAlertDays / stayCriticalDays model the common 90-day visa-free
	// rule: warn at 60 days in-country, escalate at 80.
	stayAlertDays    = 60
	stayCriticalDays = 80

	// passportMinValidityMonths is the remaining validity many countries
	// require for entry.
	passportMinValidityMonths = 6
	passportUrgentMonths      = 3

	// DefaultLookaheadMonths is the critical-date window
	DefaultLookaheadMonths = 6
)

// GenerateComplianceAlerts evaluates every alert rule independently and
// returns zero or more alerts. No rule suppresses another; a country with
// missing reference data is skipped, never fatal.
func GenerateComplianceAlerts(
	travels []TravelInterval,
	documents []Document,
	rules []CountryRule,
	risks []TaxRisk,
	now time.Time,
) []ComplianceAlert {
	ruleIndex := indexRules(rules)

	var alerts []ComplianceAlert
	alerts = append(alerts, residencyAlerts(risks, ruleIndex)...)
	alerts = append(alerts, stayDurationAlerts(travels, documents, now)...)
	alerts = append(alerts, passportAlerts(documents, now)...)
	return alerts
}

// residencyAlerts covers the per-country risk rules: residency requirement
// met, residency days still needed, and approaching tax residency.
func residencyAlerts(risks []TaxRisk, ruleIndex map[string]CountryRule) []ComplianceAlert {
	var alerts []ComplianceAlert
	for _, risk := range risks {
		name := risk.CountryName
		if name == "" {
			if rule, ok := ruleIndex[risk.Country]; ok {
				name = rule.Name
			}
		}
		if name == "" {
			name = risk.Country
		}

		if risk.DocumentBased {
			if risk.Days >= risk.Threshold {
				alerts = append(alerts, ComplianceAlert{
					Type:        domain.AlertTax,
					Title:       fmt.Sprintf("Residency requirement met in %s", name),
					Description: fmt.Sprintf("You have been present %d of the required %d days.", risk.Days, risk.Threshold),
					Severity:    domain.SeverityLow,
					Country:     risk.Country,
				})
				continue
			}

			severity := domain.SeverityMedium
			if risk.DaysNeeded <= 30 {
				severity = domain.SeverityHigh
			}
			alerts = append(alerts, ComplianceAlert{
				Type:           domain.AlertTax,
				Title:          fmt.Sprintf("Residency days needed in %s", name),
				Description:    fmt.Sprintf("You need %d more days of presence to maintain your residency status (%d of %d).", risk.DaysNeeded, risk.Days, risk.Threshold),
				Severity:       severity,
				Country:        risk.Country,
				ActionRequired: fmt.Sprintf("Plan %d more days in %s before the tax year ends.", risk.DaysNeeded, name),
			})
			continue
		}

		if risk.Days >= risk.Threshold-approachWindowDays {
			alerts = append(alerts, ComplianceAlert{
				Type:           domain.AlertTax,
				Title:          fmt.Sprintf("Approaching tax residency in %s", name),
				Description:    fmt.Sprintf("You have spent %d days in %s; the tax-residency threshold is %d days.", risk.Days, name, risk.Threshold),
				Severity:       domain.SeverityHigh,
				Country:        risk.Country,
				ActionRequired: "Review the tax implications of further presence, or plan time outside the country.",
			})
		}
	}
	return alerts
}

// stayDurationAlerts warns about long visa-free stays: for every currently
// open interval without an active visa or permit for that country, alert at
// 60 days elapsed, escalate at 80.
func stayDurationAlerts(travels []TravelInterval, documents []Document, now time.Time) []ComplianceAlert {
	var alerts []ComplianceAlert
	for _, t := range travels {
		if !t.Open(now) || t.EntryDate.IsZero() || t.EntryDate.After(now) {
			continue
		}
		country := NormalizeCountry(t.Country)
		if country == "" {
			continue
		}
		if hasDocumentFor(documents, country, stayDocTypes, now) {
			continue
		}

		elapsed := int(math.Ceil(now.Sub(t.EntryDate).Hours() / 24))
		if elapsed < stayAlertDays {
			continue
		}

		severity := domain.SeverityMedium
		if elapsed >= stayCriticalDays {
			severity = domain.SeverityHigh
		}
		alerts = append(alerts, ComplianceAlert{
			Type:           domain.AlertVisa,
			Title:          fmt.Sprintf("Stay duration in %s", country),
			Description:    fmt.Sprintf("You have been in %s for %d days without a visa or residency permit on file. Visa-free stays are commonly capped at 90 days.", country, elapsed),
			Severity:       severity,
			Country:        country,
			ActionRequired: "Verify the visa-free limit for this country and plan your exit or apply for a visa.",
		})
	}
	return alerts
}

// passportAlerts checks passport presence and remaining validity. Many
// countries refuse entry under 6 months of validity.
func passportAlerts(documents []Document, now time.Time) []ComplianceAlert {
	best := bestPassport(documents)
	if best == nil {
		return []ComplianceAlert{{
			Type:           domain.AlertDocument,
			Title:          "No active passport on file",
			Description:    "You have no active passport document. Most international travel is impossible without one.",
			Severity:       domain.SeverityHigh,
			ActionRequired: "Upload your passport, or renew it if expired.",
		}}
	}
	if best.ExpiryDate == nil {
		return nil
	}

	monthsLeft := int(best.ExpiryDate.Sub(now).Hours() / 24 / 30)
	if monthsLeft > passportMinValidityMonths {
		return nil
	}

	severity := domain.SeverityMedium
	if monthsLeft <= passportUrgentMonths {
		severity = domain.SeverityHigh
	}
	return []ComplianceAlert{{
		Type:           domain.AlertDocument,
		Title:          "Passport validity running low",
		Description:    fmt.Sprintf("Your passport expires on %s (about %d months). Many countries require 6 months of remaining validity for entry.", best.ExpiryDate.Format("2006-01-02"), monthsLeft),
		Severity:       severity,
		Country:        best.IssuingCountry,
		ActionRequired: "Start the passport renewal process.",
	}}
}

// bestPassport picks the active passport with the latest expiry so a renewed
// passport silences alerts about the old one. A passport without an expiry
// date wins outright (indefinitely valid at present-moment checks).
func bestPassport(documents []Document) *Document {
	var best *Document
	for i := range documents {
		d := documents[i]
		if !d.Active() || d.Type != domain.DocPassport {
			continue
		}
		if best == nil {
			best = &documents[i]
			continue
		}
		if d.ExpiryDate == nil {
			return &documents[i]
		}
		if best.ExpiryDate != nil && d.ExpiryDate.After(*best.ExpiryDate) {
			best = &documents[i]
		}
	}
	return best
}

// CriticalDates returns upcoming document expiries inside the lookahead
// window, sorted ascending. Documents without an expiry date have no
// resolvable deadline and are excluded.
func CriticalDates(documents []Document, lookaheadMonths int, now time.Time) []CriticalDate {
	if lookaheadMonths <= 0 {
		lookaheadMonths = DefaultLookaheadMonths
	}
	horizon := now.AddDate(0, lookaheadMonths, 0)

	var dates []CriticalDate
	for _, d := range documents {
		if !d.Active() || d.ExpiryDate == nil {
			continue
		}
		expiry := *d.ExpiryDate
		if !expiry.After(now) || expiry.After(horizon) {
			continue
		}

		daysUntil := int(math.Ceil(expiry.Sub(now).Hours() / 24))
		urgency := domain.SeverityLow
		switch {
		case daysUntil <= 30:
			urgency = domain.SeverityHigh
		case daysUntil <= 90:
			urgency = domain.SeverityMedium
		}

		title := fmt.Sprintf("%s expires", documentLabel(d))
		dates = append(dates, CriticalDate{
			Title:     title,
			Date:      expiry,
			DaysUntil: daysUntil,
			Urgency:   urgency,
			Country:   NormalizeCountry(d.IssuingCountry),
		})
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Date.Before(dates[j].Date)
	})
	return dates
}

// documentLabel builds a human-readable document name for alerts
func documentLabel(d Document) string {
	if d.Title != "" {
		return d.Title
	}
	switch d.Type {
	case domain.DocPassport:
		return "Passport"
	case domain.DocVisa:
		return "Visa"
	case domain.DocTouristVisa:
		return "Tourist visa"
	case domain.DocResidencyPermit:
		return "Residency permit"
	case domain.DocDriversLicense:
		return "Driver's license"
	case domain.DocInsurance:
		return "Insurance policy"
	case domain.DocTaxReturn:
		return "Tax return"
	case domain.DocBankStatement:
		return "Bank statement"
	default:
		return "Document"
	}
}
