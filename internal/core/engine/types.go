// Package engine implements the tax-residency risk computation: day counting
// over travel intervals, per-country risk classification, compliance alert
// generation and critical-date extraction. Everything here is a pure function
// of its inputs — no I/O, no wall clock, no shared state. Callers fetch the
// data, pass an explicit "now", and render whatever comes back.
package engine

import (
	"time"

	"nomadtax/internal/core/domain"
)

// Period is a concrete reporting window, inclusive on both ends
type Period struct {
	Kind  domain.PeriodKind `json:"kind"`
	Start time.Time         `json:"start"`
	End   time.Time         `json:"end"`
}

// TravelInterval is one stretch of physical presence in a country.
// A nil ExitDate means the stay is ongoing.
type TravelInterval struct {
	Country   string
	City      string
	EntryDate time.Time
	ExitDate  *time.Time
	Purpose   domain.TravelPurpose
}

// Open reports whether the interval is still ongoing as of now.
// An exit date in the future still counts as "currently in-country".
func (t TravelInterval) Open(now time.Time) bool {
	return t.ExitDate == nil || t.ExitDate.After(now)
}

// Document is the engine's view of an identity/visa/residency document
type Document struct {
	Type           domain.DocumentType
	Title          string
	IssuingCountry string
	Status         domain.DocumentStatus
	IssueDate      *time.Time
	ExpiryDate     *time.Time
}

// Active reports whether the document participates in risk computation
func (d Document) Active() bool {
	return d.Status == domain.DocStatusActive
}

// CountryRule is static reference data for one country
type CountryRule struct {
	CountryCode        string
	Name               string
	ResidencyThreshold int // days; <=0 means use the default
	TaxYearStart       string
}

// Threshold returns the residency threshold with the 183-day fallback
// applied. Never returns zero, so division is always safe.
func (r CountryRule) Threshold() int {
	if r.ResidencyThreshold <= 0 {
		return domain.DefaultResidencyThreshold
	}
	return r.ResidencyThreshold
}

// TaxStatus is the user's declared status for one country and tax year
type TaxStatus struct {
	RequiredPresence int
	ResidencyStatus  domain.ResidencyStatus
}

// TaxRisk is the per-country classification result. Derived, never persisted.
type TaxRisk struct {
	Country       string           `json:"country"`
	CountryName   string           `json:"country_name,omitempty"`
	Days          int              `json:"days"`
	Threshold     int              `json:"threshold"`
	Status        domain.RiskLevel `json:"status"`
	DocumentBased bool             `json:"document_based"`
	// DaysNeeded is signed. For document-based risks it is the days still
	// required to keep the residency status (0 once met). Otherwise it is
	// the remaining safe days before tax residency triggers, negative once
	// the threshold is exceeded.
	DaysNeeded int `json:"days_needed"`
}

// ComplianceAlert is one actionable finding for the dashboard
type ComplianceAlert struct {
	Type           domain.AlertType     `json:"type"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Severity       domain.AlertSeverity `json:"severity"`
	Country        string               `json:"country,omitempty"`
	ActionRequired string               `json:"action_required,omitempty"`
}

// CriticalDate is a future deadline inside the lookahead window
type CriticalDate struct {
	Title     string               `json:"title"`
	Date      time.Time            `json:"date"`
	DaysUntil int                  `json:"days_until"`
	Urgency   domain.AlertSeverity `json:"urgency"`
	Country   string               `json:"country,omitempty"`
}
