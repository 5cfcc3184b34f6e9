package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadtax/internal/core/domain"
)

func alertsOfType(alerts []ComplianceAlert, typ domain.AlertType) []ComplianceAlert {
	var out []ComplianceAlert
	for _, a := range alerts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func TestResidencyAlerts(t *testing.T) {
	rules := map[string]CountryRule{"PT": {CountryCode: "PT", Name: "Portugal"}}

	t.Run("met requirement yields a low informational alert", func(t *testing.T) {
		risks := []TaxRisk{{Country: "PT", Days: 190, Threshold: 183, Status: domain.RiskLow, DocumentBased: true}}
		alerts := residencyAlerts(risks, rules)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityLow, alerts[0].Severity)
		assert.Empty(t, alerts[0].ActionRequired)
		assert.Contains(t, alerts[0].Title, "met")
	})

	t.Run("days needed under 30 is high with action required", func(t *testing.T) {
		risks := []TaxRisk{{Country: "PT", Days: 160, Threshold: 183, DaysNeeded: 23, Status: domain.RiskHigh, DocumentBased: true}}
		alerts := residencyAlerts(risks, rules)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
		assert.NotEmpty(t, alerts[0].ActionRequired)
	})

	t.Run("days needed over 30 is medium", func(t *testing.T) {
		risks := []TaxRisk{{Country: "PT", Days: 100, Threshold: 183, DaysNeeded: 83, Status: domain.RiskLow, DocumentBased: true}}
		alerts := residencyAlerts(risks, rules)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)
	})

	t.Run("approaching the threshold fires within 30 days of it", func(t *testing.T) {
		risks := []TaxRisk{{Country: "PT", Days: 153, Threshold: 183, DaysNeeded: 30, Status: domain.RiskHigh}}
		alerts := residencyAlerts(risks, rules)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
		assert.Contains(t, alerts[0].Title, "Approaching")
	})

	t.Run("well under the threshold stays quiet", func(t *testing.T) {
		risks := []TaxRisk{{Country: "PT", Days: 70, Threshold: 183, DaysNeeded: 113, Status: domain.RiskLow}}
		alerts := residencyAlerts(risks, rules)
		assert.Empty(t, alerts)
	})
}

func TestStayDurationAlerts(t *testing.T) {
	now := date(2024, 7, 15)

	openStay := func(daysAgo int) TravelInterval {
		return TravelInterval{Country: "TH", EntryDate: now.AddDate(0, 0, -daysAgo)}
	}

	t.Run("under 60 days stays quiet", func(t *testing.T) {
		alerts := stayDurationAlerts([]TravelInterval{openStay(59)}, nil, now)
		assert.Empty(t, alerts)
	})

	t.Run("exactly 60 days triggers medium", func(t *testing.T) {
		alerts := stayDurationAlerts([]TravelInterval{openStay(60)}, nil, now)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)
		assert.Equal(t, domain.AlertVisa, alerts[0].Type)
	})

	t.Run("80 days escalates to high", func(t *testing.T) {
		alerts := stayDurationAlerts([]TravelInterval{openStay(80)}, nil, now)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	})

	t.Run("an active visa for the country suppresses the alert", func(t *testing.T) {
		docs := []Document{{Type: domain.DocTouristVisa, IssuingCountry: "TH", Status: domain.DocStatusActive}}
		alerts := stayDurationAlerts([]TravelInterval{openStay(85)}, docs, now)
		assert.Empty(t, alerts)
	})

	t.Run("a revoked visa does not suppress it", func(t *testing.T) {
		docs := []Document{{Type: domain.DocTouristVisa, IssuingCountry: "TH", Status: domain.DocStatusInactive}}
		alerts := stayDurationAlerts([]TravelInterval{openStay(85)}, docs, now)
		assert.Len(t, alerts, 1)
	})

	t.Run("closed intervals never alert", func(t *testing.T) {
		exit := now.AddDate(0, 0, -1)
		travels := []TravelInterval{{Country: "TH", EntryDate: now.AddDate(0, 0, -120), ExitDate: &exit}}
		alerts := stayDurationAlerts(travels, nil, now)
		assert.Empty(t, alerts)
	})

	t.Run("a future exit date still counts as an open stay", func(t *testing.T) {
		exit := now.AddDate(0, 0, 10)
		travels := []TravelInterval{{Country: "TH", EntryDate: now.AddDate(0, 0, -70), ExitDate: &exit}}
		alerts := stayDurationAlerts(travels, nil, now)
		assert.Len(t, alerts, 1)
	})
}

func TestPassportAlerts(t *testing.T) {
	now := date(2024, 7, 15)

	t.Run("no passport yields exactly one high document alert", func(t *testing.T) {
		alerts := passportAlerts(nil, now)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertDocument, alerts[0].Type)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
		assert.Contains(t, alerts[0].Title, "passport")
	})

	t.Run("passport without expiry date stays quiet", func(t *testing.T) {
		docs := []Document{{Type: domain.DocPassport, IssuingCountry: "US", Status: domain.DocStatusActive}}
		assert.Empty(t, passportAlerts(docs, now))
	})

	t.Run("five months left is medium", func(t *testing.T) {
		expiry := now.AddDate(0, 0, 150)
		docs := []Document{{Type: domain.DocPassport, IssuingCountry: "US", Status: domain.DocStatusActive, ExpiryDate: &expiry}}
		alerts := passportAlerts(docs, now)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)
	})

	t.Run("under three months is high", func(t *testing.T) {
		expiry := now.AddDate(0, 0, 80)
		docs := []Document{{Type: domain.DocPassport, IssuingCountry: "US", Status: domain.DocStatusActive, ExpiryDate: &expiry}}
		alerts := passportAlerts(docs, now)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	})

	t.Run("a renewed passport silences the expiring one", func(t *testing.T) {
		soon := now.AddDate(0, 0, 40)
		far := now.AddDate(9, 0, 0)
		docs := []Document{
			{Type: domain.DocPassport, IssuingCountry: "US", Status: domain.DocStatusActive, ExpiryDate: &soon},
			{Type: domain.DocPassport, IssuingCountry: "US", Status: domain.DocStatusActive, ExpiryDate: &far},
		}
		assert.Empty(t, passportAlerts(docs, now))
	})

	t.Run("an inactive passport does not count", func(t *testing.T) {
		docs := []Document{{Type: domain.DocPassport, IssuingCountry: "US", Status: domain.DocStatusInactive}}
		alerts := passportAlerts(docs, now)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	})
}

func TestCriticalDates(t *testing.T) {
	now := date(2024, 3, 1)

	doc := func(title string, daysOut int) Document {
		expiry := now.AddDate(0, 0, daysOut)
		return Document{Type: domain.DocVisa, Title: title, IssuingCountry: "PT", Status: domain.DocStatusActive, ExpiryDate: &expiry}
	}

	t.Run("windowing and urgency tiers", func(t *testing.T) {
		docs := []Document{
			doc("far", 200), // outside the 6-month lookahead
			doc("low", 150),
			doc("medium", 75),
			doc("high", 20),
		}
		dates := CriticalDates(docs, 6, now)
		require.Len(t, dates, 3)

		// Ascending by date.
		assert.Equal(t, 20, dates[0].DaysUntil)
		assert.Equal(t, domain.SeverityHigh, dates[0].Urgency)
		assert.Equal(t, 75, dates[1].DaysUntil)
		assert.Equal(t, domain.SeverityMedium, dates[1].Urgency)
		assert.Equal(t, 150, dates[2].DaysUntil)
		assert.Equal(t, domain.SeverityLow, dates[2].Urgency)
	})

	t.Run("already-expired documents are excluded", func(t *testing.T) {
		dates := CriticalDates([]Document{doc("past", -5)}, 6, now)
		assert.Empty(t, dates)
	})

	t.Run("inactive documents are excluded", func(t *testing.T) {
		d := doc("revoked", 20)
		d.Status = domain.DocStatusInactive
		assert.Empty(t, CriticalDates([]Document{d}, 6, now))
	})

	t.Run("documents without expiry are excluded", func(t *testing.T) {
		d := Document{Type: domain.DocPassport, Status: domain.DocStatusActive}
		assert.Empty(t, CriticalDates([]Document{d}, 6, now))
	})

	t.Run("non-positive lookahead falls back to six months", func(t *testing.T) {
		dates := CriticalDates([]Document{doc("visa", 150)}, 0, now)
		assert.Len(t, dates, 1)
	})
}

// Full alert pass for the Portugal scenario: 70 days in-country, no visa, no
// passport on file.
func TestGenerateComplianceAlertsScenario(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	period := ResolvePeriod(domain.PeriodCurrentYear, now)

	travels := []TravelInterval{
		{Country: "PT", EntryDate: now.AddDate(0, 0, -70), Purpose: domain.PurposeRemoteWork},
	}
	rules := []CountryRule{{CountryCode: "PT", Name: "Portugal", ResidencyThreshold: 183}}

	risks := ComputeTaxRisks(travels, nil, rules, nil, period, now)
	alerts := GenerateComplianceAlerts(travels, nil, rules, risks, now)

	// 70 days at a 183 threshold: no tax alert yet.
	assert.Empty(t, alertsOfType(alerts, domain.AlertTax))

	// 70 days in-country without a visa: stay-duration warning at medium.
	visa := alertsOfType(alerts, domain.AlertVisa)
	require.Len(t, visa, 1)
	assert.Equal(t, domain.SeverityMedium, visa[0].Severity)

	// No passport document at all: exactly one high document alert.
	docAlerts := alertsOfType(alerts, domain.AlertDocument)
	require.Len(t, docAlerts, 1)
	assert.Equal(t, domain.SeverityHigh, docAlerts[0].Severity)
}
