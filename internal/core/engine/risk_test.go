package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadtax/internal/core/domain"
)

func TestClassifyExposureBands(t *testing.T) {
	// Boundaries sit at 60% and 80% of the threshold (109.8 and 146.4 days
	// for the default 183).
	tests := []struct {
		days int
		want domain.RiskLevel
	}{
		{0, domain.RiskLow},
		{70, domain.RiskLow},
		{109, domain.RiskLow},
		{110, domain.RiskMedium},
		{146, domain.RiskMedium},
		{147, domain.RiskHigh},
		{183, domain.RiskHigh},
		{250, domain.RiskHigh},
	}

	for _, tt := range tests {
		risk := classify("PT", "Portugal", tt.days, 183, false, TaxStatus{})
		assert.Equal(t, tt.want, risk.Status, "days=%d", tt.days)
		assert.Equal(t, 183-tt.days, risk.DaysNeeded, "days=%d", tt.days)
		assert.False(t, risk.DocumentBased)
	}
}

// Risk level must be non-decreasing as the day count grows.
func TestClassifyMonotonic(t *testing.T) {
	rank := map[domain.RiskLevel]int{domain.RiskLow: 0, domain.RiskMedium: 1, domain.RiskHigh: 2}

	prev := -1
	for days := 0; days <= 400; days++ {
		risk := classify("PT", "", days, 183, false, TaxStatus{})
		assert.GreaterOrEqual(t, rank[risk.Status], prev, "days=%d", days)
		prev = rank[risk.Status]
	}
}

func TestClassifyDocumentBasedInversion(t *testing.T) {
	resident := TaxStatus{ResidencyStatus: domain.ResidencyPermanent}

	t.Run("threshold met", func(t *testing.T) {
		risk := classify("PT", "Portugal", 190, 183, true, resident)
		assert.Equal(t, domain.RiskLow, risk.Status)
		assert.Equal(t, 0, risk.DaysNeeded)
		assert.True(t, risk.DocumentBased)
	})

	t.Run("within 30 days of the requirement is high", func(t *testing.T) {
		risk := classify("PT", "Portugal", 160, 183, true, resident)
		assert.Equal(t, domain.RiskHigh, risk.Status)
		assert.Equal(t, 23, risk.DaysNeeded)
	})

	t.Run("within 60 days is medium", func(t *testing.T) {
		risk := classify("PT", "Portugal", 130, 183, true, resident)
		assert.Equal(t, domain.RiskMedium, risk.Status)
		assert.Equal(t, 53, risk.DaysNeeded)
	})

	t.Run("far from the requirement is informational", func(t *testing.T) {
		risk := classify("PT", "Portugal", 20, 183, true, resident)
		assert.Equal(t, domain.RiskLow, risk.Status)
		assert.Equal(t, 163, risk.DaysNeeded)
	})

	t.Run("required presence from tax status overrides the rule threshold", func(t *testing.T) {
		risk := classify("PT", "Portugal", 50, 183, true, TaxStatus{
			ResidencyStatus:  domain.ResidencyTemporary,
			RequiredPresence: 60,
		})
		assert.Equal(t, 60, risk.Threshold)
		assert.Equal(t, 10, risk.DaysNeeded)
		assert.Equal(t, domain.RiskHigh, risk.Status)
	})

	t.Run("document without resident status stays exposure-based", func(t *testing.T) {
		risk := classify("PT", "Portugal", 160, 183, true, TaxStatus{})
		assert.False(t, risk.DocumentBased)
		assert.Equal(t, domain.RiskHigh, risk.Status)
		assert.Equal(t, 23, risk.DaysNeeded)
	})
}

// Switching documentBased flips the direction of the actionable figure for
// the same day count.
func TestDocumentBasedFlipsDirection(t *testing.T) {
	exposure := classify("PT", "Portugal", 160, 183, false, TaxStatus{})
	maintain := classify("PT", "Portugal", 160, 183, true, TaxStatus{ResidencyStatus: domain.ResidencyPermanent})

	assert.False(t, exposure.DocumentBased)
	assert.True(t, maintain.DocumentBased)
	// Same numeric distance to the threshold, opposite meaning.
	assert.Equal(t, 23, exposure.DaysNeeded)
	assert.Equal(t, 23, maintain.DaysNeeded)
}

func TestClassifyZeroThresholdFallsBack(t *testing.T) {
	risk := classify("PT", "Portugal", 100, 0, false, TaxStatus{})
	assert.Equal(t, domain.DefaultResidencyThreshold, risk.Threshold)
	assert.Equal(t, domain.RiskLow, risk.Status)
}

func TestComputeTaxRisks(t *testing.T) {
	now := date(2024, 7, 15)
	period := ResolvePeriod(domain.PeriodCurrentYear, now)

	t.Run("missing rule uses the default threshold", func(t *testing.T) {
		travels := []TravelInterval{
			{Country: "XX", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 31)},
		}
		risks := ComputeTaxRisks(travels, nil, nil, nil, period, now)
		require.Len(t, risks, 1)
		assert.Equal(t, domain.DefaultResidencyThreshold, risks[0].Threshold)
	})

	t.Run("rule with zero threshold behaves like 183", func(t *testing.T) {
		travels := []TravelInterval{
			{Country: "PT", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 31)},
		}
		withZero := ComputeTaxRisks(travels, nil, []CountryRule{{CountryCode: "PT", Name: "Portugal"}}, nil, period, now)
		withDefault := ComputeTaxRisks(travels, nil, []CountryRule{{CountryCode: "PT", Name: "Portugal", ResidencyThreshold: 183}}, nil, period, now)
		assert.Equal(t, withDefault, withZero)
	})

	t.Run("malformed travel rows are skipped, valid ones survive", func(t *testing.T) {
		travels := []TravelInterval{
			{Country: "Portugal", EntryDate: date(2024, 3, 1)}, // not an alpha-2 code
			{Country: "", EntryDate: date(2024, 3, 1)},
			{Country: "ES", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 31)},
		}
		risks := ComputeTaxRisks(travels, nil, nil, nil, period, now)
		require.Len(t, risks, 1)
		assert.Equal(t, "ES", risks[0].Country)
	})

	t.Run("expired permit does not ground a document-based classification", func(t *testing.T) {
		expired := date(2024, 1, 1)
		travels := []TravelInterval{
			{Country: "PT", EntryDate: date(2024, 1, 1), ExitDate: datePtr(2024, 6, 1)},
		}
		docs := []Document{
			{Type: domain.DocResidencyPermit, IssuingCountry: "PT", Status: domain.DocStatusActive, ExpiryDate: &expired},
		}
		statuses := map[string]TaxStatus{"PT": {ResidencyStatus: domain.ResidencyTemporary}}
		risks := ComputeTaxRisks(travels, docs, nil, statuses, period, now)
		require.Len(t, risks, 1)
		assert.False(t, risks[0].DocumentBased)
	})

	t.Run("risks sort by day count descending", func(t *testing.T) {
		travels := []TravelInterval{
			{Country: "ES", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 11)},
			{Country: "PT", EntryDate: date(2024, 1, 1), ExitDate: datePtr(2024, 6, 1)},
		}
		risks := ComputeTaxRisks(travels, nil, nil, nil, period, now)
		require.Len(t, risks, 2)
		assert.Equal(t, "PT", risks[0].Country)
		assert.Equal(t, "ES", risks[1].Country)
	})
}

// End-to-end check: one open interval in PT starting 70 days ago, no visa or
// permit, threshold 183.
func TestComputeTaxRisksScenarioPortugal(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	period := ResolvePeriod(domain.PeriodCurrentYear, now)

	travels := []TravelInterval{
		{Country: "PT", City: "Lisbon", EntryDate: now.AddDate(0, 0, -70), Purpose: domain.PurposeRemoteWork},
	}
	rules := []CountryRule{{CountryCode: "PT", Name: "Portugal", ResidencyThreshold: 183}}

	risks := ComputeTaxRisks(travels, nil, rules, nil, period, now)
	require.Len(t, risks, 1)

	risk := risks[0]
	assert.Equal(t, "PT", risk.Country)
	assert.Equal(t, 70, risk.Days)
	assert.Equal(t, 183, risk.Threshold)
	assert.False(t, risk.DocumentBased)
	// 70/183 is about 38%, well under the 60% band.
	assert.Equal(t, domain.RiskLow, risk.Status)
	assert.Equal(t, 113, risk.DaysNeeded)
}
