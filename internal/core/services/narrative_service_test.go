package services

import (
	"context"
	"testing"
	"time"

	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateNarratorDeterministic(t *testing.T) {
	narrator := &TemplateNarrator{}
	input := NarrativeInput{
		Period: engine.Period{Kind: domain.PeriodCurrentYear},
		TaxRisks: []engine.TaxRisk{
			{Country: "PT", CountryName: "Portugal", Days: 150, Threshold: 183, Status: domain.RiskHigh, DaysNeeded: 33},
			{Country: "TH", Days: 40, Threshold: 180, Status: domain.RiskLow, DaysNeeded: 140},
		},
		Alerts: []engine.ComplianceAlert{
			{Type: domain.AlertTax, Severity: domain.SeverityHigh},
			{Type: domain.AlertDocument, Severity: domain.SeverityMedium},
		},
		CriticalDates: []engine.CriticalDate{
			{Title: "Passport expires", Date: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), DaysUntil: 48, Urgency: domain.SeverityMedium},
		},
	}

	first, err := narrator.Narrate(context.Background(), input)
	require.NoError(t, err)
	second, err := narrator.Narrate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input produces the same text")
	assert.Contains(t, first, "high tax-residency exposure in 1 of 2 countries")
	assert.Contains(t, first, "Portugal")
	assert.Contains(t, first, "150 of the 183-day threshold")
	assert.Contains(t, first, "2 compliance alerts")
	assert.Contains(t, first, "Passport expires")
}

func TestTemplateNarratorEmptyState(t *testing.T) {
	narrator := &TemplateNarrator{}

	text, err := narrator.Narrate(context.Background(), NarrativeInput{})
	require.NoError(t, err)
	assert.Contains(t, text, "No travel recorded")
}

func TestTemplateNarratorDocumentBased(t *testing.T) {
	narrator := &TemplateNarrator{}

	t.Run("requirement met", func(t *testing.T) {
		text, err := narrator.Narrate(context.Background(), NarrativeInput{
			TaxRisks: []engine.TaxRisk{
				{Country: "PT", CountryName: "Portugal", Days: 190, Threshold: 183, Status: domain.RiskLow, DocumentBased: true, DaysNeeded: 0},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, text, "met the presence requirement")
	})

	t.Run("days still needed", func(t *testing.T) {
		text, err := narrator.Narrate(context.Background(), NarrativeInput{
			TaxRisks: []engine.TaxRisk{
				{Country: "PT", CountryName: "Portugal", Days: 100, Threshold: 183, Status: domain.RiskMedium, DocumentBased: true, DaysNeeded: 83},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, text, "need 83 days")
	})
}
