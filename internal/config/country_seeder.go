package config

import (
	"log"

	"nomadtax/internal/adapters/persistence/models"
)

// SeedCountryRules seeds the reference table of residency thresholds.
// Existing rows are left untouched so operators can override thresholds
// without the seeder reverting them on restart.
func SeedCountryRules() error {
	rules := []models.CountryRule{
		{CountryCode: "PT", Name: "Portugal", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "NHR regime may reduce tax on foreign income for new residents"},
		{CountryCode: "ES", Name: "Spain", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Sporadic absences count as presence unless tax residency elsewhere is proven"},
		{CountryCode: "DE", Name: "Germany", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "A habitual abode of more than 6 months creates unlimited tax liability"},
		{CountryCode: "FR", Name: "France", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Centre of economic interests can trigger residency below the day threshold"},
		{CountryCode: "GB", Name: "United Kingdom", ResidencyThreshold: 183, TaxYearStart: "04-06", SpecialRules: "Statutory Residence Test applies; ties can lower the day threshold"},
		{CountryCode: "US", Name: "United States", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Substantial presence test weighs days over a 3-year window"},
		{CountryCode: "TH", Name: "Thailand", ResidencyThreshold: 180, TaxYearStart: "01-01", SpecialRules: "Remitted foreign income of residents is taxable from 2024"},
		{CountryCode: "AE", Name: "United Arab Emirates", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "90-day rule applies to residents with a permanent place of residence"},
		{CountryCode: "CY", Name: "Cyprus", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "60-day rule available when not tax resident elsewhere"},
		{CountryCode: "MT", Name: "Malta", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Remittance basis available for non-domiciled residents"},
		{CountryCode: "GE", Name: "Georgia", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "183 days in any continuous 12-month period ending in the tax year"},
		{CountryCode: "MX", Name: "Mexico", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Centre of vital interests can establish residency regardless of days"},
		{CountryCode: "ID", Name: "Indonesia", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "183 days in any 12-month period"},
		{CountryCode: "JP", Name: "Japan", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Non-permanent resident status limits taxation for the first 5 years"},
		{CountryCode: "SG", Name: "Singapore", ResidencyThreshold: 183, TaxYearStart: "01-01", SpecialRules: "Physical presence or employment of 183 days or more"},
	}

	seeded := 0
	for _, rule := range rules {
		var count int64
		if err := DB.Model(&models.CountryRule{}).
			Where("country_code = ?", rule.CountryCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&rule).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("✅ Country rules seeded (%d new, %d total)", seeded, len(rules))
	} else {
		log.Println("ℹ️  Country rules already seeded, skipping")
	}
	return nil
}
