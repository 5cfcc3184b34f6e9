package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"nomadtax/internal/adapters/persistence/models"
)

// countryRuleRepository implements CountryRuleRepository interface
type countryRuleRepository struct {
	db *gorm.DB
}

// NewCountryRuleRepository creates a new country rule repository
func NewCountryRuleRepository(db *gorm.DB) CountryRuleRepository {
	return &countryRuleRepository{db: db}
}

// GetByCode gets a rule by its ISO alpha-2 country code
func (r *countryRuleRepository) GetByCode(ctx context.Context, code string) (*models.CountryRule, error) {
	var rule models.CountryRule
	err := r.db.WithContext(ctx).
		Where("country_code = ?", strings.ToUpper(code)).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// List lists all active country rules
func (r *countryRuleRepository) List(ctx context.Context) ([]*models.CountryRule, error) {
	var rules []*models.CountryRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("country_code ASC").
		Find(&rules).Error
	return rules, err
}

// Upsert creates or updates a rule keyed by country code (admin edits,
// seeding)
func (r *countryRuleRepository) Upsert(ctx context.Context, rule *models.CountryRule) error {
	rule.CountryCode = strings.ToUpper(rule.CountryCode)

	var existing models.CountryRule
	err := r.db.WithContext(ctx).
		Where("country_code = ?", rule.CountryCode).
		First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.db.WithContext(ctx).Create(rule).Error
		}
		return err
	}

	rule.ID = existing.ID
	return r.db.WithContext(ctx).Save(rule).Error
}
