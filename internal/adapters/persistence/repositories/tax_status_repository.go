package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"nomadtax/internal/adapters/persistence/models"
)

// taxStatusRepository implements TaxStatusRepository interface
type taxStatusRepository struct {
	db *gorm.DB
}

// NewTaxStatusRepository creates a new tax status repository
func NewTaxStatusRepository(db *gorm.DB) TaxStatusRepository {
	return &taxStatusRepository{db: db}
}

// Upsert creates or updates the status keyed by (user, country, tax year)
func (r *taxStatusRepository) Upsert(ctx context.Context, status *models.TaxStatus) error {
	status.CountryCode = strings.ToUpper(status.CountryCode)

	var existing models.TaxStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND country_code = ? AND tax_year = ?",
			status.UserID, status.CountryCode, status.TaxYear).
		First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.db.WithContext(ctx).Create(status).Error
		}
		return err
	}

	status.ID = existing.ID
	return r.db.WithContext(ctx).Save(status).Error
}

// GetByID gets a tax status by ID
func (r *taxStatusRepository) GetByID(ctx context.Context, id uint) (*models.TaxStatus, error) {
	var status models.TaxStatus
	err := r.db.WithContext(ctx).First(&status, id).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ListByUserYear lists the user's statuses for one tax year
func (r *taxStatusRepository) ListByUserYear(ctx context.Context, userID uint, taxYear int) ([]*models.TaxStatus, error) {
	var statuses []*models.TaxStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tax_year = ?", userID, taxYear).
		Order("country_code ASC").
		Find(&statuses).Error
	return statuses, err
}

// Delete soft deletes a tax status
func (r *taxStatusRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TaxStatus{}, id).Error
}
