package repositories

import (
	"context"

	"gorm.io/gorm"

	"nomadtax/internal/adapters/persistence/models"
)

// travelRepository implements TravelRepository interface
type travelRepository struct {
	db *gorm.DB
}

// NewTravelRepository creates a new travel repository
func NewTravelRepository(db *gorm.DB) TravelRepository {
	return &travelRepository{db: db}
}

// Create creates a new travel record
func (r *travelRepository) Create(ctx context.Context, record *models.TravelRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID gets a travel record by ID
func (r *travelRepository) GetByID(ctx context.Context, id uint) (*models.TravelRecord, error) {
	var record models.TravelRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByUser returns every travel record for a user, newest entry first.
// The engine needs the full set; pagination belongs to the list endpoint.
func (r *travelRepository) ListByUser(ctx context.Context, userID uint) ([]*models.TravelRecord, error) {
	var records []*models.TravelRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&records).Error
	return records, err
}

// ListByUserPaged lists travel records with pagination
func (r *travelRepository) ListByUserPaged(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelRecord, int64, error) {
	var records []*models.TravelRecord
	var total int64

	r.db.WithContext(ctx).
		Model(&models.TravelRecord{}).
		Where("user_id = ?", userID).
		Count(&total)

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error

	return records, total, err
}

// ListOpenByUser lists records with no exit date (ongoing stays)
func (r *travelRepository) ListOpenByUser(ctx context.Context, userID uint) ([]*models.TravelRecord, error) {
	var records []*models.TravelRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("exit_date IS NULL").
		Order("entry_date DESC").
		Find(&records).Error
	return records, err
}

// Update updates a travel record
func (r *travelRepository) Update(ctx context.Context, record *models.TravelRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete soft deletes a travel record
func (r *travelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TravelRecord{}, id).Error
}
