package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/core/domain"
)

// documentRepository implements DocumentRepository interface
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create creates a new document
func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetByID gets a document by ID with shares preloaded
func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Preload("Shares").
		First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByUser lists all documents for a user
func (r *documentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.WithContext(ctx).
		Preload("Shares").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// ListActiveByUser lists only active documents (the engine's input set)
func (r *documentRepository) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", string(domain.DocStatusActive)).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// ListExpiringByUser lists active documents expiring before the given time
// and still valid now (for reminder scans)
func (r *documentRepository) ListExpiringByUser(ctx context.Context, userID uint, before time.Time) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", string(domain.DocStatusActive)).
		Where("expiry_date IS NOT NULL").
		Where("expiry_date > ?", time.Now()).
		Where("expiry_date <= ?", before).
		Order("expiry_date ASC").
		Find(&docs).Error
	return docs, err
}

// Update updates a document
func (r *documentRepository) Update(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete soft deletes a document
func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Document{}, id).Error
}

// CreateShare creates a new document share
func (r *documentRepository) CreateShare(ctx context.Context, share *models.DocumentShare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

// GetShareByToken gets an unrevoked share by its token
func (r *documentRepository) GetShareByToken(ctx context.Context, token string) (*models.DocumentShare, error) {
	var share models.DocumentShare
	err := r.db.WithContext(ctx).
		Preload("Document").
		Where("share_token = ?", token).
		Where("revoked_at IS NULL").
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// RevokeShare revokes a share
func (r *documentRepository) RevokeShare(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.DocumentShare{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Update("revoked_at", now).Error
}

// ListSharesByDocument lists all shares for a document
func (r *documentRepository) ListSharesByDocument(ctx context.Context, documentID uint) ([]*models.DocumentShare, error) {
	var shares []*models.DocumentShare
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}
