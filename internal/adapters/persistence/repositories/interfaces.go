package repositories

import (
	"context"
	"time"

	"nomadtax/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListIDs(ctx context.Context) ([]uint, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// TravelRepository defines travel record repository interface
type TravelRepository interface {
	Create(ctx context.Context, record *models.TravelRecord) error
	GetByID(ctx context.Context, id uint) (*models.TravelRecord, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.TravelRecord, error)
	ListByUserPaged(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelRecord, int64, error)
	ListOpenByUser(ctx context.Context, userID uint) ([]*models.TravelRecord, error)
	Update(ctx context.Context, record *models.TravelRecord) error
	Delete(ctx context.Context, id uint) error
}

// DocumentRepository defines document repository interface
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Document, error)
	ListActiveByUser(ctx context.Context, userID uint) ([]*models.Document, error)
	ListExpiringByUser(ctx context.Context, userID uint, before time.Time) ([]*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id uint) error

	CreateShare(ctx context.Context, share *models.DocumentShare) error
	GetShareByToken(ctx context.Context, token string) (*models.DocumentShare, error)
	RevokeShare(ctx context.Context, id uint) error
	ListSharesByDocument(ctx context.Context, documentID uint) ([]*models.DocumentShare, error)
}

// CountryRuleRepository defines country rule repository interface.
// Rules are reference data: seeded once, read everywhere.
type CountryRuleRepository interface {
	GetByCode(ctx context.Context, code string) (*models.CountryRule, error)
	List(ctx context.Context) ([]*models.CountryRule, error)
	Upsert(ctx context.Context, rule *models.CountryRule) error
}

// TaxStatusRepository defines tax status repository interface
type TaxStatusRepository interface {
	Upsert(ctx context.Context, status *models.TaxStatus) error
	GetByID(ctx context.Context, id uint) (*models.TaxStatus, error)
	ListByUserYear(ctx context.Context, userID uint, taxYear int) ([]*models.TaxStatus, error)
	Delete(ctx context.Context, id uint) error
}
