package services

import (
	"context"
	"errors"
	"log"
	"time"

	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/adapters/persistence/repositories"
	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/engine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentService handles document business logic.
// File bytes never pass through here; FileKey is an opaque reference
// into whatever storage the frontend uploads to.
type DocumentService struct {
	documentRepo repositories.DocumentRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo repositories.DocumentRepository) *DocumentService {
	return &DocumentService{documentRepo: documentRepo}
}

// CreateDocumentInput represents document creation input
type CreateDocumentInput struct {
	Type           string     `json:"type" validate:"required"`
	Title          string     `json:"title"`
	IssuingCountry string     `json:"issuing_country"`
	IssueDate      *time.Time `json:"issue_date"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	FileKey        string     `json:"file_key"`
	Notes          string     `json:"notes"`
}

// UpdateDocumentInput represents document update input
type UpdateDocumentInput struct {
	Title          *string    `json:"title"`
	IssuingCountry *string    `json:"issuing_country"`
	IssueDate      *time.Time `json:"issue_date"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	FileKey        *string    `json:"file_key"`
	Notes          *string    `json:"notes"`
}

// ShareResponse is returned when a share link is created
type ShareResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	ShareToken string    `json:"share_token"`
	CreatedAt  time.Time `json:"created_at"`
}

// Create validates and creates a document
func (s *DocumentService) Create(ctx context.Context, userID uint, input *CreateDocumentInput) (*models.DocumentResponse, error) {
	if !domain.IsValidDocumentType(domain.DocumentType(input.Type)) {
		return nil, domain.ErrInvalidDocumentType
	}

	country := ""
	if input.IssuingCountry != "" {
		country = engine.NormalizeCountry(input.IssuingCountry)
		if country == "" {
			return nil, domain.ErrInvalidCountry
		}
	}

	doc := &models.Document{
		UserID:         userID,
		Type:           input.Type,
		Title:          input.Title,
		IssuingCountry: country,
		Status:         string(domain.DocStatusActive),
		IssueDate:      input.IssueDate,
		ExpiryDate:     input.ExpiryDate,
		FileKey:        input.FileKey,
		Notes:          input.Notes,
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	log.Printf("✅ Document created: user=%d type=%s", userID, doc.Type)
	return doc.ToResponse(), nil
}

// GetByID returns a document owned by the user
func (s *DocumentService) GetByID(ctx context.Context, userID, id uint) (*models.DocumentResponse, error) {
	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return doc.ToResponse(), nil
}

// List returns all documents for a user
func (s *DocumentService) List(ctx context.Context, userID uint) ([]*models.DocumentResponse, error) {
	docs, err := s.documentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, d.ToResponse())
	}
	return responses, nil
}

// Update updates fields that were provided
func (s *DocumentService) Update(ctx context.Context, userID, id uint, input *UpdateDocumentInput) (*models.DocumentResponse, error) {
	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		doc.Title = *input.Title
	}
	if input.IssuingCountry != nil {
		country := ""
		if *input.IssuingCountry != "" {
			country = engine.NormalizeCountry(*input.IssuingCountry)
			if country == "" {
				return nil, domain.ErrInvalidCountry
			}
		}
		doc.IssuingCountry = country
	}
	if input.IssueDate != nil {
		doc.IssueDate = input.IssueDate
	}
	if input.ExpiryDate != nil {
		doc.ExpiryDate = input.ExpiryDate
	}
	if input.FileKey != nil {
		doc.FileKey = *input.FileKey
	}
	if input.Notes != nil {
		doc.Notes = *input.Notes
	}

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc.ToResponse(), nil
}

// SetStatus activates or deactivates a document.
// Deactivated documents drop out of risk computation immediately.
func (s *DocumentService) SetStatus(ctx context.Context, userID, id uint, status domain.DocumentStatus) (*models.DocumentResponse, error) {
	if status != domain.DocStatusActive && status != domain.DocStatusInactive {
		return nil, domain.ErrInvalidInput
	}

	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	doc.Status = string(status)
	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc.ToResponse(), nil
}

// Delete removes a document owned by the user
func (s *DocumentService) Delete(ctx context.Context, userID, id uint) error {
	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, doc.ID)
}

// Share creates a share link for an outside party
func (s *DocumentService) Share(ctx context.Context, userID, id uint, email string) (*ShareResponse, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	share := &models.DocumentShare{
		DocumentID: doc.ID,
		Email:      email,
		ShareToken: uuid.New().String(),
	}

	if err := s.documentRepo.CreateShare(ctx, share); err != nil {
		return nil, err
	}

	log.Printf("✅ Document %d shared with %s", doc.ID, email)
	return &ShareResponse{
		ID:         share.ID,
		Email:      share.Email,
		ShareToken: share.ShareToken,
		CreatedAt:  share.CreatedAt,
	}, nil
}

// RevokeShare revokes a share on a document owned by the user
func (s *DocumentService) RevokeShare(ctx context.Context, userID, documentID, shareID uint) error {
	doc, err := s.getOwned(ctx, userID, documentID)
	if err != nil {
		return err
	}

	shares, err := s.documentRepo.ListSharesByDocument(ctx, doc.ID)
	if err != nil {
		return err
	}

	for _, share := range shares {
		if share.ID == shareID {
			return s.documentRepo.RevokeShare(ctx, share.ID)
		}
	}
	return domain.ErrShareNotFound
}

// GetShared resolves a share token to the document it grants access to.
// No authentication required; the token is the capability.
func (s *DocumentService) GetShared(ctx context.Context, token string) (*models.DocumentResponse, error) {
	share, err := s.documentRepo.GetShareByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}

	if share.RevokedAt != nil {
		return nil, domain.ErrShareNotFound
	}

	doc, err := s.documentRepo.GetByID(ctx, share.DocumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}

	// Shared view never exposes other share recipients
	resp := doc.ToResponse()
	resp.SharedWith = nil
	return resp, nil
}

// getOwned fetches a document and checks ownership
func (s *DocumentService) getOwned(ctx context.Context, userID, id uint) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}
