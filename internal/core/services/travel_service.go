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

	"gorm.io/gorm"
)

// TravelService handles travel record business logic
type TravelService struct {
	travelRepo repositories.TravelRepository
}

// NewTravelService creates a new travel service
func NewTravelService(travelRepo repositories.TravelRepository) *TravelService {
	return &TravelService{travelRepo: travelRepo}
}

// CreateTravelInput represents travel record creation input
type CreateTravelInput struct {
	Country   string     `json:"country" validate:"required,len=2"`
	City      string     `json:"city"`
	EntryDate time.Time  `json:"entry_date" validate:"required"`
	ExitDate  *time.Time `json:"exit_date"`
	Purpose   string     `json:"purpose"`
	Notes     string     `json:"notes"`
}

// UpdateTravelInput represents travel record update input.
// ClearExit closes the distinction between "leave exit date as is" and
// "make the stay open-ended again".
type UpdateTravelInput struct {
	Country   *string    `json:"country"`
	City      *string    `json:"city"`
	EntryDate *time.Time `json:"entry_date"`
	ExitDate  *time.Time `json:"exit_date"`
	ClearExit bool       `json:"clear_exit"`
	Purpose   *string    `json:"purpose"`
	Notes     *string    `json:"notes"`
}

// Create validates and creates a travel record
func (s *TravelService) Create(ctx context.Context, userID uint, input *CreateTravelInput) (*models.TravelRecordResponse, error) {
	country := engine.NormalizeCountry(input.Country)
	if country == "" {
		return nil, domain.ErrInvalidCountry
	}

	if input.EntryDate.IsZero() {
		return nil, domain.ErrInvalidDateRange
	}
	if input.ExitDate != nil && input.ExitDate.Before(input.EntryDate) {
		return nil, domain.ErrInvalidDateRange
	}

	if input.Purpose != "" && !domain.IsValidPurpose(domain.TravelPurpose(input.Purpose)) {
		return nil, domain.ErrInvalidPurpose
	}

	record := &models.TravelRecord{
		UserID:    userID,
		Country:   country,
		City:      input.City,
		EntryDate: input.EntryDate,
		ExitDate:  input.ExitDate,
		Purpose:   input.Purpose,
		Notes:     input.Notes,
	}

	if err := s.travelRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("✅ Travel record created: user=%d country=%s", userID, country)
	return record.ToResponse(), nil
}

// GetByID returns a single travel record owned by the user
func (s *TravelService) GetByID(ctx context.Context, userID, id uint) (*models.TravelRecordResponse, error) {
	record, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return record.ToResponse(), nil
}

// List returns travel records for a user with pagination
func (s *TravelService) List(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelRecordResponse, int64, error) {
	records, total, err := s.travelRepo.ListByUserPaged(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.TravelRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}
	return responses, total, nil
}

// ListOpen returns records with no exit date yet
func (s *TravelService) ListOpen(ctx context.Context, userID uint) ([]*models.TravelRecordResponse, error) {
	records, err := s.travelRepo.ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TravelRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}
	return responses, nil
}

// Update updates fields that were provided
func (s *TravelService) Update(ctx context.Context, userID, id uint, input *UpdateTravelInput) (*models.TravelRecordResponse, error) {
	record, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Country != nil {
		country := engine.NormalizeCountry(*input.Country)
		if country == "" {
			return nil, domain.ErrInvalidCountry
		}
		record.Country = country
	}
	if input.City != nil {
		record.City = *input.City
	}
	if input.EntryDate != nil {
		if input.EntryDate.IsZero() {
			return nil, domain.ErrInvalidDateRange
		}
		record.EntryDate = *input.EntryDate
	}
	if input.ClearExit {
		record.ExitDate = nil
	} else if input.ExitDate != nil {
		record.ExitDate = input.ExitDate
	}
	if input.Purpose != nil {
		if *input.Purpose != "" && !domain.IsValidPurpose(domain.TravelPurpose(*input.Purpose)) {
			return nil, domain.ErrInvalidPurpose
		}
		record.Purpose = *input.Purpose
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}

	if record.ExitDate != nil && record.ExitDate.Before(record.EntryDate) {
		return nil, domain.ErrInvalidDateRange
	}

	if err := s.travelRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return record.ToResponse(), nil
}

// CloseStay sets the exit date on an open record
func (s *TravelService) CloseStay(ctx context.Context, userID, id uint, exitDate time.Time) (*models.TravelRecordResponse, error) {
	record, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if exitDate.Before(record.EntryDate) {
		return nil, domain.ErrInvalidDateRange
	}

	record.ExitDate = &exitDate
	if err := s.travelRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return record.ToResponse(), nil
}

// Delete removes a travel record owned by the user
func (s *TravelService) Delete(ctx context.Context, userID, id uint) error {
	record, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.travelRepo.Delete(ctx, record.ID)
}

// getOwned fetches a record and checks ownership
func (s *TravelService) getOwned(ctx context.Context, userID, id uint) (*models.TravelRecord, error) {
	record, err := s.travelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTravelNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, domain.ErrTravelNotFound
	}
	return record, nil
}
