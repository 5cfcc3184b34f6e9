package services

import (
	"context"
	"testing"
	"time"

	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeTravelRepo is an in-memory TravelRepository
type fakeTravelRepo struct {
	records map[uint]*models.TravelRecord
	nextID  uint
}

func newFakeTravelRepo() *fakeTravelRepo {
	return &fakeTravelRepo{records: make(map[uint]*models.TravelRecord), nextID: 1}
}

func (f *fakeTravelRepo) Create(_ context.Context, record *models.TravelRecord) error {
	record.ID = f.nextID
	f.nextID++
	f.records[record.ID] = record
	return nil
}

func (f *fakeTravelRepo) GetByID(_ context.Context, id uint) (*models.TravelRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeTravelRepo) ListByUser(_ context.Context, userID uint) ([]*models.TravelRecord, error) {
	var out []*models.TravelRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTravelRepo) ListByUserPaged(ctx context.Context, userID uint, offset, limit int) ([]*models.TravelRecord, int64, error) {
	records, _ := f.ListByUser(ctx, userID)
	return records, int64(len(records)), nil
}

func (f *fakeTravelRepo) ListOpenByUser(ctx context.Context, userID uint) ([]*models.TravelRecord, error) {
	records, _ := f.ListByUser(ctx, userID)
	var out []*models.TravelRecord
	for _, r := range records {
		if r.ExitDate == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTravelRepo) Update(_ context.Context, record *models.TravelRecord) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeTravelRepo) Delete(_ context.Context, id uint) error {
	delete(f.records, id)
	return nil
}

func TestTravelServiceCreate(t *testing.T) {
	ctx := context.Background()
	entry := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	t.Run("valid record", func(t *testing.T) {
		svc := NewTravelService(newFakeTravelRepo())

		resp, err := svc.Create(ctx, 1, &CreateTravelInput{
			Country:   "pt",
			City:      "Lisbon",
			EntryDate: entry,
			ExitDate:  &exit,
			Purpose:   "remote_work",
		})
		require.NoError(t, err)
		assert.Equal(t, "PT", resp.Country, "country code is normalized to uppercase")
		assert.False(t, resp.IsOpen)
	})

	t.Run("open-ended record", func(t *testing.T) {
		svc := NewTravelService(newFakeTravelRepo())

		resp, err := svc.Create(ctx, 1, &CreateTravelInput{
			Country:   "TH",
			EntryDate: entry,
		})
		require.NoError(t, err)
		assert.True(t, resp.IsOpen)
	})

	t.Run("invalid country rejected", func(t *testing.T) {
		svc := NewTravelService(newFakeTravelRepo())

		for _, code := range []string{"", "PRT", "P1", "Pôr"} {
			_, err := svc.Create(ctx, 1, &CreateTravelInput{Country: code, EntryDate: entry})
			assert.ErrorIs(t, err, domain.ErrInvalidCountry, "code %q", code)
		}
	})

	t.Run("exit before entry rejected", func(t *testing.T) {
		svc := NewTravelService(newFakeTravelRepo())
		before := entry.AddDate(0, 0, -1)

		_, err := svc.Create(ctx, 1, &CreateTravelInput{
			Country:   "PT",
			EntryDate: entry,
			ExitDate:  &before,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("unknown purpose rejected", func(t *testing.T) {
		svc := NewTravelService(newFakeTravelRepo())

		_, err := svc.Create(ctx, 1, &CreateTravelInput{
			Country:   "PT",
			EntryDate: entry,
			Purpose:   "vacationing",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPurpose)
	})
}

func TestTravelServiceOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTravelRepo()
	svc := NewTravelService(repo)

	created, err := svc.Create(ctx, 1, &CreateTravelInput{
		Country:   "ES",
		EntryDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Another user cannot see, update or delete the record
	_, err = svc.GetByID(ctx, 2, created.ID)
	assert.ErrorIs(t, err, domain.ErrTravelNotFound)

	_, err = svc.Update(ctx, 2, created.ID, &UpdateTravelInput{})
	assert.ErrorIs(t, err, domain.ErrTravelNotFound)

	err = svc.Delete(ctx, 2, created.ID)
	assert.ErrorIs(t, err, domain.ErrTravelNotFound)

	// The owner can
	got, err := svc.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ES", got.Country)
}

func TestTravelServiceCloseStay(t *testing.T) {
	ctx := context.Background()
	svc := NewTravelService(newFakeTravelRepo())
	entry := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	created, err := svc.Create(ctx, 1, &CreateTravelInput{Country: "DE", EntryDate: entry})
	require.NoError(t, err)

	_, err = svc.CloseStay(ctx, 1, created.ID, entry.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	closed, err := svc.CloseStay(ctx, 1, created.ID, entry.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
}

func TestTravelServiceUpdateClearExit(t *testing.T) {
	ctx := context.Background()
	svc := NewTravelService(newFakeTravelRepo())
	entry := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	exit := entry.AddDate(0, 0, 10)

	created, err := svc.Create(ctx, 1, &CreateTravelInput{Country: "DE", EntryDate: entry, ExitDate: &exit})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, &UpdateTravelInput{ClearExit: true})
	require.NoError(t, err)
	assert.True(t, updated.IsOpen, "clearing the exit date reopens the stay")
}
