package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeDocumentRepo is an in-memory DocumentRepository
type fakeDocumentRepo struct {
	docs   map[uint]*models.Document
	shares map[uint]*models.DocumentShare
	nextID uint

	// failures makes the next N ListActiveByUser calls fail
	failures int
	calls    int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:   make(map[uint]*models.Document),
		shares: make(map[uint]*models.DocumentShare),
		nextID: 1,
	}
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	doc.ID = f.nextID
	f.nextID++
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id uint) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return doc, nil
}

func (f *fakeDocumentRepo) ListByUser(_ context.Context, userID uint) ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Document, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection reset")
	}
	docs, _ := f.ListByUser(ctx, userID)
	var out []*models.Document
	for _, d := range docs {
		if d.Status == string(domain.DocStatusActive) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListExpiringByUser(ctx context.Context, userID uint, before time.Time) ([]*models.Document, error) {
	docs, _ := f.ListActiveByUser(ctx, userID)
	var out []*models.Document
	for _, d := range docs {
		if d.ExpiryDate != nil && d.ExpiryDate.Before(before) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Update(_ context.Context, doc *models.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id uint) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) CreateShare(_ context.Context, share *models.DocumentShare) error {
	share.ID = f.nextID
	f.nextID++
	f.shares[share.ID] = share
	return nil
}

func (f *fakeDocumentRepo) GetShareByToken(_ context.Context, token string) (*models.DocumentShare, error) {
	for _, s := range f.shares {
		if s.ShareToken == token {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDocumentRepo) RevokeShare(_ context.Context, id uint) error {
	share, ok := f.shares[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	share.RevokedAt = &now
	return nil
}

func (f *fakeDocumentRepo) ListSharesByDocument(_ context.Context, documentID uint) ([]*models.DocumentShare, error) {
	var out []*models.DocumentShare
	for _, s := range f.shares {
		if s.DocumentID == documentID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeCountryRuleRepo is an in-memory CountryRuleRepository
type fakeCountryRuleRepo struct {
	rules []*models.CountryRule
}

func (f *fakeCountryRuleRepo) GetByCode(_ context.Context, code string) (*models.CountryRule, error) {
	for _, r := range f.rules {
		if r.CountryCode == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCountryRuleRepo) List(_ context.Context) ([]*models.CountryRule, error) {
	return f.rules, nil
}

func (f *fakeCountryRuleRepo) Upsert(_ context.Context, rule *models.CountryRule) error {
	for i, r := range f.rules {
		if r.CountryCode == rule.CountryCode {
			f.rules[i] = rule
			return nil
		}
	}
	f.rules = append(f.rules, rule)
	return nil
}

// fakeTaxStatusRepo is an in-memory TaxStatusRepository
type fakeTaxStatusRepo struct {
	statuses map[uint]*models.TaxStatus
	nextID   uint
}

func newFakeTaxStatusRepo() *fakeTaxStatusRepo {
	return &fakeTaxStatusRepo{statuses: make(map[uint]*models.TaxStatus), nextID: 1}
}

func (f *fakeTaxStatusRepo) Upsert(_ context.Context, status *models.TaxStatus) error {
	for _, st := range f.statuses {
		if st.UserID == status.UserID && st.CountryCode == status.CountryCode && st.TaxYear == status.TaxYear {
			status.ID = st.ID
			f.statuses[st.ID] = status
			return nil
		}
	}
	status.ID = f.nextID
	f.nextID++
	f.statuses[status.ID] = status
	return nil
}

func (f *fakeTaxStatusRepo) GetByID(_ context.Context, id uint) (*models.TaxStatus, error) {
	st, ok := f.statuses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return st, nil
}

func (f *fakeTaxStatusRepo) ListByUserYear(_ context.Context, userID uint, taxYear int) ([]*models.TaxStatus, error) {
	var out []*models.TaxStatus
	for _, st := range f.statuses {
		if st.UserID == userID && st.TaxYear == taxYear {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeTaxStatusRepo) Delete(_ context.Context, id uint) error {
	delete(f.statuses, id)
	return nil
}

// failingNarrator always errors
type failingNarrator struct{}

func (failingNarrator) Narrate(context.Context, NarrativeInput) (string, error) {
	return "", errors.New("backend down")
}

func newResidencyFixture(docRepo *fakeDocumentRepo, narrator Narrator, now time.Time) (*ResidencyService, *fakeTravelRepo) {
	travelRepo := newFakeTravelRepo()
	svc := NewResidencyService(
		travelRepo,
		docRepo,
		&fakeCountryRuleRepo{rules: []*models.CountryRule{
			{CountryCode: "PT", Name: "Portugal", ResidencyThreshold: 183},
			{CountryCode: "TH", Name: "Thailand", ResidencyThreshold: 180},
		}},
		newFakeTaxStatusRepo(),
		narrator,
	)
	svc.now = func() time.Time { return now }
	return svc, travelRepo
}

func TestResidencyDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	docRepo := newFakeDocumentRepo()
	svc, travelRepo := newResidencyFixture(docRepo, &TemplateNarrator{}, now)

	// 70 days in Portugal this year, still ongoing
	require.NoError(t, travelRepo.Create(ctx, &models.TravelRecord{
		UserID:    1,
		Country:   "PT",
		EntryDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}))

	// Passport expiring within the lookahead window
	expiry := now.AddDate(0, 2, 0)
	require.NoError(t, docRepo.Create(ctx, &models.Document{
		UserID:     1,
		Type:       string(domain.DocPassport),
		Title:      "Passport",
		Status:     string(domain.DocStatusActive),
		ExpiryDate: &expiry,
	}))

	data, err := svc.Dashboard(ctx, 1, domain.PeriodCurrentYear)
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodCurrentYear, data.Period.Kind)
	require.Len(t, data.TaxRisks, 1)
	assert.Equal(t, "PT", data.TaxRisks[0].Country)
	assert.Equal(t, 70, data.TaxRisks[0].Days)
	assert.Equal(t, domain.RiskLow, data.TaxRisks[0].Status)

	require.Len(t, data.CriticalDates, 1)
	assert.Equal(t, domain.SeverityMedium, data.CriticalDates[0].Urgency)

	assert.NotEmpty(t, data.Narrative)
}

func TestResidencyDashboardRetriesTransientErrors(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	docRepo := newFakeDocumentRepo()
	docRepo.failures = 2 // fail twice, succeed on the third attempt
	svc, _ := newResidencyFixture(docRepo, nil, now)

	_, err := svc.Dashboard(ctx, 1, domain.PeriodCurrentYear)
	require.NoError(t, err)
	assert.Equal(t, 3, docRepo.calls)
}

func TestResidencyDashboardGivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	docRepo := newFakeDocumentRepo()
	docRepo.failures = 10
	svc, _ := newResidencyFixture(docRepo, nil, now)

	_, err := svc.Dashboard(ctx, 1, domain.PeriodCurrentYear)
	assert.Error(t, err)
}

func TestResidencyDashboardNarratorFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	svc, _ := newResidencyFixture(newFakeDocumentRepo(), failingNarrator{}, now)

	data, err := svc.Dashboard(ctx, 1, domain.PeriodCurrentYear)
	require.NoError(t, err)
	assert.Empty(t, data.Narrative)
}

func TestResidencyTaxStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newResidencyFixture(newFakeDocumentRepo(), nil, now)

	t.Run("invalid country rejected", func(t *testing.T) {
		_, err := svc.SetTaxStatus(ctx, 1, &TaxStatusInput{CountryCode: "PRT", TaxYear: 2024})
		assert.ErrorIs(t, err, domain.ErrInvalidCountry)
	})

	t.Run("unknown residency status rejected", func(t *testing.T) {
		_, err := svc.SetTaxStatus(ctx, 1, &TaxStatusInput{
			CountryCode:     "PT",
			TaxYear:         2024,
			ResidencyStatus: "CITIZEN",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("upsert keyed by country and year", func(t *testing.T) {
		first, err := svc.SetTaxStatus(ctx, 1, &TaxStatusInput{
			CountryCode:      "pt",
			TaxYear:          2024,
			RequiredPresence: 183,
			ResidencyStatus:  string(domain.ResidencyTemporary),
		})
		require.NoError(t, err)
		assert.Equal(t, "PT", first.CountryCode)

		second, err := svc.SetTaxStatus(ctx, 1, &TaxStatusInput{
			CountryCode:      "PT",
			TaxYear:          2024,
			RequiredPresence: 160,
			ResidencyStatus:  string(domain.ResidencyTemporary),
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "same scope updates in place")

		statuses, err := svc.ListTaxStatuses(ctx, 1, 2024)
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, 160, statuses[0].RequiredPresence)
	})

	t.Run("delete enforces ownership", func(t *testing.T) {
		st, err := svc.SetTaxStatus(ctx, 1, &TaxStatusInput{
			CountryCode:     "TH",
			TaxYear:         2024,
			ResidencyStatus: string(domain.ResidencyPermanent),
		})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.DeleteTaxStatus(ctx, 2, st.ID), domain.ErrTaxStatusNotFound)
		assert.NoError(t, svc.DeleteTaxStatus(ctx, 1, st.ID))
	})
}

func TestResidencyDashboardDocumentBased(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	docRepo := newFakeDocumentRepo()
	svc, travelRepo := newResidencyFixture(docRepo, nil, now)

	// Declared temporary resident of Portugal with an active permit
	_, err := svc.SetTaxStatus(ctx, 1, &TaxStatusInput{
		CountryCode:      "PT",
		TaxYear:          2024,
		RequiredPresence: 183,
		ResidencyStatus:  string(domain.ResidencyTemporary),
	})
	require.NoError(t, err)

	permitExpiry := now.AddDate(1, 0, 0)
	require.NoError(t, docRepo.Create(ctx, &models.Document{
		UserID:         1,
		Type:           string(domain.DocResidencyPermit),
		IssuingCountry: "PT",
		Status:         string(domain.DocStatusActive),
		ExpiryDate:     &permitExpiry,
	}))

	exit := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, travelRepo.Create(ctx, &models.TravelRecord{
		UserID:    1,
		Country:   "PT",
		EntryDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExitDate:  &exit,
	}))

	data, err := svc.Dashboard(ctx, 1, domain.PeriodCurrentYear)
	require.NoError(t, err)

	require.Len(t, data.TaxRisks, 1)
	risk := data.TaxRisks[0]
	assert.True(t, risk.DocumentBased)
	assert.Equal(t, 100, risk.Days)
	assert.Equal(t, 83, risk.DaysNeeded, "days still needed to keep the status")
}
