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

const (
	// fetchAttempts bounds retries on transient repository errors while
	// assembling a dashboard. The engine itself never fails.
	fetchAttempts = 3
	fetchBackoff  = 150 * time.Millisecond
)

// ResidencyService assembles the tax-residency dashboard: it fetches the
// user's travel, documents and reference data, runs the computation engine
// over them and attaches a narrative summary.
type ResidencyService struct {
	travelRepo    repositories.TravelRepository
	documentRepo  repositories.DocumentRepository
	countryRepo   repositories.CountryRuleRepository
	taxStatusRepo repositories.TaxStatusRepository
	narrator      Narrator

	// now is injectable for tests; defaults to time.Now
	now func() time.Time
}

// NewResidencyService creates a new residency service
func NewResidencyService(
	travelRepo repositories.TravelRepository,
	documentRepo repositories.DocumentRepository,
	countryRepo repositories.CountryRuleRepository,
	taxStatusRepo repositories.TaxStatusRepository,
	narrator Narrator,
) *ResidencyService {
	return &ResidencyService{
		travelRepo:    travelRepo,
		documentRepo:  documentRepo,
		countryRepo:   countryRepo,
		taxStatusRepo: taxStatusRepo,
		narrator:      narrator,
		now:           time.Now,
	}
}

// DashboardData is the full dashboard payload
type DashboardData struct {
	Period        engine.Period            `json:"period"`
	TaxRisks      []engine.TaxRisk         `json:"tax_risks"`
	Alerts        []engine.ComplianceAlert `json:"alerts"`
	CriticalDates []engine.CriticalDate    `json:"critical_dates"`
	Narrative     string                   `json:"narrative,omitempty"`
}

// TaxStatusInput declares the user's residency status for one country/year
type TaxStatusInput struct {
	CountryCode      string `json:"country_code" validate:"required,len=2"`
	TaxYear          int    `json:"tax_year" validate:"required"`
	RequiredPresence int    `json:"required_presence"`
	ResidencyStatus  string `json:"residency_status"`
	Notes            string `json:"notes"`
}

// Dashboard computes the full dashboard for a reporting period
func (s *ResidencyService) Dashboard(ctx context.Context, userID uint, periodKind domain.PeriodKind) (*DashboardData, error) {
	now := s.now()
	period := engine.ResolvePeriod(periodKind, now)

	travels, documents, rules, statuses, err := s.fetchInputs(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	risks := engine.ComputeTaxRisks(travels, documents, rules, statuses, period, now)
	alerts := engine.GenerateComplianceAlerts(travels, documents, rules, risks, now)
	dates := engine.CriticalDates(documents, engine.DefaultLookaheadMonths, now)

	data := &DashboardData{
		Period:        period,
		TaxRisks:      risks,
		Alerts:        alerts,
		CriticalDates: dates,
	}

	// The narrative is presentation only; a failed narrator never fails
	// the dashboard.
	if s.narrator != nil {
		narrative, err := s.narrator.Narrate(ctx, NarrativeInput{
			Period:        period,
			TaxRisks:      risks,
			Alerts:        alerts,
			CriticalDates: dates,
		})
		if err != nil {
			log.Printf("⚠️ Narrative generation failed: %v", err)
		} else {
			data.Narrative = narrative
		}
	}

	return data, nil
}

// TaxRisks computes only the per-country risk list
func (s *ResidencyService) TaxRisks(ctx context.Context, userID uint, periodKind domain.PeriodKind) ([]engine.TaxRisk, error) {
	now := s.now()
	period := engine.ResolvePeriod(periodKind, now)

	travels, documents, rules, statuses, err := s.fetchInputs(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return engine.ComputeTaxRisks(travels, documents, rules, statuses, period, now), nil
}

// Alerts computes only the compliance alerts (current-year period)
func (s *ResidencyService) Alerts(ctx context.Context, userID uint) ([]engine.ComplianceAlert, error) {
	now := s.now()
	period := engine.ResolvePeriod(domain.PeriodCurrentYear, now)

	travels, documents, rules, statuses, err := s.fetchInputs(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	risks := engine.ComputeTaxRisks(travels, documents, rules, statuses, period, now)
	return engine.GenerateComplianceAlerts(travels, documents, rules, risks, now), nil
}

// CriticalDates returns upcoming document deadlines inside the lookahead
func (s *ResidencyService) CriticalDates(ctx context.Context, userID uint, lookaheadMonths int) ([]engine.CriticalDate, error) {
	now := s.now()

	var documents []*models.Document
	err := withRetry(ctx, func() error {
		var err error
		documents, err = s.documentRepo.ListActiveByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return engine.CriticalDates(toEngineDocuments(documents), lookaheadMonths, now), nil
}

// SetTaxStatus declares or updates the user's status for a country/year
func (s *ResidencyService) SetTaxStatus(ctx context.Context, userID uint, input *TaxStatusInput) (*models.TaxStatus, error) {
	code := engine.NormalizeCountry(input.CountryCode)
	if code == "" {
		return nil, domain.ErrInvalidCountry
	}
	if input.TaxYear < 2000 || input.TaxYear > 2100 {
		return nil, domain.ErrInvalidInput
	}

	rs := domain.ResidencyStatus(input.ResidencyStatus)
	if rs != domain.ResidencyNone && !rs.IsResident() {
		return nil, domain.ErrInvalidInput
	}

	status := &models.TaxStatus{
		UserID:           userID,
		CountryCode:      code,
		TaxYear:          input.TaxYear,
		RequiredPresence: input.RequiredPresence,
		ResidencyStatus:  input.ResidencyStatus,
		Notes:            input.Notes,
	}

	if err := s.taxStatusRepo.Upsert(ctx, status); err != nil {
		return nil, err
	}

	log.Printf("✅ Tax status set: user=%d country=%s year=%d", userID, code, input.TaxYear)
	return status, nil
}

// ListTaxStatuses returns declared statuses for a tax year
func (s *ResidencyService) ListTaxStatuses(ctx context.Context, userID uint, taxYear int) ([]*models.TaxStatus, error) {
	return s.taxStatusRepo.ListByUserYear(ctx, userID, taxYear)
}

// DeleteTaxStatus removes a declared status owned by the user
func (s *ResidencyService) DeleteTaxStatus(ctx context.Context, userID, id uint) error {
	status, err := s.taxStatusRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTaxStatusNotFound
		}
		return err
	}
	if status.UserID != userID {
		return domain.ErrTaxStatusNotFound
	}
	return s.taxStatusRepo.Delete(ctx, status.ID)
}

// fetchInputs loads everything the engine needs for one user
func (s *ResidencyService) fetchInputs(ctx context.Context, userID uint, now time.Time) (
	[]engine.TravelInterval, []engine.Document, []engine.CountryRule, map[string]engine.TaxStatus, error,
) {
	var (
		travelRecords []*models.TravelRecord
		documents     []*models.Document
		countryRules  []*models.CountryRule
		taxStatuses   []*models.TaxStatus
	)

	if err := withRetry(ctx, func() error {
		var err error
		travelRecords, err = s.travelRepo.ListByUser(ctx, userID)
		return err
	}); err != nil {
		return nil, nil, nil, nil, err
	}

	if err := withRetry(ctx, func() error {
		var err error
		documents, err = s.documentRepo.ListActiveByUser(ctx, userID)
		return err
	}); err != nil {
		return nil, nil, nil, nil, err
	}

	if err := withRetry(ctx, func() error {
		var err error
		countryRules, err = s.countryRepo.List(ctx)
		return err
	}); err != nil {
		return nil, nil, nil, nil, err
	}

	if err := withRetry(ctx, func() error {
		var err error
		taxStatuses, err = s.taxStatusRepo.ListByUserYear(ctx, userID, now.Year())
		return err
	}); err != nil {
		return nil, nil, nil, nil, err
	}

	return toEngineIntervals(travelRecords),
		toEngineDocuments(documents),
		toEngineRules(countryRules),
		toEngineStatuses(taxStatuses),
		nil
}

// withRetry runs fn with bounded retries on transient errors.
// Record-not-found is never transient.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		err = fn()
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if attempt < fetchAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(fetchBackoff):
			}
		}
	}
	return err
}

// toEngineIntervals converts persistence rows to engine inputs
func toEngineIntervals(records []*models.TravelRecord) []engine.TravelInterval {
	intervals := make([]engine.TravelInterval, 0, len(records))
	for _, r := range records {
		intervals = append(intervals, engine.TravelInterval{
			Country:   r.Country,
			City:      r.City,
			EntryDate: r.EntryDate,
			ExitDate:  r.ExitDate,
			Purpose:   domain.TravelPurpose(r.Purpose),
		})
	}
	return intervals
}

func toEngineDocuments(docs []*models.Document) []engine.Document {
	out := make([]engine.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, engine.Document{
			Type:           domain.DocumentType(d.Type),
			Title:          d.Title,
			IssuingCountry: d.IssuingCountry,
			Status:         domain.DocumentStatus(d.Status),
			IssueDate:      d.IssueDate,
			ExpiryDate:     d.ExpiryDate,
		})
	}
	return out
}

func toEngineRules(rules []*models.CountryRule) []engine.CountryRule {
	out := make([]engine.CountryRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, engine.CountryRule{
			CountryCode:        r.CountryCode,
			Name:               r.Name,
			ResidencyThreshold: r.ResidencyThreshold,
			TaxYearStart:       r.TaxYearStart,
		})
	}
	return out
}

func toEngineStatuses(statuses []*models.TaxStatus) map[string]engine.TaxStatus {
	out := make(map[string]engine.TaxStatus, len(statuses))
	for _, st := range statuses {
		out[st.CountryCode] = engine.TaxStatus{
			RequiredPresence: st.RequiredPresence,
			ResidencyStatus:  domain.ResidencyStatus(st.ResidencyStatus),
		}
	}
	return out
}
