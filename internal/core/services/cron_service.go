package services

import (
	"context"
	"log"
	"time"

	"nomadtax/internal/adapters/persistence/repositories"
	"nomadtax/internal/core/engine"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs: the daily document-expiry
// scan and refresh-token cleanup.
type CronService struct {
	userRepo         repositories.UserRepository
	documentRepo     repositories.DocumentRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	notifier         *NotificationService
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	userRepo repositories.UserRepository,
	documentRepo repositories.DocumentRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	notifier *NotificationService,
) *CronService {
	return &CronService{
		userRepo:         userRepo,
		documentRepo:     documentRepo,
		refreshTokenRepo: refreshTokenRepo,
		notifier:         notifier,
		cron:             cron.New(),
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() error {
	// Daily document-expiry scan at 08:30
	if _, err := s.cron.AddFunc("30 8 * * *", s.runExpiryScan); err != nil {
		return err
	}

	// Hourly cleanup of expired refresh tokens
	if _, err := s.cron.AddFunc("@hourly", s.runTokenCleanup); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started (expiry scan 08:30 daily, token cleanup hourly)")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🔌 Cron jobs stopped")
}

// runExpiryScan checks every user for documents expiring inside the
// lookahead window and pushes reminders.
func (s *CronService) runExpiryScan() {
	if !s.notifier.IsEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	before := now.AddDate(0, engine.DefaultLookaheadMonths, 0)

	userIDs, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		log.Printf("⚠️ Expiry scan: listing users failed: %v", err)
		return
	}

	notified := 0
	for _, userID := range userIDs {
		docs, err := s.documentRepo.ListExpiringByUser(ctx, userID, before)
		if err != nil {
			log.Printf("⚠️ Expiry scan: user %d skipped: %v", userID, err)
			continue
		}
		if len(docs) == 0 {
			continue
		}

		dates := engine.CriticalDates(toEngineDocuments(docs), engine.DefaultLookaheadMonths, now)
		if len(dates) == 0 {
			continue
		}

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			log.Printf("⚠️ Expiry scan: user %d skipped: %v", userID, err)
			continue
		}

		s.notifier.NotifyExpiringDocuments(user.Username, dates)
		notified++
	}

	log.Printf("✅ Expiry scan complete: %d of %d users notified", notified, len(userIDs))
}

// runTokenCleanup deletes refresh tokens past their expiry
func (s *CronService) runTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Token cleanup failed: %v", err)
	}
}
