package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"nomadtax/internal/config"
	"nomadtax/internal/core/engine"
)

// NotificationService pushes document-expiry reminders to a webhook
// (Slack/Discord-compatible payload). Disabled when no webhook is
// configured; callers fire-and-forget.
type NotificationService struct {
	webhookURL   string
	webhookToken string
	client       *http.Client
	enabled      bool
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		webhookURL:   cfg.Notify.WebhookURL,
		webhookToken: cfg.Notify.WebhookToken,
		client:       &http.Client{Timeout: 10 * time.Second},
		enabled:      cfg.Notify.WebhookURL != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// NotifyExpiringDocuments sends a reminder for documents expiring soon
func (s *NotificationService) NotifyExpiringDocuments(username string, dates []engine.CriticalDate) {
	if !s.enabled || len(dates) == 0 {
		return
	}

	message := fmt.Sprintf("📄 Document reminders for %s\n", username)
	for _, d := range dates {
		line := fmt.Sprintf("• %s — %d days left (%s)", d.Title, d.DaysUntil, d.Date.Format("2006-01-02"))
		if d.Country != "" {
			line += " [" + d.Country + "]"
		}
		message += line + "\n"
	}

	if err := s.send(message); err != nil {
		log.Printf("⚠️ Webhook notification failed: %v", err)
	}
}

// send posts a message payload to the configured webhook
func (s *NotificationService) send(message string) error {
	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.webhookToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.webhookToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
