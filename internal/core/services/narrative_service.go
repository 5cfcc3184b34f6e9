package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nomadtax/internal/config"
	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/engine"
)

// NarrativeInput is the computed dashboard state handed to a narrator
type NarrativeInput struct {
	Period        engine.Period            `json:"period"`
	TaxRisks      []engine.TaxRisk         `json:"tax_risks"`
	Alerts        []engine.ComplianceAlert `json:"alerts"`
	CriticalDates []engine.CriticalDate    `json:"critical_dates"`
}

// Narrator produces a human-readable summary of a computed dashboard.
// Implementations are presentation only: they must not change any number
// the engine produced, and callers treat failures as "no narrative".
type Narrator interface {
	Narrate(ctx context.Context, input NarrativeInput) (string, error)
}

// NewNarrator picks the narrator for the current configuration: the HTTP
// backend when NARRATIVE_API_URL is set, the deterministic template
// otherwise. The HTTP narrator itself falls back to the template when the
// backend misbehaves.
func NewNarrator(cfg *config.Config) Narrator {
	if cfg.Narrative.URL == "" {
		return &TemplateNarrator{}
	}
	return &HTTPNarrator{
		url:      cfg.Narrative.URL,
		apiKey:   cfg.Narrative.APIKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		fallback: &TemplateNarrator{},
	}
}

// TemplateNarrator renders a deterministic summary from the computed state.
// Same input, same text.
type TemplateNarrator struct{}

// Narrate implements Narrator
func (n *TemplateNarrator) Narrate(_ context.Context, input NarrativeInput) (string, error) {
	var b strings.Builder

	if len(input.TaxRisks) == 0 {
		b.WriteString("No travel recorded for this period, so there is no tax-residency exposure to report.")
		return b.String(), nil
	}

	high := 0
	for _, r := range input.TaxRisks {
		if r.Status == domain.RiskHigh {
			high++
		}
	}

	switch {
	case high > 0:
		fmt.Fprintf(&b, "You have high tax-residency exposure in %d of %d countries visited this period.", high, len(input.TaxRisks))
	default:
		fmt.Fprintf(&b, "Your tax-residency exposure is under control across the %d countries visited this period.", len(input.TaxRisks))
	}

	top := input.TaxRisks[0]
	name := top.CountryName
	if name == "" {
		name = top.Country
	}
	if top.DocumentBased {
		if top.DaysNeeded <= 0 {
			fmt.Fprintf(&b, " In %s you have met the presence requirement for your residency status with %d days.", name, top.Days)
		} else {
			fmt.Fprintf(&b, " In %s you still need %d days of presence to keep your residency status.", name, top.DaysNeeded)
		}
	} else {
		fmt.Fprintf(&b, " Most days were spent in %s: %d of the %d-day threshold.", name, top.Days, top.Threshold)
	}

	if count := len(input.Alerts); count == 1 {
		b.WriteString(" There is 1 compliance alert to review.")
	} else if count > 1 {
		fmt.Fprintf(&b, " There are %d compliance alerts to review.", count)
	}

	if len(input.CriticalDates) > 0 {
		d := input.CriticalDates[0]
		fmt.Fprintf(&b, " Next deadline: %s in %d days.", d.Title, d.DaysUntil)
	}

	return b.String(), nil
}

// HTTPNarrator asks an external text backend for the summary and falls back
// to the template narrator on any failure.
type HTTPNarrator struct {
	url      string
	apiKey   string
	client   *http.Client
	fallback Narrator
}

// Narrate implements Narrator
func (n *HTTPNarrator) Narrate(ctx context.Context, input NarrativeInput) (string, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return n.fallback.Narrate(ctx, input)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return n.fallback.Narrate(ctx, input)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return n.fallback.Narrate(ctx, input)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return n.fallback.Narrate(ctx, input)
	}

	var parsed struct {
		Narrative string `json:"narrative"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || parsed.Narrative == "" {
		return n.fallback.Narrate(ctx, input)
	}

	return parsed.Narrative, nil
}
