package engine

import (
	"math"
	"strings"
	"time"
)

// DaysInCountry counts the days of physical presence in country within the
// period. Each interval is clipped to the window; open-ended intervals run to
// now (or the window end when that comes first). Partial days round up.
//
// Overlapping intervals for the same country are summed, not merged. A user
// who logs two overlapping trips gets the days counted twice; see DESIGN.md
// for why the summing behavior is kept.
func DaysInCountry(travels []TravelInterval, country string, period Period, now time.Time) int {
	total := 0
	for _, t := range travels {
		if !strings.EqualFold(t.Country, country) {
			continue
		}
		total += intervalDays(t, period, now)
	}
	if total < 0 {
		return 0
	}
	return total
}

// intervalDays clips one interval to the window and returns its day count.
// Malformed intervals (zero entry date, inverted range) contribute zero.
func intervalDays(t TravelInterval, period Period, now time.Time) int {
	if t.EntryDate.IsZero() {
		return 0
	}

	end := now
	if t.ExitDate != nil {
		end = *t.ExitDate
	}
	if end.After(period.End) {
		end = period.End
	}

	start := t.EntryDate
	if start.Before(period.Start) {
		start = period.Start
	}

	if !end.After(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// countriesVisited returns the distinct, normalized country codes present in
// the travel set. Records without a plausible ISO alpha-2 code are skipped
// rather than failing the batch.
func countriesVisited(travels []TravelInterval) []string {
	seen := make(map[string]bool, len(travels))
	var out []string
	for _, t := range travels {
		code := NormalizeCountry(t.Country)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// NormalizeCountry upper-cases a country code and rejects values that cannot
// be an ISO 3166-1 alpha-2 code. Returns "" for malformed input.
func NormalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return ""
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return code
}
