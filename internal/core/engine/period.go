package engine

import (
	"time"

	"nomadtax/internal/core/domain"
)

// ResolvePeriod translates a logical period selection into a concrete
// [start, end] window relative to now. Unrecognized values fall back to
// current_year so the dashboard always has a window to render.
func ResolvePeriod(kind domain.PeriodKind, now time.Time) Period {
	switch kind {
	case domain.PeriodLastYear:
		start := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year()-1, time.December, 31, 23, 59, 59, 0, now.Location())
		return Period{Kind: domain.PeriodLastYear, Start: start, End: end}
	case domain.PeriodRollingYear:
		return Period{Kind: domain.PeriodRollingYear, Start: now.AddDate(-1, 0, 0), End: now}
	case domain.PeriodCurrentYear:
		fallthrough
	default:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Period{Kind: domain.PeriodCurrentYear, Start: start, End: now}
	}
}
