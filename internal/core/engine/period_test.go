package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nomadtax/internal/core/domain"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		kind      domain.PeriodKind
		wantKind  domain.PeriodKind
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "current year runs from Jan 1 to now",
			kind:      domain.PeriodCurrentYear,
			wantKind:  domain.PeriodCurrentYear,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "last year covers the full previous calendar year",
			kind:      domain.PeriodLastYear,
			wantKind:  domain.PeriodLastYear,
			wantStart: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "rolling year ends now and starts one year earlier",
			kind:      domain.PeriodRollingYear,
			wantKind:  domain.PeriodRollingYear,
			wantStart: time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "unrecognized kind falls back to current year",
			kind:      domain.PeriodKind("fiscal_quarter"),
			wantKind:  domain.PeriodCurrentYear,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePeriod(tt.kind, now)
			assert.Equal(t, tt.wantKind, p.Kind)
			assert.True(t, p.Start.Equal(tt.wantStart), "start: got %v want %v", p.Start, tt.wantStart)
			assert.True(t, p.End.Equal(tt.wantEnd), "end: got %v want %v", p.End, tt.wantEnd)
		})
	}
}
