package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nomadtax/internal/core/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestDaysInCountry(t *testing.T) {
	now := date(2024, 7, 15)
	period := ResolvePeriod(domain.PeriodCurrentYear, now)

	tests := []struct {
		name    string
		travels []TravelInterval
		country string
		want    int
	}{
		{
			name: "closed interval fully inside the window",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 31)},
			},
			country: "PT",
			want:    30,
		},
		{
			name: "interval clipped at window start",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: date(2023, 12, 1), ExitDate: datePtr(2024, 1, 11)},
			},
			country: "PT",
			want:    10,
		},
		{
			name: "open interval runs to now",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: now.AddDate(0, 0, -70)},
			},
			country: "PT",
			want:    70,
		},
		{
			name: "future exit date is clipped at the window end",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: date(2024, 7, 1), ExitDate: datePtr(2024, 9, 1)},
			},
			country: "PT",
			want:    14,
		},
		{
			name: "other countries do not contribute",
			travels: []TravelInterval{
				{Country: "ES", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 31)},
			},
			country: "PT",
			want:    0,
		},
		{
			name: "country match is case-insensitive",
			travels: []TravelInterval{
				{Country: "pt", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 11)},
			},
			country: "PT",
			want:    10,
		},
		{
			name: "overlapping intervals are summed, not merged",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: date(2024, 3, 1), ExitDate: datePtr(2024, 3, 21)},
				{Country: "PT", EntryDate: date(2024, 3, 11), ExitDate: datePtr(2024, 3, 31)},
			},
			country: "PT",
			want:    40,
		},
		{
			name: "inverted range contributes zero",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: date(2024, 3, 31), ExitDate: datePtr(2024, 3, 1)},
			},
			country: "PT",
			want:    0,
		},
		{
			name: "interval entirely outside the window contributes zero",
			travels: []TravelInterval{
				{Country: "PT", EntryDate: date(2023, 3, 1), ExitDate: datePtr(2023, 3, 31)},
			},
			country: "PT",
			want:    0,
		},
		{
			name: "zero entry date is skipped as malformed",
			travels: []TravelInterval{
				{Country: "PT"},
			},
			country: "PT",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysInCountry(tt.travels, tt.country, period, now)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

// Widening the window must never decrease the count for a fixed travel set.
func TestDaysInCountryWindowMonotonic(t *testing.T) {
	now := date(2024, 7, 15)
	travels := []TravelInterval{
		{Country: "PT", EntryDate: date(2024, 2, 1), ExitDate: datePtr(2024, 3, 15)},
		{Country: "PT", EntryDate: date(2024, 5, 1)},
		{Country: "ES", EntryDate: date(2024, 4, 1), ExitDate: datePtr(2024, 4, 20)},
	}

	prev := -1
	for months := 1; months <= 12; months++ {
		period := Period{Start: now.AddDate(0, -months, 0), End: now}
		got := DaysInCountry(travels, "PT", period, now)
		assert.GreaterOrEqual(t, got, prev, "window of %d months shrank the count", months)
		prev = got
	}
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "PT", NormalizeCountry("pt"))
	assert.Equal(t, "PT", NormalizeCountry(" PT "))
	assert.Equal(t, "", NormalizeCountry("Portugal"))
	assert.Equal(t, "", NormalizeCountry("P1"))
	assert.Equal(t, "", NormalizeCountry(""))
}
