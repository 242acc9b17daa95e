package billing_test

import (
	"testing"
	"time"

	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodFor(t *testing.T) {
	tests := []struct {
		name       string
		closingDay int
		target     billing.YearMonth
		wantStart  string
		wantEnd    string
	}{
		{"mid-month closing", 10, billing.YearMonth{2024, time.March}, "2024-02-10", "2024-03-10"},
		{"january wraps to previous year", 10, billing.YearMonth{2024, time.January}, "2023-12-10", "2024-01-10"},
		{"closing day 31 clamps in february", 31, billing.YearMonth{2024, time.February}, "2024-01-31", "2024-02-29"},
		{"closing day 31 clamps in non-leap february", 31, billing.YearMonth{2023, time.February}, "2023-01-31", "2023-02-28"},
		{"closing day 31 narrow interval march", 31, billing.YearMonth{2024, time.March}, "2024-02-29", "2024-03-31"},
		{"closing day 1", 1, billing.YearMonth{2024, time.July}, "2024-06-01", "2024-07-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := billing.PeriodFor(tt.closingDay, tt.target)
			assert.Equal(t, day(tt.wantStart), p.Start)
			assert.Equal(t, day(tt.wantEnd), p.End)
		})
	}
}

// The half-open interval is never empty, for any closing day and any month.
func TestPeriodForAlwaysNonEmpty(t *testing.T) {
	for closingDay := 1; closingDay <= 31; closingDay++ {
		for m := 0; m < 36; m++ {
			target := billing.YearMonth{Year: 2023, Month: time.January}.AddMonths(m)
			p := billing.PeriodFor(closingDay, target)
			assert.True(t, p.Start.Before(p.End), "closingDay=%d target=%s start=%s end=%s",
				closingDay, target, p.Start, p.End)
		}
	}
}

func TestPeriodContains(t *testing.T) {
	p := billing.PeriodFor(10, billing.YearMonth{2024, time.March})
	assert.True(t, p.Contains(day("2024-02-10")), "start is included")
	assert.True(t, p.Contains(day("2024-03-09")))
	assert.False(t, p.Contains(day("2024-03-10")), "end is excluded")
	assert.False(t, p.Contains(day("2024-02-09")))
}
