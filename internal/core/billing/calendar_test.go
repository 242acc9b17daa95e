package billing_test

import (
	"testing"
	"time"

	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  string
	}{
		{"normal day", 2024, time.March, 10, "2024-03-10"},
		{"day 31 in 30-day month clamps", 2024, time.April, 31, "2024-04-30"},
		{"day 31 in leap February clamps to 29", 2024, time.February, 31, "2024-02-29"},
		{"day 31 in non-leap February clamps to 28", 2023, time.February, 31, "2023-02-28"},
		{"day 30 in February clamps", 2023, time.February, 30, "2023-02-28"},
		{"last day exact", 2024, time.January, 31, "2024-01-31"},
		{"first day", 2024, time.June, 1, "2024-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.SafeDate(tt.year, tt.month, tt.day)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	ym, err := billing.ParseYearMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, 2024, ym.Year)
	assert.Equal(t, time.March, ym.Month)

	for _, bad := range []string{"2024", "2024-13", "03-2024", "2024-3x", "not-a-month", ""} {
		_, err := billing.ParseYearMonth(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestYearMonthAddMonths(t *testing.T) {
	ym := billing.YearMonth{Year: 2024, Month: time.December}
	assert.Equal(t, billing.YearMonth{Year: 2025, Month: time.January}, ym.AddMonths(1))
	assert.Equal(t, billing.YearMonth{Year: 2024, Month: time.November}, ym.AddMonths(-1))
	assert.Equal(t, billing.YearMonth{Year: 2025, Month: time.June}, ym.AddMonths(6))
	assert.Equal(t, "2024-12", ym.String())
}
