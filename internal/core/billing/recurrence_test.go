package billing_test

import (
	"testing"
	"time"

	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyRule(monthDay int) domain.RecurringRule {
	return domain.RecurringRule{
		RuleID:      "rule-1",
		UserID:      "user-1",
		Amount:      decimal.NewFromInt(150),
		Description: "Streaming",
		MonthDay:    monthDay,
		Active:      true,
	}
}

func TestOccurrencesInPeriod(t *testing.T) {
	// Period for closing day 10, March 2024: [2024-02-10, 2024-03-10).
	p := billing.PeriodFor(10, billing.YearMonth{2024, time.March})

	t.Run("day inside start month", func(t *testing.T) {
		got := billing.OccurrencesInPeriod(monthlyRule(15), p)
		require.Len(t, got, 1)
		assert.Equal(t, day("2024-02-15"), got[0])
	})

	t.Run("day inside end month", func(t *testing.T) {
		got := billing.OccurrencesInPeriod(monthlyRule(5), p)
		require.Len(t, got, 1)
		assert.Equal(t, day("2024-03-05"), got[0])
	})

	t.Run("start boundary included", func(t *testing.T) {
		got := billing.OccurrencesInPeriod(monthlyRule(10), p)
		require.Len(t, got, 1)
		assert.Equal(t, day("2024-02-10"), got[0], "closing day belongs to this period's start, next period's end")
	})

	t.Run("end date cuts off occurrence", func(t *testing.T) {
		rule := monthlyRule(15)
		end := day("2024-02-01")
		rule.EndDate = &end
		assert.Empty(t, billing.OccurrencesInPeriod(rule, p))
	})

	t.Run("end date on occurrence day keeps it", func(t *testing.T) {
		rule := monthlyRule(15)
		end := day("2024-02-15")
		rule.EndDate = &end
		require.Len(t, billing.OccurrencesInPeriod(rule, p), 1)
	})

	t.Run("clamped day 31 lands on february end", func(t *testing.T) {
		got := billing.OccurrencesInPeriod(monthlyRule(31), p)
		require.Len(t, got, 1)
		assert.Equal(t, day("2024-02-29"), got[0])
	})
}

// A monthly rule yields at most one occurrence per period, always inside the
// half-open interval, for every day/closing-day combination.
func TestOccurrencesInPeriodBounds(t *testing.T) {
	for closingDay := 1; closingDay <= 31; closingDay++ {
		for monthDay := 1; monthDay <= 31; monthDay++ {
			for m := 0; m < 14; m++ {
				target := billing.YearMonth{Year: 2024, Month: time.January}.AddMonths(m)
				p := billing.PeriodFor(closingDay, target)
				got := billing.OccurrencesInPeriod(monthlyRule(monthDay), p)
				assert.LessOrEqual(t, len(got), 1,
					"closingDay=%d monthDay=%d target=%s", closingDay, monthDay, target)
				for _, d := range got {
					assert.True(t, p.Contains(d),
						"occurrence %s outside period [%s, %s)", d, p.Start, p.End)
				}
			}
		}
	}
}

// Periods spanning a single calendar month must not produce the same
// candidate twice.
func TestOccurrencesInPeriodNoDuplicates(t *testing.T) {
	p := billing.Period{Start: day("2024-04-05"), End: day("2024-04-25")}
	got := billing.OccurrencesInPeriod(monthlyRule(10), p)
	require.Len(t, got, 1)
	assert.Equal(t, day("2024-04-10"), got[0])
}
