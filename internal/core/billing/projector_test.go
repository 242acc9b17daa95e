package billing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTwelveMonths(t *testing.T) {
	rule := monthlyRule(15)
	rule.Amount = decimal.NewFromInt(150)
	near := cardTransaction("t1", "2024-02-20", 100, nil)

	source := func(p billing.Period) ([]domain.Transaction, error) {
		if p.Contains(near.Date) {
			return []domain.Transaction{near}, nil
		}
		return nil, nil
	}

	from := billing.YearMonth{2024, time.March}
	entries, err := billing.Project(testCard, []domain.RecurringRule{rule}, source, from, 0, day("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, entries, billing.DefaultHorizonMonths)

	// Current month carries the real transaction plus the projected rule.
	assert.Equal(t, from, entries[0].Month)
	assert.Equal(t, "250", entries[0].Total.String())
	assert.Equal(t, day("2024-03-20"), entries[0].DueDate)

	// Future months only carry the rule.
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, from.AddMonths(i), entries[i].Month)
		assert.Equal(t, "150", entries[i].Total.String(), "month %s", entries[i].Month)
	}
}

// A materialized occurrence must not be double-counted against its rule.
func TestProjectDeduplicatesMaterializedRule(t *testing.T) {
	rule := monthlyRule(15)
	rule.Amount = decimal.NewFromInt(150)
	ruleID := rule.RuleID
	materialized := cardTransaction("t1", "2024-02-15", 150, &ruleID)

	source := func(p billing.Period) ([]domain.Transaction, error) {
		if p.Contains(materialized.Date) {
			return []domain.Transaction{materialized}, nil
		}
		return nil, nil
	}

	entries, err := billing.Project(testCard, []domain.RecurringRule{rule}, source,
		billing.YearMonth{2024, time.March}, 3, day("2024-03-01"))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "150", entries[0].Total.String(), "counted once, not twice")
	assert.Equal(t, "150", entries[1].Total.String())
}

// A rule past its end date stops contributing to far months.
func TestProjectRespectsRuleEndDate(t *testing.T) {
	rule := monthlyRule(15)
	rule.Amount = decimal.NewFromInt(150)
	end := day("2024-04-30")
	rule.EndDate = &end

	source := func(billing.Period) ([]domain.Transaction, error) { return nil, nil }

	entries, err := billing.Project(testCard, []domain.RecurringRule{rule}, source,
		billing.YearMonth{2024, time.March}, 4, day("2024-03-01"))
	require.NoError(t, err)
	// March period [02-10,03-10): occurrence 02-15. April [03-10,04-10): 03-15.
	// May [04-10,05-10): 04-15 before end date. June [05-10,06-10): 05-15 is past it.
	assert.Equal(t, "150", entries[0].Total.String())
	assert.Equal(t, "150", entries[1].Total.String())
	assert.Equal(t, "150", entries[2].Total.String())
	assert.Equal(t, "0", entries[3].Total.String())
}

func TestProjectPropagatesSourceError(t *testing.T) {
	wantErr := errors.New("db down")
	source := func(billing.Period) ([]domain.Transaction, error) { return nil, wantErr }
	_, err := billing.Project(testCard, nil, source, billing.YearMonth{2024, time.March}, 2, day("2024-03-01"))
	assert.ErrorIs(t, err, wantErr)
}

// Recomputed fresh each call: two runs over the same inputs agree.
func TestProjectRestartable(t *testing.T) {
	rule := monthlyRule(7)
	rule.Amount = decimal.RequireFromString("99.90")
	source := func(billing.Period) ([]domain.Transaction, error) { return nil, nil }

	first, err := billing.Project(testCard, []domain.RecurringRule{rule}, source,
		billing.YearMonth{2024, time.March}, 6, day("2024-03-01"))
	require.NoError(t, err)
	second, err := billing.Project(testCard, []domain.RecurringRule{rule}, source,
		billing.YearMonth{2024, time.March}, 6, day("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
