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

var testCard = domain.CreditCard{
	CreditCardID: "card-1",
	UserID:       "user-1",
	Name:         "Platinum",
	ClosingDay:   10,
	DueDay:       20,
	Active:       true,
}

func cardTransaction(id, date string, amount int64, ruleID *string) domain.Transaction {
	cardID := testCard.CreditCardID
	return domain.Transaction{
		TransactionID:   id,
		UserID:          testCard.UserID,
		CreditCardID:    &cardID,
		RecurringRuleID: ruleID,
		Amount:          decimal.NewFromInt(amount),
		Date:            day(date),
		Description:     "txn " + id,
		Status:          domain.Pending,
	}
}

func TestBuildStatementRealTransactionsOnly(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	txns := []domain.Transaction{
		cardTransaction("t1", "2024-02-12", 100, nil),
		cardTransaction("t2", "2024-02-20", 50, nil),
	}

	stmt := billing.BuildStatement(testCard, p, txns, nil, day("2024-03-01"), billing.WithItems)

	assert.Equal(t, "150", stmt.Total.String())
	require.Len(t, stmt.Items, 2)
	// Newest first.
	assert.Equal(t, "t2", stmt.Items[0].ItemID)
	assert.Equal(t, "t1", stmt.Items[1].ItemID)
	assert.Equal(t, day("2024-03-20"), stmt.DueDate)
	assert.Equal(t, billing.StatementOpen, stmt.Status)
}

// Scenario: a recurring rule with no matching persisted transaction appears as
// a projected PENDING item and counts toward the total.
func TestBuildStatementProjectsRecurringRule(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	rule := monthlyRule(15)
	rule.Amount = decimal.RequireFromString("150.00")

	stmt := billing.BuildStatement(testCard, p, nil, []domain.RecurringRule{rule}, day("2024-03-01"), billing.WithItems)

	require.Len(t, stmt.Items, 1)
	item := stmt.Items[0]
	assert.True(t, item.Projected)
	assert.Equal(t, rule.RuleID, item.RecurringRuleID)
	assert.Equal(t, "rule-1:2024-02-15", item.ItemID)
	assert.Equal(t, day("2024-02-15"), item.Date)
	assert.Equal(t, domain.Pending, item.Status)
	assert.Equal(t, "Streaming"+billing.ProjectedSuffix, item.Description)
	assert.True(t, stmt.Total.Equal(rule.Amount))
}

// Scenario: a persisted transaction already materialized from the rule on the
// same date suppresses the projection; the amount counts exactly once.
func TestBuildStatementDeduplicatesMaterializedRule(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	rule := monthlyRule(15)
	ruleID := rule.RuleID
	real := cardTransaction("t1", "2024-02-15", 150, &ruleID)
	real.Status = domain.Paid

	stmt := billing.BuildStatement(testCard, p, []domain.Transaction{real}, []domain.RecurringRule{rule}, day("2024-03-01"), billing.WithItems)

	require.Len(t, stmt.Items, 1)
	assert.False(t, stmt.Items[0].Projected)
	assert.Equal(t, "t1", stmt.Items[0].ItemID)
	assert.Equal(t, "150", stmt.Total.String())
}

// The dedup key is exact-match (rule id + date): the same rule materialized on
// a different date does not suppress the projection, and an unrelated
// transaction on the occurrence date does not either.
func TestBuildStatementDedupKeyIsExact(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	rule := monthlyRule(15)
	ruleID := rule.RuleID

	t.Run("same rule different date", func(t *testing.T) {
		real := cardTransaction("t1", "2024-02-16", 150, &ruleID)
		stmt := billing.BuildStatement(testCard, p, []domain.Transaction{real}, []domain.RecurringRule{rule}, day("2024-03-01"), billing.WithItems)
		assert.Len(t, stmt.Items, 2)
		assert.Equal(t, "300", stmt.Total.String())
	})

	t.Run("different provenance same date", func(t *testing.T) {
		real := cardTransaction("t1", "2024-02-15", 80, nil)
		stmt := billing.BuildStatement(testCard, p, []domain.Transaction{real}, []domain.RecurringRule{rule}, day("2024-03-01"), billing.WithItems)
		assert.Len(t, stmt.Items, 2)
		assert.Equal(t, "230", stmt.Total.String())
	})
}

// Scenario: status against today. Before period end: OPEN. Between end and
// due date: CLOSED. Strictly after due date: OVERDUE.
func TestBuildStatementStatus(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	tests := []struct {
		today string
		want  billing.StatementStatus
	}{
		{"2024-02-20", billing.StatementOpen},
		{"2024-03-09", billing.StatementOpen},
		{"2024-03-10", billing.StatementClosed}, // period end day closes the statement
		{"2024-03-15", billing.StatementClosed},
		{"2024-03-20", billing.StatementClosed}, // due day itself is not overdue
		{"2024-03-21", billing.StatementOverdue},
		{"2024-03-25", billing.StatementOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			stmt := billing.BuildStatement(testCard, p, nil, nil, day(tt.today), billing.WithItems)
			assert.Equal(t, tt.want, stmt.Status)
		})
	}
}

// Due day shorter than the end month clamps the due date too.
func TestBuildStatementDueDateClamps(t *testing.T) {
	card := testCard
	card.ClosingDay = 25
	card.DueDay = 31
	p := billing.PeriodFor(card.ClosingDay, billing.YearMonth{2024, time.February})
	stmt := billing.BuildStatement(card, p, nil, nil, day("2024-02-01"), billing.WithItems)
	assert.Equal(t, day("2024-02-29"), stmt.DueDate)
}

func TestBuildStatementSortsNewestFirstStable(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	txns := []domain.Transaction{
		cardTransaction("t1", "2024-02-20", 10, nil),
		cardTransaction("t2", "2024-02-12", 20, nil),
		cardTransaction("t3", "2024-02-20", 30, nil),
	}
	stmt := billing.BuildStatement(testCard, p, txns, nil, day("2024-03-01"), billing.WithItems)
	require.Len(t, stmt.Items, 3)
	assert.Equal(t, "t1", stmt.Items[0].ItemID, "tie keeps original order")
	assert.Equal(t, "t3", stmt.Items[1].ItemID)
	assert.Equal(t, "t2", stmt.Items[2].ItemID)
}

// Same inputs, same output: the builder has no hidden state.
func TestBuildStatementIdempotent(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	rule := monthlyRule(15)
	txns := []domain.Transaction{
		cardTransaction("t1", "2024-02-12", 100, nil),
		cardTransaction("t2", "2024-03-05", 50, nil),
	}
	now := day("2024-03-01")

	first := billing.BuildStatement(testCard, p, txns, []domain.RecurringRule{rule}, now, billing.WithItems)
	second := billing.BuildStatement(testCard, p, txns, []domain.RecurringRule{rule}, now, billing.WithItems)
	assert.Equal(t, first, second)
}

func TestBuildStatementTotalsOnly(t *testing.T) {
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	rule := monthlyRule(15)
	txns := []domain.Transaction{cardTransaction("t1", "2024-02-12", 100, nil)}

	stmt := billing.BuildStatement(testCard, p, txns, []domain.RecurringRule{rule}, day("2024-03-01"), billing.TotalsOnly)

	assert.Nil(t, stmt.Items, "totals-only mode carries no item list")
	assert.Equal(t, "250", stmt.Total.String())
	assert.Equal(t, day("2024-03-20"), stmt.DueDate)
}

func TestBuildStatementInactiveAmountSigns(t *testing.T) {
	// Amounts are signed and summed as given; a refund reduces the total.
	p := billing.PeriodFor(testCard.ClosingDay, billing.YearMonth{2024, time.March})
	txns := []domain.Transaction{
		cardTransaction("t1", "2024-02-12", 100, nil),
		cardTransaction("t2", "2024-02-13", -40, nil),
	}
	stmt := billing.BuildStatement(testCard, p, txns, nil, day("2024-03-01"), billing.WithItems)
	assert.Equal(t, "60", stmt.Total.String())
}
