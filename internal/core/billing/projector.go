package billing

import (
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultHorizonMonths is the length of the rolling projection window.
const DefaultHorizonMonths = 12

// TransactionSource fetches the persisted transactions of one card inside a
// period. The projector calls it once per projected month; far-future months
// simply return nothing.
type TransactionSource func(Period) ([]domain.Transaction, error)

// ProjectionEntry is the forecast for one future statement.
type ProjectionEntry struct {
	Month   YearMonth       `json:"month"`
	Total   decimal.Decimal `json:"total"`
	DueDate time.Time       `json:"dueDate"`
}

// Project computes invoice totals for horizon consecutive months starting at
// from, using the same merge-and-dedup rules as the statement builder in
// totals-only mode. Results are recomputed fresh on every call; nothing is
// cached.
func Project(card domain.CreditCard, rules []domain.RecurringRule, source TransactionSource, from YearMonth, horizon int, now time.Time) ([]ProjectionEntry, error) {
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}
	entries := make([]ProjectionEntry, 0, horizon)
	for i := 0; i < horizon; i++ {
		target := from.AddMonths(i)
		p := PeriodFor(card.ClosingDay, target)
		transactions, err := source(p)
		if err != nil {
			return nil, err
		}
		stmt := BuildStatement(card, p, transactions, rules, now, TotalsOnly)
		entries = append(entries, ProjectionEntry{
			Month:   target,
			Total:   stmt.Total,
			DueDate: stmt.DueDate,
		})
	}
	return entries, nil
}
