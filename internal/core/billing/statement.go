package billing

import (
	"sort"
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementStatus describes where a statement sits in its lifecycle.
type StatementStatus string

const (
	StatementOpen    StatementStatus = "OPEN"
	StatementClosed  StatementStatus = "CLOSED"
	StatementOverdue StatementStatus = "OVERDUE"
)

// ProjectedSuffix marks a statement item synthesized from a recurring rule
// rather than read from a persisted transaction.
const ProjectedSuffix = " (recorrente)"

// StatementItem is one line of a statement: either a persisted transaction or
// a projected recurring charge not yet materialized. Both shapes expose the
// same date/amount/status fields so sorting and totaling never dispatch on
// kind. Projected items always carry a synthetic ID of rule ID + date and
// status PENDING.
type StatementItem struct {
	ItemID          string                   `json:"itemID"`
	Projected       bool                     `json:"projected"`
	RecurringRuleID string                   `json:"recurringRuleID,omitempty"`
	CategoryID      *string                  `json:"categoryID,omitempty"`
	Date            time.Time                `json:"date"`
	Amount          decimal.Decimal          `json:"amount"`
	Description     string                   `json:"description"`
	Status          domain.TransactionStatus `json:"status"`
}

// Statement is the assembled invoice for one card and one period.
type Statement struct {
	Period  Period          `json:"period"`
	Items   []StatementItem `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Status  StatementStatus `json:"status"`
	DueDate time.Time       `json:"dueDate"`
}

// Mode selects how much of the statement is assembled.
type Mode int

const (
	// WithItems produces the full item list with per-date deduplication.
	WithItems Mode = iota
	// TotalsOnly skips the item list; each rule contributes at most once per
	// period even if multiple candidate dates were to survive.
	TotalsOnly
)

func realItem(t domain.Transaction) StatementItem {
	ruleID := ""
	if t.RecurringRuleID != nil {
		ruleID = *t.RecurringRuleID
	}
	return StatementItem{
		ItemID:          t.TransactionID,
		RecurringRuleID: ruleID,
		CategoryID:      t.CategoryID,
		Date:            t.Date,
		Amount:          t.Amount,
		Description:     t.Description,
		Status:          t.Status,
	}
}

func projectedItem(rule domain.RecurringRule, date time.Time) StatementItem {
	return StatementItem{
		ItemID:          rule.RuleID + ":" + date.Format(domain.DateLayout),
		Projected:       true,
		RecurringRuleID: rule.RuleID,
		CategoryID:      rule.CategoryID,
		Date:            date,
		Amount:          rule.Amount,
		Description:     rule.Description + ProjectedSuffix,
		Status:          domain.Pending,
	}
}

// BuildStatement merges the card's persisted transactions for the period with
// projected occurrences of its active recurring rules, deduplicates, totals,
// and derives the statement status against now.
//
// Transactions are assumed already filtered to this card and period by the
// caller. The dedup key is exact: a real transaction suppresses a projection
// only when it carries the same rule ID and the same date. Correctness must
// not depend on whether the recurring worker has already materialized a rule.
func BuildStatement(card domain.CreditCard, p Period, transactions []domain.Transaction, rules []domain.RecurringRule, now time.Time, mode Mode) Statement {
	items := make([]StatementItem, 0, len(transactions))
	total := decimal.Zero
	for _, t := range transactions {
		items = append(items, realItem(t))
		total = total.Add(t.Amount)
	}

	for _, rule := range rules {
		added := false
		for _, d := range OccurrencesInPeriod(rule, p) {
			if mode == TotalsOnly && added {
				break
			}
			if hasMaterialized(items, rule.RuleID, d) {
				continue
			}
			if mode == WithItems {
				items = append(items, projectedItem(rule, d))
			}
			total = total.Add(rule.Amount)
			added = true
		}
	}

	// Newest first; ties keep their original relative order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	stmt := Statement{
		Period:  p,
		Total:   total,
		DueDate: SafeDate(p.End.Year(), p.End.Month(), card.DueDay),
	}
	if mode == WithItems {
		stmt.Items = items
	}
	stmt.Status = statusAt(stmt, now)
	return stmt
}

func hasMaterialized(items []StatementItem, ruleID string, d time.Time) bool {
	for _, it := range items {
		if !it.Projected && it.RecurringRuleID == ruleID && it.Date.Equal(d) {
			return true
		}
	}
	return false
}

// statusAt derives OPEN/CLOSED/OVERDUE. The period is open until its end day;
// once closed it becomes overdue strictly after the due date.
func statusAt(stmt Statement, now time.Time) StatementStatus {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(stmt.Period.End) {
		return StatementOpen
	}
	if today.After(stmt.DueDate) {
		return StatementOverdue
	}
	return StatementClosed
}
