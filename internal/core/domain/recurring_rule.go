package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringRule is a template that produces one transaction per month on a
// fixed day. MonthDay may exceed the length of a month; it is clamped to the
// last valid day when projected onto a concrete month.
//
// AutoCreate rules are materialized into real transactions by the recurring
// worker; billing projections never depend on whether that has happened yet.
type RecurringRule struct {
	RuleID       string          `json:"ruleID"`
	UserID       string          `json:"userID"`
	CategoryID   *string         `json:"categoryID,omitempty"`
	CreditCardID *string         `json:"creditCardID,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	MonthDay     int             `json:"monthDay"` // 1..31
	Active       bool            `json:"active"`
	EndDate      *time.Time      `json:"endDate,omitempty"` // last day the rule may still fire
	AutoCreate   bool            `json:"autoCreate"`
	LastRunAt    *time.Time      `json:"lastRunAt,omitempty"` // worker bookkeeping
	AuditFields
}
