package domain

import "github.com/shopspring/decimal"

// CreditCard holds the billing-cycle configuration for one card.
// ClosingDay is the day-of-month on which a statement period ends (exclusive);
// DueDay is the day-of-month by which the closed statement must be paid.
// Business rule: DueDay > ClosingDay, validated at create/update time.
type CreditCard struct {
	CreditCardID string          `json:"creditCardID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	ClosingDay   int             `json:"closingDay"` // 1..31
	DueDay       int             `json:"dueDay"`     // 1..31
	Active       bool            `json:"active"`
	AuditFields
}
