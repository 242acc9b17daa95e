package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates whether a transaction has been settled.
type TransactionStatus string

const (
	Paid    TransactionStatus = "PAID"
	Pending TransactionStatus = "PENDING"
)

// Transaction is a single dated money movement. The amount is stored signed,
// exactly as given by the caller.
//
// A transaction with a CreditCardID belongs to that card's statements. A
// transaction with a RecurringRuleID is the materialized occurrence of that
// rule and must never be counted again as a projection for the same date.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	UserID          string            `json:"userID"`
	CategoryID      *string           `json:"categoryID,omitempty"`
	CreditCardID    *string           `json:"creditCardID,omitempty"`
	RecurringRuleID *string           `json:"recurringRuleID,omitempty"`
	Amount          decimal.Decimal   `json:"amount"`
	Date            time.Time         `json:"date"` // calendar day, midnight UTC
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	AuditFields
}
