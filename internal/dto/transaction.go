package dto

import (
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Date travels as "YYYY-MM-DD"; the service parses and validates it.
type CreateTransactionRequest struct {
	CategoryID      *string                  `json:"categoryID"`
	CreditCardID    *string                  `json:"creditCardID"`
	RecurringRuleID *string                  `json:"recurringRuleID"`
	Amount          decimal.Decimal          `json:"amount" binding:"required"`
	Date            string                   `json:"date" binding:"required"`
	Description     string                   `json:"description" binding:"required"`
	Status          domain.TransactionStatus `json:"status" binding:"required,oneof=PAID PENDING"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	CategoryID      *string                  `json:"categoryID,omitempty"`
	CreditCardID    *string                  `json:"creditCardID,omitempty"`
	RecurringRuleID *string                  `json:"recurringRuleID,omitempty"`
	Amount          decimal.Decimal          `json:"amount"`
	Date            string                   `json:"date"`
	Description     string                   `json:"description"`
	Status          domain.TransactionStatus `json:"status"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		CategoryID:      t.CategoryID,
		CreditCardID:    t.CreditCardID,
		RecurringRuleID: t.RecurringRuleID,
		Amount:          t.Amount,
		Date:            t.Date.Format(domain.DateLayout),
		Description:     t.Description,
		Status:          t.Status,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
