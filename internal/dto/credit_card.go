package dto

import (
	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditCardRequest defines the data needed to register a card.
// DueDay must be strictly greater than ClosingDay; the service enforces it.
type CreateCreditCardRequest struct {
	Name        string          `json:"name" binding:"required"`
	Brand       string          `json:"brand"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	ClosingDay  int             `json:"closingDay" binding:"required,min=1,max=31"`
	DueDay      int             `json:"dueDay" binding:"required,min=1,max=31"`
	Active      *bool           `json:"active"`
}

// CreditCardResponse defines the data returned for a credit card.
type CreditCardResponse struct {
	CreditCardID string          `json:"creditCardID"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	ClosingDay   int             `json:"closingDay"`
	DueDay       int             `json:"dueDay"`
	Active       bool            `json:"active"`
}

// ToCreditCardResponse converts a domain.CreditCard to its DTO.
func ToCreditCardResponse(c *domain.CreditCard) CreditCardResponse {
	return CreditCardResponse{
		CreditCardID: c.CreditCardID,
		Name:         c.Name,
		Brand:        c.Brand,
		CreditLimit:  c.CreditLimit,
		ClosingDay:   c.ClosingDay,
		DueDay:       c.DueDay,
		Active:       c.Active,
	}
}

// ToCreditCardResponses converts a slice of cards.
func ToCreditCardResponses(cards []domain.CreditCard) []CreditCardResponse {
	res := make([]CreditCardResponse, len(cards))
	for i := range cards {
		res[i] = ToCreditCardResponse(&cards[i])
	}
	return res
}

// PeriodResponse is the half-open statement interval on the wire.
type PeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StatementItemResponse is one statement line: a persisted transaction or a
// projected recurring charge (Projected=true, synthetic ID).
type StatementItemResponse struct {
	ItemID          string                   `json:"itemID"`
	Projected       bool                     `json:"projected"`
	RecurringRuleID string                   `json:"recurringRuleID,omitempty"`
	CategoryID      *string                  `json:"categoryID,omitempty"`
	Date            string                   `json:"date"`
	Amount          decimal.Decimal          `json:"amount"`
	Description     string                   `json:"description"`
	Status          domain.TransactionStatus `json:"status"`
}

// StatementResponse is the full statement for one card and month.
type StatementResponse struct {
	Period       PeriodResponse          `json:"period"`
	Transactions []StatementItemResponse `json:"transactions"`
	Total        decimal.Decimal         `json:"total"`
	Status       billing.StatementStatus `json:"status"`
	DueDate      string                  `json:"dueDate"`
}

// ToStatementResponse converts a billing.Statement to its DTO.
func ToStatementResponse(stmt *billing.Statement) StatementResponse {
	items := make([]StatementItemResponse, len(stmt.Items))
	for i, it := range stmt.Items {
		items[i] = StatementItemResponse{
			ItemID:          it.ItemID,
			Projected:       it.Projected,
			RecurringRuleID: it.RecurringRuleID,
			CategoryID:      it.CategoryID,
			Date:            it.Date.Format(domain.DateLayout),
			Amount:          it.Amount,
			Description:     it.Description,
			Status:          it.Status,
		}
	}
	return StatementResponse{
		Period: PeriodResponse{
			Start: stmt.Period.Start.Format(domain.DateLayout),
			End:   stmt.Period.End.Format(domain.DateLayout),
		},
		Transactions: items,
		Total:        stmt.Total,
		Status:       stmt.Status,
		DueDate:      stmt.DueDate.Format(domain.DateLayout),
	}
}

// ProjectionEntryResponse is the forecast for one future statement.
type ProjectionEntryResponse struct {
	Month   string          `json:"month"`
	Total   decimal.Decimal `json:"total"`
	DueDate string          `json:"dueDate"`
}

// ToProjectionResponse converts projector output to its DTO.
func ToProjectionResponse(entries []billing.ProjectionEntry) []ProjectionEntryResponse {
	res := make([]ProjectionEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ProjectionEntryResponse{
			Month:   e.Month.String(),
			Total:   e.Total,
			DueDate: e.DueDate.Format(domain.DateLayout),
		}
	}
	return res
}

// PayInvoiceResponse reports how many transactions a payment settled.
type PayInvoiceResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
