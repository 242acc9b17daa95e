package dto

import (
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRuleRequest defines the data needed to create a monthly rule.
// Only monthly-on-day recurrence is supported; MonthDay past the end of a
// short month clamps when projected.
type CreateRecurringRuleRequest struct {
	CategoryID   *string         `json:"categoryID"`
	CreditCardID *string         `json:"creditCardID"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	MonthDay     int             `json:"monthDay" binding:"required,min=1,max=31"`
	Active       *bool           `json:"active"`
	EndDate      *string         `json:"endDate"` // "YYYY-MM-DD"
	AutoCreate   bool            `json:"autoCreate"`
}

// RecurringRuleResponse defines the data returned for a recurring rule.
type RecurringRuleResponse struct {
	RuleID       string          `json:"ruleID"`
	CategoryID   *string         `json:"categoryID,omitempty"`
	CreditCardID *string         `json:"creditCardID,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	MonthDay     int             `json:"monthDay"`
	Active       bool            `json:"active"`
	EndDate      *string         `json:"endDate,omitempty"`
	AutoCreate   bool            `json:"autoCreate"`
	LastRunAt    *string         `json:"lastRunAt,omitempty"`
}

// ToRecurringRuleResponse converts a domain.RecurringRule to its DTO.
func ToRecurringRuleResponse(r *domain.RecurringRule) RecurringRuleResponse {
	resp := RecurringRuleResponse{
		RuleID:       r.RuleID,
		CategoryID:   r.CategoryID,
		CreditCardID: r.CreditCardID,
		Amount:       r.Amount,
		Description:  r.Description,
		MonthDay:     r.MonthDay,
		Active:       r.Active,
		AutoCreate:   r.AutoCreate,
	}
	if r.EndDate != nil {
		s := r.EndDate.Format(domain.DateLayout)
		resp.EndDate = &s
	}
	if r.LastRunAt != nil {
		s := r.LastRunAt.Format(domain.DateLayout)
		resp.LastRunAt = &s
	}
	return resp
}

// ToRecurringRuleResponses converts a slice of rules.
func ToRecurringRuleResponses(rules []domain.RecurringRule) []RecurringRuleResponse {
	res := make([]RecurringRuleResponse, len(rules))
	for i := range rules {
		res[i] = ToRecurringRuleResponse(&rules[i])
	}
	return res
}
