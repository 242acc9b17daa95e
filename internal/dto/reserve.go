package dto

import (
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReserveRequest defines the data needed to create a savings reserve.
type CreateReserveRequest struct {
	Name          string          `json:"name" binding:"required"`
	TargetAmount  decimal.Decimal `json:"targetAmount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *string         `json:"deadline"` // "YYYY-MM-DD"
}

// ReserveMovementRequest defines a deposit or withdrawal against a reserve.
type ReserveMovementRequest struct {
	Amount decimal.Decimal            `json:"amount" binding:"required"`
	Type   domain.ReserveMovementType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAW"`
}

// ReserveMovementResponse is one history entry of a reserve.
type ReserveMovementResponse struct {
	MovementID string                     `json:"movementID"`
	Date       string                     `json:"date"`
	Amount     decimal.Decimal            `json:"amount"`
	Type       domain.ReserveMovementType `json:"type"`
}

// ReserveResponse defines the data returned for a reserve.
type ReserveResponse struct {
	ReserveID     string                    `json:"reserveID"`
	Name          string                    `json:"name"`
	TargetAmount  decimal.Decimal           `json:"targetAmount"`
	CurrentAmount decimal.Decimal           `json:"currentAmount"`
	Deadline      *string                   `json:"deadline,omitempty"`
	History       []ReserveMovementResponse `json:"history"`
}

// ToReserveResponse converts a domain.Reserve to its DTO.
func ToReserveResponse(r *domain.Reserve) ReserveResponse {
	resp := ReserveResponse{
		ReserveID:     r.ReserveID,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		History:       make([]ReserveMovementResponse, len(r.History)),
	}
	if r.Deadline != nil {
		s := r.Deadline.Format(domain.DateLayout)
		resp.Deadline = &s
	}
	for i, m := range r.History {
		resp.History[i] = ReserveMovementResponse{
			MovementID: m.MovementID,
			Date:       m.Date.Format(domain.DateLayout),
			Amount:     m.Amount,
			Type:       m.Type,
		}
	}
	return resp
}

// ToReserveResponses converts a slice of reserves.
func ToReserveResponses(reserves []domain.Reserve) []ReserveResponse {
	res := make([]ReserveResponse, len(reserves))
	for i := range reserves {
		res[i] = ToReserveResponse(&reserves[i])
	}
	return res
}
