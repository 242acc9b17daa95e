package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReserveMovementType distinguishes money moved into or out of a reserve.
type ReserveMovementType string

const (
	Deposit  ReserveMovementType = "DEPOSIT"
	Withdraw ReserveMovementType = "WITHDRAW"
)

// Reserve is a savings pot with a target amount and optional deadline.
type Reserve struct {
	ReserveID     string          `json:"reserveID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	History       []ReserveMovement `json:"history,omitempty"`
	AuditFields
}

// ReserveMovement records a single deposit or withdrawal against a reserve.
type ReserveMovement struct {
	MovementID string              `json:"movementID"`
	ReserveID  string              `json:"reserveID"`
	Date       time.Time           `json:"date"`
	Amount     decimal.Decimal     `json:"amount"`
	Type       ReserveMovementType `json:"type"`
}
