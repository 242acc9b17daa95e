package services

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/dto"
)

// ReserveSvcFacade exposes savings-reserve CRUD and movements.
type ReserveSvcFacade interface {
	CreateReserve(ctx context.Context, userID string, req dto.CreateReserveRequest) (*domain.Reserve, error)
	ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error)
	UpdateReserve(ctx context.Context, userID, reserveID string, req dto.CreateReserveRequest) (*domain.Reserve, error)
	DeleteReserve(ctx context.Context, userID, reserveID string) error

	// ApplyMovement deposits into or withdraws from a reserve and returns the
	// updated reserve with its history.
	ApplyMovement(ctx context.Context, userID, reserveID string, req dto.ReserveMovementRequest) (*domain.Reserve, error)
}
