package repositories

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/domain"
)

// ReserveRepository defines persistence operations for savings reserves.
type ReserveRepository interface {
	SaveReserve(ctx context.Context, reserve domain.Reserve) error
	FindReserveByID(ctx context.Context, userID, reserveID string) (*domain.Reserve, error)
	ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error)
	UpdateReserve(ctx context.Context, reserve domain.Reserve) error
	DeleteReserve(ctx context.Context, userID, reserveID string) error

	// AppendMovement stores a deposit/withdraw movement and the reserve's new
	// current amount in one database transaction.
	AppendMovement(ctx context.Context, updated domain.Reserve, movement domain.ReserveMovement) error
}
