package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grana-app/grana-backend/internal/apperrors"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/dto"
)

// ReserveService implements savings-reserve CRUD and movements.
type ReserveService struct {
	BaseService
	reserveRepo portsrepo.ReserveRepository
}

var _ portssvc.ReserveSvcFacade = (*ReserveService)(nil)

func NewReserveService(reserveRepo portsrepo.ReserveRepository) *ReserveService {
	return &ReserveService{reserveRepo: reserveRepo}
}

func (s *ReserveService) CreateReserve(ctx context.Context, userID string, req dto.CreateReserveRequest) (*domain.Reserve, error) {
	now := time.Now().UTC()
	reserve := domain.Reserve{
		ReserveID:     uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if req.Deadline != nil {
		deadline, err := parseDay(*req.Deadline)
		if err != nil {
			return nil, err
		}
		reserve.Deadline = &deadline
	}
	if err := s.reserveRepo.SaveReserve(ctx, reserve); err != nil {
		return nil, fmt.Errorf("failed to create reserve: %w", err)
	}
	return &reserve, nil
}

func (s *ReserveService) ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error) {
	reserves, err := s.reserveRepo.ListReserves(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserves: %w", err)
	}
	if reserves == nil {
		reserves = []domain.Reserve{}
	}
	return reserves, nil
}

func (s *ReserveService) UpdateReserve(ctx context.Context, userID, reserveID string, req dto.CreateReserveRequest) (*domain.Reserve, error) {
	reserve, err := s.reserveRepo.FindReserveByID(ctx, userID, reserveID)
	if err != nil {
		return nil, err
	}
	reserve.Name = req.Name
	reserve.TargetAmount = req.TargetAmount
	reserve.CurrentAmount = req.CurrentAmount
	reserve.Deadline = nil
	if req.Deadline != nil {
		deadline, err := parseDay(*req.Deadline)
		if err != nil {
			return nil, err
		}
		reserve.Deadline = &deadline
	}
	reserve.LastUpdatedAt = time.Now().UTC()
	if err := s.reserveRepo.UpdateReserve(ctx, *reserve); err != nil {
		return nil, fmt.Errorf("failed to update reserve: %w", err)
	}
	return reserve, nil
}

func (s *ReserveService) DeleteReserve(ctx context.Context, userID, reserveID string) error {
	return s.reserveRepo.DeleteReserve(ctx, userID, reserveID)
}

// ApplyMovement deposits into or withdraws from a reserve, appending to its
// history and adjusting the current amount atomically.
func (s *ReserveService) ApplyMovement(ctx context.Context, userID, reserveID string, req dto.ReserveMovementRequest) (*domain.Reserve, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: movement amount must be positive", apperrors.ErrValidation)
	}
	reserve, err := s.reserveRepo.FindReserveByID(ctx, userID, reserveID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch req.Type {
	case domain.Deposit:
		reserve.CurrentAmount = reserve.CurrentAmount.Add(req.Amount)
	case domain.Withdraw:
		reserve.CurrentAmount = reserve.CurrentAmount.Sub(req.Amount)
	default:
		return nil, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, req.Type)
	}
	reserve.LastUpdatedAt = now

	movement := domain.ReserveMovement{
		MovementID: uuid.NewString(),
		ReserveID:  reserve.ReserveID,
		Date:       now,
		Amount:     req.Amount,
		Type:       req.Type,
	}
	if err := s.reserveRepo.AppendMovement(ctx, *reserve, movement); err != nil {
		return nil, fmt.Errorf("failed to apply reserve movement: %w", err)
	}
	reserve.History = append(reserve.History, movement)
	return reserve, nil
}
