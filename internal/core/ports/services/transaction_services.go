package services

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/dto"
)

// TransactionSvcFacade exposes transaction CRUD, scoped to the calling user.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}
