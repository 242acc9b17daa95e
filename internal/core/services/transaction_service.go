package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/dto"
)

// TransactionService implements transaction CRUD.
type TransactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		CategoryID:      req.CategoryID,
		CreditCardID:    req.CreditCardID,
		RecurringRuleID: req.RecurringRuleID,
		Amount:          req.Amount,
		Date:            date,
		Description:     req.Description,
		Status:          req.Status,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	txn.CategoryID = req.CategoryID
	txn.CreditCardID = req.CreditCardID
	txn.RecurringRuleID = req.RecurringRuleID
	txn.Amount = req.Amount
	txn.Date = date
	txn.Description = req.Description
	txn.Status = req.Status
	txn.LastUpdatedAt = time.Now().UTC()
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return s.txnRepo.DeleteTransaction(ctx, userID, transactionID)
}
