package repositories

import (
	"context"
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by the given user.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves all transactions of a user, newest date first.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListCardTransactionsInPeriod retrieves a card's transactions with
	// from <= date < to.
	ListCardTransactionsInPeriod(ctx context.Context, userID, creditCardID string, from, to time.Time) ([]domain.Transaction, error)

	// HasRuleOccurrence reports whether a transaction materialized from the
	// given rule already exists on the given date.
	HasRuleOccurrence(ctx context.Context, ruleID string, date time.Time) (bool, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction's details.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction owned by the given user.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// MarkStatementPaid transitions all PENDING card transactions with
	// from <= date < to into PAID and returns how many rows changed. The
	// status predicate lives in the UPDATE itself so concurrent callers
	// cannot double-count.
	MarkStatementPaid(ctx context.Context, userID, creditCardID string, from, to time.Time) (int64, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
