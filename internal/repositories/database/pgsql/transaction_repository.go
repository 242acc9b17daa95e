package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grana-app/grana-backend/internal/apperrors"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, category_id, credit_card_id, recurring_rule_id, amount, date, description, status, created_at, last_updated_at`

func scanTransaction(row pgx.CollectableRow) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.UserID,
		&t.CategoryID,
		&t.CreditCardID,
		&t.RecurringRuleID,
		&t.Amount,
		&t.Date,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.LastUpdatedAt,
	)
	return t, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, user_id, category_id, credit_card_id, recurring_rule_id, amount, date, description, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.CategoryID,
		txn.CreditCardID,
		txn.RecurringRuleID,
		txn.Amount,
		txn.Date,
		txn.Description,
		txn.Status,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	rows, err := r.pool.Query(ctx, query, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	txn, err := pgx.CollectOneRow(rows, scanTransaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC, created_at DESC;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	txns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction rows: %w", err)
	}
	return txns, nil
}

// ListCardTransactionsInPeriod uses a half-open date range: from is included,
// to is excluded, matching statement period boundaries.
func (r *PgxTransactionRepository) ListCardTransactionsInPeriod(ctx context.Context, userID, creditCardID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND credit_card_id = $2 AND date >= $3 AND date < $4
		ORDER BY date DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, userID, creditCardID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list card transactions in period: %w", err)
	}
	txns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) HasRuleOccurrence(ctx context.Context, ruleID string, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE recurring_rule_id = $1 AND date = $2);`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, ruleID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rule occurrence for %s: %w", ruleID, err)
	}
	return exists, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, credit_card_id = $2, amount = $3, date = $4, description = $5, status = $6, last_updated_at = $7
		WHERE transaction_id = $8 AND user_id = $9;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		txn.CategoryID,
		txn.CreditCardID,
		txn.Amount,
		txn.Date,
		txn.Description,
		txn.Status,
		txn.LastUpdatedAt,
		txn.TransactionID,
		txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	cmdTag, err := r.pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkStatementPaid settles a statement period in one conditional UPDATE.
// The status predicate guarantees each row transitions PENDING -> PAID at
// most once, so concurrent payments of the same month cannot double-count.
func (r *PgxTransactionRepository) MarkStatementPaid(ctx context.Context, userID, creditCardID string, from, to time.Time) (int64, error) {
	query := `
		UPDATE transactions
		SET status = $1, last_updated_at = now()
		WHERE user_id = $2 AND credit_card_id = $3 AND status = $4 AND date >= $5 AND date < $6;
	`
	cmdTag, err := r.pool.Exec(ctx, query, domain.Paid, userID, creditCardID, domain.Pending, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to mark statement paid: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
