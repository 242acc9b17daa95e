package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/grana-app/grana-backend/internal/apperrors"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCreditCardRepository struct {
	pool *pgxpool.Pool
}

func newPgxCreditCardRepository(pool *pgxpool.Pool) portsrepo.CreditCardRepositoryFacade {
	return &PgxCreditCardRepository{pool: pool}
}

var _ portsrepo.CreditCardRepositoryFacade = (*PgxCreditCardRepository)(nil)

const creditCardColumns = `credit_card_id, user_id, name, brand, credit_limit, closing_day, due_day, active, created_at, last_updated_at`

func scanCreditCard(row pgx.CollectableRow) (domain.CreditCard, error) {
	var c domain.CreditCard
	err := row.Scan(
		&c.CreditCardID,
		&c.UserID,
		&c.Name,
		&c.Brand,
		&c.CreditLimit,
		&c.ClosingDay,
		&c.DueDay,
		&c.Active,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	return c, err
}

func (r *PgxCreditCardRepository) SaveCreditCard(ctx context.Context, card domain.CreditCard) error {
	query := `
		INSERT INTO credit_cards (credit_card_id, user_id, name, brand, credit_limit, closing_day, due_day, active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		card.CreditCardID,
		card.UserID,
		card.Name,
		card.Brand,
		card.CreditLimit,
		card.ClosingDay,
		card.DueDay,
		card.Active,
		card.CreatedAt,
		card.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save credit card %s: %w", card.CreditCardID, err)
	}
	return nil
}

// FindCreditCardByID scopes the lookup to the owning user; a card that exists
// but belongs to someone else is reported as not found.
func (r *PgxCreditCardRepository) FindCreditCardByID(ctx context.Context, userID, creditCardID string) (*domain.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE credit_card_id = $1 AND user_id = $2;`
	rows, err := r.pool.Query(ctx, query, creditCardID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find credit card by ID %s: %w", creditCardID, err)
	}
	card, err := pgx.CollectOneRow(rows, scanCreditCard)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit card by ID %s: %w", creditCardID, err)
	}
	return &card, nil
}

func (r *PgxCreditCardRepository) ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE user_id = $1 ORDER BY name;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	cards, err := pgx.CollectRows(rows, scanCreditCard)
	if err != nil {
		return nil, fmt.Errorf("failed to collect credit card rows: %w", err)
	}
	return cards, nil
}

func (r *PgxCreditCardRepository) UpdateCreditCard(ctx context.Context, card domain.CreditCard) error {
	query := `
		UPDATE credit_cards
		SET name = $1, brand = $2, credit_limit = $3, closing_day = $4, due_day = $5, active = $6, last_updated_at = $7
		WHERE credit_card_id = $8 AND user_id = $9;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		card.Name,
		card.Brand,
		card.CreditLimit,
		card.ClosingDay,
		card.DueDay,
		card.Active,
		card.LastUpdatedAt,
		card.CreditCardID,
		card.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update credit card %s: %w", card.CreditCardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCreditCardRepository) DeleteCreditCard(ctx context.Context, userID, creditCardID string) error {
	query := `DELETE FROM credit_cards WHERE credit_card_id = $1 AND user_id = $2;`
	cmdTag, err := r.pool.Exec(ctx, query, creditCardID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete credit card %s: %w", creditCardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
