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

type PgxReserveRepository struct {
	BaseRepository
}

func newPgxReserveRepository(pool *pgxpool.Pool) portsrepo.ReserveRepository {
	return &PgxReserveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReserveRepository = (*PgxReserveRepository)(nil)

const reserveColumns = `reserve_id, user_id, name, target_amount, current_amount, deadline, created_at, last_updated_at`

func scanReserve(row pgx.CollectableRow) (domain.Reserve, error) {
	var res domain.Reserve
	err := row.Scan(
		&res.ReserveID,
		&res.UserID,
		&res.Name,
		&res.TargetAmount,
		&res.CurrentAmount,
		&res.Deadline,
		&res.CreatedAt,
		&res.LastUpdatedAt,
	)
	return res, err
}

func scanMovement(row pgx.CollectableRow) (domain.ReserveMovement, error) {
	var m domain.ReserveMovement
	err := row.Scan(
		&m.MovementID,
		&m.ReserveID,
		&m.Date,
		&m.Amount,
		&m.Type,
	)
	return m, err
}

func (r *PgxReserveRepository) SaveReserve(ctx context.Context, reserve domain.Reserve) error {
	query := `
		INSERT INTO reserves (reserve_id, user_id, name, target_amount, current_amount, deadline, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		reserve.ReserveID,
		reserve.UserID,
		reserve.Name,
		reserve.TargetAmount,
		reserve.CurrentAmount,
		reserve.Deadline,
		reserve.CreatedAt,
		reserve.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save reserve %s: %w", reserve.ReserveID, err)
	}
	return nil
}

func (r *PgxReserveRepository) FindReserveByID(ctx context.Context, userID, reserveID string) (*domain.Reserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM reserves WHERE reserve_id = $1 AND user_id = $2;`
	rows, err := r.Pool.Query(ctx, query, reserveID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reserve by ID %s: %w", reserveID, err)
	}
	reserve, err := pgx.CollectOneRow(rows, scanReserve)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reserve by ID %s: %w", reserveID, err)
	}

	histQuery := `SELECT movement_id, reserve_id, date, amount, type FROM reserve_movements WHERE reserve_id = $1 ORDER BY date DESC;`
	histRows, err := r.Pool.Query(ctx, histQuery, reserveID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reserve history: %w", err)
	}
	history, err := pgx.CollectRows(histRows, scanMovement)
	if err != nil {
		return nil, fmt.Errorf("failed to collect reserve movement rows: %w", err)
	}
	reserve.History = history
	return &reserve, nil
}

func (r *PgxReserveRepository) ListReserves(ctx context.Context, userID string) ([]domain.Reserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM reserves WHERE user_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserves: %w", err)
	}
	reserves, err := pgx.CollectRows(rows, scanReserve)
	if err != nil {
		return nil, fmt.Errorf("failed to collect reserve rows: %w", err)
	}
	return reserves, nil
}

func (r *PgxReserveRepository) UpdateReserve(ctx context.Context, reserve domain.Reserve) error {
	query := `
		UPDATE reserves
		SET name = $1, target_amount = $2, current_amount = $3, deadline = $4, last_updated_at = $5
		WHERE reserve_id = $6 AND user_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		reserve.Name,
		reserve.TargetAmount,
		reserve.CurrentAmount,
		reserve.Deadline,
		reserve.LastUpdatedAt,
		reserve.ReserveID,
		reserve.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reserve %s: %w", reserve.ReserveID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReserveRepository) DeleteReserve(ctx context.Context, userID, reserveID string) error {
	query := `DELETE FROM reserves WHERE reserve_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, reserveID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reserve %s: %w", reserveID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AppendMovement writes the movement row and the reserve's new balance in a
// single database transaction so the history and the current amount cannot
// drift apart.
func (r *PgxReserveRepository) AppendMovement(ctx context.Context, updated domain.Reserve, movement domain.ReserveMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	insertQuery := `
		INSERT INTO reserve_movements (movement_id, reserve_id, date, amount, type)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		movement.MovementID,
		movement.ReserveID,
		movement.Date,
		movement.Amount,
		movement.Type,
	); err != nil {
		return fmt.Errorf("failed to save reserve movement %s: %w", movement.MovementID, err)
	}

	updateQuery := `
		UPDATE reserves SET current_amount = $1, last_updated_at = $2
		WHERE reserve_id = $3 AND user_id = $4;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		updated.CurrentAmount,
		updated.LastUpdatedAt,
		updated.ReserveID,
		updated.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reserve balance %s: %w", updated.ReserveID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
