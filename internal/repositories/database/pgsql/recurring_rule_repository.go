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

type PgxRecurringRuleRepository struct {
	pool *pgxpool.Pool
}

func newPgxRecurringRuleRepository(pool *pgxpool.Pool) portsrepo.RecurringRuleRepositoryFacade {
	return &PgxRecurringRuleRepository{pool: pool}
}

var _ portsrepo.RecurringRuleRepositoryFacade = (*PgxRecurringRuleRepository)(nil)

const ruleColumns = `rule_id, user_id, category_id, credit_card_id, amount, description, month_day, active, end_date, auto_create, last_run_at, created_at, last_updated_at`

func scanRule(row pgx.CollectableRow) (domain.RecurringRule, error) {
	var rule domain.RecurringRule
	err := row.Scan(
		&rule.RuleID,
		&rule.UserID,
		&rule.CategoryID,
		&rule.CreditCardID,
		&rule.Amount,
		&rule.Description,
		&rule.MonthDay,
		&rule.Active,
		&rule.EndDate,
		&rule.AutoCreate,
		&rule.LastRunAt,
		&rule.CreatedAt,
		&rule.LastUpdatedAt,
	)
	return rule, err
}

func (r *PgxRecurringRuleRepository) SaveRule(ctx context.Context, rule domain.RecurringRule) error {
	query := `
		INSERT INTO recurring_rules (rule_id, user_id, category_id, credit_card_id, amount, description, month_day, active, end_date, auto_create, last_run_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		rule.RuleID,
		rule.UserID,
		rule.CategoryID,
		rule.CreditCardID,
		rule.Amount,
		rule.Description,
		rule.MonthDay,
		rule.Active,
		rule.EndDate,
		rule.AutoCreate,
		rule.LastRunAt,
		rule.CreatedAt,
		rule.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurring rule %s: %w", rule.RuleID, err)
	}
	return nil
}

func (r *PgxRecurringRuleRepository) FindRuleByID(ctx context.Context, userID, ruleID string) (*domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE rule_id = $1 AND user_id = $2;`
	rows, err := r.pool.Query(ctx, query, ruleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring rule by ID %s: %w", ruleID, err)
	}
	rule, err := pgx.CollectOneRow(rows, scanRule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring rule by ID %s: %w", ruleID, err)
	}
	return &rule, nil
}

func (r *PgxRecurringRuleRepository) ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	rules, err := pgx.CollectRows(rows, scanRule)
	if err != nil {
		return nil, fmt.Errorf("failed to collect recurring rule rows: %w", err)
	}
	return rules, nil
}

func (r *PgxRecurringRuleRepository) ListActiveRulesForCard(ctx context.Context, userID, creditCardID string) ([]domain.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE user_id = $1 AND credit_card_id = $2 AND active;
	`
	rows, err := r.pool.Query(ctx, query, userID, creditCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules for card %s: %w", creditCardID, err)
	}
	rules, err := pgx.CollectRows(rows, scanRule)
	if err != nil {
		return nil, fmt.Errorf("failed to collect recurring rule rows: %w", err)
	}
	return rules, nil
}

// ListAutoCreateRules scans across all users; it backs the recurring worker,
// not a request path.
func (r *PgxRecurringRuleRepository) ListAutoCreateRules(ctx context.Context) ([]domain.RecurringRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM recurring_rules WHERE active AND auto_create;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-create rules: %w", err)
	}
	rules, err := pgx.CollectRows(rows, scanRule)
	if err != nil {
		return nil, fmt.Errorf("failed to collect recurring rule rows: %w", err)
	}
	return rules, nil
}

func (r *PgxRecurringRuleRepository) UpdateRule(ctx context.Context, rule domain.RecurringRule) error {
	query := `
		UPDATE recurring_rules
		SET category_id = $1, credit_card_id = $2, amount = $3, description = $4, month_day = $5, active = $6, end_date = $7, auto_create = $8, last_updated_at = $9
		WHERE rule_id = $10 AND user_id = $11;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		rule.CategoryID,
		rule.CreditCardID,
		rule.Amount,
		rule.Description,
		rule.MonthDay,
		rule.Active,
		rule.EndDate,
		rule.AutoCreate,
		rule.LastUpdatedAt,
		rule.RuleID,
		rule.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring rule %s: %w", rule.RuleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRuleRepository) DeleteRule(ctx context.Context, userID, ruleID string) error {
	query := `DELETE FROM recurring_rules WHERE rule_id = $1 AND user_id = $2;`
	cmdTag, err := r.pool.Exec(ctx, query, ruleID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring rule %s: %w", ruleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRuleRepository) TouchRuleLastRun(ctx context.Context, ruleID string, ranAt time.Time) error {
	query := `UPDATE recurring_rules SET last_run_at = $1 WHERE rule_id = $2;`
	if _, err := r.pool.Exec(ctx, query, ranAt, ruleID); err != nil {
		return fmt.Errorf("failed to record last run for rule %s: %w", ruleID, err)
	}
	return nil
}
