package repositories

import (
	"context"
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
)

// RecurringRuleReader defines read operations for recurring rules.
type RecurringRuleReader interface {
	FindRuleByID(ctx context.Context, userID, ruleID string) (*domain.RecurringRule, error)
	ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error)

	// ListActiveRulesForCard retrieves the active rules bound to one card.
	ListActiveRulesForCard(ctx context.Context, userID, creditCardID string) ([]domain.RecurringRule, error)

	// ListAutoCreateRules retrieves every active auto-create rule across all
	// users, for the recurring worker.
	ListAutoCreateRules(ctx context.Context) ([]domain.RecurringRule, error)
}

// RecurringRuleWriter defines write operations for recurring rules.
type RecurringRuleWriter interface {
	SaveRule(ctx context.Context, rule domain.RecurringRule) error
	UpdateRule(ctx context.Context, rule domain.RecurringRule) error
	DeleteRule(ctx context.Context, userID, ruleID string) error

	// TouchRuleLastRun records when the recurring worker last handled a rule.
	TouchRuleLastRun(ctx context.Context, ruleID string, ranAt time.Time) error
}

// RecurringRuleRepositoryFacade combines all recurring-rule repository interfaces.
type RecurringRuleRepositoryFacade interface {
	RecurringRuleReader
	RecurringRuleWriter
}
