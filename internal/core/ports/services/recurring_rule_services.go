package services

import (
	"context"
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/dto"
)

// RecurringRuleSvcFacade exposes recurring-rule CRUD, scoped to the calling user.
type RecurringRuleSvcFacade interface {
	CreateRule(ctx context.Context, userID string, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error)
	ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error)
	UpdateRule(ctx context.Context, userID, ruleID string, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error)
	DeleteRule(ctx context.Context, userID, ruleID string) error
}

// RecurringMaterializerSvc turns due auto-create rules into real transactions.
// It runs on its own cadence, outside the billing core; statement correctness
// never depends on whether it has fired.
type RecurringMaterializerSvc interface {
	// RunOnce materializes every due rule occurrence up to now and returns
	// how many transactions were created.
	RunOnce(ctx context.Context, now time.Time) (int, error)
}
