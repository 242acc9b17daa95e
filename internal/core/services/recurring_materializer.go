package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
)

// RecurringMaterializer turns due auto-create rules into persisted PENDING
// transactions. It is a collaborator of the billing engine, not part of it:
// statements stay correct whether or not a rule has been materialized,
// because both sides dedup on the exact (rule, date) pair.
type RecurringMaterializer struct {
	BaseService
	ruleRepo portsrepo.RecurringRuleRepositoryFacade
	txnRepo  portsrepo.TransactionRepositoryFacade
}

var _ portssvc.RecurringMaterializerSvc = (*RecurringMaterializer)(nil)

func NewRecurringMaterializer(ruleRepo portsrepo.RecurringRuleRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) *RecurringMaterializer {
	return &RecurringMaterializer{ruleRepo: ruleRepo, txnRepo: txnRepo}
}

// RunOnce materializes, for every active auto-create rule, this month's
// occurrence when its day has arrived and no transaction for that exact
// (rule, date) exists yet. Returns how many transactions were created.
// Failures on one rule are logged and skipped; the scan continues.
func (s *RecurringMaterializer) RunOnce(ctx context.Context, now time.Time) (int, error) {
	rules, err := s.ruleRepo.ListAutoCreateRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list auto-create rules: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	created := 0
	for _, rule := range rules {
		occurrence := billing.SafeDate(today.Year(), today.Month(), rule.MonthDay)
		if occurrence.After(today) {
			continue // not due yet this month
		}
		if rule.EndDate != nil && occurrence.After(*rule.EndDate) {
			continue
		}

		exists, err := s.txnRepo.HasRuleOccurrence(ctx, rule.RuleID, occurrence)
		if err != nil {
			s.LogError(ctx, err, "Failed to check rule occurrence", "rule_id", rule.RuleID)
			continue
		}
		if exists {
			continue
		}

		ruleID := rule.RuleID
		txn := domain.Transaction{
			TransactionID:   uuid.NewString(),
			UserID:          rule.UserID,
			CategoryID:      rule.CategoryID,
			CreditCardID:    rule.CreditCardID,
			RecurringRuleID: &ruleID,
			Amount:          rule.Amount,
			Date:            occurrence,
			Description:     rule.Description,
			Status:          domain.Pending,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
			s.LogError(ctx, err, "Failed to materialize rule occurrence", "rule_id", rule.RuleID)
			continue
		}
		if err := s.ruleRepo.TouchRuleLastRun(ctx, rule.RuleID, now); err != nil {
			// Transaction exists; the dedup check keeps a retry harmless.
			s.LogError(ctx, err, "Failed to record rule last run", "rule_id", rule.RuleID)
		}
		created++
		s.LogInfo(ctx, "Materialized recurring transaction",
			"rule_id", rule.RuleID, "date", occurrence.Format(domain.DateLayout))
	}
	return created, nil
}
