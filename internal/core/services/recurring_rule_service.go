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

// RecurringRuleService implements recurring-rule CRUD.
type RecurringRuleService struct {
	BaseService
	ruleRepo portsrepo.RecurringRuleRepositoryFacade
}

var _ portssvc.RecurringRuleSvcFacade = (*RecurringRuleService)(nil)

func NewRecurringRuleService(ruleRepo portsrepo.RecurringRuleRepositoryFacade) *RecurringRuleService {
	return &RecurringRuleService{ruleRepo: ruleRepo}
}

func (s *RecurringRuleService) ruleFromRequest(userID string, req dto.CreateRecurringRuleRequest) (domain.RecurringRule, error) {
	rule := domain.RecurringRule{
		UserID:       userID,
		CategoryID:   req.CategoryID,
		CreditCardID: req.CreditCardID,
		Amount:       req.Amount,
		Description:  req.Description,
		MonthDay:     req.MonthDay,
		Active:       true,
		AutoCreate:   req.AutoCreate,
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if req.EndDate != nil {
		end, err := parseDay(*req.EndDate)
		if err != nil {
			return domain.RecurringRule{}, err
		}
		rule.EndDate = &end
	}
	return rule, nil
}

func (s *RecurringRuleService) CreateRule(ctx context.Context, userID string, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error) {
	rule, err := s.ruleFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rule.RuleID = uuid.NewString()
	rule.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}
	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create recurring rule: %w", err)
	}
	return &rule, nil
}

func (s *RecurringRuleService) ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error) {
	rules, err := s.ruleRepo.ListRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	if rules == nil {
		rules = []domain.RecurringRule{}
	}
	return rules, nil
}

func (s *RecurringRuleService) UpdateRule(ctx context.Context, userID, ruleID string, req dto.CreateRecurringRuleRequest) (*domain.RecurringRule, error) {
	existing, err := s.ruleRepo.FindRuleByID(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}
	updated, err := s.ruleFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	updated.RuleID = existing.RuleID
	updated.LastRunAt = existing.LastRunAt
	updated.AuditFields = existing.AuditFields
	updated.LastUpdatedAt = time.Now().UTC()
	if err := s.ruleRepo.UpdateRule(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update recurring rule: %w", err)
	}
	return &updated, nil
}

func (s *RecurringRuleService) DeleteRule(ctx context.Context, userID, ruleID string) error {
	return s.ruleRepo.DeleteRule(ctx, userID, ruleID)
}
