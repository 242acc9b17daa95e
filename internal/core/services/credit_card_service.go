package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grana-app/grana-backend/internal/apperrors"
	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/dto"
)

// CreditCardService implements card CRUD and the statement, projection and
// invoice-payment operations on top of the billing engine. Each call reads
// fresh from the repositories; nothing is cached.
type CreditCardService struct {
	BaseService
	cardRepo portsrepo.CreditCardRepositoryFacade
	txnRepo  portsrepo.TransactionRepositoryFacade
	ruleRepo portsrepo.RecurringRuleRepositoryFacade
	now      func() time.Time
}

var _ portssvc.CreditCardSvcFacade = (*CreditCardService)(nil)

func NewCreditCardService(cardRepo portsrepo.CreditCardRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, ruleRepo portsrepo.RecurringRuleRepositoryFacade) *CreditCardService {
	return &CreditCardService{
		cardRepo: cardRepo,
		txnRepo:  txnRepo,
		ruleRepo: ruleRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the clock, for tests.
func (s *CreditCardService) WithNow(now func() time.Time) *CreditCardService {
	s.now = now
	return s
}

func validateCycle(closingDay, dueDay int) error {
	if closingDay < 1 || closingDay > 31 {
		return fmt.Errorf("%w: closing day must be between 1 and 31", apperrors.ErrValidation)
	}
	if dueDay < 1 || dueDay > 31 {
		return fmt.Errorf("%w: due day must be between 1 and 31", apperrors.ErrValidation)
	}
	if dueDay <= closingDay {
		return fmt.Errorf("%w: due day must be after the closing day", apperrors.ErrValidation)
	}
	return nil
}

func (s *CreditCardService) CreateCreditCard(ctx context.Context, userID string, req dto.CreateCreditCardRequest) (*domain.CreditCard, error) {
	if err := validateCycle(req.ClosingDay, req.DueDay); err != nil {
		return nil, err
	}
	now := s.now()
	card := domain.CreditCard{
		CreditCardID: uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Brand:        req.Brand,
		CreditLimit:  req.CreditLimit,
		ClosingDay:   req.ClosingDay,
		DueDay:       req.DueDay,
		Active:       true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if req.Active != nil {
		card.Active = *req.Active
	}
	if err := s.cardRepo.SaveCreditCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}
	return &card, nil
}

func (s *CreditCardService) GetCreditCardByID(ctx context.Context, userID, creditCardID string) (*domain.CreditCard, error) {
	return s.cardRepo.FindCreditCardByID(ctx, userID, creditCardID)
}

func (s *CreditCardService) ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	cards, err := s.cardRepo.ListCreditCards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	if cards == nil {
		cards = []domain.CreditCard{}
	}
	return cards, nil
}

func (s *CreditCardService) UpdateCreditCard(ctx context.Context, userID, creditCardID string, req dto.CreateCreditCardRequest) (*domain.CreditCard, error) {
	card, err := s.cardRepo.FindCreditCardByID(ctx, userID, creditCardID)
	if err != nil {
		return nil, err
	}
	if err := validateCycle(req.ClosingDay, req.DueDay); err != nil {
		return nil, err
	}
	card.Name = req.Name
	card.Brand = req.Brand
	card.CreditLimit = req.CreditLimit
	card.ClosingDay = req.ClosingDay
	card.DueDay = req.DueDay
	if req.Active != nil {
		card.Active = *req.Active
	}
	card.LastUpdatedAt = s.now()
	if err := s.cardRepo.UpdateCreditCard(ctx, *card); err != nil {
		return nil, fmt.Errorf("failed to update credit card: %w", err)
	}
	return card, nil
}

func (s *CreditCardService) DeleteCreditCard(ctx context.Context, userID, creditCardID string) error {
	return s.cardRepo.DeleteCreditCard(ctx, userID, creditCardID)
}

// GetStatement assembles the statement for one card and month: the period's
// persisted transactions merged with projected occurrences of the card's
// active rules, deduplicated against already-materialized ones.
func (s *CreditCardService) GetStatement(ctx context.Context, userID, creditCardID string, month billing.YearMonth) (*billing.Statement, error) {
	card, err := s.cardRepo.FindCreditCardByID(ctx, userID, creditCardID)
	if err != nil {
		return nil, err
	}
	period := billing.PeriodFor(card.ClosingDay, month)

	transactions, err := s.txnRepo.ListCardTransactionsInPeriod(ctx, userID, creditCardID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement transactions: %w", err)
	}
	rules, err := s.ruleRepo.ListActiveRulesForCard(ctx, userID, creditCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card rules: %w", err)
	}

	stmt := billing.BuildStatement(*card, period, transactions, rules, s.now(), billing.WithItems)
	return &stmt, nil
}

// ProjectInvoices forecasts invoice totals for the default rolling horizon
// starting at the current month.
func (s *CreditCardService) ProjectInvoices(ctx context.Context, userID, creditCardID string) ([]billing.ProjectionEntry, error) {
	card, err := s.cardRepo.FindCreditCardByID(ctx, userID, creditCardID)
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleRepo.ListActiveRulesForCard(ctx, userID, creditCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load card rules: %w", err)
	}

	now := s.now()
	source := func(p billing.Period) ([]domain.Transaction, error) {
		return s.txnRepo.ListCardTransactionsInPeriod(ctx, userID, creditCardID, p.Start, p.End)
	}
	return billing.Project(*card, rules, source, billing.YearMonthOf(now), billing.DefaultHorizonMonths, now)
}

// PayInvoice transitions the period's PENDING card transactions to PAID.
// The conditional update makes concurrent payments of the same month safe:
// every row transitions exactly once, and the second caller gets count 0.
func (s *CreditCardService) PayInvoice(ctx context.Context, userID, creditCardID string, month billing.YearMonth) (int64, error) {
	card, err := s.cardRepo.FindCreditCardByID(ctx, userID, creditCardID)
	if err != nil {
		return 0, err
	}
	period := billing.PeriodFor(card.ClosingDay, month)

	count, err := s.txnRepo.MarkStatementPaid(ctx, userID, creditCardID, period.Start, period.End)
	if err != nil {
		return 0, fmt.Errorf("failed to pay invoice: %w", err)
	}
	s.LogInfo(ctx, "Invoice paid", "credit_card_id", creditCardID, "month", month.String(), "count", count)
	return count, nil
}
