package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/grana-app/grana-backend/internal/apperrors"
	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	"github.com/grana-app/grana-backend/internal/core/services"
	"github.com/grana-app/grana-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CreditCardRepository ---

type MockCreditCardRepository struct {
	mock.Mock
}

var _ portsrepo.CreditCardRepositoryFacade = (*MockCreditCardRepository)(nil)

func (m *MockCreditCardRepository) SaveCreditCard(ctx context.Context, card domain.CreditCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCreditCardRepository) FindCreditCardByID(ctx context.Context, userID, creditCardID string) (*domain.CreditCard, error) {
	args := m.Called(ctx, userID, creditCardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditCard), args.Error(1)
}

func (m *MockCreditCardRepository) ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditCard), args.Error(1)
}

func (m *MockCreditCardRepository) UpdateCreditCard(ctx context.Context, card domain.CreditCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCreditCardRepository) DeleteCreditCard(ctx context.Context, userID, creditCardID string) error {
	args := m.Called(ctx, userID, creditCardID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListCardTransactionsInPeriod(ctx context.Context, userID, creditCardID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, creditCardID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) HasRuleOccurrence(ctx context.Context, ruleID string, date time.Time) (bool, error) {
	args := m.Called(ctx, ruleID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkStatementPaid(ctx context.Context, userID, creditCardID string, from, to time.Time) (int64, error) {
	args := m.Called(ctx, userID, creditCardID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RecurringRuleRepository ---

type MockRecurringRuleRepository struct {
	mock.Mock
}

var _ portsrepo.RecurringRuleRepositoryFacade = (*MockRecurringRuleRepository)(nil)

func (m *MockRecurringRuleRepository) FindRuleByID(ctx context.Context, userID, ruleID string) (*domain.RecurringRule, error) {
	args := m.Called(ctx, userID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRuleRepository) ListRules(ctx context.Context, userID string) ([]domain.RecurringRule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRuleRepository) ListActiveRulesForCard(ctx context.Context, userID, creditCardID string) ([]domain.RecurringRule, error) {
	args := m.Called(ctx, userID, creditCardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRuleRepository) ListAutoCreateRules(ctx context.Context) ([]domain.RecurringRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringRule), args.Error(1)
}

func (m *MockRecurringRuleRepository) SaveRule(ctx context.Context, rule domain.RecurringRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRuleRepository) UpdateRule(ctx context.Context, rule domain.RecurringRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurringRuleRepository) DeleteRule(ctx context.Context, userID, ruleID string) error {
	args := m.Called(ctx, userID, ruleID)
	return args.Error(0)
}

func (m *MockRecurringRuleRepository) TouchRuleLastRun(ctx context.Context, ruleID string, ranAt time.Time) error {
	args := m.Called(ctx, ruleID, ranAt)
	return args.Error(0)
}

// --- Suite ---

type CreditCardServiceTestSuite struct {
	suite.Suite
	cardRepo *MockCreditCardRepository
	txnRepo  *MockTransactionRepository
	ruleRepo *MockRecurringRuleRepository
	service  *services.CreditCardService
	userID   string
	card     domain.CreditCard
}

func (s *CreditCardServiceTestSuite) SetupTest() {
	s.cardRepo = new(MockCreditCardRepository)
	s.txnRepo = new(MockTransactionRepository)
	s.ruleRepo = new(MockRecurringRuleRepository)
	s.service = services.NewCreditCardService(s.cardRepo, s.txnRepo, s.ruleRepo).
		WithNow(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) })
	s.userID = "user-1"
	s.card = domain.CreditCard{
		CreditCardID: "card-1",
		UserID:       s.userID,
		Name:         "Platinum",
		ClosingDay:   10,
		DueDay:       20,
		Active:       true,
	}
}

func TestCreditCardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditCardServiceTestSuite))
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *CreditCardServiceTestSuite) TestCreateCreditCardValidatesCycle() {
	ctx := context.Background()

	_, err := s.service.CreateCreditCard(ctx, s.userID, dto.CreateCreditCardRequest{
		Name: "Bad", ClosingDay: 20, DueDay: 10,
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateCreditCard(ctx, s.userID, dto.CreateCreditCardRequest{
		Name: "Bad", ClosingDay: 15, DueDay: 15,
	})
	s.ErrorIs(err, apperrors.ErrValidation, "due day equal to closing day is rejected")

	s.cardRepo.On("SaveCreditCard", ctx, mock.AnythingOfType("domain.CreditCard")).Return(nil).Once()
	card, err := s.service.CreateCreditCard(ctx, s.userID, dto.CreateCreditCardRequest{
		Name: "Good", ClosingDay: 10, DueDay: 20,
	})
	s.NoError(err)
	s.True(card.Active)
	s.cardRepo.AssertExpectations(s.T())
}

func (s *CreditCardServiceTestSuite) TestGetStatementMergesAndDedups() {
	ctx := context.Background()
	month := billing.YearMonth{Year: 2024, Month: time.March}
	// Closing day 10 => period [2024-02-10, 2024-03-10).
	from, to := day("2024-02-10"), day("2024-03-10")

	ruleID := "rule-1"
	cardID := s.card.CreditCardID
	txns := []domain.Transaction{
		{
			TransactionID: "t1", UserID: s.userID, CreditCardID: &cardID,
			Amount: decimal.NewFromInt(100), Date: day("2024-02-12"),
			Description: "Groceries", Status: domain.Paid,
		},
		{
			TransactionID: "t2", UserID: s.userID, CreditCardID: &cardID, RecurringRuleID: &ruleID,
			Amount: decimal.NewFromInt(150), Date: day("2024-02-15"),
			Description: "Streaming", Status: domain.Paid,
		},
	}
	rules := []domain.RecurringRule{
		{RuleID: ruleID, UserID: s.userID, CreditCardID: &cardID, Amount: decimal.NewFromInt(150), Description: "Streaming", MonthDay: 15, Active: true},
		{RuleID: "rule-2", UserID: s.userID, CreditCardID: &cardID, Amount: decimal.NewFromInt(80), Description: "Gym", MonthDay: 5, Active: true},
	}

	s.cardRepo.On("FindCreditCardByID", ctx, s.userID, cardID).Return(&s.card, nil).Once()
	s.txnRepo.On("ListCardTransactionsInPeriod", ctx, s.userID, cardID, from, to).Return(txns, nil).Once()
	s.ruleRepo.On("ListActiveRulesForCard", ctx, s.userID, cardID).Return(rules, nil).Once()

	stmt, err := s.service.GetStatement(ctx, s.userID, cardID, month)
	s.Require().NoError(err)

	// rule-1 is materialized (t2); rule-2 projects onto 2024-03-05.
	s.Len(stmt.Items, 3)
	s.Equal("330", stmt.Total.String())
	s.Equal(billing.StatementOpen, stmt.Status)
	s.Equal(day("2024-03-20"), stmt.DueDate)

	projected := 0
	for _, it := range stmt.Items {
		if it.Projected {
			projected++
			s.Equal("rule-2", it.RecurringRuleID)
		}
	}
	s.Equal(1, projected)
	s.cardRepo.AssertExpectations(s.T())
	s.txnRepo.AssertExpectations(s.T())
	s.ruleRepo.AssertExpectations(s.T())
}

func (s *CreditCardServiceTestSuite) TestGetStatementCardNotFound() {
	ctx := context.Background()
	s.cardRepo.On("FindCreditCardByID", ctx, s.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetStatement(ctx, s.userID, "missing", billing.YearMonth{Year: 2024, Month: time.March})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CreditCardServiceTestSuite) TestProjectInvoicesTwelveEntries() {
	ctx := context.Background()
	cardID := s.card.CreditCardID
	rules := []domain.RecurringRule{
		{RuleID: "rule-1", UserID: s.userID, CreditCardID: &cardID, Amount: decimal.NewFromInt(150), Description: "Streaming", MonthDay: 15, Active: true},
	}

	s.cardRepo.On("FindCreditCardByID", ctx, s.userID, cardID).Return(&s.card, nil).Once()
	s.ruleRepo.On("ListActiveRulesForCard", ctx, s.userID, cardID).Return(rules, nil).Once()
	s.txnRepo.On("ListCardTransactionsInPeriod", ctx, s.userID, cardID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.Transaction{}, nil).Times(12)

	entries, err := s.service.ProjectInvoices(ctx, s.userID, cardID)
	s.Require().NoError(err)
	s.Require().Len(entries, 12)
	s.Equal("2024-03", entries[0].Month.String())
	s.Equal("2025-02", entries[11].Month.String())
	for _, e := range entries {
		s.Equal("150", e.Total.String())
	}
	s.txnRepo.AssertExpectations(s.T())
}

func (s *CreditCardServiceTestSuite) TestPayInvoice() {
	ctx := context.Background()
	cardID := s.card.CreditCardID
	month := billing.YearMonth{Year: 2024, Month: time.March}
	from, to := day("2024-02-10"), day("2024-03-10")

	s.cardRepo.On("FindCreditCardByID", ctx, s.userID, cardID).Return(&s.card, nil).Twice()
	s.txnRepo.On("MarkStatementPaid", ctx, s.userID, cardID, from, to).Return(int64(3), nil).Once()
	s.txnRepo.On("MarkStatementPaid", ctx, s.userID, cardID, from, to).Return(int64(0), nil).Once()

	count, err := s.service.PayInvoice(ctx, s.userID, cardID, month)
	s.NoError(err)
	s.Equal(int64(3), count)

	// Second call settles nothing further.
	count, err = s.service.PayInvoice(ctx, s.userID, cardID, month)
	s.NoError(err)
	s.Equal(int64(0), count)
	s.txnRepo.AssertExpectations(s.T())
}
