package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurringMaterializerTestSuite struct {
	suite.Suite
	ruleRepo *MockRecurringRuleRepository
	txnRepo  *MockTransactionRepository
	worker   *services.RecurringMaterializer
}

func (s *RecurringMaterializerTestSuite) SetupTest() {
	s.ruleRepo = new(MockRecurringRuleRepository)
	s.txnRepo = new(MockTransactionRepository)
	s.worker = services.NewRecurringMaterializer(s.ruleRepo, s.txnRepo)
}

func TestRecurringMaterializerTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringMaterializerTestSuite))
}

func autoRule(id string, monthDay int) domain.RecurringRule {
	cardID := "card-1"
	return domain.RecurringRule{
		RuleID:       id,
		UserID:       "user-1",
		CreditCardID: &cardID,
		Amount:       decimal.NewFromInt(50),
		Description:  "Subscription",
		MonthDay:     monthDay,
		Active:       true,
		AutoCreate:   true,
	}
}

func (s *RecurringMaterializerTestSuite) TestRunOnceCreatesDueOccurrence() {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	rule := autoRule("rule-1", 10)
	occurrence := day("2024-03-10")

	s.ruleRepo.On("ListAutoCreateRules", ctx).Return([]domain.RecurringRule{rule}, nil).Once()
	s.txnRepo.On("HasRuleOccurrence", ctx, "rule-1", occurrence).Return(false, nil).Once()
	s.txnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.RecurringRuleID != nil && *txn.RecurringRuleID == "rule-1" &&
			txn.Date.Equal(occurrence) && txn.Status == domain.Pending
	})).Return(nil).Once()
	s.ruleRepo.On("TouchRuleLastRun", ctx, "rule-1", now).Return(nil).Once()

	created, err := s.worker.RunOnce(ctx, now)
	s.NoError(err)
	s.Equal(1, created)
	s.txnRepo.AssertExpectations(s.T())
	s.ruleRepo.AssertExpectations(s.T())
}

func (s *RecurringMaterializerTestSuite) TestRunOnceSkipsNotYetDue() {
	ctx := context.Background()
	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	rule := autoRule("rule-1", 10)

	s.ruleRepo.On("ListAutoCreateRules", ctx).Return([]domain.RecurringRule{rule}, nil).Once()

	created, err := s.worker.RunOnce(ctx, now)
	s.NoError(err)
	s.Equal(0, created)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *RecurringMaterializerTestSuite) TestRunOnceSkipsExistingOccurrence() {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	rule := autoRule("rule-1", 10)

	s.ruleRepo.On("ListAutoCreateRules", ctx).Return([]domain.RecurringRule{rule}, nil).Once()
	s.txnRepo.On("HasRuleOccurrence", ctx, "rule-1", day("2024-03-10")).Return(true, nil).Once()

	created, err := s.worker.RunOnce(ctx, now)
	s.NoError(err)
	s.Equal(0, created)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *RecurringMaterializerTestSuite) TestRunOnceSkipsEndedRule() {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	rule := autoRule("rule-1", 10)
	endDate := day("2024-02-28")
	rule.EndDate = &endDate

	s.ruleRepo.On("ListAutoCreateRules", ctx).Return([]domain.RecurringRule{rule}, nil).Once()

	created, err := s.worker.RunOnce(ctx, now)
	s.NoError(err)
	s.Equal(0, created)
	s.txnRepo.AssertNotCalled(s.T(), "HasRuleOccurrence", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RecurringMaterializerTestSuite) TestRunOnceClampsMonthDay() {
	ctx := context.Background()
	now := time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)
	rule := autoRule("rule-1", 31)

	s.ruleRepo.On("ListAutoCreateRules", ctx).Return([]domain.RecurringRule{rule}, nil).Once()
	s.txnRepo.On("HasRuleOccurrence", ctx, "rule-1", day("2024-02-29")).Return(false, nil).Once()
	s.txnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Date.Equal(day("2024-02-29"))
	})).Return(nil).Once()
	s.ruleRepo.On("TouchRuleLastRun", ctx, "rule-1", now).Return(nil).Once()

	created, err := s.worker.RunOnce(ctx, now)
	s.NoError(err)
	s.Equal(1, created)
}

func (s *RecurringMaterializerTestSuite) TestRunOnceContinuesPastFailingRule() {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	bad := autoRule("rule-bad", 10)
	good := autoRule("rule-good", 12)

	s.ruleRepo.On("ListAutoCreateRules", ctx).Return([]domain.RecurringRule{bad, good}, nil).Once()
	s.txnRepo.On("HasRuleOccurrence", ctx, "rule-bad", day("2024-03-10")).Return(false, errors.New("db down")).Once()
	s.txnRepo.On("HasRuleOccurrence", ctx, "rule-good", day("2024-03-12")).Return(false, nil).Once()
	s.txnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	s.ruleRepo.On("TouchRuleLastRun", ctx, "rule-good", now).Return(nil).Once()

	created, err := s.worker.RunOnce(ctx, now)
	s.NoError(err)
	s.Equal(1, created)
	s.txnRepo.AssertExpectations(s.T())
}
