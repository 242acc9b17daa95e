package services

import (
	"context"

	"github.com/grana-app/grana-backend/internal/core/billing"
	"github.com/grana-app/grana-backend/internal/core/domain"
	"github.com/grana-app/grana-backend/internal/dto"
)

// CreditCardReaderSvc defines read operations for credit cards and their
// derived statements.
type CreditCardReaderSvc interface {
	GetCreditCardByID(ctx context.Context, userID, creditCardID string) (*domain.CreditCard, error)
	ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error)

	// GetStatement assembles the full statement for one card and month.
	GetStatement(ctx context.Context, userID, creditCardID string, month billing.YearMonth) (*billing.Statement, error)

	// ProjectInvoices forecasts totals over the rolling horizon starting at
	// the current month.
	ProjectInvoices(ctx context.Context, userID, creditCardID string) ([]billing.ProjectionEntry, error)
}

// CreditCardWriterSvc defines write operations for credit cards.
type CreditCardWriterSvc interface {
	CreateCreditCard(ctx context.Context, userID string, req dto.CreateCreditCardRequest) (*domain.CreditCard, error)
	UpdateCreditCard(ctx context.Context, userID, creditCardID string, req dto.CreateCreditCardRequest) (*domain.CreditCard, error)
	DeleteCreditCard(ctx context.Context, userID, creditCardID string) error

	// PayInvoice transitions the period's PENDING transactions to PAID and
	// returns how many changed. A repeated call returns 0.
	PayInvoice(ctx context.Context, userID, creditCardID string, month billing.YearMonth) (int64, error)
}

// CreditCardSvcFacade combines all credit-card service interfaces.
type CreditCardSvcFacade interface {
	CreditCardReaderSvc
	CreditCardWriterSvc
}
