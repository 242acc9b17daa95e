package pgsql

import (
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	recurringRuleRepo := newPgxRecurringRuleRepository(dbPool)
	creditCardRepo := newPgxCreditCardRepository(dbPool)
	reserveRepo := newPgxReserveRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		CategoryRepo:      categoryRepo,
		TransactionRepo:   transactionRepo,
		RecurringRuleRepo: recurringRuleRepo,
		CreditCardRepo:    creditCardRepo,
		ReserveRepo:       reserveRepo,
	}
}
