package services

import (
	portsrepo "github.com/grana-app/grana-backend/internal/core/ports/repositories"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/platform/config"
)

// NewServiceContainer wires all services over the repository provider and
// returns the container handed to the HTTP layer.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:          NewUserService(repos.UserRepo, cfg),
		Category:      NewCategoryService(repos.CategoryRepo),
		Transaction:   NewTransactionService(repos.TransactionRepo),
		RecurringRule: NewRecurringRuleService(repos.RecurringRuleRepo),
		CreditCard:    NewCreditCardService(repos.CreditCardRepo, repos.TransactionRepo, repos.RecurringRuleRepo),
		Reserve:       NewReserveService(repos.ReserveRepo),
	}
}
