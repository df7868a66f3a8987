package services

import (
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tx_classify_app/internal/core/ports/services"
	"github.com/SscSPs/tx_classify_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(_ *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Classification: NewClassificationService(repos.BankTransactionRepo, repos.ClassificationRepo),
		Lookup:         NewLookupService(repos.LookupRepo),
	}
}
