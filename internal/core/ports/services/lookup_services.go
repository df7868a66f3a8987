package services

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

// LookupSvcFacade exposes the reference lists used by the classification dialogs.
type LookupSvcFacade interface {
	ListTransactionTypes(ctx context.Context, session domain.Session, activeOnly bool) ([]domain.TransactionType, error)
	ListCostCentres(ctx context.Context, session domain.Session, activeOnly bool) ([]domain.CostCentre, error)
	ListEntities(ctx context.Context, session domain.Session) ([]domain.Entity, error)
	ListAssets(ctx context.Context, session domain.Session) ([]domain.Asset, error)
	ListContracts(ctx context.Context, session domain.Session) ([]domain.Contract, error)
	ListBankAccounts(ctx context.Context, session domain.Session) ([]domain.BankAccount, error)
}
