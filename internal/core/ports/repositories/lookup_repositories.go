package repositories

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

// LookupReader lists the reference data offered while classifying.
type LookupReader interface {
	ListTransactionTypes(ctx context.Context, filter domain.LookupFilter) ([]domain.TransactionType, error)
	ListCostCentres(ctx context.Context, filter domain.LookupFilter) ([]domain.CostCentre, error)
	ListEntities(ctx context.Context, filter domain.LookupFilter) ([]domain.Entity, error)
	ListAssets(ctx context.Context, filter domain.LookupFilter) ([]domain.Asset, error)
	ListContracts(ctx context.Context, filter domain.LookupFilter) ([]domain.Contract, error)
	ListBankAccounts(ctx context.Context, filter domain.LookupFilter) ([]domain.BankAccount, error)
}
