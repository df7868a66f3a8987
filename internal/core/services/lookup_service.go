package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tx_classify_app/internal/core/ports/services"
)

type lookupService struct {
	BaseService
	repo portsrepo.LookupReader
}

// NewLookupService creates a service over the reference data repositories.
func NewLookupService(repo portsrepo.LookupReader) portssvc.LookupSvcFacade {
	return &lookupService{repo: repo}
}

var _ portssvc.LookupSvcFacade = (*lookupService)(nil)

func (s *lookupService) filter(session domain.Session, activeOnly bool) domain.LookupFilter {
	return domain.LookupFilter{CompanyID: s.CompanyScope(session), ActiveOnly: activeOnly}
}

func (s *lookupService) ListTransactionTypes(ctx context.Context, session domain.Session, activeOnly bool) ([]domain.TransactionType, error) {
	types, err := s.repo.ListTransactionTypes(ctx, s.filter(session, activeOnly))
	if err != nil {
		s.LogError(ctx, err, "Failed to list transaction types", slog.Bool("active_only", activeOnly))
		return nil, err
	}
	return types, nil
}

func (s *lookupService) ListCostCentres(ctx context.Context, session domain.Session, activeOnly bool) ([]domain.CostCentre, error) {
	centres, err := s.repo.ListCostCentres(ctx, s.filter(session, activeOnly))
	if err != nil {
		s.LogError(ctx, err, "Failed to list cost centres", slog.Bool("active_only", activeOnly))
		return nil, err
	}
	return centres, nil
}

func (s *lookupService) ListEntities(ctx context.Context, session domain.Session) ([]domain.Entity, error) {
	entities, err := s.repo.ListEntities(ctx, s.filter(session, false))
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities")
		return nil, err
	}
	return entities, nil
}

func (s *lookupService) ListAssets(ctx context.Context, session domain.Session) ([]domain.Asset, error) {
	assets, err := s.repo.ListAssets(ctx, s.filter(session, false))
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets")
		return nil, err
	}
	return assets, nil
}

func (s *lookupService) ListContracts(ctx context.Context, session domain.Session) ([]domain.Contract, error) {
	contracts, err := s.repo.ListContracts(ctx, s.filter(session, false))
	if err != nil {
		s.LogError(ctx, err, "Failed to list contracts")
		return nil, err
	}
	return contracts, nil
}

// ListBankAccounts returns the accounts visible to the session's company.
func (s *lookupService) ListBankAccounts(ctx context.Context, session domain.Session) ([]domain.BankAccount, error) {
	accounts, err := s.repo.ListBankAccounts(ctx, s.filter(session, false))
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, err
	}
	return accounts, nil
}
