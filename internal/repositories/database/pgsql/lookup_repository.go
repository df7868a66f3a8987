package pgsql

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	"github.com/SscSPs/tx_classify_app/internal/models"
	"github.com/SscSPs/tx_classify_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLookupRepository reads the reference tables. Every table carries a company_id; an
// empty filter company lists all companies.
type PgxLookupRepository struct {
	BaseRepository
}

func newPgxLookupRepository(pool *pgxpool.Pool) portsrepo.LookupReader {
	return &PgxLookupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LookupReader = (*PgxLookupRepository)(nil)

// collectLookup runs query and scans every row with scan.
func collectLookup[M any, D any](ctx context.Context, pool *pgxpool.Pool, what, query string, args []any, scan func(pgx.Rows, *M) error, toDomain func(M) D) ([]D, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	defer rows.Close()

	out := []D{}
	for rows.Next() {
		var m M
		if err := scan(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan "+what+" row", err)
		}
		out = append(out, toDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating "+what+" rows", err)
	}
	return out, nil
}

func (r *PgxLookupRepository) ListTransactionTypes(ctx context.Context, filter domain.LookupFilter) ([]domain.TransactionType, error) {
	query := `
		SELECT transaction_type_id, name, direction, status
		FROM transaction_types
		WHERE ($1 = '' OR company_id = $1) AND (NOT $2 OR status = 'Active')
		ORDER BY name;`
	return collectLookup(ctx, r.Pool, "transaction types", query, []any{filter.CompanyID, filter.ActiveOnly},
		func(rows pgx.Rows, m *models.TransactionType) error {
			return rows.Scan(&m.ID, &m.Name, &m.Direction, &m.Status)
		}, mapping.ToDomainTransactionType)
}

func (r *PgxLookupRepository) ListCostCentres(ctx context.Context, filter domain.LookupFilter) ([]domain.CostCentre, error) {
	query := `
		SELECT cost_centre_id, name, transaction_direction, is_active
		FROM cost_centres
		WHERE ($1 = '' OR company_id = $1) AND (NOT $2 OR is_active)
		ORDER BY name;`
	return collectLookup(ctx, r.Pool, "cost centres", query, []any{filter.CompanyID, filter.ActiveOnly},
		func(rows pgx.Rows, m *models.CostCentre) error {
			return rows.Scan(&m.ID, &m.Name, &m.TransactionDirection, &m.IsActive)
		}, mapping.ToDomainCostCentre)
}

func (r *PgxLookupRepository) ListEntities(ctx context.Context, filter domain.LookupFilter) ([]domain.Entity, error) {
	query := `
		SELECT id, name, entity_type, status
		FROM entities
		WHERE ($1 = '' OR company_id = $1) AND (NOT $2 OR status IN ('Active', ''))
		ORDER BY name;`
	return collectLookup(ctx, r.Pool, "entities", query, []any{filter.CompanyID, filter.ActiveOnly},
		func(rows pgx.Rows, m *models.Entity) error {
			return rows.Scan(&m.ID, &m.Name, &m.EntityType, &m.Status)
		}, mapping.ToDomainEntity)
}

func (r *PgxLookupRepository) ListAssets(ctx context.Context, filter domain.LookupFilter) ([]domain.Asset, error) {
	query := `
		SELECT id, name, tag_id, is_active
		FROM assets
		WHERE ($1 = '' OR company_id = $1) AND (NOT $2 OR is_active)
		ORDER BY name;`
	return collectLookup(ctx, r.Pool, "assets", query, []any{filter.CompanyID, filter.ActiveOnly},
		func(rows pgx.Rows, m *models.Asset) error {
			return rows.Scan(&m.ID, &m.Name, &m.TagID, &m.IsActive)
		}, mapping.ToDomainAsset)
}

func (r *PgxLookupRepository) ListContracts(ctx context.Context, filter domain.LookupFilter) ([]domain.Contract, error) {
	query := `
		SELECT ct.id, ct.vendor_name, cc.name, ct.is_active
		FROM contracts ct
		LEFT JOIN cost_centres cc ON cc.cost_centre_id = ct.cost_centre_id
		WHERE ($1 = '' OR ct.company_id = $1) AND (NOT $2 OR ct.is_active)
		ORDER BY ct.vendor_name;`
	return collectLookup(ctx, r.Pool, "contracts", query, []any{filter.CompanyID, filter.ActiveOnly},
		func(rows pgx.Rows, m *models.Contract) error {
			return rows.Scan(&m.ID, &m.VendorName, &m.CostCentreName, &m.IsActive)
		}, mapping.ToDomainContract)
}

func (r *PgxLookupRepository) ListBankAccounts(ctx context.Context, filter domain.LookupFilter) ([]domain.BankAccount, error) {
	query := `
		SELECT id, bank_name, account_name, account_number, is_active
		FROM bank_accounts
		WHERE ($1 = '' OR company_id = $1) AND (NOT $2 OR is_active)
		ORDER BY bank_name, account_name;`
	return collectLookup(ctx, r.Pool, "bank accounts", query, []any{filter.CompanyID, filter.ActiveOnly},
		func(rows pgx.Rows, m *models.BankAccount) error {
			return rows.Scan(&m.ID, &m.BankName, &m.AccountName, &m.AccountNumber, &m.IsActive)
		}, mapping.ToDomainBankAccount)
}
