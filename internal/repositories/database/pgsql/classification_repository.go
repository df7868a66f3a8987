package pgsql

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	"github.com/SscSPs/tx_classify_app/internal/models"
	"github.com/SscSPs/tx_classify_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintFields maps constraint names from the migrations to request fields.
var constraintFields = map[string]string{
	"fk_classification_bank_transaction": "bank_transaction_id",
	"fk_classification_transaction_type": "transaction_type_id",
	"fk_classification_cost_centre":      "cost_centre_id",
	"fk_classification_entity":           "entity_id",
	"fk_classification_asset":            "asset_id",
	"fk_classification_contract":         "contract_id",
	"chk_classification_amount_positive": "amount",
}

var fkDetailValue = regexp.MustCompile(`\)=\(([^)]*)\)`)

const classificationColumns = `c.classification_id::text, c.bank_transaction_id, c.transaction_type_id, c.cost_centre_id,
		       c.entity_id, c.asset_id, c.contract_id, c.amount, c.value_date, c.remarks,
		       c.is_active_classification, c.created_at, c.created_by`

type PgxClassificationRepository struct {
	BaseRepository
}

func newPgxClassificationRepository(pool *pgxpool.Pool) portsrepo.ClassificationRepositoryWithTx {
	return &PgxClassificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClassificationRepositoryWithTx = (*PgxClassificationRepository)(nil)

func scanClassification(row pgx.Row, c *models.Classification, extra ...any) error {
	dest := []any{
		&c.ClassificationID,
		&c.BankTransactionID,
		&c.TransactionTypeID,
		&c.CostCentreID,
		&c.EntityID,
		&c.AssetID,
		&c.ContractID,
		&c.Amount,
		&c.ValueDate,
		&c.Remarks,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
	}
	return row.Scan(append(dest, extra...)...)
}

// FindClassificationByID retrieves a classification regardless of its active flag.
func (r *PgxClassificationRepository) FindClassificationByID(ctx context.Context, classificationID string) (*domain.Classification, error) {
	query := `SELECT ` + classificationColumns + `
		FROM tx_classify_transactionclassification c
		WHERE c.classification_id = $1;`

	var m models.Classification
	if err := scanClassification(r.Pool.QueryRow(ctx, query, classificationID), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find classification "+classificationID, err)
	}
	d := mapping.ToDomainClassification(m)
	return &d, nil
}

// FindActiveClassificationsByBankTransactionIDs loads active classifications with reference names,
// oldest first within each transaction.
func (r *PgxClassificationRepository) FindActiveClassificationsByBankTransactionIDs(ctx context.Context, bankTransactionIDs []int64) (map[int64][]domain.ClassificationDetail, error) {
	result := make(map[int64][]domain.ClassificationDetail, len(bankTransactionIDs))
	if len(bankTransactionIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + classificationColumns + `,
		       tt.name, cc.name, e.name, a.name, ct.vendor_name
		FROM tx_classify_transactionclassification c
		JOIN transaction_types tt ON tt.transaction_type_id = c.transaction_type_id
		JOIN cost_centres cc ON cc.cost_centre_id = c.cost_centre_id
		JOIN entities e ON e.id = c.entity_id
		LEFT JOIN assets a ON a.id = c.asset_id
		LEFT JOIN contracts ct ON ct.id = c.contract_id
		WHERE c.bank_transaction_id = ANY($1) AND c.is_active_classification = TRUE
		ORDER BY c.bank_transaction_id, c.created_at, c.classification_id;`

	rows, err := r.Pool.Query(ctx, query, bankTransactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active classifications", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.ClassificationDetail
		err := scanClassification(rows, &m.Classification,
			&m.TransactionTypeName,
			&m.CostCentreName,
			&m.EntityName,
			&m.AssetName,
			&m.ContractVendorName,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan classification row", err)
		}
		result[m.BankTransactionID] = append(result[m.BankTransactionID], mapping.ToDomainClassificationDetail(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating classification rows", err)
	}
	return result, nil
}

// FindClassificationForUpdate loads one classification and locks its row.
func (r *PgxClassificationRepository) FindClassificationForUpdate(ctx context.Context, tx pgx.Tx, classificationID string) (*domain.Classification, error) {
	query := `SELECT ` + classificationColumns + `
		FROM tx_classify_transactionclassification c
		WHERE c.classification_id = $1
		FOR UPDATE;`

	var m models.Classification
	if err := scanClassification(tx.QueryRow(ctx, query, classificationID), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock classification "+classificationID, err)
	}
	d := mapping.ToDomainClassification(m)
	return &d, nil
}

// ListActiveClassificationsInTx returns the active rows of a bank transaction as seen by tx.
func (r *PgxClassificationRepository) ListActiveClassificationsInTx(ctx context.Context, tx pgx.Tx, bankTransactionID int64) ([]domain.Classification, error) {
	query := `SELECT ` + classificationColumns + `
		FROM tx_classify_transactionclassification c
		WHERE c.bank_transaction_id = $1 AND c.is_active_classification = TRUE
		ORDER BY c.created_at, c.classification_id;`

	rows, err := tx.Query(ctx, query, bankTransactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active classifications", err)
	}
	defer rows.Close()

	ms := []models.Classification{}
	for rows.Next() {
		var m models.Classification
		if err := scanClassification(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan classification row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating classification rows", err)
	}
	return mapping.ToDomainClassificationSlice(ms), nil
}

// DeactivateClassificationsInTx clears the active flag of the listed rows that are still active.
func (r *PgxClassificationRepository) DeactivateClassificationsInTx(ctx context.Context, tx pgx.Tx, classificationIDs []string) (int64, error) {
	if len(classificationIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE tx_classify_transactionclassification
		SET is_active_classification = FALSE
		WHERE classification_id = ANY($1::uuid[]) AND is_active_classification = TRUE;`

	tag, err := tx.Exec(ctx, query, classificationIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to deactivate classifications", err)
	}
	return tag.RowsAffected(), nil
}

// InsertClassificationsInTx inserts all rows in one batch.
func (r *PgxClassificationRepository) InsertClassificationsInTx(ctx context.Context, tx pgx.Tx, classifications []domain.Classification) error {
	if len(classifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO tx_classify_transactionclassification (
			classification_id, bank_transaction_id, transaction_type_id, cost_centre_id, entity_id,
			asset_id, contract_id, amount, value_date, remarks, is_active_classification,
			created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	for _, c := range classifications {
		m := mapping.ToModelClassification(c)
		batch.Queue(query,
			m.ClassificationID,
			m.BankTransactionID,
			m.TransactionTypeID,
			m.CostCentreID,
			m.EntityID,
			m.AssetID,
			m.ContractID,
			m.Amount,
			m.ValueDate,
			m.Remarks,
			m.IsActive,
			m.CreatedAt,
			m.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError(err)
	}
	return nil
}

// translateWriteError turns constraint violations into field errors.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.NewAppError(500, "failed to insert classifications", err)
	}

	field, known := constraintFields[pgErr.ConstraintName]
	switch {
	case pgErr.Code == pgForeignKeyViolation && known:
		value := ""
		if m := fkDetailValue.FindStringSubmatch(pgErr.Detail); m != nil {
			value = m[1]
		}
		return apperrors.NewFieldError(field, fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", value))
	case pgErr.Code == pgCheckViolation && known:
		return apperrors.NewFieldError(field, "Ensure this value is greater than 0.")
	default:
		return apperrors.NewAppError(500, "failed to insert classifications", err)
	}
}
