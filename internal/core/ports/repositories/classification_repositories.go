package repositories

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ClassificationReader defines read operations for classification rows.
type ClassificationReader interface {
	// FindClassificationByID retrieves a classification regardless of its active flag.
	FindClassificationByID(ctx context.Context, classificationID string) (*domain.Classification, error)

	// FindActiveClassificationsByBankTransactionIDs returns active classifications with their
	// reference names, grouped by bank transaction id.
	FindActiveClassificationsByBankTransactionIDs(ctx context.Context, bankTransactionIDs []int64) (map[int64][]domain.ClassificationDetail, error)
}

// ClassificationTxOps are the reads and writes a classification change performs inside one
// database transaction.
type ClassificationTxOps interface {
	// FindClassificationForUpdate loads and locks one classification row.
	FindClassificationForUpdate(ctx context.Context, tx pgx.Tx, classificationID string) (*domain.Classification, error)

	// ListActiveClassificationsInTx returns the active rows of a bank transaction.
	ListActiveClassificationsInTx(ctx context.Context, tx pgx.Tx, bankTransactionID int64) ([]domain.Classification, error)

	// DeactivateClassificationsInTx clears the active flag of still active rows and reports
	// how many rows changed.
	DeactivateClassificationsInTx(ctx context.Context, tx pgx.Tx, classificationIDs []string) (int64, error)

	// InsertClassificationsInTx batch inserts new rows.
	InsertClassificationsInTx(ctx context.Context, tx pgx.Tx, classifications []domain.Classification) error
}

// ClassificationRepositoryFacade combines all classification repository interfaces.
type ClassificationRepositoryFacade interface {
	ClassificationReader
	ClassificationTxOps
}

// ClassificationRepositoryWithTx extends ClassificationRepositoryFacade with transaction capabilities
type ClassificationRepositoryWithTx interface {
	ClassificationRepositoryFacade
	TransactionManager
}
