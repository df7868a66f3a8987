package repositories

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BankTransactionReader defines read operations for imported bank transactions.
type BankTransactionReader interface {
	// ListReviewTransactions returns one page of non-deleted transactions matching filter,
	// newest first, together with the total number of matches.
	ListReviewTransactions(ctx context.Context, filter domain.ReviewFilter) ([]domain.ReviewTransaction, int, error)

	// FindBankTransactionForUpdate loads a transaction and locks its row until tx ends.
	// A non-empty companyID restricts the lookup to that company's bank accounts.
	FindBankTransactionForUpdate(ctx context.Context, tx pgx.Tx, bankTransactionID int64, companyID string) (*domain.BankTransaction, error)
}
