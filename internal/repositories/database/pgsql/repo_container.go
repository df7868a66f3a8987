package pgsql

import (
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BankTransactionRepo: newPgxBankTransactionRepository(dbPool),
		ClassificationRepo:  newPgxClassificationRepository(dbPool),
		LookupRepo:          newPgxLookupRepository(dbPool),
	}
}
