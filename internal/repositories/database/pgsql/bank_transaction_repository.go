package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	"github.com/SscSPs/tx_classify_app/internal/models"
	"github.com/SscSPs/tx_classify_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionReader {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionReader = (*PgxBankTransactionRepository)(nil)

const bankTransactionColumns = `bt.id, bt.bank_account_id, bt.transaction_date, bt.narration, bt.utr_number,
		       bt.credit_amount, bt.debit_amount, bt.balance_amount, bt.signed_amount, bt.is_deleted, bt.created_at`

// queryArgs collects positional arguments while a query is assembled.
type queryArgs []any

func (a *queryArgs) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// buildReviewQuery returns the page query, the count query and the arguments they share.
// The page query takes two more arguments, limit and offset, already appended to pageArgs.
func buildReviewQuery(f domain.ReviewFilter) (pageQuery, countQuery string, countArgs, pageArgs []any) {
	var args queryArgs
	where := []string{
		"bt.is_deleted = FALSE",
		"bt.bank_account_id = " + args.add(f.BankAccountID),
	}
	if f.CompanyID != "" {
		where = append(where, "ba.company_id = "+args.add(f.CompanyID))
	}
	if f.StartDate != nil {
		where = append(where, "bt.transaction_date >= "+args.add(*f.StartDate))
	}
	if f.EndDate != nil {
		where = append(where, "bt.transaction_date <= "+args.add(*f.EndDate))
	}
	if f.MinAmount != nil {
		where = append(where, "ABS(bt.signed_amount) >= "+args.add(*f.MinAmount))
	}
	if f.MaxAmount != nil {
		where = append(where, "ABS(bt.signed_amount) <= "+args.add(*f.MaxAmount))
	}
	if f.Direction != nil {
		switch *f.Direction {
		case domain.Credit:
			where = append(where, "bt.signed_amount >= 0")
		case domain.Debit:
			where = append(where, "bt.signed_amount < 0")
		}
	}
	if f.UnclassifiedOnly {
		where = append(where, "COALESCE(a.active_count, 0) = 0")
	}

	from := `
		FROM bank_transactions bt
		JOIN bank_accounts ba ON ba.id = bt.bank_account_id
		LEFT JOIN (
			SELECT bank_transaction_id, COUNT(*) AS active_count, MAX(created_at) AS last_classified_at
			FROM tx_classify_transactionclassification
			WHERE is_active_classification = TRUE
			GROUP BY bank_transaction_id
		) a ON a.bank_transaction_id = bt.id
		WHERE ` + strings.Join(where, " AND ")

	countQuery = "SELECT COUNT(*)" + from + ";"
	countArgs = append([]any(nil), args...)

	pageQuery = "SELECT " + bankTransactionColumns + `,
		       COALESCE(a.active_count, 0), a.last_classified_at` + from + `
		ORDER BY bt.transaction_date DESC, bt.created_at DESC, bt.id DESC
		LIMIT ` + args.add(f.Limit) + " OFFSET " + args.add(f.Offset) + ";"
	pageArgs = args
	return pageQuery, countQuery, countArgs, pageArgs
}

// ListReviewTransactions returns one page of transactions matching the filter and the total match count.
func (r *PgxBankTransactionRepository) ListReviewTransactions(ctx context.Context, filter domain.ReviewFilter) ([]domain.ReviewTransaction, int, error) {
	pageQuery, countQuery, countArgs, pageArgs := buildReviewQuery(filter)

	var count int
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count review transactions", err)
	}

	rows, err := r.Pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query review transactions", err)
	}
	defer rows.Close()

	txns := []models.ReviewTransaction{}
	for rows.Next() {
		var t models.ReviewTransaction
		err := rows.Scan(
			&t.ID,
			&t.BankAccountID,
			&t.TransactionDate,
			&t.Narration,
			&t.UTRNumber,
			&t.CreditAmount,
			&t.DebitAmount,
			&t.BalanceAmount,
			&t.SignedAmount,
			&t.IsDeleted,
			&t.CreatedAt,
			&t.ActiveCount,
			&t.LastClassifiedAt,
		)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan review transaction row", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating review transaction rows", err)
	}

	return mapping.ToDomainReviewTransactionSlice(txns), count, nil
}

// FindBankTransactionForUpdate loads a non-deleted transaction and locks its row.
func (r *PgxBankTransactionRepository) FindBankTransactionForUpdate(ctx context.Context, tx pgx.Tx, bankTransactionID int64, companyID string) (*domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions bt
		JOIN bank_accounts ba ON ba.id = bt.bank_account_id
		WHERE bt.id = $1 AND bt.is_deleted = FALSE AND ($2 = '' OR ba.company_id = $2)
		FOR UPDATE OF bt;
	`
	var t models.BankTransaction
	err := tx.QueryRow(ctx, query, bankTransactionID, companyID).Scan(
		&t.ID,
		&t.BankAccountID,
		&t.TransactionDate,
		&t.Narration,
		&t.UTRNumber,
		&t.CreditAmount,
		&t.DebitAmount,
		&t.BalanceAmount,
		&t.SignedAmount,
		&t.IsDeleted,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock bank transaction "+strconv.FormatInt(bankTransactionID, 10), err)
	}

	d := mapping.ToDomainBankTransaction(t)
	return &d, nil
}
