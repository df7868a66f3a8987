package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is a row of bank_transactions.
type BankTransaction struct {
	ID              int64               `db:"id"`
	BankAccountID   int64               `db:"bank_account_id"`
	TransactionDate time.Time           `db:"transaction_date"`
	Narration       string              `db:"narration"`
	UTRNumber       string              `db:"utr_number"`
	CreditAmount    decimal.NullDecimal `db:"credit_amount"`
	DebitAmount     decimal.NullDecimal `db:"debit_amount"`
	BalanceAmount   decimal.NullDecimal `db:"balance_amount"`
	SignedAmount    decimal.Decimal     `db:"signed_amount"`
	IsDeleted       bool                `db:"is_deleted"`
	CreatedAt       time.Time           `db:"created_at"`
}

// ReviewTransaction is a bank transaction row joined with its active classification summary.
type ReviewTransaction struct {
	BankTransaction
	ActiveCount      int        `db:"active_count"`
	LastClassifiedAt *time.Time `db:"last_classified_at"`
}
