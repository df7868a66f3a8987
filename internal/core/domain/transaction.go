package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the money flow a transaction, transaction type or cost centre applies to.
type Direction string

const (
	Credit Direction = "Credit"
	Debit  Direction = "Debit"
	Both   Direction = "Both" // only valid for cost centres
)

// BankTransaction is one imported bank statement line. It is immutable to this system.
type BankTransaction struct {
	ID              int64            `json:"id"`
	BankAccountID   int64            `json:"bankAccountID"`
	TransactionDate time.Time        `json:"transactionDate"`
	Narration       string           `json:"narration"`
	UTRNumber       string           `json:"utrNumber"`
	CreditAmount    *decimal.Decimal `json:"creditAmount"`
	DebitAmount     *decimal.Decimal `json:"debitAmount"`
	BalanceAmount   *decimal.Decimal `json:"balanceAmount"`
	SignedAmount    decimal.Decimal  `json:"signedAmount"` // positive = credit, negative = debit
	IsDeleted       bool             `json:"isDeleted"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// AbsAmount is the magnitude the active classifications of the transaction must cover.
func (t BankTransaction) AbsAmount() decimal.Decimal {
	return t.SignedAmount.Abs()
}

// ReviewTransaction is a bank transaction annotated with its classification state.
type ReviewTransaction struct {
	BankTransaction
	ActiveCount      int        `json:"activeCount"`
	LastClassifiedAt *time.Time `json:"lastClassifiedAt"`
}

// ReviewFilter narrows the transactions returned by the review listing.
type ReviewFilter struct {
	BankAccountID    int64
	CompanyID        string
	StartDate        *time.Time
	EndDate          *time.Time
	MinAmount        *decimal.Decimal // applied to the absolute signed amount
	MaxAmount        *decimal.Decimal
	Direction        *Direction // nil means both
	UnclassifiedOnly bool
	Limit            int
	Offset           int
}
