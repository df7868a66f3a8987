// Package classify holds the rules for dividing a bank transaction into classifications.
// It performs no I/O.
package classify

import (
	"time"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Q2 rounds to two decimal places, half away from zero.
func Q2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ExpectedAmount is the amount a draft for target must add up to: the absolute signed amount
// of an unclassified transaction, or the amount of the selected classification otherwise.
func ExpectedAmount(target domain.ReviewTarget) decimal.Decimal {
	switch t := target.(type) {
	case domain.UnclassifiedTarget:
		return Q2(t.Txn.AbsAmount())
	case domain.ClassifiedTarget:
		return Q2(t.Child.Amount)
	case domain.SplitChildTarget:
		return Q2(t.Child.Amount)
	default:
		return decimal.Zero
	}
}

// DirectionOf derives the money direction of the transaction behind target. Zero counts as
// a credit.
func DirectionOf(target domain.ReviewTarget) domain.Direction {
	return DirectionOfAmount(target.Transaction().SignedAmount)
}

// DirectionOfAmount maps a signed amount to Credit (>= 0) or Debit.
func DirectionOfAmount(signed decimal.Decimal) domain.Direction {
	if signed.Sign() >= 0 {
		return domain.Credit
	}
	return domain.Debit
}

// DefaultValueDate is the value date offered for new rows: the selected classification's
// value date when there is one, the transaction date otherwise.
func DefaultValueDate(target domain.ReviewTarget) time.Time {
	switch t := target.(type) {
	case domain.ClassifiedTarget:
		if !t.Child.ValueDate.IsZero() {
			return t.Child.ValueDate
		}
	case domain.SplitChildTarget:
		if !t.Child.ValueDate.IsZero() {
			return t.Child.ValueDate
		}
	}
	return target.Transaction().TransactionDate
}
