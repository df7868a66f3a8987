package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/models"
)

func nullDecimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}

// ToDomainBankTransaction converts a model BankTransaction to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		ID:              m.ID,
		BankAccountID:   m.BankAccountID,
		TransactionDate: m.TransactionDate,
		Narration:       m.Narration,
		UTRNumber:       m.UTRNumber,
		CreditAmount:    nullDecimalPtr(m.CreditAmount),
		DebitAmount:     nullDecimalPtr(m.DebitAmount),
		BalanceAmount:   nullDecimalPtr(m.BalanceAmount),
		SignedAmount:    m.SignedAmount,
		IsDeleted:       m.IsDeleted,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainReviewTransaction converts a model ReviewTransaction to a domain ReviewTransaction
func ToDomainReviewTransaction(m models.ReviewTransaction) domain.ReviewTransaction {
	return domain.ReviewTransaction{
		BankTransaction:  ToDomainBankTransaction(m.BankTransaction),
		ActiveCount:      m.ActiveCount,
		LastClassifiedAt: m.LastClassifiedAt,
	}
}

// ToDomainReviewTransactionSlice converts a slice of model ReviewTransactions
func ToDomainReviewTransactionSlice(ms []models.ReviewTransaction) []domain.ReviewTransaction {
	ds := make([]domain.ReviewTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReviewTransaction(m)
	}
	return ds
}
