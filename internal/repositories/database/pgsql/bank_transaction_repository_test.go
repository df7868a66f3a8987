package pgsql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

func TestBuildReviewQuery_Minimal(t *testing.T) {
	page, count, countArgs, pageArgs := buildReviewQuery(domain.ReviewFilter{BankAccountID: 7, Limit: 200})

	assert.Equal(t, []any{int64(7)}, countArgs)
	assert.Equal(t, []any{int64(7), 200, 0}, pageArgs)
	assert.Contains(t, count, "SELECT COUNT(*)")
	assert.Contains(t, page, "bt.is_deleted = FALSE AND bt.bank_account_id = $1")
	assert.Contains(t, page, "ORDER BY bt.transaction_date DESC, bt.created_at DESC")
	assert.Contains(t, page, "LIMIT $2 OFFSET $3")
	assert.NotContains(t, page, "company_id")
	assert.NotContains(t, page, "COALESCE(a.active_count, 0) = 0")
}

func TestBuildReviewQuery_AllFilters(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	minAmt := decimal.NewFromInt(100)
	maxAmt := decimal.NewFromInt(5000)
	debit := domain.Debit

	page, count, countArgs, pageArgs := buildReviewQuery(domain.ReviewFilter{
		BankAccountID:    7,
		CompanyID:        "acme",
		StartDate:        &start,
		EndDate:          &end,
		MinAmount:        &minAmt,
		MaxAmount:        &maxAmt,
		Direction:        &debit,
		UnclassifiedOnly: true,
		Limit:            50,
		Offset:           100,
	})

	assert.Len(t, countArgs, 6)
	assert.Len(t, pageArgs, 8)
	assert.Equal(t, "acme", countArgs[1])
	for _, clause := range []string{
		"ba.company_id = $2",
		"bt.transaction_date >= $3",
		"bt.transaction_date <= $4",
		"ABS(bt.signed_amount) >= $5",
		"ABS(bt.signed_amount) <= $6",
		"bt.signed_amount < 0",
		"COALESCE(a.active_count, 0) = 0",
	} {
		assert.Contains(t, count, clause)
		assert.Contains(t, page, clause)
	}
	assert.Contains(t, page, "LIMIT $7 OFFSET $8")
}

func TestBuildReviewQuery_CreditIncludesZero(t *testing.T) {
	credit := domain.Credit
	page, _, _, _ := buildReviewQuery(domain.ReviewFilter{BankAccountID: 1, Direction: &credit, Limit: 1})
	assert.Contains(t, page, "bt.signed_amount >= 0")
}
