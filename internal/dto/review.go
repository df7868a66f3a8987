package dto

import (
	"fmt"
	"net/url"
	"time"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

// Review row status labels.
const (
	StatusUnclassified = "Unclassified"
	StatusClassified   = "Classified"
	StatusSplitChild   = "Split Child"
)

// StatusLabel names the classification state of a parent row.
func StatusLabel(activeCount int) string {
	switch {
	case activeCount <= 0:
		return StatusUnclassified
	case activeCount == 1:
		return StatusClassified
	default:
		return fmt.Sprintf("Split (%d)", activeCount)
	}
}

// ListReviewParams are the raw query parameters of the review listing. Values are kept as
// strings so malformed paging values can fall back to defaults instead of failing the request.
type ListReviewParams struct {
	BankAccountID    string `form:"bank_account_id"`
	Type             string `form:"type"` // credit, debit or both
	StartDate        string `form:"start_date"`
	EndDate          string `form:"end_date"`
	MinAmount        string `form:"min_amount"`
	MaxAmount        string `form:"max_amount"`
	UnclassifiedOnly string `form:"unclassified_only"`
	IncludeChildren  string `form:"include_children"`
	FlattenSplits    string `form:"flatten_splits"`
	Limit            string `form:"limit"`
	Offset           string `form:"offset"`
}

// Query encodes the non-empty parameters.
func (p ListReviewParams) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("bank_account_id", p.BankAccountID)
	set("type", p.Type)
	set("start_date", p.StartDate)
	set("end_date", p.EndDate)
	set("min_amount", p.MinAmount)
	set("max_amount", p.MaxAmount)
	set("unclassified_only", p.UnclassifiedOnly)
	set("include_children", p.IncludeChildren)
	set("flatten_splits", p.FlattenSplits)
	set("limit", p.Limit)
	set("offset", p.Offset)
	return q
}

// ChildRow summarises one active classification for display.
type ChildRow struct {
	ClassificationID string  `json:"classification_id"`
	Amount           Amount  `json:"amount"`
	ValueDate        *Date   `json:"value_date"`
	Remarks          string  `json:"remarks"`
	TransactionType  string  `json:"transaction_type"`
	CostCentre       string  `json:"cost_centre"`
	Entity           string  `json:"entity"`
	Asset            *string `json:"asset"`
	Contract         *string `json:"contract"`
}

// ReviewRow is one entry of the review listing: a bank transaction, or one active child of a
// split transaction when splits are flattened.
type ReviewRow struct {
	ID               int64      `json:"id"`
	TransactionDate  Date       `json:"transaction_date"`
	Narration        string     `json:"narration"`
	CreditAmount     *Amount    `json:"credit_amount"`
	DebitAmount      *Amount    `json:"debit_amount"`
	BalanceAmount    *Amount    `json:"balance_amount"`
	SignedAmount     Amount     `json:"signed_amount"`
	UTRNumber        string     `json:"utr_number"`
	ActiveCount      int        `json:"active_count"`
	LastClassifiedAt *time.Time `json:"last_classified_at"`
	Status           string     `json:"status"`
	IsSplitChild     bool       `json:"is_split_child,omitempty"`
	Child            *ChildRow  `json:"child,omitempty"`
	Children         []ChildRow `json:"children,omitempty"`
}

// ListReviewResponse is the page returned by the review listing. Count is the number of
// matching bank transactions before paging.
type ListReviewResponse struct {
	Results []ReviewRow `json:"results"`
	Count   int         `json:"count"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

// ToChildRow converts an active classification to its display summary.
func ToChildRow(c domain.ClassificationDetail) ChildRow {
	row := ChildRow{
		ClassificationID: c.ClassificationID,
		Amount:           NewAmount(c.Amount.Round(2)),
		Remarks:          c.Remarks,
		TransactionType:  c.TransactionTypeName,
		CostCentre:       c.CostCentreName,
		Entity:           c.EntityName,
		Asset:            c.AssetName,
		Contract:         c.ContractVendorName,
	}
	if !c.ValueDate.IsZero() {
		d := NewDate(c.ValueDate)
		row.ValueDate = &d
	}
	return row
}

// ToChildRows converts a slice of classifications.
func ToChildRows(children []domain.ClassificationDetail) []ChildRow {
	rows := make([]ChildRow, len(children))
	for i, c := range children {
		rows[i] = ToChildRow(c)
	}
	return rows
}

// ToReviewRow converts a transaction to its parent listing row, without children.
func ToReviewRow(t domain.ReviewTransaction, status string) ReviewRow {
	return ReviewRow{
		ID:               t.ID,
		TransactionDate:  NewDate(t.TransactionDate),
		Narration:        t.Narration,
		CreditAmount:     NewAmountPtr(t.CreditAmount),
		DebitAmount:      NewAmountPtr(t.DebitAmount),
		BalanceAmount:    NewAmountPtr(t.BalanceAmount),
		SignedAmount:     NewAmount(t.SignedAmount),
		UTRNumber:        t.UTRNumber,
		ActiveCount:      t.ActiveCount,
		LastClassifiedAt: t.LastClassifiedAt,
		Status:           status,
	}
}

// BankTransaction rebuilds the domain transaction carried by the row.
func (r ReviewRow) BankTransaction() domain.BankTransaction {
	txn := domain.BankTransaction{
		ID:              r.ID,
		TransactionDate: r.TransactionDate.Time,
		Narration:       r.Narration,
		UTRNumber:       r.UTRNumber,
		SignedAmount:    r.SignedAmount.Decimal,
	}
	if r.CreditAmount != nil {
		v := r.CreditAmount.Decimal
		txn.CreditAmount = &v
	}
	if r.DebitAmount != nil {
		v := r.DebitAmount.Decimal
		txn.DebitAmount = &v
	}
	if r.BalanceAmount != nil {
		v := r.BalanceAmount.Decimal
		txn.BalanceAmount = &v
	}
	return txn
}

// Detail rebuilds the classification the summary describes. Reference ids are not part of
// the listing and stay zero.
func (c ChildRow) Detail(bankTransactionID int64) domain.ClassificationDetail {
	d := domain.ClassificationDetail{
		Classification: domain.Classification{
			ClassificationID:  c.ClassificationID,
			BankTransactionID: bankTransactionID,
			Amount:            c.Amount.Decimal,
			Remarks:           c.Remarks,
			IsActive:          true,
		},
		TransactionTypeName: c.TransactionType,
		CostCentreName:      c.CostCentre,
		EntityName:          c.Entity,
		AssetName:           c.Asset,
		ContractVendorName:  c.Contract,
	}
	if c.ValueDate != nil {
		d.ValueDate = c.ValueDate.Time
	}
	return d
}
