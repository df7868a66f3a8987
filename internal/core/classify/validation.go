package classify

import (
	"fmt"
	"time"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Mode tells whether a draft holds a single row with a fixed amount or several editable rows.
type Mode int

const (
	SingleRow Mode = iota
	MultiRow
)

// DraftRow is one editable row of a classification draft. A zero id means nothing was
// selected; a zero ValueDate means the default date applies.
type DraftRow struct {
	TransactionTypeID int64
	CostCentreID      int64
	EntityID          int64
	AssetID           *int64
	ContractID        *int64
	Amount            decimal.Decimal
	ValueDate         time.Time
	Remarks           string
}

// Field names a validated row field. Values match the request json keys.
type Field string

const (
	FieldTransactionType Field = "transaction_type_id"
	FieldCostCentre      Field = "cost_centre_id"
	FieldEntity          Field = "entity_id"
	FieldAmount          Field = "amount"
)

// RowValidity is the per-field result of ValidateRow. A field is true when it is valid.
type RowValidity struct {
	TransactionType bool
	CostCentre      bool
	Entity          bool
	Amount          bool
}

// Valid is the conjunction of all field results.
func (v RowValidity) Valid() bool {
	return v.TransactionType && v.CostCentre && v.Entity && v.Amount
}

// FirstInvalid returns the first failing field in display order.
func (v RowValidity) FirstInvalid() (Field, bool) {
	switch {
	case !v.TransactionType:
		return FieldTransactionType, true
	case !v.CostCentre:
		return FieldCostCentre, true
	case !v.Entity:
		return FieldEntity, true
	case !v.Amount:
		return FieldAmount, true
	}
	return "", false
}

// Reason classifies a draft validation failure.
type Reason string

const (
	MissingField      Reason = "missing_field"
	NonPositiveAmount Reason = "non_positive_amount"
	ImbalancedTotal   Reason = "imbalanced_total"
)

// ValidationError describes why a draft cannot be submitted. It matches apperrors.ErrValidation.
type ValidationError struct {
	Reason   Reason
	Mode     Mode
	Field    Field // set for MissingField and NonPositiveAmount
	Row      int   // zero based, -1 when the whole draft is concerned
	Total    decimal.Decimal
	Expected decimal.Decimal
	Target   string // what the total is compared to, e.g. "transaction amount"
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case MissingField:
		if e.Mode == SingleRow {
			return "Please fill all required fields."
		}
		return fmt.Sprintf("Row %d: %s is required.", e.Row+1, e.Field)
	case NonPositiveAmount:
		return fmt.Sprintf("Row %d: amount must be greater than 0.00.", e.Row+1)
	case ImbalancedTotal:
		return fmt.Sprintf("Split total %s must equal %s %s.", e.Total.StringFixed(2), e.Target, e.Expected.StringFixed(2))
	}
	return string(e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// ValidateRow checks the required selections of row and, in multi-row mode, that its amount
// rounds to more than zero. In single-row mode the amount is fixed and always passes here.
func ValidateRow(row DraftRow, mode Mode) RowValidity {
	v := RowValidity{
		TransactionType: row.TransactionTypeID > 0,
		CostCentre:      row.CostCentreID > 0,
		Entity:          row.EntityID > 0,
		Amount:          true,
	}
	if mode == MultiRow {
		v.Amount = Q2(row.Amount).Sign() > 0
	}
	return v
}

// ValidateRows validates every row and reports the first failure.
func ValidateRows(rows []DraftRow, mode Mode) error {
	for i, row := range rows {
		field, bad := ValidateRow(row, mode).FirstInvalid()
		if !bad {
			continue
		}
		reason := MissingField
		if field == FieldAmount {
			reason = NonPositiveAmount
		}
		return &ValidationError{Reason: reason, Mode: mode, Field: field, Row: i}
	}
	return nil
}

// DraftTotal sums the rows after rounding each one to two places.
func DraftTotal(rows []DraftRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(Q2(r.Amount))
	}
	return Q2(total)
}

// ValidateTotal requires the rounded draft total to equal the rounded expected amount
// exactly. There is no tolerance.
func ValidateTotal(rows []DraftRow, expected decimal.Decimal) error {
	total := DraftTotal(rows)
	want := Q2(expected)
	if total.Equal(want) {
		return nil
	}
	return &ValidationError{Reason: ImbalancedTotal, Mode: MultiRow, Row: -1, Total: total, Expected: want, Target: "transaction amount"}
}
