package classify

import (
	"fmt"
	"time"

	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BuildClassifyPayload builds the classify request for txnID. The amount sent is always the
// expected amount; the row's own amount is ignored.
func BuildClassifyPayload(txnID int64, row DraftRow, expected decimal.Decimal, defaultDate time.Time) dto.ClassifyRequest {
	return dto.ClassifyRequest{
		BankTransactionID: txnID,
		TransactionTypeID: row.TransactionTypeID,
		CostCentreID:      row.CostCentreID,
		EntityID:          row.EntityID,
		AssetID:           row.AssetID,
		ContractID:        row.ContractID,
		Amount:            dto.NewAmount(Q2(expected)),
		ValueDate:         valueDate(row.ValueDate, defaultDate),
		Remarks:           row.Remarks,
	}
}

// BuildSplitPayload builds the split request. Blank remarks become "Split part i/N".
func BuildSplitPayload(txnID int64, rows []DraftRow, defaultDate time.Time) dto.SplitRequest {
	return dto.SplitRequest{
		BankTransactionID: txnID,
		Rows:              splitRows(rows, defaultDate, "Split part"),
	}
}

// BuildReclassifyPayload builds the reclassify request. No amount is sent, the server keeps
// the replaced row's amount.
func BuildReclassifyPayload(classificationID string, row DraftRow, defaultDate time.Time) dto.ReclassifyRequest {
	return dto.ReclassifyRequest{
		ClassificationID:  classificationID,
		TransactionTypeID: row.TransactionTypeID,
		CostCentreID:      row.CostCentreID,
		EntityID:          row.EntityID,
		AssetID:           row.AssetID,
		ContractID:        row.ContractID,
		ValueDate:         valueDate(row.ValueDate, defaultDate),
		Remarks:           row.Remarks,
	}
}

// BuildResplitPayload builds the resplit request. Blank remarks become "Re-split part i/N".
func BuildResplitPayload(classificationID string, rows []DraftRow, defaultDate time.Time) dto.ResplitRequest {
	return dto.ResplitRequest{
		ClassificationID: classificationID,
		Rows:             splitRows(rows, defaultDate, "Re-split part"),
	}
}

// DefaultRemarks is the remark a split row gets when left blank.
func DefaultRemarks(prefix string, index, count int) string {
	return fmt.Sprintf("%s %d/%d", prefix, index+1, count)
}

func splitRows(rows []DraftRow, defaultDate time.Time, remarksPrefix string) []dto.SplitRow {
	out := make([]dto.SplitRow, len(rows))
	for i, r := range rows {
		remarks := r.Remarks
		if remarks == "" {
			remarks = DefaultRemarks(remarksPrefix, i, len(rows))
		}
		out[i] = dto.SplitRow{
			TransactionTypeID: r.TransactionTypeID,
			CostCentreID:      r.CostCentreID,
			EntityID:          r.EntityID,
			AssetID:           r.AssetID,
			ContractID:        r.ContractID,
			Amount:            dto.NewAmount(Q2(r.Amount)),
			ValueDate:         valueDate(r.ValueDate, defaultDate),
			Remarks:           remarks,
		}
	}
	return out
}

func valueDate(chosen, fallback time.Time) *dto.Date {
	if !chosen.IsZero() {
		d := dto.NewDate(chosen)
		return &d
	}
	return dto.NewDatePtr(&fallback)
}
