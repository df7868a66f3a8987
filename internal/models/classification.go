package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification is a row of tx_classify_transactionclassification.
type Classification struct {
	ClassificationID  string          `db:"classification_id"`
	BankTransactionID int64           `db:"bank_transaction_id"`
	TransactionTypeID int64           `db:"transaction_type_id"`
	CostCentreID      int64           `db:"cost_centre_id"`
	EntityID          int64           `db:"entity_id"`
	AssetID           *int64          `db:"asset_id"`
	ContractID        *int64          `db:"contract_id"`
	Amount            decimal.Decimal `db:"amount"`
	ValueDate         time.Time       `db:"value_date"`
	Remarks           string          `db:"remarks"`
	IsActive          bool            `db:"is_active_classification"`
	AuditFields
}

// ClassificationDetail adds the joined reference names.
type ClassificationDetail struct {
	Classification
	TransactionTypeName string  `db:"transaction_type_name"`
	CostCentreName      string  `db:"cost_centre_name"`
	EntityName          string  `db:"entity_name"`
	AssetName           *string `db:"asset_name"`
	ContractVendorName  *string `db:"contract_vendor_name"`
}
