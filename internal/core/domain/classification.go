package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification assigns a portion of a bank transaction to a transaction type, cost centre
// and entity. Superseded rows are kept with IsActive=false.
type Classification struct {
	ClassificationID  string          `json:"classificationID"`
	BankTransactionID int64           `json:"bankTransactionID"`
	TransactionTypeID int64           `json:"transactionTypeID"`
	CostCentreID      int64           `json:"costCentreID"`
	EntityID          int64           `json:"entityID"`
	AssetID           *int64          `json:"assetID"`
	ContractID        *int64          `json:"contractID"`
	Amount            decimal.Decimal `json:"amount"` // unsigned, > 0
	ValueDate         time.Time       `json:"valueDate"`
	Remarks           string          `json:"remarks"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// ClassificationDetail is an active classification with the display names of its references.
type ClassificationDetail struct {
	Classification
	TransactionTypeName string  `json:"transactionTypeName"`
	CostCentreName      string  `json:"costCentreName"`
	EntityName          string  `json:"entityName"`
	AssetName           *string `json:"assetName"`
	ContractVendorName  *string `json:"contractVendorName"`
}
