package dto

import "time"

// ClassifyRequest assigns a whole unclassified bank transaction to one classification.
type ClassifyRequest struct {
	BankTransactionID int64  `json:"bank_transaction_id" binding:"required,gt=0"`
	TransactionTypeID int64  `json:"transaction_type_id" binding:"required,gt=0"`
	CostCentreID      int64  `json:"cost_centre_id" binding:"required,gt=0"`
	EntityID          int64  `json:"entity_id" binding:"required,gt=0"`
	AssetID           *int64 `json:"asset_id" binding:"omitempty,gt=0"`
	ContractID        *int64 `json:"contract_id" binding:"omitempty,gt=0"`
	Amount            Amount `json:"amount" binding:"money"`
	ValueDate         *Date  `json:"value_date"`
	Remarks           string `json:"remarks" binding:"max=2000"`
}

// SplitRow is one portion of a split or re-split.
type SplitRow struct {
	TransactionTypeID int64  `json:"transaction_type_id" binding:"required,gt=0"`
	CostCentreID      int64  `json:"cost_centre_id" binding:"required,gt=0"`
	EntityID          int64  `json:"entity_id" binding:"required,gt=0"`
	AssetID           *int64 `json:"asset_id" binding:"omitempty,gt=0"`
	ContractID        *int64 `json:"contract_id" binding:"omitempty,gt=0"`
	Amount            Amount `json:"amount" binding:"money"`
	ValueDate         *Date  `json:"value_date"`
	Remarks           string `json:"remarks" binding:"max=2000"`
}

// SplitRequest divides an unclassified bank transaction into several classifications.
type SplitRequest struct {
	BankTransactionID int64      `json:"bank_transaction_id" binding:"required,gt=0"`
	Rows              []SplitRow `json:"rows" binding:"dive"`
}

// ReclassifyRequest replaces the metadata of an active classification. The amount is carried
// over from the replaced row.
type ReclassifyRequest struct {
	ClassificationID  string `json:"classification_id" binding:"required,uuid"`
	TransactionTypeID int64  `json:"transaction_type_id" binding:"required,gt=0"`
	CostCentreID      int64  `json:"cost_centre_id" binding:"required,gt=0"`
	EntityID          int64  `json:"entity_id" binding:"required,gt=0"`
	AssetID           *int64 `json:"asset_id" binding:"omitempty,gt=0"`
	ContractID        *int64 `json:"contract_id" binding:"omitempty,gt=0"`
	ValueDate         *Date  `json:"value_date"`
	Remarks           string `json:"remarks" binding:"max=2000"`
}

// ResplitRequest divides one active classification into several, leaving its siblings alone.
type ResplitRequest struct {
	ClassificationID string     `json:"classification_id" binding:"required,uuid"`
	Rows             []SplitRow `json:"rows" binding:"dive"`
}

// ClassificationCreatedResponse is returned by classify and reclassify.
type ClassificationCreatedResponse struct {
	ClassificationID string    `json:"classification_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// ChildrenCreatedResponse is returned by split and resplit.
type ChildrenCreatedResponse struct {
	ChildrenCount int `json:"children_count"`
}
