package domain

// TransactionTypeStatus values as stored.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type TransactionType struct {
	ID        int64     `json:"transactionTypeID"`
	Name      string    `json:"name"`
	Direction Direction `json:"direction"` // Credit or Debit
	Status    string    `json:"status"`
}

// IsActive reports whether the type may be offered for new classifications.
func (t TransactionType) IsActive() bool {
	return t.Status == StatusActive
}

type CostCentre struct {
	ID                   int64     `json:"costCentreID"`
	Name                 string    `json:"name"`
	TransactionDirection Direction `json:"transactionDirection"` // Credit, Debit or Both
	IsActive             bool      `json:"isActive"`
}

// EntityType tags what an entity represents.
type EntityType string

const (
	EntityProperty EntityType = "Property"
	EntityProject  EntityType = "Project"
	EntityInternal EntityType = "Internal"
)

type Entity struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"entityType"`
	Status     string     `json:"status"`
}

type Asset struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TagID    string `json:"tagID"`
	IsActive bool   `json:"isActive"`
}

type Contract struct {
	ID             int64  `json:"id"`
	VendorName     string `json:"vendorName"`
	CostCentreName string `json:"costCentreName"`
	IsActive       bool   `json:"isActive"`
}

type BankAccount struct {
	ID            int64  `json:"id"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IsActive      bool   `json:"isActive"`
}

// LookupFilter restricts lookup listings.
type LookupFilter struct {
	CompanyID  string
	ActiveOnly bool
}
