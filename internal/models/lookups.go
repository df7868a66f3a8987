package models

type TransactionType struct {
	ID        int64  `db:"transaction_type_id"`
	Name      string `db:"name"`
	Direction string `db:"direction"`
	Status    string `db:"status"`
}

type CostCentre struct {
	ID                   int64  `db:"cost_centre_id"`
	Name                 string `db:"name"`
	TransactionDirection string `db:"transaction_direction"`
	IsActive             bool   `db:"is_active"`
}

type Entity struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	EntityType string `db:"entity_type"`
	Status     string `db:"status"`
}

type Asset struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	TagID    string `db:"tag_id"`
	IsActive bool   `db:"is_active"`
}

// Contract carries the name of its cost centre, joined at read time.
type Contract struct {
	ID             int64   `db:"id"`
	VendorName     string  `db:"vendor_name"`
	CostCentreName *string `db:"cost_centre_name"`
	IsActive       bool    `db:"is_active"`
}

type BankAccount struct {
	ID            int64  `db:"id"`
	BankName      string `db:"bank_name"`
	AccountName   string `db:"account_name"`
	AccountNumber string `db:"account_number"`
	IsActive      bool   `db:"is_active"`
}
