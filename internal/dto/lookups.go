package dto

import "github.com/SscSPs/tx_classify_app/internal/core/domain"

type TransactionTypeResponse struct {
	TransactionTypeID int64            `json:"transaction_type_id"`
	Name              string           `json:"name"`
	Direction         domain.Direction `json:"direction"`
	Status            string           `json:"status"`
}

type CostCentreResponse struct {
	CostCentreID         int64            `json:"cost_centre_id"`
	Name                 string           `json:"name"`
	TransactionDirection domain.Direction `json:"transaction_direction"`
	IsActive             bool             `json:"is_active"`
}

type EntityResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	EntityType domain.EntityType `json:"entity_type"`
	Status     string            `json:"status"`
}

type AssetResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TagID    string `json:"tag_id"`
	IsActive bool   `json:"is_active"`
}

type ContractResponse struct {
	ID             int64  `json:"id"`
	VendorName     string `json:"vendor_name"`
	CostCentreName string `json:"cost_centre_name"`
	IsActive       bool   `json:"is_active"`
}

type BankAccountResponse struct {
	ID            int64  `json:"id"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IsActive      bool   `json:"is_active"`
}

// ToTransactionTypeResponses converts domain transaction types to DTOs.
func ToTransactionTypeResponses(in []domain.TransactionType) []TransactionTypeResponse {
	out := make([]TransactionTypeResponse, len(in))
	for i, t := range in {
		out[i] = TransactionTypeResponse{TransactionTypeID: t.ID, Name: t.Name, Direction: t.Direction, Status: t.Status}
	}
	return out
}

func ToCostCentreResponses(in []domain.CostCentre) []CostCentreResponse {
	out := make([]CostCentreResponse, len(in))
	for i, c := range in {
		out[i] = CostCentreResponse{CostCentreID: c.ID, Name: c.Name, TransactionDirection: c.TransactionDirection, IsActive: c.IsActive}
	}
	return out
}

func ToEntityResponses(in []domain.Entity) []EntityResponse {
	out := make([]EntityResponse, len(in))
	for i, e := range in {
		out[i] = EntityResponse{ID: e.ID, Name: e.Name, EntityType: e.EntityType, Status: e.Status}
	}
	return out
}

func ToAssetResponses(in []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, len(in))
	for i, a := range in {
		out[i] = AssetResponse{ID: a.ID, Name: a.Name, TagID: a.TagID, IsActive: a.IsActive}
	}
	return out
}

func ToContractResponses(in []domain.Contract) []ContractResponse {
	out := make([]ContractResponse, len(in))
	for i, c := range in {
		out[i] = ContractResponse{ID: c.ID, VendorName: c.VendorName, CostCentreName: c.CostCentreName, IsActive: c.IsActive}
	}
	return out
}

func ToBankAccountResponses(in []domain.BankAccount) []BankAccountResponse {
	out := make([]BankAccountResponse, len(in))
	for i, b := range in {
		out[i] = BankAccountResponse{ID: b.ID, BankName: b.BankName, AccountName: b.AccountName, AccountNumber: b.AccountNumber, IsActive: b.IsActive}
	}
	return out
}

// Domain conversions used by the client side.

func (r TransactionTypeResponse) ToDomain() domain.TransactionType {
	return domain.TransactionType{ID: r.TransactionTypeID, Name: r.Name, Direction: r.Direction, Status: r.Status}
}

func (r CostCentreResponse) ToDomain() domain.CostCentre {
	return domain.CostCentre{ID: r.CostCentreID, Name: r.Name, TransactionDirection: r.TransactionDirection, IsActive: r.IsActive}
}

func (r EntityResponse) ToDomain() domain.Entity {
	return domain.Entity{ID: r.ID, Name: r.Name, EntityType: r.EntityType, Status: r.Status}
}

func (r AssetResponse) ToDomain() domain.Asset {
	return domain.Asset{ID: r.ID, Name: r.Name, TagID: r.TagID, IsActive: r.IsActive}
}

func (r ContractResponse) ToDomain() domain.Contract {
	return domain.Contract{ID: r.ID, VendorName: r.VendorName, CostCentreName: r.CostCentreName, IsActive: r.IsActive}
}

func (r BankAccountResponse) ToDomain() domain.BankAccount {
	return domain.BankAccount{ID: r.ID, BankName: r.BankName, AccountName: r.AccountName, AccountNumber: r.AccountNumber, IsActive: r.IsActive}
}
