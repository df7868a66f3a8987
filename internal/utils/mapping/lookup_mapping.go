package mapping

import (
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/models"
)

func ToDomainTransactionType(m models.TransactionType) domain.TransactionType {
	return domain.TransactionType{
		ID:        m.ID,
		Name:      m.Name,
		Direction: domain.Direction(m.Direction),
		Status:    m.Status,
	}
}

func ToDomainCostCentre(m models.CostCentre) domain.CostCentre {
	return domain.CostCentre{
		ID:                   m.ID,
		Name:                 m.Name,
		TransactionDirection: domain.Direction(m.TransactionDirection),
		IsActive:             m.IsActive,
	}
}

func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		ID:         m.ID,
		Name:       m.Name,
		EntityType: domain.EntityType(m.EntityType),
		Status:     m.Status,
	}
}

func ToDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		ID:       m.ID,
		Name:     m.Name,
		TagID:    m.TagID,
		IsActive: m.IsActive,
	}
}

// ToDomainContract converts a contract row; a contract without a cost centre gets an empty name.
func ToDomainContract(m models.Contract) domain.Contract {
	d := domain.Contract{
		ID:         m.ID,
		VendorName: m.VendorName,
		IsActive:   m.IsActive,
	}
	if m.CostCentreName != nil {
		d.CostCentreName = *m.CostCentreName
	}
	return d
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		ID:            m.ID,
		BankName:      m.BankName,
		AccountName:   m.AccountName,
		AccountNumber: m.AccountNumber,
		IsActive:      m.IsActive,
	}
}
