package mapping

import (
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/models"
)

// ToModelClassification converts a domain Classification to a model Classification
func ToModelClassification(d domain.Classification) models.Classification {
	return models.Classification{
		ClassificationID:  d.ClassificationID,
		BankTransactionID: d.BankTransactionID,
		TransactionTypeID: d.TransactionTypeID,
		CostCentreID:      d.CostCentreID,
		EntityID:          d.EntityID,
		AssetID:           d.AssetID,
		ContractID:        d.ContractID,
		Amount:            d.Amount.Round(2),
		ValueDate:         d.ValueDate,
		Remarks:           d.Remarks,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClassification converts a model Classification to a domain Classification
func ToDomainClassification(m models.Classification) domain.Classification {
	return domain.Classification{
		ClassificationID:  m.ClassificationID,
		BankTransactionID: m.BankTransactionID,
		TransactionTypeID: m.TransactionTypeID,
		CostCentreID:      m.CostCentreID,
		EntityID:          m.EntityID,
		AssetID:           m.AssetID,
		ContractID:        m.ContractID,
		Amount:            m.Amount,
		ValueDate:         m.ValueDate,
		Remarks:           m.Remarks,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClassificationSlice converts a slice of model Classifications
func ToDomainClassificationSlice(ms []models.Classification) []domain.Classification {
	ds := make([]domain.Classification, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClassification(m)
	}
	return ds
}

// ToDomainClassificationDetail converts a joined classification row
func ToDomainClassificationDetail(m models.ClassificationDetail) domain.ClassificationDetail {
	return domain.ClassificationDetail{
		Classification:      ToDomainClassification(m.Classification),
		TransactionTypeName: m.TransactionTypeName,
		CostCentreName:      m.CostCentreName,
		EntityName:          m.EntityName,
		AssetName:           m.AssetName,
		ContractVendorName:  m.ContractVendorName,
	}
}
