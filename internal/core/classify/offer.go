package classify

import (
	"strings"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

// OfferableTransactionTypes keeps the active transaction types whose direction matches dir.
func OfferableTransactionTypes(types []domain.TransactionType, dir domain.Direction) []domain.TransactionType {
	out := make([]domain.TransactionType, 0, len(types))
	for _, t := range types {
		if strings.EqualFold(t.Status, domain.StatusActive) && t.Direction == dir {
			out = append(out, t)
		}
	}
	return out
}

// ActiveCostCentres drops inactive cost centres.
func ActiveCostCentres(centres []domain.CostCentre) []domain.CostCentre {
	out := make([]domain.CostCentre, 0, len(centres))
	for _, c := range centres {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// ActiveEntities drops entities whose status is set to anything but Active.
func ActiveEntities(entities []domain.Entity) []domain.Entity {
	out := make([]domain.Entity, 0, len(entities))
	for _, e := range entities {
		if e.Status == "" || strings.EqualFold(e.Status, domain.StatusActive) {
			out = append(out, e)
		}
	}
	return out
}

func ActiveAssets(assets []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

func ActiveContracts(contracts []domain.Contract) []domain.Contract {
	out := make([]domain.Contract, 0, len(contracts))
	for _, c := range contracts {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
