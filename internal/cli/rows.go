package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/SscSPs/tx_classify_app/internal/core/classify"
	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/SscSPs/tx_classify_app/internal/review"
)

// rowSpec is one classification row as typed on the command line. References are ids or
// names.
type rowSpec struct {
	Type     string
	Centre   string
	Entity   string
	Asset    string
	Contract string
	Amount   string
	Date     string
	Remarks  string
}

var rowKeys = map[string]func(*rowSpec) *string{
	"type":        func(r *rowSpec) *string { return &r.Type },
	"centre":      func(r *rowSpec) *string { return &r.Centre },
	"center":      func(r *rowSpec) *string { return &r.Centre },
	"cost_centre": func(r *rowSpec) *string { return &r.Centre },
	"entity":      func(r *rowSpec) *string { return &r.Entity },
	"asset":       func(r *rowSpec) *string { return &r.Asset },
	"contract":    func(r *rowSpec) *string { return &r.Contract },
	"amount":      func(r *rowSpec) *string { return &r.Amount },
	"date":        func(r *rowSpec) *string { return &r.Date },
	"value_date":  func(r *rowSpec) *string { return &r.Date },
	"remarks":     func(r *rowSpec) *string { return &r.Remarks },
}

// parseRowSpec reads "key=value,key=value". A segment without "=" continues the previous
// value, so "amount=1,000.00" and remarks containing commas survive.
func parseRowSpec(s string) (rowSpec, error) {
	var (
		spec    rowSpec
		current *string
	)
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, "=")
		field, known := rowKeys[strings.ToLower(strings.TrimSpace(key))]
		if ok && !known && current != &spec.Remarks {
			return rowSpec{}, usageError("row %q: unknown key %q", s, strings.TrimSpace(key))
		}
		if !ok || !known {
			if current == nil {
				return rowSpec{}, usageError("row %q: expected key=value, got %q", s, part)
			}
			*current += "," + part
			continue
		}
		current = field(&spec)
		*current = strings.TrimSpace(value)
	}
	return spec, nil
}

type named struct {
	id   int64
	name string
}

// resolve maps ref to the id of one of the offered candidates. Unknown names get the
// closest offered name as a suggestion.
func resolve(kind, ref string, candidates []named) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, nil
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, c := range candidates {
			if c.id == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("%s %d is not offered for this transaction", kind, id)
	}

	for _, c := range candidates {
		if strings.EqualFold(c.name, ref) {
			return c.id, nil
		}
	}
	if s, ok := suggest(ref, candidates); ok {
		return 0, fmt.Errorf("unknown %s %q, did you mean %q?", kind, ref, s)
	}
	return 0, fmt.Errorf("unknown %s %q", kind, ref)
}

func suggest(ref string, candidates []named) (string, bool) {
	best, bestDist := "", -1
	lower := strings.ToLower(ref)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c.name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.name, d
		}
	}
	limit := utf8.RuneCountInString(ref)/3 + 1
	return best, bestDist >= 0 && bestDist <= limit
}

func optionNames(opts review.Options) (types, centres, entities, assets, contracts []named) {
	for _, t := range opts.TransactionTypes {
		types = append(types, named{t.ID, t.Name})
	}
	for _, c := range opts.CostCentres {
		centres = append(centres, named{c.ID, c.Name})
	}
	for _, e := range opts.Entities {
		entities = append(entities, named{e.ID, e.Name})
	}
	for _, a := range opts.Assets {
		assets = append(assets, named{a.ID, a.Name})
	}
	for _, c := range opts.Contracts {
		contracts = append(contracts, named{c.ID, c.VendorName})
	}
	return
}

// draftRow resolves spec against the dialog options.
func draftRow(spec rowSpec, opts review.Options) (classify.DraftRow, error) {
	types, centres, entities, assets, contracts := optionNames(opts)

	var (
		row classify.DraftRow
		err error
	)
	if row.TransactionTypeID, err = resolve("transaction type", spec.Type, types); err != nil {
		return row, err
	}
	if row.CostCentreID, err = resolve("cost centre", spec.Centre, centres); err != nil {
		return row, err
	}
	if row.EntityID, err = resolve("entity", spec.Entity, entities); err != nil {
		return row, err
	}
	if row.AssetID, err = optionalRef("asset", spec.Asset, assets); err != nil {
		return row, err
	}
	if row.ContractID, err = optionalRef("contract", spec.Contract, contracts); err != nil {
		return row, err
	}
	if spec.Amount != "" {
		if row.Amount, err = dto.ParseAmount(spec.Amount); err != nil {
			return row, usageError("%v", err)
		}
	}
	if spec.Date != "" {
		d, err := dto.ParseDate(spec.Date)
		if err != nil {
			return row, usageError("%v", err)
		}
		row.ValueDate = d.Time
	}
	row.Remarks = spec.Remarks
	return row, nil
}

func optionalRef(kind, ref string, candidates []named) (*int64, error) {
	id, err := resolve(kind, ref, candidates)
	if err != nil || id == 0 {
		return nil, err
	}
	return &id, nil
}
