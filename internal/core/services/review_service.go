package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/SscSPs/tx_classify_app/internal/utils/pagination"
)

const msgBankAccountRequired = "bank_account_id is required"

// ListReviewRows returns one page of bank transactions of an account with their
// classification state.
func (s *classificationService) ListReviewRows(ctx context.Context, session domain.Session, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
	filter, err := parseReviewFilter(params)
	if err != nil {
		return nil, err
	}
	filter.CompanyID = s.CompanyScope(session)

	txns, count, err := s.bankTxnRepo.ListReviewTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list review transactions", slog.Int64("bank_account_id", filter.BankAccountID))
		return nil, err
	}

	includeChildren := queryFlag(params.IncludeChildren, false)
	flattenSplits := queryFlag(params.FlattenSplits, false)

	var children map[int64][]domain.ClassificationDetail
	if includeChildren || flattenSplits {
		ids := make([]int64, 0, len(txns))
		for _, t := range txns {
			if t.ActiveCount > 0 {
				ids = append(ids, t.ID)
			}
		}
		if len(ids) > 0 {
			children, err = s.classificationRepo.FindActiveClassificationsByBankTransactionIDs(ctx, ids)
			if err != nil {
				s.LogError(ctx, err, "Failed to load active classifications", slog.Int("transactions", len(ids)))
				return nil, err
			}
		}
	}

	results := make([]dto.ReviewRow, 0, len(txns))
	for _, t := range txns {
		if flattenSplits && t.ActiveCount > 1 {
			for _, c := range children[t.ID] {
				row := dto.ToReviewRow(t, dto.StatusSplitChild)
				row.IsSplitChild = true
				child := dto.ToChildRow(c)
				row.Child = &child
				results = append(results, row)
			}
			continue
		}

		row := dto.ToReviewRow(t, dto.StatusLabel(t.ActiveCount))
		if includeChildren {
			row.Children = dto.ToChildRows(children[t.ID])
		}
		results = append(results, row)
	}

	s.LogDebug(ctx, "Listed review rows",
		slog.Int64("bank_account_id", filter.BankAccountID),
		slog.Int("rows", len(results)),
		slog.Int("count", count))

	return &dto.ListReviewResponse{
		Results: results,
		Count:   count,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// parseReviewFilter validates the listing query. Malformed paging values fall back to their
// defaults; malformed filters are rejected.
func parseReviewFilter(p dto.ListReviewParams) (domain.ReviewFilter, error) {
	var filter domain.ReviewFilter

	raw := strings.TrimSpace(p.BankAccountID)
	if raw == "" {
		return filter, apperrors.NewValidationError(msgBankAccountRequired)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return filter, apperrors.NewFieldError("bank_account_id", "A valid integer is required.")
	}
	filter.BankAccountID = id

	if filter.StartDate, err = parseQueryDate("start_date", p.StartDate); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseQueryDate("end_date", p.EndDate); err != nil {
		return filter, err
	}
	if filter.MinAmount, err = parseQueryAmount("min_amount", p.MinAmount); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = parseQueryAmount("max_amount", p.MaxAmount); err != nil {
		return filter, err
	}

	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case "credit":
		d := domain.Credit
		filter.Direction = &d
	case "debit":
		d := domain.Debit
		filter.Direction = &d
	}

	filter.UnclassifiedOnly = queryFlag(p.UnclassifiedOnly, true)
	filter.Limit = pagination.ParseLimit(p.Limit)
	filter.Offset = pagination.ParseOffset(p.Offset)
	return filter, nil
}

func parseQueryDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := dto.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperrors.NewFieldError(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	t := d.Time
	return &t, nil
}

func parseQueryAmount(field, raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	a, err := dto.ParseAmount(raw)
	if err != nil {
		return nil, apperrors.NewFieldError(field, "A valid number is required.")
	}
	return &a, nil
}

// queryFlag reads a 1/true/True flag; an absent value yields def.
func queryFlag(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	switch raw {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
