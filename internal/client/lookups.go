package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// toDomain is satisfied by every lookup response type.
type toDomain[D any] interface {
	ToDomain() D
}

func getLookup[R toDomain[D], D any](ctx context.Context, c *Client, path string, query url.Values) ([]D, error) {
	var resp []R
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]D, len(resp))
	for i, r := range resp {
		out[i] = r.ToDomain()
	}
	return out, nil
}

// TransactionTypes lists transaction types, only active ones when activeOnly is set.
func (c *Client) TransactionTypes(ctx context.Context, activeOnly bool) ([]domain.TransactionType, error) {
	var q url.Values
	if activeOnly {
		q = url.Values{"status": {domain.StatusActive}}
	}
	return getLookup[dto.TransactionTypeResponse, domain.TransactionType](ctx, c, "transaction-types/", q)
}

// CostCentres lists cost centres, only active ones when activeOnly is set.
func (c *Client) CostCentres(ctx context.Context, activeOnly bool) ([]domain.CostCentre, error) {
	var q url.Values
	if activeOnly {
		q = url.Values{"is_active": {"true"}}
	}
	return getLookup[dto.CostCentreResponse, domain.CostCentre](ctx, c, "cost-centres/", q)
}

func (c *Client) Entities(ctx context.Context) ([]domain.Entity, error) {
	return getLookup[dto.EntityResponse, domain.Entity](ctx, c, "entities/", nil)
}

func (c *Client) Assets(ctx context.Context) ([]domain.Asset, error) {
	return getLookup[dto.AssetResponse, domain.Asset](ctx, c, "assets/", nil)
}

func (c *Client) Contracts(ctx context.Context) ([]domain.Contract, error) {
	return getLookup[dto.ContractResponse, domain.Contract](ctx, c, "contracts/", nil)
}

func (c *Client) BankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return getLookup[dto.BankAccountResponse, domain.BankAccount](ctx, c, "banks/", nil)
}
