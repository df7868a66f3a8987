// Package review drives the classification workflow of a reviewer: listing bank
// transactions and editing classification drafts against the API.
package review

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/client"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// Backend is the part of the API the workflow uses. *client.Client satisfies it.
type Backend interface {
	Session() domain.Session

	ListUnclassified(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error)

	Classify(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassificationCreatedResponse, error)
	Split(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error)
	Reclassify(ctx context.Context, req dto.ReclassifyRequest) (*dto.ClassificationCreatedResponse, error)
	Resplit(ctx context.Context, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error)

	TransactionTypes(ctx context.Context, activeOnly bool) ([]domain.TransactionType, error)
	CostCentres(ctx context.Context, activeOnly bool) ([]domain.CostCentre, error)
	Entities(ctx context.Context) ([]domain.Entity, error)
	Assets(ctx context.Context) ([]domain.Asset, error)
	Contracts(ctx context.Context) ([]domain.Contract, error)
}

var _ Backend = (*client.Client)(nil)
