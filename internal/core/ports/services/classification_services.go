package services

import (
	"context"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// ReviewReaderSvc lists bank transactions for review.
type ReviewReaderSvc interface {
	// ListReviewRows applies the listing filters and returns one page of rows.
	ListReviewRows(ctx context.Context, session domain.Session, params dto.ListReviewParams) (*dto.ListReviewResponse, error)
}

// ClassificationWriterSvc applies the four classification changes. Each one is atomic.
type ClassificationWriterSvc interface {
	Classify(ctx context.Context, session domain.Session, req dto.ClassifyRequest) (*dto.ClassificationCreatedResponse, error)
	Split(ctx context.Context, session domain.Session, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error)
	Reclassify(ctx context.Context, session domain.Session, req dto.ReclassifyRequest) (*dto.ClassificationCreatedResponse, error)
	Resplit(ctx context.Context, session domain.Session, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error)
}

// ClassificationSvcFacade combines all classification-related service interfaces
type ClassificationSvcFacade interface {
	ReviewReaderSvc
	ClassificationWriterSvc
}
