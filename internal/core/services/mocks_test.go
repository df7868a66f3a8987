package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
)

// --- Mock BankTransactionRepository ---
type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionReader = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) ListReviewTransactions(ctx context.Context, filter domain.ReviewFilter) ([]domain.ReviewTransaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewTransaction), args.Int(1), args.Error(2)
}

func (m *MockBankTransactionRepository) FindBankTransactionForUpdate(ctx context.Context, tx pgx.Tx, bankTransactionID int64, companyID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tx, bankTransactionID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

// --- Mock ClassificationRepository ---
type MockClassificationRepository struct {
	mock.Mock
}

var _ portsrepo.ClassificationRepositoryWithTx = (*MockClassificationRepository)(nil)

func (m *MockClassificationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockClassificationRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockClassificationRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockClassificationRepository) FindClassificationByID(ctx context.Context, classificationID string) (*domain.Classification, error) {
	args := m.Called(ctx, classificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classification), args.Error(1)
}

func (m *MockClassificationRepository) FindActiveClassificationsByBankTransactionIDs(ctx context.Context, bankTransactionIDs []int64) (map[int64][]domain.ClassificationDetail, error) {
	args := m.Called(ctx, bankTransactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]domain.ClassificationDetail), args.Error(1)
}

func (m *MockClassificationRepository) FindClassificationForUpdate(ctx context.Context, tx pgx.Tx, classificationID string) (*domain.Classification, error) {
	args := m.Called(ctx, tx, classificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classification), args.Error(1)
}

func (m *MockClassificationRepository) ListActiveClassificationsInTx(ctx context.Context, tx pgx.Tx, bankTransactionID int64) ([]domain.Classification, error) {
	args := m.Called(ctx, tx, bankTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Classification), args.Error(1)
}

func (m *MockClassificationRepository) DeactivateClassificationsInTx(ctx context.Context, tx pgx.Tx, classificationIDs []string) (int64, error) {
	args := m.Called(ctx, tx, classificationIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClassificationRepository) InsertClassificationsInTx(ctx context.Context, tx pgx.Tx, classifications []domain.Classification) error {
	return m.Called(ctx, tx, classifications).Error(0)
}

// --- Mock LookupRepository ---
type MockLookupRepository struct {
	mock.Mock
}

var _ portsrepo.LookupReader = (*MockLookupRepository)(nil)

func (m *MockLookupRepository) ListTransactionTypes(ctx context.Context, filter domain.LookupFilter) ([]domain.TransactionType, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionType), args.Error(1)
}

func (m *MockLookupRepository) ListCostCentres(ctx context.Context, filter domain.LookupFilter) ([]domain.CostCentre, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCentre), args.Error(1)
}

func (m *MockLookupRepository) ListEntities(ctx context.Context, filter domain.LookupFilter) ([]domain.Entity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockLookupRepository) ListAssets(ctx context.Context, filter domain.LookupFilter) ([]domain.Asset, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockLookupRepository) ListContracts(ctx context.Context, filter domain.LookupFilter) ([]domain.Contract, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockLookupRepository) ListBankAccounts(ctx context.Context, filter domain.LookupFilter) ([]domain.BankAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}
