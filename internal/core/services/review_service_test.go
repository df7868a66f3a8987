package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/core/services"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

func reviewTxn(id int64, signed string, activeCount int) domain.ReviewTransaction {
	return domain.ReviewTransaction{
		BankTransaction: domain.BankTransaction{
			ID:              id,
			BankAccountID:   7,
			TransactionDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Narration:       "NEFT",
			SignedAmount:    decimal.RequireFromString(signed),
		},
		ActiveCount: activeCount,
	}
}

func detail(id string, txnID int64, amt string) domain.ClassificationDetail {
	return domain.ClassificationDetail{
		Classification: domain.Classification{
			ClassificationID:  id,
			BankTransactionID: txnID,
			Amount:            decimal.RequireFromString(amt),
			IsActive:          true,
		},
		TransactionTypeName: "Rent",
		CostCentreName:      "HQ",
		EntityName:          "Tower A",
	}
}

func TestListReviewRows_RequiresBankAccount(t *testing.T) {
	svc := services.NewClassificationService(new(MockBankTransactionRepository), new(MockClassificationRepository))

	_, err := svc.ListReviewRows(context.Background(), domain.Session{}, dto.ListReviewParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "bank_account_id is required", err.Error())
}

func TestListReviewRows_BuildsFilter(t *testing.T) {
	bankRepo := new(MockBankTransactionRepository)
	svc := services.NewClassificationService(bankRepo, new(MockClassificationRepository))

	var got domain.ReviewFilter
	bankRepo.On("ListReviewTransactions", mock.Anything, mock.AnythingOfType("domain.ReviewFilter")).
		Run(func(args mock.Arguments) { got = args.Get(1).(domain.ReviewFilter) }).
		Return([]domain.ReviewTransaction{}, 0, nil).Once()

	resp, err := svc.ListReviewRows(context.Background(),
		domain.Session{Token: "t", Role: domain.RoleAccountant, CompanyID: "acme"},
		dto.ListReviewParams{
			BankAccountID: "7",
			Type:          "DEBIT",
			StartDate:     "2025-04-01",
			MinAmount:     "1,000",
			Limit:         "9999",
			Offset:        "-3",
		})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.BankAccountID)
	assert.Equal(t, "acme", got.CompanyID)
	require.NotNil(t, got.Direction)
	assert.Equal(t, domain.Debit, *got.Direction)
	require.NotNil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
	require.NotNil(t, got.MinAmount)
	assert.True(t, got.MinAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got.UnclassifiedOnly, "unclassified_only defaults on")
	assert.Equal(t, 500, got.Limit)
	assert.Equal(t, 0, got.Offset)
	assert.Equal(t, 500, resp.Limit)
	assert.NotNil(t, resp.Results)
	bankRepo.AssertExpectations(t)
}

func TestListReviewRows_RejectsMalformedFilters(t *testing.T) {
	svc := services.NewClassificationService(new(MockBankTransactionRepository), new(MockClassificationRepository))

	_, err := svc.ListReviewRows(context.Background(), domain.Session{}, dto.ListReviewParams{BankAccountID: "7", EndDate: "01/04/2025"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "end_date", appErr.Field)

	_, err = svc.ListReviewRows(context.Background(), domain.Session{}, dto.ListReviewParams{BankAccountID: "7", MaxAmount: "lots"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "max_amount", appErr.Field)
}

func TestListReviewRows_StatusLabelsAndChildren(t *testing.T) {
	bankRepo := new(MockBankTransactionRepository)
	classRepo := new(MockClassificationRepository)
	svc := services.NewClassificationService(bankRepo, classRepo)

	bankRepo.On("ListReviewTransactions", mock.Anything, mock.Anything).Return([]domain.ReviewTransaction{
		reviewTxn(1, "500", 0),
		reviewTxn(2, "-1000", 1),
		reviewTxn(3, "900", 3),
	}, 3, nil).Once()
	classRepo.On("FindActiveClassificationsByBankTransactionIDs", mock.Anything, []int64{2, 3}).Return(map[int64][]domain.ClassificationDetail{
		2: {detail("c2", 2, "1000")},
		3: {detail("a", 3, "300"), detail("b", 3, "300"), detail("c", 3, "300")},
	}, nil).Once()

	resp, err := svc.ListReviewRows(context.Background(), domain.Session{},
		dto.ListReviewParams{BankAccountID: "7", UnclassifiedOnly: "0", IncludeChildren: "true"})

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Unclassified", resp.Results[0].Status)
	assert.Empty(t, resp.Results[0].Children)
	assert.Equal(t, "Classified", resp.Results[1].Status)
	require.Len(t, resp.Results[1].Children, 1)
	assert.Equal(t, "1000.00", resp.Results[1].Children[0].Amount.String())
	assert.Equal(t, "Split (3)", resp.Results[2].Status)
	assert.Len(t, resp.Results[2].Children, 3)
	assert.Equal(t, 3, resp.Count)
}

func TestListReviewRows_FlattenReplacesSplitParents(t *testing.T) {
	bankRepo := new(MockBankTransactionRepository)
	classRepo := new(MockClassificationRepository)
	svc := services.NewClassificationService(bankRepo, classRepo)

	bankRepo.On("ListReviewTransactions", mock.Anything, mock.Anything).Return([]domain.ReviewTransaction{
		reviewTxn(2, "-1000", 1),
		reviewTxn(3, "900", 2),
	}, 2, nil).Once()
	classRepo.On("FindActiveClassificationsByBankTransactionIDs", mock.Anything, []int64{2, 3}).Return(map[int64][]domain.ClassificationDetail{
		2: {detail("c2", 2, "1000")},
		3: {detail("a", 3, "400"), detail("b", 3, "500")},
	}, nil).Once()

	resp, err := svc.ListReviewRows(context.Background(), domain.Session{},
		dto.ListReviewParams{BankAccountID: "7", UnclassifiedOnly: "false", FlattenSplits: "1"})

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "Classified", resp.Results[0].Status)
	assert.Nil(t, resp.Results[0].Children, "children are only attached with include_children")
	for i, id := range []string{"a", "b"} {
		row := resp.Results[i+1]
		assert.True(t, row.IsSplitChild)
		assert.Equal(t, "Split Child", row.Status)
		assert.Equal(t, int64(3), row.ID)
		require.NotNil(t, row.Child)
		assert.Equal(t, id, row.Child.ClassificationID)
	}
	assert.Equal(t, 2, resp.Count, "count stays the number of bank transactions")
}

func TestLookupService_ScopesByCompany(t *testing.T) {
	repo := new(MockLookupRepository)
	svc := services.NewLookupService(repo)
	session := domain.Session{Token: "t", Role: domain.RolePropertyManager, CompanyID: "acme"}

	repo.On("ListTransactionTypes", mock.Anything, domain.LookupFilter{CompanyID: "acme", ActiveOnly: true}).
		Return([]domain.TransactionType{{ID: 1, Name: "Rent", Direction: domain.Credit, Status: domain.StatusActive}}, nil).Once()
	repo.On("ListBankAccounts", mock.Anything, domain.LookupFilter{}).
		Return([]domain.BankAccount{{ID: 7, BankName: "HDFC"}}, nil).Once()

	types, err := svc.ListTransactionTypes(context.Background(), session, true)
	require.NoError(t, err)
	assert.Len(t, types, 1)

	accounts, err := svc.ListBankAccounts(context.Background(), domain.Session{Token: "t", Role: domain.RoleSuperUser, CompanyID: "acme"})
	require.NoError(t, err)
	assert.Equal(t, "HDFC", accounts[0].BankName)
	repo.AssertExpectations(t)
}
