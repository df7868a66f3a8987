package review

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/tx_classify_app/internal/client"
	"github.com/SscSPs/tx_classify_app/internal/core/classify"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

type fakeBackend struct {
	session domain.Session

	list       func(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error)
	split      func(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error)
	resplit    func(ctx context.Context, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error)
	types      func(ctx context.Context) ([]domain.TransactionType, error)
	lookupHits int32
	sends      int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{session: domain.Session{Token: "t", UserID: "u", Role: domain.RoleAccountant, CompanyID: "acme"}}
}

func (f *fakeBackend) Session() domain.Session { return f.session }

func (f *fakeBackend) ListUnclassified(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
	return f.list(ctx, params)
}

func (f *fakeBackend) Classify(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassificationCreatedResponse, error) {
	atomic.AddInt32(&f.sends, 1)
	return &dto.ClassificationCreatedResponse{ClassificationID: "new-id"}, nil
}

func (f *fakeBackend) Split(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error) {
	atomic.AddInt32(&f.sends, 1)
	return f.split(ctx, req)
}

func (f *fakeBackend) Reclassify(ctx context.Context, req dto.ReclassifyRequest) (*dto.ClassificationCreatedResponse, error) {
	atomic.AddInt32(&f.sends, 1)
	return &dto.ClassificationCreatedResponse{ClassificationID: "re-id"}, nil
}

func (f *fakeBackend) Resplit(ctx context.Context, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error) {
	atomic.AddInt32(&f.sends, 1)
	return f.resplit(ctx, req)
}

func (f *fakeBackend) TransactionTypes(ctx context.Context, activeOnly bool) ([]domain.TransactionType, error) {
	atomic.AddInt32(&f.lookupHits, 1)
	if f.types != nil {
		return f.types(ctx)
	}
	return []domain.TransactionType{
		{ID: 1, Name: "Rent", Direction: domain.Credit, Status: domain.StatusActive},
		{ID: 2, Name: "Supplies", Direction: domain.Debit, Status: domain.StatusActive},
		{ID: 3, Name: "Legacy", Direction: domain.Debit, Status: "Inactive"},
	}, nil
}

func (f *fakeBackend) CostCentres(ctx context.Context, activeOnly bool) ([]domain.CostCentre, error) {
	atomic.AddInt32(&f.lookupHits, 1)
	return []domain.CostCentre{{ID: 5, Name: "HQ", IsActive: true}, {ID: 6, Name: "Closed", IsActive: false}}, nil
}

func (f *fakeBackend) Entities(ctx context.Context) ([]domain.Entity, error) {
	atomic.AddInt32(&f.lookupHits, 1)
	return []domain.Entity{{ID: 7, Name: "Tenant", Status: domain.StatusActive}}, nil
}

func (f *fakeBackend) Assets(ctx context.Context) ([]domain.Asset, error) {
	atomic.AddInt32(&f.lookupHits, 1)
	return nil, nil
}

func (f *fakeBackend) Contracts(ctx context.Context) ([]domain.Contract, error) {
	atomic.AddInt32(&f.lookupHits, 1)
	return nil, nil
}

func quietLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func debitTxn(signed string) domain.BankTransaction {
	return domain.BankTransaction{
		ID:              42,
		TransactionDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		SignedAmount:    amt(signed),
	}
}

func TestLister_SupersededResponseIsSilent(t *testing.T) {
	backend := newFakeBackend()
	started := make(chan struct{})
	release := make(chan struct{})
	backend.list = func(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
		if params.Type == "debit" {
			close(started)
			<-release
			return &dto.ListReviewResponse{Results: []dto.ReviewRow{{ID: 1}}, Count: 1}, nil
		}
		return &dto.ListReviewResponse{Results: []dto.ReviewRow{{ID: 2}, {ID: 3}}, Count: 2}, nil
	}
	lister := NewLister(backend, quietLogger())

	var (
		wg         sync.WaitGroup
		oldApplied bool
		oldErr     error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		oldApplied, oldErr = lister.Refresh(context.Background(), dto.ListReviewParams{BankAccountID: "1", Type: "debit"})
	}()
	<-started

	applied, err := lister.Refresh(context.Background(), dto.ListReviewParams{BankAccountID: "1", Type: "credit"})
	require.NoError(t, err)
	assert.True(t, applied)

	close(release)
	wg.Wait()

	assert.NoError(t, oldErr)
	assert.False(t, oldApplied)
	assert.Equal(t, []dto.ReviewRow{{ID: 2}, {ID: 3}}, lister.Rows())
	assert.Equal(t, 2, lister.Count())
}

func TestLister_CancelledRequestIsSilent(t *testing.T) {
	backend := newFakeBackend()
	backend.list = func(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
		return nil, context.Canceled
	}
	lister := NewLister(backend, quietLogger())

	applied, err := lister.Refresh(context.Background(), dto.ListReviewParams{BankAccountID: "1"})
	assert.NoError(t, err)
	assert.False(t, applied)
}

func TestLister_FailureClearsRows(t *testing.T) {
	backend := newFakeBackend()
	fail := false
	backend.list = func(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
		if fail {
			return nil, &client.APIError{StatusCode: 400, Message: "bank_account_id is required"}
		}
		return &dto.ListReviewResponse{Results: []dto.ReviewRow{{ID: 9}}, Count: 1}, nil
	}
	lister := NewLister(backend, quietLogger())

	_, err := lister.Refresh(context.Background(), dto.ListReviewParams{BankAccountID: "1"})
	require.NoError(t, err)
	require.Len(t, lister.Rows(), 1)

	fail = true
	_, err = lister.Refresh(context.Background(), dto.ListReviewParams{BankAccountID: "1"})
	assert.EqualError(t, err, "bank_account_id is required")
	assert.Empty(t, lister.Rows())
	assert.Zero(t, lister.Count())
}

func TestLister_NoBankAccountClearsWithoutRequest(t *testing.T) {
	backend := newFakeBackend()
	backend.list = func(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
		t.Fatal("no request expected")
		return nil, nil
	}
	lister := NewLister(backend, quietLogger())

	applied, err := lister.Refresh(context.Background(), dto.ListReviewParams{})
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.Empty(t, lister.Rows())
}

func TestWorkspace_NotLoggedInMakesNoRequests(t *testing.T) {
	backend := newFakeBackend()
	backend.session = domain.Session{}
	ws := NewWorkspace(backend, quietLogger())

	_, err := ws.Open(context.Background(), domain.UnclassifiedTarget{Txn: debitTxn("-500.00")}, classify.OpClassify)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
	assert.Zero(t, atomic.LoadInt32(&backend.lookupHits))
}

func TestWorkspace_RejectsOperationForTarget(t *testing.T) {
	ws := NewWorkspace(newFakeBackend(), quietLogger())
	_, err := ws.Open(context.Background(), domain.UnclassifiedTarget{Txn: debitTxn("-500.00")}, classify.OpResplit)
	assert.ErrorIs(t, err, classify.ErrOperationNotAllowed)
}

func TestWorkspace_OpenFiltersAndSeeds(t *testing.T) {
	backend := newFakeBackend()
	ws := NewWorkspace(backend, quietLogger())

	d, err := ws.Open(context.Background(), domain.UnclassifiedTarget{Txn: debitTxn("-500.00")}, classify.OpClassify)
	require.NoError(t, err)

	opts := d.Options()
	require.Len(t, opts.TransactionTypes, 1)
	assert.Equal(t, "Supplies", opts.TransactionTypes[0].Name)
	require.Len(t, opts.CostCentres, 1)
	assert.Equal(t, int64(5), opts.CostCentres[0].ID)
	assert.EqualValues(t, 5, atomic.LoadInt32(&backend.lookupHits))

	rows := d.Rows()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(amt("500.00")))
	assert.Equal(t, "Direct classification", rows[0].Remarks)
	assert.Equal(t, debitTxn("-500.00").TransactionDate, rows[0].ValueDate)
}

func TestWorkspace_ReopenCancelsPreviousLoad(t *testing.T) {
	backend := newFakeBackend()
	started := make(chan struct{})
	var first int32 = 1
	backend.types = func(ctx context.Context) ([]domain.TransactionType, error) {
		if atomic.CompareAndSwapInt32(&first, 1, 0) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return nil, nil
	}
	ws := NewWorkspace(backend, quietLogger())
	target := domain.UnclassifiedTarget{Txn: debitTxn("-10.00")}

	errCh := make(chan error, 1)
	go func() {
		_, err := ws.Open(context.Background(), target, classify.OpSplit)
		errCh <- err
	}()
	<-started

	d, err := ws.Open(context.Background(), target, classify.OpSplit)
	require.NoError(t, err)
	assert.NotNil(t, d)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)
}

func TestWorkspace_LookupFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.types = func(ctx context.Context) ([]domain.TransactionType, error) {
		return nil, errors.New("lookup down")
	}
	ws := NewWorkspace(backend, quietLogger())

	_, err := ws.Open(context.Background(), domain.UnclassifiedTarget{Txn: debitTxn("-10.00")}, classify.OpSplit)
	assert.EqualError(t, err, "lookup down")
}

func openSplit(t *testing.T, backend *fakeBackend, signed string) *Dialog {
	t.Helper()
	d, err := NewWorkspace(backend, quietLogger()).Open(context.Background(), domain.UnclassifiedTarget{Txn: debitTxn(signed)}, classify.OpSplit)
	require.NoError(t, err)
	return d
}

func row(amount string) classify.DraftRow {
	return classify.DraftRow{TransactionTypeID: 2, CostCentreID: 5, EntityID: 7, Amount: amt(amount)}
}

func TestDialog_ImbalancedDraftIsNeverSent(t *testing.T) {
	backend := newFakeBackend()
	d := openSplit(t, backend, "-1000.00")

	_, err := d.AddRow()
	require.NoError(t, err)
	require.NoError(t, d.SetRow(0, row("400.00")))
	require.NoError(t, d.SetRow(1, row("600.01")))

	assert.False(t, d.Balanced())
	assert.True(t, d.Total().Equal(amt("1000.01")))

	_, err = d.Submit(context.Background())
	var vErr *classify.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, classify.ImbalancedTotal, vErr.Reason)
	assert.Zero(t, atomic.LoadInt32(&backend.sends))
	assert.Len(t, d.Rows(), 2)
}

func TestDialog_SubmitOnceAndDiscard(t *testing.T) {
	backend := newFakeBackend()
	var sent dto.SplitRequest
	backend.split = func(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error) {
		sent = req
		return &dto.ChildrenCreatedResponse{ChildrenCount: len(req.Rows)}, nil
	}
	d := openSplit(t, backend, "-1000.00")
	_, _ = d.AddRow()
	require.NoError(t, d.SetRow(0, row("400")))
	require.NoError(t, d.SetRow(1, row("600")))
	assert.True(t, d.Balanced())

	res, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.ChildrenCount)
	assert.Equal(t, int64(42), sent.BankTransactionID)
	assert.Equal(t, "Split part 1/2", sent.Rows[0].Remarks)
	assert.True(t, d.Closed())
	assert.Empty(t, d.Rows())

	_, err = d.Submit(context.Background())
	assert.ErrorIs(t, err, ErrDialogClosed)
	assert.EqualValues(t, 1, atomic.LoadInt32(&backend.sends))
}

func TestDialog_RejectedSubmitKeepsDraft(t *testing.T) {
	backend := newFakeBackend()
	backend.split = func(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error) {
		return nil, &client.APIError{StatusCode: 400, Message: "This transaction has already been classified/split once."}
	}
	d := openSplit(t, backend, "25.00")
	require.NoError(t, d.SetRow(0, row("25")))

	_, err := d.Submit(context.Background())
	assert.EqualError(t, err, "This transaction has already been classified/split once.")
	assert.False(t, d.Closed())
	assert.Len(t, d.Rows(), 1)
}

func TestDialog_SubmitInFlightBlocksSecondSubmitAndClose(t *testing.T) {
	backend := newFakeBackend()
	entered := make(chan struct{})
	release := make(chan struct{})
	backend.split = func(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error) {
		close(entered)
		<-release
		return &dto.ChildrenCreatedResponse{ChildrenCount: 1}, nil
	}
	d := openSplit(t, backend, "25.00")
	require.NoError(t, d.SetRow(0, row("25")))

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background())
		done <- err
	}()
	<-entered

	_, err := d.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.ErrorIs(t, d.Close(), ErrSubmitInFlight)
	assert.ErrorIs(t, d.SetRow(0, row("1")), ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, atomic.LoadInt32(&backend.sends))
}

func TestDialog_RowEditing(t *testing.T) {
	d := openSplit(t, newFakeBackend(), "-30.00")

	assert.ErrorIs(t, d.RemoveRow(0), ErrLastRow)
	i, err := d.AddRow()
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	require.NoError(t, d.RemoveRow(0))
	assert.Len(t, d.Rows(), 1)
	assert.Error(t, d.SetRow(3, row("1")))

	require.NoError(t, d.SetRow(0, classify.DraftRow{TransactionTypeID: 2, EntityID: 7, Amount: amt("30")}))
	validity := d.Validity()
	require.Len(t, validity, 1)
	assert.False(t, validity[0].CostCentre)
	assert.True(t, validity[0].Amount)
	assert.False(t, validity[0].Valid())

	require.NoError(t, d.Close())
	_, err = d.AddRow()
	assert.ErrorIs(t, err, ErrDialogClosed)
}

func TestDialog_SingleRowAmountIsFixed(t *testing.T) {
	backend := newFakeBackend()
	d, err := NewWorkspace(backend, quietLogger()).Open(context.Background(), domain.UnclassifiedTarget{Txn: debitTxn("-500.00")}, classify.OpClassify)
	require.NoError(t, err)

	_, err = d.AddRow()
	assert.ErrorIs(t, err, ErrSingleRow)
	require.NoError(t, d.SetRow(0, row("1.00")))
	assert.True(t, d.Rows()[0].Amount.Equal(amt("500.00")))

	res, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-id", res.ClassificationID)
}

func TestDialog_ResplitBalancesAgainstChild(t *testing.T) {
	backend := newFakeBackend()
	var sent dto.ResplitRequest
	backend.resplit = func(ctx context.Context, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error) {
		sent = req
		return &dto.ChildrenCreatedResponse{ChildrenCount: len(req.Rows)}, nil
	}
	child := domain.ClassificationDetail{Classification: domain.Classification{ClassificationID: "child-1", BankTransactionID: 42, Amount: amt("750.00")}}
	target := domain.SplitChildTarget{Txn: debitTxn("-1000.00"), Child: child}

	d, err := NewWorkspace(backend, quietLogger()).Open(context.Background(), target, classify.OpResplit)
	require.NoError(t, err)
	assert.Equal(t, "Re-split", d.Rows()[0].Remarks)
	assert.True(t, d.Expected().Equal(amt("750.00")))

	_, _ = d.AddRow()
	_, _ = d.AddRow()
	require.NoError(t, d.SetRow(0, row("250")))
	require.NoError(t, d.SetRow(1, row("250")))
	require.NoError(t, d.SetRow(2, row("500")))
	_, err = d.Submit(context.Background())
	require.Error(t, err, "1000.00 matches the transaction, not the child")

	require.NoError(t, d.SetRow(2, row("250")))
	res, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.ChildrenCount)
	assert.Equal(t, "child-1", sent.ClassificationID)
}
