package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/classify"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tx_classify_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tx_classify_app/internal/core/ports/services"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// Messages returned to the caller when a change is refused.
const (
	msgAmountNotPositive   = "Amount must be greater than 0."
	msgAlreadyClassified   = "This transaction is already classified or split. Only unclassified transactions can be classified."
	msgAlreadySplit        = "This transaction has already been classified/split once."
	msgNoSplitRows         = "At least one split row is required."
	msgSplitRowNotPositive = "Each split amount must be greater than 0."
	msgChildNotActive      = "Selected classification is not active."
	msgCoverageExceeded    = "Active classifications would exceed the transaction amount."
)

// classificationService lists bank transactions for review and applies classification changes.
type classificationService struct {
	BaseService
	bankTxnRepo        portsrepo.BankTransactionReader
	classificationRepo portsrepo.ClassificationRepositoryWithTx
	now                func() time.Time
}

// ClassificationServiceOption configures a classificationService.
type ClassificationServiceOption func(*classificationService)

// WithClock replaces the clock used for created_at stamps.
func WithClock(now func() time.Time) ClassificationServiceOption {
	return func(s *classificationService) {
		s.now = now
	}
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(bankTxnRepo portsrepo.BankTransactionReader, classificationRepo portsrepo.ClassificationRepositoryWithTx, opts ...ClassificationServiceOption) portssvc.ClassificationSvcFacade {
	s := &classificationService{
		bankTxnRepo:        bankTxnRepo,
		classificationRepo: classificationRepo,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ClassificationSvcFacade = (*classificationService)(nil)

// Classify creates the single active classification of an unclassified transaction.
func (s *classificationService) Classify(ctx context.Context, session domain.Session, req dto.ClassifyRequest) (*dto.ClassificationCreatedResponse, error) {
	amount := classify.Q2(req.Amount.Decimal)
	if !amount.IsPositive() {
		return nil, apperrors.NewFieldError("amount", msgAmountNotPositive)
	}

	createdAt := s.now().UTC()
	row := domain.Classification{
		ClassificationID:  uuid.NewString(),
		BankTransactionID: req.BankTransactionID,
		TransactionTypeID: req.TransactionTypeID,
		CostCentreID:      req.CostCentreID,
		EntityID:          req.EntityID,
		AssetID:           req.AssetID,
		ContractID:        req.ContractID,
		Amount:            amount,
		Remarks:           req.Remarks,
		IsActive:          true,
		AuditFields:       domain.AuditFields{CreatedAt: createdAt, CreatedBy: session.UserID},
	}

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.lockBankTransaction(ctx, tx, session, req.BankTransactionID)
		if err != nil {
			return err
		}
		active, err := s.classificationRepo.ListActiveClassificationsInTx(ctx, tx, txn.ID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperrors.NewConflictError(msgAlreadyClassified)
		}

		expected := classify.Q2(txn.AbsAmount())
		if !amount.Equal(expected) {
			return apperrors.NewValidationError(fmt.Sprintf("Amount must equal transaction amount %s.", expected.StringFixed(2)))
		}

		row.ValueDate = firstDate(req.ValueDate.TimePtr(), &txn.TransactionDate)
		if err := s.classificationRepo.InsertClassificationsInTx(ctx, tx, []domain.Classification{row}); err != nil {
			return err
		}
		return s.ensureCoverage(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction classified",
		slog.Int64("bank_transaction_id", req.BankTransactionID),
		slog.String("classification_id", row.ClassificationID))
	return &dto.ClassificationCreatedResponse{ClassificationID: row.ClassificationID, CreatedAt: createdAt}, nil
}

// Split divides an unclassified transaction into several active classifications. A
// transaction that already has an active classification is refused; use Resplit on it.
func (s *classificationService) Split(ctx context.Context, session domain.Session, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error) {
	if len(req.Rows) == 0 {
		return nil, apperrors.NewValidationError(msgNoSplitRows)
	}

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.lockBankTransaction(ctx, tx, session, req.BankTransactionID)
		if err != nil {
			return err
		}
		active, err := s.classificationRepo.ListActiveClassificationsInTx(ctx, tx, txn.ID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperrors.NewConflictError(msgAlreadySplit)
		}

		rows, total, err := s.splitRows(session, txn.ID, req.Rows, "Split part", &txn.TransactionDate)
		if err != nil {
			return err
		}
		expected := classify.Q2(txn.AbsAmount())
		if !total.Equal(expected) {
			return apperrors.NewValidationError(fmt.Sprintf("Split total %s must equal transaction amount %s.", total.StringFixed(2), expected.StringFixed(2)))
		}

		if err := s.classificationRepo.InsertClassificationsInTx(ctx, tx, rows); err != nil {
			return err
		}
		return s.ensureCoverage(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction split",
		slog.Int64("bank_transaction_id", req.BankTransactionID),
		slog.Int("children_count", len(req.Rows)))
	return &dto.ChildrenCreatedResponse{ChildrenCount: len(req.Rows)}, nil
}

// Reclassify supersedes an active classification with a new one of the same amount.
func (s *classificationService) Reclassify(ctx context.Context, session domain.Session, req dto.ReclassifyRequest) (*dto.ClassificationCreatedResponse, error) {
	createdAt := s.now().UTC()
	var newID string

	err := s.inTx(ctx, func(tx pgx.Tx) error {
		child, txn, err := s.lockChild(ctx, tx, session, req.ClassificationID)
		if err != nil {
			return err
		}

		updated, err := s.classificationRepo.DeactivateClassificationsInTx(ctx, tx, []string{child.ClassificationID})
		if err != nil {
			return err
		}
		if updated == 0 {
			return apperrors.NewConflictError(msgChildNotActive)
		}

		row := domain.Classification{
			ClassificationID:  uuid.NewString(),
			BankTransactionID: txn.ID,
			TransactionTypeID: req.TransactionTypeID,
			CostCentreID:      req.CostCentreID,
			EntityID:          req.EntityID,
			AssetID:           req.AssetID,
			ContractID:        req.ContractID,
			Amount:            classify.Q2(child.Amount),
			ValueDate:         firstDate(req.ValueDate.TimePtr(), nonZero(child.ValueDate), &txn.TransactionDate),
			Remarks:           req.Remarks,
			IsActive:          true,
			AuditFields:       domain.AuditFields{CreatedAt: createdAt, CreatedBy: session.UserID},
		}
		if err := s.classificationRepo.InsertClassificationsInTx(ctx, tx, []domain.Classification{row}); err != nil {
			return err
		}
		newID = row.ClassificationID
		return s.ensureCoverage(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Classification reclassified",
		slog.String("replaced_classification_id", req.ClassificationID),
		slog.String("classification_id", newID))
	return &dto.ClassificationCreatedResponse{ClassificationID: newID, CreatedAt: createdAt}, nil
}

// Resplit divides one active classification into several, leaving its siblings untouched.
func (s *classificationService) Resplit(ctx context.Context, session domain.Session, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error) {
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		child, txn, err := s.lockChild(ctx, tx, session, req.ClassificationID)
		if err != nil {
			return err
		}
		if len(req.Rows) == 0 {
			return apperrors.NewValidationError(msgNoSplitRows)
		}

		rows, total, err := s.splitRows(session, txn.ID, req.Rows, "Re-split part", nonZero(child.ValueDate), &txn.TransactionDate)
		if err != nil {
			return err
		}
		expected := classify.Q2(child.Amount)
		if !total.Equal(expected) {
			return apperrors.NewValidationError(fmt.Sprintf("Split total %s must equal selected child's amount %s.", total.StringFixed(2), expected.StringFixed(2)))
		}

		updated, err := s.classificationRepo.DeactivateClassificationsInTx(ctx, tx, []string{child.ClassificationID})
		if err != nil {
			return err
		}
		if updated == 0 {
			return apperrors.NewConflictError(msgChildNotActive)
		}
		if err := s.classificationRepo.InsertClassificationsInTx(ctx, tx, rows); err != nil {
			return err
		}
		return s.ensureCoverage(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Classification re-split",
		slog.String("replaced_classification_id", req.ClassificationID),
		slog.Int("children_count", len(req.Rows)))
	return &dto.ChildrenCreatedResponse{ChildrenCount: len(req.Rows)}, nil
}

// inTx runs fn inside one database transaction, committing only when fn succeeds.
func (s *classificationService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.classificationRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer s.classificationRepo.Rollback(ctx, tx) // ignored once committed

	if err := fn(tx); err != nil {
		return err
	}
	if err := s.classificationRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction")
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func (s *classificationService) lockBankTransaction(ctx context.Context, tx pgx.Tx, session domain.Session, id int64) (*domain.BankTransaction, error) {
	txn, err := s.bankTxnRepo.FindBankTransactionForUpdate(ctx, tx, id, s.CompanyScope(session))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("bank_transaction_id", invalidPK(id))
		}
		return nil, err
	}
	return txn, nil
}

// lockChild locks the parent transaction before the classification so concurrent changes
// to one transaction are serialised in the same order as classify and split.
func (s *classificationService) lockChild(ctx context.Context, tx pgx.Tx, session domain.Session, classificationID string) (*domain.Classification, *domain.BankTransaction, error) {
	notFound := apperrors.NewFieldError("classification_id", invalidPK(classificationID))

	found, err := s.classificationRepo.FindClassificationByID(ctx, classificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}

	txn, err := s.bankTxnRepo.FindBankTransactionForUpdate(ctx, tx, found.BankTransactionID, s.CompanyScope(session))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}

	child, err := s.classificationRepo.FindClassificationForUpdate(ctx, tx, classificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	if !child.IsActive {
		return nil, nil, notFound
	}
	return child, txn, nil
}

// splitRows turns request rows into new classifications and returns their rounded total.
func (s *classificationService) splitRows(session domain.Session, bankTxnID int64, in []dto.SplitRow, remarksPrefix string, dateFallbacks ...*time.Time) ([]domain.Classification, decimal.Decimal, error) {
	createdAt := s.now().UTC()
	total := decimal.Zero
	rows := make([]domain.Classification, 0, len(in))
	for i, r := range in {
		amount := classify.Q2(r.Amount.Decimal)
		if !amount.IsPositive() {
			return nil, decimal.Zero, apperrors.NewValidationError(msgSplitRowNotPositive)
		}
		total = total.Add(amount)

		remarks := r.Remarks
		if remarks == "" {
			remarks = classify.DefaultRemarks(remarksPrefix, i, len(in))
		}
		dates := append([]*time.Time{r.ValueDate.TimePtr()}, dateFallbacks...)
		rows = append(rows, domain.Classification{
			ClassificationID:  uuid.NewString(),
			BankTransactionID: bankTxnID,
			TransactionTypeID: r.TransactionTypeID,
			CostCentreID:      r.CostCentreID,
			EntityID:          r.EntityID,
			AssetID:           r.AssetID,
			ContractID:        r.ContractID,
			Amount:            amount,
			ValueDate:         firstDate(dates...),
			Remarks:           remarks,
			IsActive:          true,
			AuditFields:       domain.AuditFields{CreatedAt: createdAt, CreatedBy: session.UserID},
		})
	}
	return rows, classify.Q2(total), nil
}

// ensureCoverage re-reads the active rows and refuses a write that covers more than the
// transaction amount.
func (s *classificationService) ensureCoverage(ctx context.Context, tx pgx.Tx, txn *domain.BankTransaction) error {
	active, err := s.classificationRepo.ListActiveClassificationsInTx(ctx, tx, txn.ID)
	if err != nil {
		return err
	}
	sum := decimal.Zero
	for _, c := range active {
		sum = sum.Add(c.Amount)
	}
	if classify.Q2(sum).GreaterThan(classify.Q2(txn.AbsAmount())) {
		s.GetLogger(ctx).Warn("Refusing write that exceeds transaction amount",
			slog.Int64("bank_transaction_id", txn.ID),
			slog.String("active_total", sum.StringFixed(2)),
			slog.String("transaction_amount", txn.AbsAmount().StringFixed(2)))
		return apperrors.NewConflictError(msgCoverageExceeded)
	}
	return nil
}

func invalidPK(pk any) string {
	return fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", pk)
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func firstDate(candidates ...*time.Time) time.Time {
	for _, c := range candidates {
		if c != nil && !c.IsZero() {
			return *c
		}
	}
	return time.Time{}
}
