package classify

import (
	"errors"
	"fmt"

	"github.com/SscSPs/tx_classify_app/internal/apperrors"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// Operation is a change a reviewer can apply to a target.
type Operation string

const (
	OpClassify   Operation = "classify"
	OpSplit      Operation = "split"
	OpReclassify Operation = "reclassify"
	OpResplit    Operation = "resplit"
)

// Mode reports how many rows a draft for the operation holds.
func (o Operation) Mode() Mode {
	if o == OpSplit || o == OpResplit {
		return MultiRow
	}
	return SingleRow
}

var (
	// ErrOperationNotAllowed is returned when an operation does not apply to the target's state.
	ErrOperationNotAllowed = fmt.Errorf("%w: operation not allowed for this row", apperrors.ErrConflict)
	// ErrSplitParent is returned for a split transaction row; one of its children must be picked.
	ErrSplitParent = errors.New("transaction is split, select one of its classifications")
	// ErrChildNotLoaded is returned for a classified row listed without its children.
	ErrChildNotLoaded = errors.New("classification of this transaction was not loaded, list with include_children")
)

// AllowedOperations lists what can be done to target.
func AllowedOperations(target domain.ReviewTarget) []Operation {
	switch target.(type) {
	case domain.UnclassifiedTarget:
		return []Operation{OpClassify, OpSplit}
	case domain.ClassifiedTarget, domain.SplitChildTarget:
		return []Operation{OpReclassify, OpResplit}
	}
	return nil
}

// Allows reports whether op applies to target.
func Allows(target domain.ReviewTarget, op Operation) bool {
	for _, allowed := range AllowedOperations(target) {
		if allowed == op {
			return true
		}
	}
	return false
}

// SelectedChild returns the classification a target points at, if any.
func SelectedChild(target domain.ReviewTarget) (domain.ClassificationDetail, bool) {
	switch t := target.(type) {
	case domain.ClassifiedTarget:
		return t.Child, true
	case domain.SplitChildTarget:
		return t.Child, true
	}
	return domain.ClassificationDetail{}, false
}

// TargetFromRow derives the review target a listing row stands for.
func TargetFromRow(row dto.ReviewRow) (domain.ReviewTarget, error) {
	txn := row.BankTransaction()
	switch {
	case row.IsSplitChild && row.Child != nil:
		return domain.SplitChildTarget{Txn: txn, Child: row.Child.Detail(row.ID)}, nil
	case row.ActiveCount == 0:
		return domain.UnclassifiedTarget{Txn: txn}, nil
	case row.ActiveCount == 1 && len(row.Children) == 1:
		return domain.ClassifiedTarget{Txn: txn, Child: row.Children[0].Detail(row.ID)}, nil
	case row.ActiveCount == 1:
		return nil, ErrChildNotLoaded
	default:
		return nil, ErrSplitParent
	}
}

// Request is a validated payload ready to be sent. Exactly one of the pointers is set,
// matching Operation.
type Request struct {
	Operation  Operation
	Classify   *dto.ClassifyRequest
	Split      *dto.SplitRequest
	Reclassify *dto.ReclassifyRequest
	Resplit    *dto.ResplitRequest
}

// Prepare validates rows for op on target and builds the request. Nothing is built when any
// check fails.
func Prepare(target domain.ReviewTarget, op Operation, rows []DraftRow) (Request, error) {
	if !Allows(target, op) {
		return Request{}, ErrOperationNotAllowed
	}
	mode := op.Mode()
	if len(rows) == 0 || (mode == SingleRow && len(rows) != 1) {
		return Request{}, &ValidationError{Reason: MissingField, Mode: mode, Field: FieldAmount, Row: -1}
	}
	if err := ValidateRows(rows, mode); err != nil {
		return Request{}, err
	}

	expected := ExpectedAmount(target)
	if mode == SingleRow {
		// The amount of a single row is the expected amount, whatever the draft holds.
		pinned := rows[0]
		pinned.Amount = expected
		rows = []DraftRow{pinned}
	}
	if err := ValidateTotal(rows, expected); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			vErr.Mode = mode
			vErr.Target = totalLabel(target)
		}
		return Request{}, err
	}

	txn := target.Transaction()
	defaultDate := DefaultValueDate(target)
	child, _ := SelectedChild(target)

	req := Request{Operation: op}
	switch op {
	case OpClassify:
		p := BuildClassifyPayload(txn.ID, rows[0], expected, defaultDate)
		req.Classify = &p
	case OpSplit:
		p := BuildSplitPayload(txn.ID, rows, defaultDate)
		req.Split = &p
	case OpReclassify:
		p := BuildReclassifyPayload(child.ClassificationID, rows[0], defaultDate)
		req.Reclassify = &p
	case OpResplit:
		p := BuildResplitPayload(child.ClassificationID, rows, defaultDate)
		req.Resplit = &p
	}
	return req, nil
}

func totalLabel(target domain.ReviewTarget) string {
	if _, ok := SelectedChild(target); ok {
		return "selected child's amount"
	}
	return "transaction amount"
}
