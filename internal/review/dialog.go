package review

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/SscSPs/tx_classify_app/internal/core/classify"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

var (
	// ErrSubmitInFlight is returned when a dialog is submitted or closed while a submission
	// is outstanding.
	ErrSubmitInFlight = errors.New("review: a submission is already in flight")
	// ErrDialogClosed is returned by any edit after the dialog was closed or submitted.
	ErrDialogClosed = errors.New("review: dialog is closed")
	// ErrSingleRow is returned when adding or removing rows of a single-row draft.
	ErrSingleRow = errors.New("review: this operation takes exactly one row")
	// ErrLastRow is returned when removing the only row of a draft.
	ErrLastRow = errors.New("review: a draft keeps at least one row")
)

// Result is what the server created for a submitted draft.
type Result struct {
	Operation        classify.Operation
	ClassificationID string // classify and reclassify
	ChildrenCount    int    // split and resplit
}

// Dialog owns the draft of one classification change. The draft is discarded on close and
// after a successful submit; a rejected submit keeps it for correction.
type Dialog struct {
	backend Backend
	log     logrus.FieldLogger
	target  domain.ReviewTarget
	op      classify.Operation
	options Options

	mu         sync.Mutex
	rows       []classify.DraftRow
	submitting bool
	closed     bool
}

func (d *Dialog) Target() domain.ReviewTarget    { return d.target }
func (d *Dialog) Operation() classify.Operation { return d.op }
func (d *Dialog) Options() Options              { return d.options }

// Rows returns a copy of the draft rows.
func (d *Dialog) Rows() []classify.DraftRow {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]classify.DraftRow(nil), d.rows...)
}

// AddRow appends a blank row dated like the target and returns its index.
func (d *Dialog) AddRow() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editable(); err != nil {
		return 0, err
	}
	if d.op.Mode() == classify.SingleRow {
		return 0, ErrSingleRow
	}
	d.rows = append(d.rows, classify.DraftRow{ValueDate: classify.DefaultValueDate(d.target)})
	return len(d.rows) - 1, nil
}

// SetRow replaces row i. A single-row draft keeps its fixed amount.
func (d *Dialog) SetRow(i int, row classify.DraftRow) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(d.rows) {
		return fmt.Errorf("review: row %d out of range", i)
	}
	if d.op.Mode() == classify.SingleRow {
		row.Amount = classify.ExpectedAmount(d.target)
	}
	d.rows[i] = row
	return nil
}

// RemoveRow deletes row i. The last remaining row cannot be removed.
func (d *Dialog) RemoveRow(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.editable(); err != nil {
		return err
	}
	if d.op.Mode() == classify.SingleRow {
		return ErrSingleRow
	}
	if i < 0 || i >= len(d.rows) {
		return fmt.Errorf("review: row %d out of range", i)
	}
	if len(d.rows) == 1 {
		return ErrLastRow
	}
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	return nil
}

// Total is the rounded sum of the draft rows.
func (d *Dialog) Total() decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return classify.DraftTotal(d.rows)
}

// Expected is the amount the draft must add up to.
func (d *Dialog) Expected() decimal.Decimal {
	return classify.ExpectedAmount(d.target)
}

// Balanced reports whether the draft total equals the expected amount exactly.
func (d *Dialog) Balanced() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return classify.ValidateTotal(d.rows, classify.ExpectedAmount(d.target)) == nil
}

// Validity reports the per-field validity of every row.
func (d *Dialog) Validity() []classify.RowValidity {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]classify.RowValidity, len(d.rows))
	for i, r := range d.rows {
		out[i] = classify.ValidateRow(r, d.op.Mode())
	}
	return out
}

// Submit validates the draft and sends it once. A draft that fails validation is never
// sent. Once the request is on its way it runs to completion even if ctx is cancelled.
func (d *Dialog) Submit(ctx context.Context) (Result, error) {
	d.mu.Lock()
	if err := d.editable(); err != nil {
		d.mu.Unlock()
		return Result{}, err
	}
	req, err := classify.Prepare(d.target, d.op, d.rows)
	if err != nil {
		d.mu.Unlock()
		return Result{}, err
	}
	d.submitting = true
	d.mu.Unlock()

	res, err := d.send(context.WithoutCancel(ctx), req)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
	if err != nil {
		d.log.WithError(err).Warn("submission rejected, draft kept")
		return Result{}, err
	}
	d.rows = nil
	d.closed = true
	return res, nil
}

func (d *Dialog) send(ctx context.Context, req classify.Request) (Result, error) {
	res := Result{Operation: req.Operation}
	switch req.Operation {
	case classify.OpClassify:
		created, err := d.backend.Classify(ctx, *req.Classify)
		if err != nil {
			return Result{}, err
		}
		res.ClassificationID = created.ClassificationID
	case classify.OpSplit:
		created, err := d.backend.Split(ctx, *req.Split)
		if err != nil {
			return Result{}, err
		}
		res.ChildrenCount = created.ChildrenCount
	case classify.OpReclassify:
		created, err := d.backend.Reclassify(ctx, *req.Reclassify)
		if err != nil {
			return Result{}, err
		}
		res.ClassificationID = created.ClassificationID
	case classify.OpResplit:
		created, err := d.backend.Resplit(ctx, *req.Resplit)
		if err != nil {
			return Result{}, err
		}
		res.ChildrenCount = created.ChildrenCount
	default:
		return Result{}, classify.ErrOperationNotAllowed
	}
	return res, nil
}

// Close discards the draft. It fails while a submission is outstanding.
func (d *Dialog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return ErrSubmitInFlight
	}
	d.rows = nil
	d.closed = true
	return nil
}

// Closed reports whether the dialog was closed or successfully submitted.
func (d *Dialog) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// editable must be called with d.mu held.
func (d *Dialog) editable() error {
	if d.submitting {
		return ErrSubmitInFlight
	}
	if d.closed {
		return ErrDialogClosed
	}
	return nil
}
