package review

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// Lister keeps the rows of the latest review listing. A refresh supersedes any listing still
// in flight: the older request is cancelled and whatever it returns is dropped.
type Lister struct {
	backend Backend
	log     logrus.FieldLogger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	rows   []dto.ReviewRow
	count  int
}

func NewLister(backend Backend, log logrus.FieldLogger) *Lister {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Lister{backend: backend, log: log}
}

// Refresh lists with params. It reports whether the result was applied; a superseded or
// cancelled listing returns false and a nil error. Any other failure clears the rows.
func (l *Lister) Refresh(ctx context.Context, params dto.ListReviewParams) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	l.cancel = cancel
	if params.BankAccountID == "" {
		l.rows, l.count = nil, 0
		l.mu.Unlock()
		cancel()
		return true, nil
	}
	l.mu.Unlock()

	resp, err := l.backend.ListUnclassified(ctx, params)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		l.log.WithField("seq", seq).Debug("dropping superseded listing")
		return false, nil
	}
	l.cancel = nil
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, nil
		}
		l.rows, l.count = nil, 0
		return false, err
	}
	l.rows, l.count = resp.Results, resp.Count
	return true, nil
}

// Rows returns a copy of the current rows.
func (l *Lister) Rows() []dto.ReviewRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]dto.ReviewRow(nil), l.rows...)
}

// Count is the total number of matching transactions reported with the current rows.
func (l *Lister) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
