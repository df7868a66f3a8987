package review

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/tx_classify_app/internal/client"
	"github.com/SscSPs/tx_classify_app/internal/core/classify"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
)

// ErrSuperseded is returned by Open when a later Open cancelled its lookup load. Callers
// should ignore it.
var ErrSuperseded = errors.New("review: dialog superseded by a newer one")

const (
	remarksDirect     = "Direct classification"
	remarksReclassify = "Re-classify split child"
	remarksResplit    = "Re-split"
)

// Options are the lookup choices a dialog offers, already filtered for its target.
type Options struct {
	TransactionTypes []domain.TransactionType
	CostCentres      []domain.CostCentre
	Entities         []domain.Entity
	Assets           []domain.Asset
	Contracts        []domain.Contract
}

// Workspace opens classification dialogs. Only the latest Open loads lookups; opening again
// cancels the previous load.
type Workspace struct {
	backend Backend
	log     logrus.FieldLogger

	mu         sync.Mutex
	seq        uint64
	cancelLoad context.CancelFunc
}

func NewWorkspace(backend Backend, log logrus.FieldLogger) *Workspace {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Workspace{backend: backend, log: log}
}

// Open starts a dialog applying op to target. It refuses to load anything for a session
// without a token.
func (w *Workspace) Open(ctx context.Context, target domain.ReviewTarget, op classify.Operation) (*Dialog, error) {
	if !w.backend.Session().LoggedIn() {
		return nil, client.ErrNotLoggedIn
	}
	if !classify.Allows(target, op) {
		return nil, classify.ErrOperationNotAllowed
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	if w.cancelLoad != nil {
		w.cancelLoad()
	}
	w.seq++
	seq := w.seq
	w.cancelLoad = cancel
	w.mu.Unlock()

	opts, err := w.loadOptions(ctx, classify.DirectionOf(target))

	w.mu.Lock()
	superseded := seq != w.seq
	if !superseded {
		w.cancelLoad = nil
	}
	w.mu.Unlock()
	cancel()

	if superseded {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	return &Dialog{
		backend: w.backend,
		log:     w.log.WithField("operation", string(op)),
		target:  target,
		op:      op,
		options: opts,
		rows:    seedDraft(target, op),
	}, nil
}

func (w *Workspace) loadOptions(ctx context.Context, dir domain.Direction) (Options, error) {
	var (
		types     []domain.TransactionType
		centres   []domain.CostCentre
		entities  []domain.Entity
		assets    []domain.Asset
		contracts []domain.Contract
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		types, err = w.backend.TransactionTypes(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		centres, err = w.backend.CostCentres(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		entities, err = w.backend.Entities(gctx)
		return err
	})
	g.Go(func() (err error) {
		assets, err = w.backend.Assets(gctx)
		return err
	})
	g.Go(func() (err error) {
		contracts, err = w.backend.Contracts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Options{}, err
	}

	return Options{
		TransactionTypes: classify.OfferableTransactionTypes(types, dir),
		CostCentres:      classify.ActiveCostCentres(centres),
		Entities:         classify.ActiveEntities(entities),
		Assets:           classify.ActiveAssets(assets),
		Contracts:        classify.ActiveContracts(contracts),
	}, nil
}

// seedDraft builds the rows a new dialog starts with.
func seedDraft(target domain.ReviewTarget, op classify.Operation) []classify.DraftRow {
	date := classify.DefaultValueDate(target)
	switch op {
	case classify.OpClassify:
		return []classify.DraftRow{{Amount: classify.ExpectedAmount(target), ValueDate: date, Remarks: remarksDirect}}
	case classify.OpReclassify:
		return []classify.DraftRow{{Amount: classify.ExpectedAmount(target), ValueDate: date, Remarks: remarksReclassify}}
	case classify.OpResplit:
		return []classify.DraftRow{{ValueDate: date, Remarks: remarksResplit}}
	default:
		return []classify.DraftRow{{ValueDate: date}}
	}
}
