package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SscSPs/tx_classify_app/internal/core/classify"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/SscSPs/tx_classify_app/internal/review"
	"github.com/SscSPs/tx_classify_app/internal/utils/pagination"
)

const searchPageSize = 500

type targetFlags struct {
	bank  string
	txn   int64
	child string
}

func (f *targetFlags) register(cmd *cobra.Command, withChild bool) {
	cmd.Flags().StringVar(&f.bank, "bank", "", "Bank account id of the transaction")
	cmd.Flags().Int64Var(&f.txn, "txn", 0, "Bank transaction id")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("txn")
	if withChild {
		cmd.Flags().StringVar(&f.child, "classification", "", "Classification id, required when the transaction is split")
	}
}

func registerSingleRow(cmd *cobra.Command, spec *rowSpec) {
	fl := cmd.Flags()
	fl.StringVar(&spec.Type, "type", "", "Transaction type id or name")
	fl.StringVar(&spec.Centre, "centre", "", "Cost centre id or name")
	fl.StringVar(&spec.Entity, "entity", "", "Entity id or name")
	fl.StringVar(&spec.Asset, "asset", "", "Asset id or name")
	fl.StringVar(&spec.Contract, "contract", "", "Contract id or vendor name")
	fl.StringVar(&spec.Date, "date", "", "Value date (YYYY-MM-DD), defaults to the transaction date")
	fl.StringVar(&spec.Remarks, "remarks", "", "Remarks")
}

const rowHelp = `Split row as "type=..,centre=..,entity=..,amount=..[,asset=..][,contract=..][,date=YYYY-MM-DD][,remarks=..]"; repeat for each row`

func parseRowSpecs(raw []string) ([]rowSpec, error) {
	if len(raw) == 0 {
		return nil, usageError("at least one --row is required")
	}
	specs := make([]rowSpec, len(raw))
	for i, r := range raw {
		spec, err := parseRowSpec(r)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}

func newClassifyCommand(a *app) *cobra.Command {
	var (
		t    targetFlags
		spec rowSpec
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a whole unclassified transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), t, classify.OpClassify, []rowSpec{spec})
		},
	}
	t.register(cmd, false)
	registerSingleRow(cmd, &spec)
	return cmd
}

func newSplitCommand(a *app) *cobra.Command {
	var (
		t    targetFlags
		rows []string
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an unclassified transaction into several classifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parseRowSpecs(rows)
			if err != nil {
				return err
			}
			return a.mutate(cmd.Context(), t, classify.OpSplit, specs)
		},
	}
	t.register(cmd, false)
	cmd.Flags().StringArrayVar(&rows, "row", nil, rowHelp)
	return cmd
}

func newReclassifyCommand(a *app) *cobra.Command {
	var (
		t    targetFlags
		spec rowSpec
	)
	cmd := &cobra.Command{
		Use:   "reclassify",
		Short: "Replace an active classification, keeping its amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd.Context(), t, classify.OpReclassify, []rowSpec{spec})
		},
	}
	t.register(cmd, true)
	registerSingleRow(cmd, &spec)
	return cmd
}

func newResplitCommand(a *app) *cobra.Command {
	var (
		t    targetFlags
		rows []string
	)
	cmd := &cobra.Command{
		Use:   "resplit",
		Short: "Split one active classification into several",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parseRowSpecs(rows)
			if err != nil {
				return err
			}
			return a.mutate(cmd.Context(), t, classify.OpResplit, specs)
		},
	}
	t.register(cmd, true)
	cmd.Flags().StringArrayVar(&rows, "row", nil, rowHelp)
	return cmd
}

// mutate opens a dialog for the target, fills it from specs and submits it.
func (a *app) mutate(ctx context.Context, t targetFlags, op classify.Operation, specs []rowSpec) error {
	target, err := a.findTarget(ctx, t, op == classify.OpReclassify || op == classify.OpResplit)
	if err != nil {
		return err
	}

	d, err := a.ws.Open(ctx, target, op)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	if err := fillDraft(d, specs); err != nil {
		return err
	}

	res, err := d.Submit(ctx)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"operation": op, "txn": t.txn}).Info("submitted")

	text := fmt.Sprintf("%s: transaction %d", op, t.txn)
	if res.ClassificationID != "" {
		text += ", classification " + res.ClassificationID
	} else {
		text += fmt.Sprintf(", %d classifications created", res.ChildrenCount)
	}
	return a.message(res, text)
}

func fillDraft(d *review.Dialog, specs []rowSpec) error {
	seeded := d.Rows()[0]
	for i, spec := range specs {
		row, err := draftRow(spec, d.Options())
		if err != nil {
			return err
		}
		if i == 0 && row.Remarks == "" {
			row.Remarks = seeded.Remarks
		}
		if i > 0 {
			if _, err := d.AddRow(); err != nil {
				return err
			}
		}
		if err := d.SetRow(i, row); err != nil {
			return err
		}
	}
	return nil
}

// findTarget pages through the listing of t.bank until it finds t.txn.
func (a *app) findTarget(ctx context.Context, t targetFlags, classified bool) (domain.ReviewTarget, error) {
	params := dto.ListReviewParams{
		BankAccountID:    t.bank,
		IncludeChildren:  "1",
		FlattenSplits:    "1",
		Limit:            strconv.Itoa(searchPageSize),
		UnclassifiedOnly: "1",
	}
	if classified {
		params.UnclassifiedOnly = "0"
	}

	var splitChildren []string
	for offset := 0; ; offset += searchPageSize {
		params.Offset = strconv.Itoa(offset)
		page, err := a.client.ListUnclassified(ctx, params)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Results {
			if r.ID != t.txn {
				continue
			}
			if !classified || t.child == "" {
				if r.IsSplitChild && r.Child != nil {
					splitChildren = append(splitChildren, r.Child.ClassificationID)
					continue
				}
				return classify.TargetFromRow(r)
			}
			if matchesChild(r, t.child) {
				return classify.TargetFromRow(r)
			}
		}
		// Count is in transactions while flattened splits return one row per child.
		w := pagination.Window{Offset: offset, Limit: searchPageSize, Count: page.Count}
		if len(page.Results) == 0 || !w.HasNext() {
			break
		}
	}

	if len(splitChildren) > 0 {
		return nil, fmt.Errorf("transaction %d is split, pass --classification with one of: %s", t.txn, strings.Join(splitChildren, ", "))
	}
	if classified && t.child != "" {
		return nil, fmt.Errorf("classification %s of transaction %d is not active", t.child, t.txn)
	}
	if !classified {
		return nil, fmt.Errorf("transaction %d is not awaiting classification in bank account %s", t.txn, t.bank)
	}
	return nil, fmt.Errorf("transaction %d not found in bank account %s", t.txn, t.bank)
}

func matchesChild(r dto.ReviewRow, id string) bool {
	if r.Child != nil {
		return r.Child.ClassificationID == id
	}
	return len(r.Children) == 1 && r.Children[0].ClassificationID == id
}
