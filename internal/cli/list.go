package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/SscSPs/tx_classify_app/internal/utils"
	"github.com/SscSPs/tx_classify_app/internal/utils/pagination"
)

type listFlags struct {
	bank, direction, from, to, min, max string
	all, children, flatten              bool
	limit, offset                       int
}

func (f listFlags) params() dto.ListReviewParams {
	p := dto.ListReviewParams{
		BankAccountID: f.bank,
		Type:          f.direction,
		StartDate:     f.from,
		EndDate:       f.to,
		MinAmount:     f.min,
		MaxAmount:     f.max,
		Limit:         strconv.Itoa(f.limit),
		Offset:        strconv.Itoa(f.offset),
	}
	if f.all {
		p.UnclassifiedOnly = "0"
	}
	if f.children {
		p.IncludeChildren = "1"
	}
	if f.flatten {
		p.FlattenSplits = "1"
	}
	return p
}

func newListCommand(a *app) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bank transactions awaiting review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.bank == "" {
				return usageError("--bank is required")
			}
			if _, err := a.lister.Refresh(cmd.Context(), f.params()); err != nil {
				return err
			}
			rows := a.lister.Rows()
			resp := dto.ListReviewResponse{Results: rows, Count: a.lister.Count(), Limit: f.limit, Offset: f.offset}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				child := ""
				if r.Child != nil {
					child = r.Child.ClassificationID
				} else if len(r.Children) == 1 {
					child = r.Children[0].ClassificationID
				}
				table = append(table, []string{
					strconv.FormatInt(r.ID, 10),
					r.TransactionDate.String(),
					r.Narration,
					displayAmount(r),
					r.Status,
					child,
				})
			}
			if err := a.render(resp, []string{"ID", "DATE", "NARRATION", "AMOUNT", "STATUS", "CLASSIFICATION"}, table); err != nil {
				return err
			}
			if a.format != formatTable {
				return nil
			}
			w := pagination.Window{Offset: f.offset, Limit: pagination.ClampLimit(f.limit), Count: resp.Count}
			footer := fmt.Sprintf("Showing %d-%d of %d transactions", w.From(), w.To(), w.Count)
			var hints []string
			if w.HasPrev() {
				hints = append(hints, fmt.Sprintf("previous page: --offset %d", w.PrevOffset()))
			}
			if w.HasNext() {
				hints = append(hints, fmt.Sprintf("next page: --offset %d", w.NextOffset()))
			}
			if len(hints) > 0 {
				footer += " (" + strings.Join(hints, ", ") + ")"
			}
			return a.message(nil, footer)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.bank, "bank", "", "Bank account id")
	fl.StringVar(&f.direction, "type", "both", "credit, debit or both")
	fl.StringVar(&f.from, "from", "", "Earliest transaction date (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "Latest transaction date (YYYY-MM-DD)")
	fl.StringVar(&f.min, "min", "", "Minimum absolute amount")
	fl.StringVar(&f.max, "max", "", "Maximum absolute amount")
	fl.BoolVar(&f.all, "all", false, "Include classified transactions")
	fl.BoolVar(&f.children, "children", false, "Show the active classifications of each transaction")
	fl.BoolVar(&f.flatten, "flatten", false, "List one row per classification of split transactions")
	fl.IntVar(&f.limit, "limit", 200, "Page size")
	fl.IntVar(&f.offset, "offset", 0, "Rows to skip")
	return cmd
}

// displayAmount is the child's amount for a split child row, the signed amount otherwise.
func displayAmount(r dto.ReviewRow) string {
	if r.IsSplitChild && r.Child != nil {
		return utils.FormatGrouped(r.Child.Amount.Decimal)
	}
	return utils.FormatGrouped(r.SignedAmount.Decimal)
}
