package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var lookupKinds = []string{"types", "centres", "entities", "assets", "contracts", "banks"}

func newLookupsCommand(a *app) *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:       "lookups <" + strings.Join(lookupKinds, "|") + ">",
		Short:     "List the reference data rows can point at",
		Args:      cobra.ExactArgs(1),
		ValidArgs: lookupKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			yesNo := func(b bool) string {
				if b {
					return "yes"
				}
				return "no"
			}
			id := func(n int64) string { return strconv.FormatInt(n, 10) }

			switch args[0] {
			case "types":
				items, err := a.client.TransactionTypes(ctx, activeOnly)
				if err != nil {
					return err
				}
				rows := make([][]string, len(items))
				for i, t := range items {
					rows[i] = []string{id(t.ID), t.Name, string(t.Direction), t.Status}
				}
				return a.render(items, []string{"ID", "NAME", "DIRECTION", "STATUS"}, rows)
			case "centres":
				items, err := a.client.CostCentres(ctx, activeOnly)
				if err != nil {
					return err
				}
				rows := make([][]string, len(items))
				for i, c := range items {
					rows[i] = []string{id(c.ID), c.Name, string(c.TransactionDirection), yesNo(c.IsActive)}
				}
				return a.render(items, []string{"ID", "NAME", "DIRECTION", "ACTIVE"}, rows)
			case "entities":
				items, err := a.client.Entities(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, len(items))
				for i, e := range items {
					rows[i] = []string{id(e.ID), e.Name, string(e.EntityType), e.Status}
				}
				return a.render(items, []string{"ID", "NAME", "TYPE", "STATUS"}, rows)
			case "assets":
				items, err := a.client.Assets(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, len(items))
				for i, as := range items {
					rows[i] = []string{id(as.ID), as.Name, as.TagID, yesNo(as.IsActive)}
				}
				return a.render(items, []string{"ID", "NAME", "TAG", "ACTIVE"}, rows)
			case "contracts":
				items, err := a.client.Contracts(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, len(items))
				for i, c := range items {
					rows[i] = []string{id(c.ID), c.VendorName, c.CostCentreName, yesNo(c.IsActive)}
				}
				return a.render(items, []string{"ID", "VENDOR", "COST CENTRE", "ACTIVE"}, rows)
			case "banks":
				items, err := a.client.BankAccounts(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, len(items))
				for i, b := range items {
					rows[i] = []string{id(b.ID), b.BankName, b.AccountName, b.AccountNumber, yesNo(b.IsActive)}
				}
				return a.render(items, []string{"ID", "BANK", "ACCOUNT", "NUMBER", "ACTIVE"}, rows)
			}

			names := make([]named, len(lookupKinds))
			for i, k := range lookupKinds {
				names[i] = named{name: k}
			}
			if s, ok := suggest(args[0], names); ok {
				return usageError("unknown lookup %q, did you mean %q?", args[0], s)
			}
			return usageError("unknown lookup %q, use one of %s", args[0], strings.Join(lookupKinds, ", "))
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active transaction types and cost centres")
	return cmd
}
