// Package cli implements the txclassify command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SscSPs/tx_classify_app/internal/client"
	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/review"
)

const envPrefix = "TXC"

// app carries what every subcommand needs once the root flags are resolved.
type app struct {
	v      *viper.Viper
	log    *logrus.Logger
	out    io.Writer
	client *client.Client
	ws     *review.Workspace
	lister *review.Lister
	format outputFormat
}

// NewRootCommand builds the txclassify command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New(), out: out}
	a.log.SetOutput(io.Discard)

	root := &cobra.Command{
		Use:           "txclassify",
		Short:         "Review and classify imported bank transactions",
		Long:          `txclassify lists bank transactions waiting for review and classifies, splits, reclassifies or re-splits them through the classification API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log.SetOutput(cmd.ErrOrStderr())
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "http://localhost:8080/api/v1", "Base URL of the classification API")
	flags.String("token", "", "Bearer token of the session")
	flags.String("role", "", "Role of the session (informational)")
	flags.String("company", "", "Company of the session (informational)")
	flags.StringP("output", "o", string(formatTable), "Output format: table, json or yaml")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		newListCommand(a),
		newClassifyCommand(a),
		newSplitCommand(a),
		newReclassifyCommand(a),
		newResplitCommand(a),
		newLookupsCommand(a),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, out, errOut io.Writer, args []string) error {
	root := NewRootCommand(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) setup() error {
	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		a.log.Warnf("Invalid log level '%s', using 'warn'", a.v.GetString("log-level"))
		level = logrus.WarnLevel
	}
	a.log.SetLevel(level)

	format, err := parseFormat(a.v.GetString("output"))
	if err != nil {
		return err
	}
	a.format = format

	session := domain.Session{
		Token:     a.v.GetString("token"),
		Role:      domain.Role(strings.ToUpper(a.v.GetString("role"))),
		CompanyID: a.v.GetString("company"),
	}
	c, err := client.New(a.v.GetString("api-url"), session, client.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.client = c
	a.ws = review.NewWorkspace(c, a.log)
	a.lister = review.NewLister(c, a.log)
	a.log.WithFields(logrus.Fields{"api_url": a.v.GetString("api-url"), "role": session.Role}).Debug("client ready")
	return nil
}

// usageError marks a problem with the command line itself.
func usageError(format string, args ...any) error {
	return fmt.Errorf("invalid arguments: "+format, args...)
}
