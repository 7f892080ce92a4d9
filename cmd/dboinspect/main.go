// Command dboinspect parses a single DBO export locally and prints what the
// import would store, without touching the database.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/guttosm/dbostatement/internal/dbo"
	"github.com/guttosm/dbostatement/internal/domain/models"
	"github.com/guttosm/dbostatement/internal/logger"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// parseOptions are the flags of the parse subcommand.
type parseOptions struct {
	legacy  bool
	limit   int
	noColor bool
}

func (o *parseOptions) bind(fs *pflag.FlagSet) {
	fs.BoolVar(&o.legacy, "legacy", false, "Use the legacy extraction (operation date, amount, comment only)")
	fs.IntVarP(&o.limit, "limit", "n", 5, "Number of records to print (0 prints none, -1 prints all)")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored record output")
}

// recordView is the printable form of a record: dates and amounts as text.
type recordView struct {
	OperationDate   string
	Coverage        string
	Debit           string
	Credit          string
	DocumentNumber  string
	DocumentDate    string
	Counterparty    string
	CounterpartyTax string
	PaymentPurpose  string
}

func viewOf(r models.Record) recordView {
	v := recordView{
		OperationDate:   r.OperationDate.String(),
		Coverage:        r.Coverage.StringFixed(2),
		DocumentNumber:  r.DocumentNumber,
		Counterparty:    r.CounterpartyName,
		CounterpartyTax: r.CounterpartyTaxID,
		PaymentPurpose:  r.PaymentPurpose,
	}
	if r.Debit.Valid {
		v.Debit = r.Debit.Decimal.StringFixed(2)
	}
	if r.Credit.Valid {
		v.Credit = r.Credit.Decimal.StringFixed(2)
	}
	if !r.DocumentDate.IsZero() {
		v.DocumentDate = r.DocumentDate.String()
	}
	return v
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "dboinspect",
		Short:         "Inspect DBO bank exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(out)
	root.AddCommand(newParseCmd(out))
	return root
}

func newParseCmd(out io.Writer) *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "parse [flags] <export.csv>",
		Short: "Parse an export and print its summary and first records",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runParse(out, args[0], opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func runParse(out io.Writer, path string, opts parseOptions) error {
	log := logger.Component("inspect")

	read := dbo.ReadStatement
	if opts.legacy {
		read = dbo.ReadIncomes
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	st, err := read(f)
	if err != nil {
		return err
	}
	log.Debug().Str("file", path).Int("records", st.Len()).Bool("legacy", opts.legacy).Msg("export parsed")

	fmt.Fprintf(out, "file:     %s\n", path)
	fmt.Fprintf(out, "records:  %d\n", st.Len())
	if first, ok := st.First(); ok {
		last, _ := st.Last()
		fmt.Fprintf(out, "period:   %s .. %s\n", first.OperationDate, last.OperationDate)
	}
	totals := st.Totals()
	fmt.Fprintf(out, "debit:    %s\n", totals.Debit.StringFixed(2))
	fmt.Fprintf(out, "credit:   %s\n", totals.Credit.StringFixed(2))
	fmt.Fprintf(out, "coverage: %s\n", totals.Coverage.StringFixed(2))

	if opts.limit == 0 {
		return nil
	}

	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(!opts.noColor)

	shown := 0
	for rec := range st.All() {
		if opts.limit > 0 && shown == opts.limit {
			break
		}
		printer.Println(viewOf(rec))
		shown++
	}
	return nil
}

func main() {
	logger.Init()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
