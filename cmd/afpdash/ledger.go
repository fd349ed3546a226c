package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/cli"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/common"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/ledger"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/normalize"
	"github.com/spf13/cobra"
)

func ledgerCmd() *cobra.Command {
	var (
		from       string
		to         string
		campaign   string
		typ        string
		cumulative bool
		events     bool
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print the payment ledger",
		Long: `Build the payment ledger from the loaded records and print the daily
recovery rollup. Use --events for the individual payments instead, and
--cumulative for running totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			records, _, err := loadRecords(ctx)
			if err != nil {
				return err
			}

			opts := ledger.FilterOptions{Campaign: campaign}
			switch typ {
			case "":
			case string(model.PaymentPlanillas):
				opts.Type = model.PaymentPlanillas
			case string(model.PaymentGastos):
				opts.Type = model.PaymentGastos
			default:
				return fmt.Errorf("unknown payment type %q (want PLANILLAS or GASTOS)", typ)
			}
			if from != "" {
				if opts.From = normalize.ParseDate(from); opts.From.IsZero() {
					return fmt.Errorf("invalid from date %q", from)
				}
			}
			if to != "" {
				if opts.To = normalize.ParseDate(to); opts.To.IsZero() {
					return fmt.Errorf("invalid to date %q", to)
				}
			}
			if !opts.From.IsZero() && !opts.To.IsZero() && opts.From.After(opts.To) {
				return fmt.Errorf("%w: %s is after %s", common.ErrInvalidDateRange, from, to)
			}

			filtered := ledger.Filter(ledger.Build(records), opts)

			fmt.Println(cli.FormatTitle("Libro de pagos"))
			if len(filtered) == 0 {
				fmt.Println(cli.FormatInfo("No payments match the current filters."))
				return nil
			}

			printLedgerMetrics(ledger.Summarize(filtered))
			if events {
				printLedgerEvents(filtered)
				return nil
			}

			daily := ledger.RollupByDay(filtered)
			if cumulative {
				daily = ledger.Cumulative(daily)
			}
			printDailySeries(daily, cumulative)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "ignore payments before this date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&to, "to", "", "ignore payments after this date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&campaign, "campaign", "", "only include payments from this campaign")
	cmd.Flags().StringVar(&typ, "type", "", "only include one payment type (PLANILLAS, GASTOS)")
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "print running totals instead of daily amounts")
	cmd.Flags().BoolVar(&events, "events", false, "print individual payments instead of the daily rollup")

	return cmd
}

func printLedgerMetrics(m ledger.Metrics) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Pagos:\t%d\n", m.Events)
	fmt.Fprintf(w, "Planillas:\t%s\t(%d pagos)\n", cli.FormatSoles(m.PlanillasTotal), m.PlanillasCount)
	fmt.Fprintf(w, "Gastos:\t%s\t(%d pagos)\n", cli.FormatSoles(m.GastosTotal), m.GastosCount)
	_ = w.Flush()
	fmt.Println()
}

func printLedgerEvents(events []model.PaymentEvent) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := func(s string) string { return cli.TableHeaderStyle.Render(s) }
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		header("FECHA"), header("TIPO"), header("CAMPAÑA"),
		header("RAZÓN SOCIAL"), header("MONTO"))
	for _, e := range events {
		date := "sin fecha"
		if !e.Date.IsZero() {
			date = e.Date.Format("02/01/2006")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			date, e.Type, e.Campaign, e.CompanyName, cli.FormatSoles(e.Amount.Decimal()))
	}
	_ = w.Flush()
}

func printDailySeries(daily []ledger.DailyPoint, cumulative bool) {
	label := "DÍA"
	amount := "MONTO"
	if cumulative {
		amount = "ACUMULADO"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := func(s string) string { return cli.TableHeaderStyle.Render(s) }
	fmt.Fprintf(w, "%s\t%s\n", header(label), header(amount))
	for _, p := range daily {
		fmt.Fprintf(w, "%s\t%s\n", p.Day.Format("02/01/2006"), cli.FormatSoles(p.Amount))
	}
	_ = w.Flush()
}
