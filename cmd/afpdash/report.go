package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/cli"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/report"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/risk"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		group    string
		campaign string
		advisor  string
		chart    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the recovery report",
		Long: `Print the headline KPIs, the grouped summary table with its TOTAL row,
and the risk tier breakdown. Use --campaign or --advisor to narrow the
record set before grouping.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			records, loadedAt, err := loadRecords(ctx)
			if err != nil {
				return err
			}
			records = report.FilterRecords(records, campaign, advisor)

			fmt.Println(cli.FormatTitle("Reporte de recuperación AFP"))
			fmt.Println(cli.SubtitleStyle.Render(fmt.Sprintf("Carga del %s · %d cuentas",
				loadedAt.Format("02/01/2006 15:04"), len(records))))

			if len(records) == 0 {
				fmt.Println(cli.FormatInfo("No records match the current filters."))
				return nil
			}

			printHeadline(report.ComputeHeadline(records))

			var rows []model.SummaryRow
			switch group {
			case "campaign":
				rows = report.Summarize(records, report.ByCampaign)
			case "advisor":
				rows = report.Summarize(records, report.ByAdvisor)
			case "priority":
				rows = report.SummarizeByPriority(records)
			default:
				return fmt.Errorf("unknown group %q (want campaign, advisor or priority)", group)
			}
			printSummaryTable(group, rows)

			classifier := risk.NewClassifier()
			printRiskTables(classifier, records)

			if chart {
				printChart(report.ChartFeed(
					report.Summarize(records, report.ByAdvisorFirstName),
					report.PlanillasAmount))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "campaign", "grouping for the summary table (campaign, advisor, priority)")
	cmd.Flags().StringVar(&campaign, "campaign", "", "only include records from this campaign")
	cmd.Flags().StringVar(&advisor, "advisor", "", "only include records managed by this advisor")
	cmd.Flags().BoolVar(&chart, "chart", false, "include the per-advisor payroll recovery chart feed")

	return cmd
}

func printHeadline(h report.Headline) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Cuentas:\t%d\n", h.TotalAccounts)
	fmt.Fprintf(w, "Gestionadas:\t%d\n", h.Managed)
	fmt.Fprintf(w, "Deuda total:\t%s\n", cli.FormatSoles(h.Debt))
	fmt.Fprintf(w, "Gastos admin:\t%s\n", cli.FormatSoles(h.AdminFee))
	fmt.Fprintf(w, "Rec. planillas:\t%s\n", cli.FormatSoles(h.RecPlanillas))
	fmt.Fprintf(w, "Rec. gastos:\t%s\n", cli.FormatSoles(h.RecGastos))
	fmt.Fprintf(w, "Barrido:\t%s\n", cli.FormatPercent(h.PctSwept))
	_ = w.Flush()
	fmt.Println()
}

var groupHeaders = map[string]string{
	"campaign": "CAMPAÑA",
	"advisor":  "ASESOR",
	"priority": "PRIORIDAD",
}

func printSummaryTable(group string, rows []model.SummaryRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := func(s string) string { return cli.TableHeaderStyle.Render(s) }
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		header(groupHeaders[group]), header("CUENTAS"), header("GESTIÓN"),
		header("DEUDA"), header("REC. PLANILLAS"), header("REC. GASTOS"),
		header("% PLAN"), header("% GAST"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 12), strings.Repeat("-", 7), strings.Repeat("-", 7),
		strings.Repeat("-", 14), strings.Repeat("-", 14), strings.Repeat("-", 12),
		strings.Repeat("-", 6), strings.Repeat("-", 6))

	for _, row := range rows {
		key := row.Key
		if row.IsTotal() {
			key = cli.TotalRowStyle.Render(key)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			key, row.Accounts, cli.FormatPercent(row.PctManaged),
			cli.FormatSoles(row.Debt), cli.FormatSoles(row.RecPlanillas),
			cli.FormatSoles(row.RecGastos),
			cli.FormatPercent(row.PctPlanillas), cli.FormatPercent(row.PctGastos))
	}
	_ = w.Flush()
	fmt.Println()
}

func printRiskTables(classifier *risk.Classifier, records []model.AccountRecord) {
	fmt.Println(cli.TitleStyle.Render("Niveles de riesgo"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := func(s string) string { return cli.TableHeaderStyle.Render(s) }
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		header("NIVEL"), header("CUENTAS"), header("DEUDA"),
		header("RECUPERADO"), header("% CARTERA"))
	for _, tier := range classifier.Summarize(records) {
		name := string(tier.Tier)
		if tier.Tier == model.TierCritical {
			name = cli.ErrorStyle.Render(name)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			name, tier.Accounts, cli.FormatSoles(tier.Debt),
			cli.FormatSoles(tier.Recovered), cli.FormatPercent(tier.PctOfTotal))
	}
	_ = w.Flush()

	distribution := classifier.CampaignDistribution(records)
	if len(distribution) == 0 {
		fmt.Println(cli.FormatSuccess("No critical cases in this load."))
		return
	}

	fmt.Println()
	fmt.Println(cli.SubtitleStyle.Render(cli.CriticalIcon + " Casos críticos por campaña"))
	for _, c := range distribution {
		fmt.Printf("  %s: %d\n", c.Campaign, c.Count)
	}
}

func printChart(points []report.ChartPoint) {
	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("Rec. planillas por asesor"))
	if len(points) == 0 {
		fmt.Println(cli.FormatInfo("No payroll recoveries to chart."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%s\n", p.Label, cli.FormatSoles(p.Amount))
	}
	_ = w.Flush()
}
