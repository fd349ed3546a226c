package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/export"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/ledger"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/normalize"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/report"
	"github.com/labstack/echo/v4"
)

type kpiResponse struct {
	LoadedAt      time.Time `json:"loaded_at"`
	TotalAccounts int       `json:"total_accounts"`
	Managed       int       `json:"managed"`
	TotalDebt     float64   `json:"total_debt"`
	AdminFees     float64   `json:"admin_fees"`
	RecPlanillas  float64   `json:"rec_planillas"`
	RecGastos     float64   `json:"rec_gastos"`
	PctSwept      float64   `json:"pct_swept"`
}

func (s *Server) handleKPIs(c echo.Context) error {
	h := report.ComputeHeadline(s.records)
	return c.JSON(http.StatusOK, kpiResponse{
		LoadedAt:      s.loadedAt,
		TotalAccounts: h.TotalAccounts,
		Managed:       h.Managed,
		TotalDebt:     h.Debt.InexactFloat64(),
		AdminFees:     h.AdminFee.InexactFloat64(),
		RecPlanillas:  h.RecPlanillas.InexactFloat64(),
		RecGastos:     h.RecGastos.InexactFloat64(),
		PctSwept:      h.PctSwept,
	})
}

type summaryRow struct {
	Key          string  `json:"key"`
	Accounts     int     `json:"accounts"`
	Managed      int     `json:"managed"`
	Debt         float64 `json:"debt"`
	AdminFee     float64 `json:"admin_fee"`
	RecPlanillas float64 `json:"rec_planillas"`
	RecGastos    float64 `json:"rec_gastos"`
	PctManaged   float64 `json:"pct_managed"`
	PctPlanillas float64 `json:"pct_planillas"`
	PctGastos    float64 `json:"pct_gastos"`
}

type summaryResponse struct {
	Group string       `json:"group"`
	Rows  []summaryRow `json:"rows"`
	Empty bool         `json:"empty"`
}

func (s *Server) handleSummary(c echo.Context) error {
	group := c.Param("group")
	records := report.FilterRecords(s.records, c.QueryParam("campaign"), c.QueryParam("advisor"))

	var rows []model.SummaryRow
	switch group {
	case "campaign":
		rows = report.Summarize(records, report.ByCampaign)
	case "advisor":
		rows = report.Summarize(records, report.ByAdvisor)
	case "priority":
		rows = report.SummarizeByPriority(records)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown group %q", group))
	}

	resp := summaryResponse{Group: group, Rows: make([]summaryRow, 0, len(rows)), Empty: len(rows) == 0}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, summaryRow{
			Key:          row.Key,
			Accounts:     row.Accounts,
			Managed:      row.Managed,
			Debt:         row.Debt.InexactFloat64(),
			AdminFee:     row.AdminFee.InexactFloat64(),
			RecPlanillas: row.RecPlanillas.InexactFloat64(),
			RecGastos:    row.RecGastos.InexactFloat64(),
			PctManaged:   row.PctManaged,
			PctPlanillas: row.PctPlanillas,
			PctGastos:    row.PctGastos,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type chartPoint struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type chartResponse struct {
	Group  string       `json:"group"`
	Metric string       `json:"metric"`
	Points []chartPoint `json:"points"`
	Empty  bool         `json:"empty"`
}

func (s *Server) handleChart(c echo.Context) error {
	group := c.Param("group")
	metric := c.QueryParam("metric")
	if metric == "" {
		metric = "planillas"
	}

	var key report.GroupKeyFunc
	switch group {
	case "campaign":
		key = report.ByCampaign
	case "advisor":
		key = report.ByAdvisorFirstName
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown group %q", group))
	}

	var sel report.AmountSelector
	switch metric {
	case "planillas":
		sel = report.PlanillasAmount
	case "gastos":
		sel = report.GastosAmount
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown metric %q", metric))
	}

	points := report.ChartFeed(report.Summarize(s.records, key), sel)
	resp := chartResponse{Group: group, Metric: metric, Points: make([]chartPoint, 0, len(points)), Empty: len(points) == 0}
	for _, p := range points {
		resp.Points = append(resp.Points, chartPoint{Label: p.Label, Amount: p.Amount.InexactFloat64()})
	}
	return c.JSON(http.StatusOK, resp)
}

type tierRow struct {
	Tier       model.RiskTier `json:"tier"`
	Accounts   int            `json:"accounts"`
	Debt       float64        `json:"debt"`
	Recovered  float64        `json:"recovered"`
	PctOfTotal float64        `json:"pct_of_total"`
}

func (s *Server) handleRiskSummary(c echo.Context) error {
	breakdown := s.classifier.Summarize(s.records)
	rows := make([]tierRow, 0, len(breakdown))
	for _, b := range breakdown {
		rows = append(rows, tierRow{
			Tier:       b.Tier,
			Accounts:   b.Accounts,
			Debt:       b.Debt.InexactFloat64(),
			Recovered:  b.Recovered.InexactFloat64(),
			PctOfTotal: b.PctOfTotal,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"tiers": rows, "empty": len(rows) == 0})
}

type criticalCase struct {
	Document    string  `json:"document"`
	CompanyName string  `json:"company_name"`
	TotalDebt   float64 `json:"total_debt"`
	Operator    string  `json:"operator"`
	Campaign    string  `json:"campaign"`
}

func (s *Server) handleCritical(c echo.Context) error {
	critical := s.classifier.Critical(s.records)

	cases := make([]criticalCase, 0, len(critical))
	for _, r := range critical {
		cases = append(cases, criticalCase{
			Document:    r.Document,
			CompanyName: r.CompanyName,
			TotalDebt:   r.TotalDebt.Float64(),
			Operator:    r.Operator,
			Campaign:    r.Campaign,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"cases":        cases,
		"total":        len(cases),
		"distribution": s.classifier.CampaignDistribution(s.records),
		"empty":        len(cases) == 0,
	})
}

type ledgerEvent struct {
	Date        *time.Time        `json:"date"`
	Type        model.PaymentType `json:"type"`
	Campaign    string            `json:"campaign"`
	CompanyName string            `json:"company_name"`
	Amount      float64           `json:"amount"`
}

func (s *Server) handleLedger(c echo.Context) error {
	opts, err := parseFilterOptions(c)
	if err != nil {
		return err
	}

	filtered := ledger.Filter(s.events, opts)
	metrics := ledger.Summarize(filtered)

	events := make([]ledgerEvent, 0, len(filtered))
	for _, e := range filtered {
		ev := ledgerEvent{
			Type:        e.Type,
			Campaign:    e.Campaign,
			CompanyName: e.CompanyName,
			Amount:      e.Amount.Float64(),
		}
		if !e.Date.IsZero() {
			d := e.Date
			ev.Date = &d
		}
		events = append(events, ev)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"events": events,
		"empty":  len(events) == 0,
		"metrics": map[string]any{
			"total_events":    metrics.Events,
			"planillas_total": metrics.PlanillasTotal.InexactFloat64(),
			"gastos_total":    metrics.GastosTotal.InexactFloat64(),
			"planillas_count": metrics.PlanillasCount,
			"gastos_count":    metrics.GastosCount,
		},
	})
}

type seriesPoint struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleLedgerSeries(c echo.Context) error {
	opts, err := parseFilterOptions(c)
	if err != nil {
		return err
	}
	mode := c.QueryParam("mode")
	if mode == "" {
		mode = "daily"
	}
	if mode != "daily" && mode != "cumulative" {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode))
	}

	daily := ledger.RollupByDay(ledger.Filter(s.events, opts))
	if mode == "cumulative" {
		daily = ledger.Cumulative(daily)
	}

	points := make([]seriesPoint, 0, len(daily))
	for _, p := range daily {
		points = append(points, seriesPoint{Day: p.Day.Format("2006-01-02"), Amount: p.Amount.InexactFloat64()})
	}
	return c.JSON(http.StatusOK, map[string]any{"mode": mode, "points": points, "empty": len(points) == 0})
}

func (s *Server) handleExportCritical(c echo.Context) error {
	generatedAt := time.Now()
	critical := s.classifier.Critical(s.records)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.DefaultFilename(generatedAt)))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	return export.NewWriter(s.logger).Write(c.Response(), critical, generatedAt)
}

func parseFilterOptions(c echo.Context) (ledger.FilterOptions, error) {
	opts := ledger.FilterOptions{
		Campaign: c.QueryParam("campaign"),
	}

	switch typ := c.QueryParam("type"); typ {
	case "":
	case string(model.PaymentPlanillas):
		opts.Type = model.PaymentPlanillas
	case string(model.PaymentGastos):
		opts.Type = model.PaymentGastos
	default:
		return opts, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown payment type %q", typ))
	}

	if from := c.QueryParam("from"); from != "" {
		t := normalize.ParseDate(from)
		if t.IsZero() {
			return opts, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid from date %q", from))
		}
		opts.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t := normalize.ParseDate(to)
		if t.IsZero() {
			return opts, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid to date %q", to))
		}
		opts.To = t
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && opts.From.After(opts.To) {
		return opts, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("invalid date range: %s is after %s", opts.From.Format("02/01/2006"), opts.To.Format("02/01/2006")))
	}
	return opts, nil
}
