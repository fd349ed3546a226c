package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *Server {
	worked := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)
	records := []model.AccountRecord{
		{
			Document:       "20601234567",
			CompanyName:    "ACME S.A.",
			Campaign:       "FLUJO",
			Advisor:        "MARIA FERNANDEZ",
			Priority:       "13",
			Contactability: "Contacto Directo",
			Operator:       "CLARO",
			TotalDebt:      model.AmountFromFloat(1000),
			AdminFee:       model.AmountFromFloat(200),
			RecPlanillas:   model.AmountFromFloat(0),
			LastActionAt:   worked,
		},
		{
			Document:        "20609876543",
			CompanyName:     "BETA SAC",
			Campaign:        "PRESUNTA",
			Advisor:         "JOSE TORRES",
			Priority:        "05",
			Contactability:  "x",
			TotalDebt:       model.AmountFromFloat(2000),
			AdminFee:        model.AmountFromFloat(400),
			RecPlanillas:    model.AmountFromFloat(500),
			PlanillasPaidAt: time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	return New(records, time.Date(2025, time.November, 10, 8, 0, 0, 0, time.UTC), nil)
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]any
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHandleKPIs(t *testing.T) {
	rec, body := get(t, testServer(), "/api/kpis")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["total_accounts"])
	assert.EqualValues(t, 3000, body["total_debt"])
	assert.EqualValues(t, 500, body["rec_planillas"])
	assert.EqualValues(t, 50, body["pct_swept"])
}

func TestHandleSummaryCampaign(t *testing.T) {
	rec, body := get(t, testServer(), "/api/summary/campaign")

	require.Equal(t, http.StatusOK, rec.Code)
	rows, ok := body["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 3)

	last := rows[2].(map[string]any)
	assert.Equal(t, "TOTAL", last["key"])
	assert.EqualValues(t, 2, last["accounts"])
}

func TestHandleSummaryFiltered(t *testing.T) {
	rec, body := get(t, testServer(), "/api/summary/priority?campaign=FLUJO")

	require.Equal(t, http.StatusOK, rec.Code)
	rows := body["rows"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	assert.Equal(t, "13", first["key"])
}

func TestHandleSummaryUnknownGroup(t *testing.T) {
	rec, _ := get(t, testServer(), "/api/summary/bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRiskSummary(t *testing.T) {
	rec, body := get(t, testServer(), "/api/risk/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	tiers := body["tiers"].([]any)
	require.Len(t, tiers, 2)

	first := tiers[0].(map[string]any)
	assert.Equal(t, "CRITICAL", first["tier"])
	assert.EqualValues(t, 1, first["accounts"])

	second := tiers[1].(map[string]any)
	assert.Equal(t, "MEDIUM", second["tier"])
}

func TestHandleCritical(t *testing.T) {
	rec, body := get(t, testServer(), "/api/risk/critical")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	cases := body["cases"].([]any)
	require.Len(t, cases, 1)
	first := cases[0].(map[string]any)
	assert.Equal(t, "20601234567", first["document"])
	assert.Equal(t, "FLUJO", first["campaign"])
}

func TestHandleLedger(t *testing.T) {
	rec, body := get(t, testServer(), "/api/ledger?type=PLANILLAS")

	require.Equal(t, http.StatusOK, rec.Code)
	events := body["events"].([]any)
	require.Len(t, events, 1)

	metrics := body["metrics"].(map[string]any)
	assert.EqualValues(t, 500, metrics["planillas_total"])
}

func TestHandleLedgerSeries(t *testing.T) {
	rec, body := get(t, testServer(), "/api/ledger/series?mode=cumulative")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cumulative", body["mode"])
	points := body["points"].([]any)
	require.Len(t, points, 1)

	point := points[0].(map[string]any)
	assert.Equal(t, "2025-11-05", point["day"])
	assert.EqualValues(t, 500, point["amount"])
}

func TestHandleLedgerBadType(t *testing.T) {
	rec, _ := get(t, testServer(), "/api/ledger?type=OTRO")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLedgerInvertedRange(t *testing.T) {
	rec, _ := get(t, testServer(), "/api/ledger?from=10/11/2025&to=01/11/2025")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExportCritical(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/export/critical", nil)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "casos_criticos_")
	assert.NotEmpty(t, rec.Body.Bytes())
}
