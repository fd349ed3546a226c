// Package ingest loads account records from the source xlsx workbook.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/common"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/normalize"
	"github.com/xuri/excelize/v2"
)

// Column headers are a fixed schema contract with the source workbook,
// exact and case-sensitive.
const (
	ColDocument       = "DOCUMENTO"
	ColCompany        = "RAZON SOCIAL"
	ColCampaign       = "CAMPAÑA"
	ColAdvisor        = "ASESOR"
	ColPriority       = "PRIORIDAD"
	ColContactability = "CONTACTABILIDAD"
	ColOperator       = "OPERADOR"
	ColDebt           = "DEUDA TOTAL"
	ColAdminFee       = "GASTOS ADMIN"
	ColRecPlanillas   = "REC. PLANILLAS"
	ColRecGastos      = "REC. GASTOS"
	ColPlanillasDate  = "FECHA DE PAGO P"
	ColGastosDate     = "FECHA DE PAGO G"
	ColLastAction     = "ULTIMA FECHA GESTION"
)

// Loader reads account records from an xlsx workbook.
type Loader struct {
	path string
}

// NewLoader creates a loader for the workbook at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the workbook into the full record set. A missing file is
// ErrSourceUnavailable; a workbook without the RAZON SOCIAL column is
// ErrSchemaMismatch. Other columns may be absent: their fields degrade to
// absent values instead of failing the load.
func (l *Loader) Load(ctx context.Context) ([]model.AccountRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(l.path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrSourceUnavailable, l.path, err)
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", common.ErrSourceUnavailable, l.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "path", l.path, "error", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrSchemaMismatch)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", common.ErrSchemaMismatch, sheets[0])
	}

	columns := headerIndex(rows[0])
	if _, ok := columns[ColCompany]; !ok {
		return nil, fmt.Errorf("%w: required column %q not found", common.ErrSchemaMismatch, ColCompany)
	}

	records := make([]model.AccountRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		records = append(records, parseRow(row, columns))
	}

	slog.Info("loaded source workbook",
		"path", l.path,
		"sheet", sheets[0],
		"records", len(records))

	return records, nil
}

// headerIndex maps column headers to their positions in the header row.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	return columns
}

func parseRow(row []string, columns map[string]int) model.AccountRecord {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	return model.AccountRecord{
		Document:        normalize.CleanText(cell(ColDocument), ""),
		CompanyName:     normalize.CleanText(cell(ColCompany), ""),
		Campaign:        normalize.CleanText(cell(ColCampaign), ""),
		Advisor:         normalize.CleanText(cell(ColAdvisor), ""),
		Priority:        normalize.CleanText(cell(ColPriority), ""),
		Contactability:  normalize.CleanText(cell(ColContactability), ""),
		Operator:        normalize.CleanText(cell(ColOperator), ""),
		TotalDebt:       normalize.CleanAmount(cell(ColDebt)),
		AdminFee:        normalize.CleanAmount(cell(ColAdminFee)),
		RecPlanillas:    normalize.CleanAmount(cell(ColRecPlanillas)),
		RecGastos:       normalize.CleanAmount(cell(ColRecGastos)),
		PlanillasPaidAt: normalize.ParseDate(cell(ColPlanillasDate)),
		GastosPaidAt:    normalize.ParseDate(cell(ColGastosDate)),
		LastActionAt:    normalize.ParseDate(cell(ColLastAction)),
	}
}

func blank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
