// Package export writes the critical-cases workbook.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Casos Críticos"

const titleBanner = "CASOS CRÍTICOS - PRIORIDAD 13 + CONTACTO DIRECTO + SIN PAGO"

// Header columns of the exported table, in order.
var headers = []string{"Documento", "Razón Social", "Deuda Total", "Operador", "Campaña"}

// Column widths follow the original report layout.
var columnWidths = map[string]float64{
	"A": 15,
	"B": 45,
	"C": 15,
	"D": 12,
	"E": 18,
}

// dataStartRow is the first data row; rows 1-2 hold the banner and
// timestamp, row 3 is a spacer, row 4 the header.
const dataStartRow = 5

// Writer builds critical-cases workbooks.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a workbook writer.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Write renders the critical records into a styled workbook and writes it
// to w. generatedAt is stamped into the header block.
func (e *Writer) Write(w io.Writer, records []model.AccountRecord, generatedAt time.Time) error {
	f, err := e.build(records, generatedAt)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.logger.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("critical cases workbook written", "records", len(records))
	return nil
}

// Save renders the workbook to a file at path.
func (e *Writer) Save(path string, records []model.AccountRecord, generatedAt time.Time) error {
	f, err := e.build(records, generatedAt)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.logger.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}

	e.logger.Info("critical cases workbook saved", "path", path, "records", len(records))
	return nil
}

// DefaultFilename returns the timestamped download filename.
func DefaultFilename(generatedAt time.Time) string {
	return fmt.Sprintf("casos_criticos_%s.xlsx", generatedAt.Format("02012006_150405"))
}

func (e *Writer) build(records []model.AccountRecord, generatedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := e.writeBanner(f, generatedAt); err != nil {
		return nil, err
	}
	if err := e.writeHeader(f); err != nil {
		return nil, err
	}
	if err := e.writeRows(f, records); err != nil {
		return nil, err
	}
	if err := e.writeTotals(f, len(records)); err != nil {
		return nil, err
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f, nil
}

func (e *Writer) writeBanner(f *excelize.File, generatedAt time.Time) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C62828"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", titleBanner); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A1", "E1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", titleStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheetName, 1, 25); err != nil {
		return err
	}

	stampStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 10},
	})
	if err != nil {
		return fmt.Errorf("failed to create timestamp style: %w", err)
	}

	stamp := fmt.Sprintf("Fecha de generación: %s", generatedAt.Format("02/01/2006 15:04:05"))
	if err := f.SetCellValue(sheetName, "A2", stamp); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A2", "E2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A2", "A2", stampStyle); err != nil {
		return err
	}
	return f.SetRowHeight(sheetName, 2, 18)
}

func (e *Writer) writeHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"23395D"}, Pattern: 1},
		Border: thinBorder(),
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, dataStartRow-1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	return f.SetRowHeight(sheetName, dataStartRow-1, 20)
}

func (e *Writer) writeRows(f *excelize.File, records []model.AccountRecord) error {
	textStyle, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return fmt.Errorf("failed to create text style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "right"},
		NumFmt:    4, // #,##0.00
	})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	for i, r := range records {
		row := dataStartRow + i
		values := []any{r.Document, r.CompanyName, r.TotalDebt.Float64(), r.Operator, r.Campaign}
		for col, value := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, row)
			if cellErr != nil {
				return cellErr
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
			style := textStyle
			if col == 2 {
				style = moneyStyle
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Writer) writeTotals(f *excelize.File, count int) error {
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFE082"}, Pattern: 1},
		Border: thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("failed to create totals style: %w", err)
	}

	row := dataStartRow + count
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), count); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), totalStyle)
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}
