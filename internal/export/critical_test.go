package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func criticalRecords() []model.AccountRecord {
	return []model.AccountRecord{
		{
			Document:    "20601234567",
			CompanyName: "ACME S.A.",
			TotalDebt:   model.AmountFromFloat(1234.50),
			Operator:    "CLARO",
			Campaign:    "FLUJO",
		},
		{
			Document:    "20609876543",
			CompanyName: "BETA SAC",
			TotalDebt:   model.AmountFromFloat(980),
			Operator:    "MOVISTAR",
			Campaign:    "PRESUNTA",
		},
	}
}

func TestWrite(t *testing.T) {
	generatedAt := time.Date(2025, time.November, 10, 14, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	err := NewWriter(nil).Write(&buf, criticalRecords(), generatedAt)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	require.Contains(t, f.GetSheetList(), "Casos Críticos")

	title, err := f.GetCellValue("Casos Críticos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "CASOS CRÍTICOS - PRIORIDAD 13 + CONTACTO DIRECTO + SIN PAGO", title)

	stamp, err := f.GetCellValue("Casos Críticos", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Fecha de generación: 10/11/2025 14:30:00", stamp)

	header, err := f.GetCellValue("Casos Críticos", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Documento", header)

	company, err := f.GetCellValue("Casos Críticos", "B5")
	require.NoError(t, err)
	assert.Equal(t, "ACME S.A.", company)

	// Totals row sits after the last data row: TOTAL label plus row count.
	label, err := f.GetCellValue("Casos Críticos", "A7")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)

	count, err := f.GetCellValue("Casos Críticos", "B7")
	require.NoError(t, err)
	assert.Equal(t, "2", count)
}

func TestWriteEmptySet(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(nil).Write(&buf, nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	label, err := f.GetCellValue("Casos Críticos", "A5")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)

	count, err := f.GetCellValue("Casos Críticos", "B5")
	require.NoError(t, err)
	assert.Equal(t, "0", count)
}

func TestDefaultFilename(t *testing.T) {
	generatedAt := time.Date(2025, time.November, 10, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "casos_criticos_10112025_143005.xlsx", DefaultFilename(generatedAt))
}
