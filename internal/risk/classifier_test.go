package risk

import (
	"testing"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(priority, contactability string, planillas model.Amount) model.AccountRecord {
	return model.AccountRecord{
		Priority:       priority,
		Contactability: contactability,
		RecPlanillas:   planillas,
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		rec  model.AccountRecord
		want model.RiskTier
	}{
		{
			name: "priority 13 direct contact no payment",
			rec:  record("13", "Contacto Directo", model.Amount{}),
			want: model.TierCritical,
		},
		{
			name: "direct contact match is case and whitespace insensitive",
			rec:  record("13", "  CONTACTO DIRECTO  ", model.AmountFromFloat(0)),
			want: model.TierCritical,
		},
		{
			name: "zero recorded payment still critical",
			rec:  record("13", "contacto directo", model.AmountFromFloat(0)),
			want: model.TierCritical,
		},
		{
			name: "priority 13 with payment drops to high",
			rec:  record("13", "Contacto Directo", model.AmountFromFloat(150)),
			want: model.TierHigh,
		},
		{
			name: "priority 13 other contactability is high",
			rec:  record("13", "Sin contacto", model.Amount{}),
			want: model.TierHigh,
		},
		{
			name: "priority code with suffix keeps prefix semantics",
			rec:  record("13-A", "No ubicado", model.Amount{}),
			want: model.TierHigh,
		},
		{
			name: "priority 12 is medium",
			rec:  record("12", "Contacto Directo", model.Amount{}),
			want: model.TierMedium,
		},
		{
			name: "priority 05 is medium",
			rec:  record("05", "x", model.AmountFromFloat(10)),
			want: model.TierMedium,
		},
		{
			name: "priority 04 is low",
			rec:  record("04", "Contacto Directo", model.Amount{}),
			want: model.TierLow,
		},
		{
			name: "empty priority is low",
			rec:  record("", "Contacto Directo", model.Amount{}),
			want: model.TierLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.rec))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier()
	r := record("13", "Contacto Directo", model.AmountFromFloat(0))
	first := c.Classify(r)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(r))
	}
}

func TestClassifyScenario(t *testing.T) {
	c := NewClassifier()
	records := []model.AccountRecord{
		record("13", "Contacto Directo", model.AmountFromFloat(0)),
		record("05", "x", model.AmountFromFloat(500)),
		record("13", "y", model.AmountFromFloat(0)),
	}

	want := []model.RiskTier{model.TierCritical, model.TierMedium, model.TierHigh}
	for i, r := range records {
		assert.Equal(t, want[i], c.Classify(r), "record %d", i)
	}
}

func TestCritical(t *testing.T) {
	c := NewClassifier()
	records := []model.AccountRecord{
		{Document: "A", Priority: "13", Contactability: "Contacto Directo"},
		{Document: "B", Priority: "13", Contactability: "Sin contacto"},
		{Document: "C", Priority: "13", Contactability: "contacto directo"},
	}

	critical := c.Critical(records)
	require.Len(t, critical, 2)
	assert.Equal(t, "A", critical[0].Document)
	assert.Equal(t, "C", critical[1].Document)
}

func TestSummarize(t *testing.T) {
	c := NewClassifier()
	records := []model.AccountRecord{
		{Priority: "13", Contactability: "Contacto Directo", TotalDebt: model.AmountFromFloat(1000)},
		{Priority: "13", Contactability: "x", TotalDebt: model.AmountFromFloat(2000), RecPlanillas: model.AmountFromFloat(500)},
		{Priority: "07", TotalDebt: model.AmountFromFloat(300)},
		{Priority: "01", TotalDebt: model.AmountFromFloat(100)},
	}

	breakdown := c.Summarize(records)
	require.Len(t, breakdown, 4)

	assert.Equal(t, model.TierCritical, breakdown[0].Tier)
	assert.Equal(t, 1, breakdown[0].Accounts)
	assert.InDelta(t, 25.0, breakdown[0].PctOfTotal, 0.001)

	assert.Equal(t, model.TierHigh, breakdown[1].Tier)
	assert.Equal(t, "2000", breakdown[1].Debt.String())
	assert.Equal(t, "500", breakdown[1].Recovered.String())

	assert.Equal(t, model.TierMedium, breakdown[2].Tier)
	assert.Equal(t, model.TierLow, breakdown[3].Tier)
}

func TestCampaignDistribution(t *testing.T) {
	c := NewClassifier()
	records := []model.AccountRecord{
		{Priority: "13", Contactability: "Contacto Directo", Campaign: "FLUJO"},
		{Priority: "13", Contactability: "Contacto Directo", Campaign: "PRESUNTA"},
		{Priority: "13", Contactability: "Contacto Directo", Campaign: "PRESUNTA"},
		{Priority: "05", Campaign: "FLUJO"},
	}

	dist := c.CampaignDistribution(records)
	require.Len(t, dist, 2)
	assert.Equal(t, CampaignCount{Campaign: "PRESUNTA", Count: 2}, dist[0])
	assert.Equal(t, CampaignCount{Campaign: "FLUJO", Count: 1}, dist[1])
}
