// Package risk assigns collection risk tiers from the fixed business rule
// cascade. The rule set encodes an external policy and must match it
// verbatim, including the prefix lists.
package risk

import (
	"sort"
	"strings"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/shopspring/decimal"
)

// mediumPrefixes is the priority prefix set of the MEDIUM rule, exactly as
// the policy states it. "12" appears here even though the tiers above key
// off "13" only; the list is kept as given.
var mediumPrefixes = []string{"12", "11", "10", "09", "08", "07", "06", "05"}

type rule struct {
	match func(model.AccountRecord) bool
	tier  model.RiskTier
}

// Classifier assigns each record exactly one tier by evaluating an ordered
// rule list top-down; the first matching rule wins.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the classifier with the fixed rule cascade.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				tier: model.TierCritical,
				match: func(r model.AccountRecord) bool {
					return strings.HasPrefix(r.Priority, "13") &&
						isDirectContact(r.Contactability) &&
						!r.RecPlanillas.Positive()
				},
			},
			{
				tier: model.TierHigh,
				match: func(r model.AccountRecord) bool {
					return strings.HasPrefix(r.Priority, "13")
				},
			},
			{
				tier: model.TierMedium,
				match: func(r model.AccountRecord) bool {
					for _, p := range mediumPrefixes {
						if strings.HasPrefix(r.Priority, p) {
							return true
						}
					}
					return false
				},
			},
		},
	}
}

// Classify returns the record's risk tier.
func (c *Classifier) Classify(r model.AccountRecord) model.RiskTier {
	for _, rule := range c.rules {
		if rule.match(r) {
			return rule.tier
		}
	}
	return model.TierLow
}

// Critical filters the records assigned the CRITICAL tier, preserving
// input order.
func (c *Classifier) Critical(records []model.AccountRecord) []model.AccountRecord {
	var out []model.AccountRecord
	for _, r := range records {
		if c.Classify(r) == model.TierCritical {
			out = append(out, r)
		}
	}
	return out
}

func isDirectContact(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "contacto directo")
}

// TierBreakdown aggregates the records of one risk tier.
type TierBreakdown struct {
	Tier       model.RiskTier
	Accounts   int
	Debt       decimal.Decimal
	Recovered  decimal.Decimal
	PctOfTotal float64
}

// Summarize groups records by assigned tier, ordered most severe first.
// Tiers with no records are omitted.
func (c *Classifier) Summarize(records []model.AccountRecord) []TierBreakdown {
	byTier := make(map[model.RiskTier]*TierBreakdown)
	for _, r := range records {
		tier := c.Classify(r)
		b, ok := byTier[tier]
		if !ok {
			b = &TierBreakdown{Tier: tier}
			byTier[tier] = b
		}
		b.Accounts++
		b.Debt = b.Debt.Add(r.TotalDebt.Decimal())
		b.Recovered = b.Recovered.Add(r.RecPlanillas.Decimal())
	}

	var out []TierBreakdown
	for _, tier := range model.TierOrder() {
		b, ok := byTier[tier]
		if !ok {
			continue
		}
		if len(records) > 0 {
			b.PctOfTotal = float64(b.Accounts) / float64(len(records)) * 100
		}
		out = append(out, *b)
	}
	return out
}

// CampaignCount is the number of critical cases in one campaign.
type CampaignCount struct {
	Campaign string
	Count    int
}

// CampaignDistribution counts critical records per campaign, most cases
// first with ties broken by campaign name.
func (c *Classifier) CampaignDistribution(records []model.AccountRecord) []CampaignCount {
	counts := make(map[string]int)
	for _, r := range c.Critical(records) {
		counts[r.Campaign]++
	}

	out := make([]CampaignCount, 0, len(counts))
	for campaign, n := range counts {
		out = append(out, CampaignCount{Campaign: campaign, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Campaign < out[j].Campaign
	})
	return out
}
