package model

// RiskTier is the rule-assigned collection risk level of an account.
type RiskTier string

const (
	// TierCritical marks top-priority accounts with direct contact and no payment.
	TierCritical RiskTier = "CRITICAL"
	// TierHigh marks remaining top-priority accounts.
	TierHigh RiskTier = "HIGH"
	// TierMedium marks mid-priority accounts.
	TierMedium RiskTier = "MEDIUM"
	// TierLow is the default tier.
	TierLow RiskTier = "LOW"
)

// TierOrder lists tiers from most to least severe, the presentation order.
func TierOrder() []RiskTier {
	return []RiskTier{TierCritical, TierHigh, TierMedium, TierLow}
}
