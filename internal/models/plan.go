package models

// PlanLimits holds the static quota configuration for a subscription tier.
// A limit of -1 means unlimited.
type PlanLimits struct {
	MaxUsers      int   `json:"maxUsers"`
	MaxCases      int   `json:"maxCases"`
	PriceCents    int64 `json:"priceCents"` // monthly price; 0 for free and custom-priced tiers
	TrialDays     int   `json:"trialDays"`
	CustomPricing bool  `json:"customPricing"`
}

// planCatalog is the static tier configuration. Limits are configuration,
// not computed; changing a tier here does not retroactively touch stored
// organizations until their subscription is patched.
var planCatalog = map[SubscriptionPlan]PlanLimits{
	PlanFree:         {MaxUsers: 2, MaxCases: 10, PriceCents: 0, TrialDays: 0},
	PlanStarter:      {MaxUsers: 5, MaxCases: 100, PriceCents: 2900, TrialDays: 14},
	PlanProfessional: {MaxUsers: 20, MaxCases: 1000, PriceCents: 9900, TrialDays: 14},
	PlanEnterprise:   {MaxUsers: -1, MaxCases: -1, PriceCents: 0, CustomPricing: true},
}

// LimitsFor returns the quota configuration for a plan. The boolean is false
// for unknown plans; callers should fall back to the free tier's limits.
func LimitsFor(plan SubscriptionPlan) (PlanLimits, bool) {
	limits, ok := planCatalog[plan]
	return limits, ok
}

// LimitsOrFree returns the plan's limits, defaulting to the free tier when the
// plan is unknown. Unknown plans are treated restrictively on purpose.
func LimitsOrFree(plan SubscriptionPlan) PlanLimits {
	if limits, ok := planCatalog[plan]; ok {
		return limits
	}
	return planCatalog[PlanFree]
}

// KnownPlans lists the configured tiers.
func KnownPlans() []SubscriptionPlan {
	return []SubscriptionPlan{PlanFree, PlanStarter, PlanProfessional, PlanEnterprise}
}
