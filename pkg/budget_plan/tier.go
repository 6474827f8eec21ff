package budget_plan

import "fmt"

type Tier string

const (
	Low    Tier = "low"
	Medium Tier = "medium"
	High   Tier = "high"
)

type tierTemplate struct {
	label string
	daily CategoryAmount
}

var tierTemplates = map[Tier]tierTemplate{
	Low: {
		label: "Budget (about 65,000 KRW/day)",
		daily: CategoryAmount{Lodging: 25000, Transport: 8000, Food: 12000, Film: 7000, Sightseeing: 3000, Shopping: 5000, Misc: 5000},
	},
	Medium: {
		label: "Standard (about 125,000 KRW/day)",
		daily: CategoryAmount{Lodging: 50000, Transport: 12000, Food: 25000, Film: 10000, Sightseeing: 8000, Shopping: 10000, Misc: 10000},
	},
	High: {
		label: "Premium (about 200,000 KRW/day)",
		daily: CategoryAmount{Lodging: 80000, Transport: 15000, Food: 40000, Film: 15000, Sightseeing: 15000, Shopping: 20000, Misc: 15000},
	},
}

var tierOrder = []Tier{Low, Medium, High}

func (t Tier) Valid() bool {
	_, ok := tierTemplates[t]
	return ok
}

func (t Tier) Label() string {
	return tierTemplates[t].label
}

// Template returns a fresh copy of the daily amounts of tier.
func Template(tier Tier) (CategoryAmount, error) {
	template, ok := tierTemplates[tier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return template.daily.Clone(), nil
}

type TierInfo struct {
	Tier  Tier
	Label string
	Daily CategoryAmount
}

// Tiers lists the catalog from cheapest to most expensive.
func Tiers() []TierInfo {
	tiers := make([]TierInfo, 0, len(tierOrder))
	for _, tier := range tierOrder {
		template := tierTemplates[tier]
		tiers = append(tiers, TierInfo{Tier: tier, Label: template.label, Daily: template.daily.Clone()})
	}
	return tiers
}
