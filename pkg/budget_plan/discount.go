package budget_plan

// youthPassPercent is the share of the regular price paid with a youth pass.
var youthPassPercent = map[Category]int{
	Transport:   80,
	Film:        90,
	Sightseeing: 90,
}

// ApplyYouthPass returns a discounted copy of daily. Amounts are truncated toward zero.
func ApplyYouthPass(daily CategoryAmount) CategoryAmount {
	discounted := daily.Clone()
	for category, percent := range youthPassPercent {
		if amount, ok := discounted[category]; ok {
			discounted[category] = amount * percent / 100
		}
	}
	return discounted
}
