package pricing

// Rate is the price per sq.ft applied to a window and where it came from.
type Rate struct {
	Tier         TierName
	PricePerSqFt float64
	Override     bool
}

// SelectRate picks the rate for a window of the given area. A positive
// override bypasses the table.
func SelectRate(areaSqFt float64, table ScaledPricing, override float64) Rate {
	if override > 0 {
		return Rate{Tier: TierOverride, PricePerSqFt: override, Override: true}
	}
	name, price := selectTier(areaSqFt, table)
	return Rate{Tier: name, PricePerSqFt: price}
}

// selectTier returns the first bracket whose threshold is strictly greater
// than the area. An area equal to a threshold belongs to the next bracket.
func selectTier(areaSqFt float64, table ScaledPricing) (TierName, float64) {
	brackets := table.ordered()
	for _, nt := range brackets[:len(brackets)-1] {
		if areaSqFt < nt.tier.Threshold {
			return nt.name, nt.tier.PricePerSqFt
		}
	}
	last := brackets[len(brackets)-1]
	return last.name, last.tier.PricePerSqFt
}
