package contracts

// WeightedValue pairs a weight with an optional component value.
type WeightedValue struct {
	Weight float64
	Value  *float64
}

// WeightedAverage computes the weighted mean of whichever components are
// present, renormalizing the weights over the available set. Returns
// false when no component is present. This is the single implementation
// behind earnings quality, momentum and the hybrid value score; the
// composite forecast applies the same rule with equal weights.
func WeightedAverage(components []WeightedValue) (float64, bool) {
	var sum, weightSum float64

	for _, c := range components {
		if c.Value == nil || c.Weight <= 0 {
			continue
		}
		sum += c.Weight * *c.Value
		weightSum += c.Weight
	}

	if weightSum == 0 {
		return 0, false
	}

	return sum / weightSum, true
}
