package pack

import "sort"

// fragilityOrderScore and frequencyOrderScore are the fixed contributions
// the box-ordering heuristic assigns per fragility / access frequency
// (spec §4.5).
func fragilityOrderScore(f Fragility) float64 {
	switch f {
	case Normal:
		return 50
	case Fragile:
		return 100
	default:
		return 0
	}
}

func frequencyOrderScore(a AccessFrequency) float64 {
	switch a {
	case Sometimes:
		return 100
	case Often:
		return 200
	default:
		return 0
	}
}

// boxOrderScore computes the sort key used to decide placement order
// (spec §4.5): must-fit boxes before optional, heavier and more robust
// boxes first, frequently-accessed boxes delayed in proportion to
// accessibilityPreference, and larger boxes first among ties.
func boxOrderScore(b Box, accessibilityPreference float64) float64 {
	score := 0.0
	if b.Priority != MustFit {
		score += 1000
	}
	score -= 10 * b.Weight
	score += fragilityOrderScore(b.Fragility)
	score += frequencyOrderScore(b.AccessFrequency) * accessibilityPreference
	score -= 0.01 * b.Volume()
	return score
}

// orderBoxes returns a copy of boxes stably sorted ascending by
// boxOrderScore (spec §4.5: lowest score placed first).
func orderBoxes(boxes []Box, accessibilityPreference float64) []Box {
	ordered := make([]Box, len(boxes))
	copy(ordered, boxes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return boxOrderScore(ordered[i], accessibilityPreference) < boxOrderScore(ordered[j], accessibilityPreference)
	})
	return ordered
}
