package pack

import (
	"math"

	"github.com/paulmach/orb"
)

// supportFragileLimit and supportNormalLimit are the fixed weight
// thresholds a fragile/normal supporter may carry (spec §4.3).
const (
	supportFragileLimit = 5.0
	supportNormalLimit  = 15.0
)

// minSupportRatio is the fraction of a candidate's footprint that must be
// covered by supporters once it is above the floor (spec §4.3).
const minSupportRatio = 0.5

// supportAnalysis is the result of analyzing support for a candidate
// footprint: how much of its base is covered, and which placed boxes cover
// it.
type supportAnalysis struct {
	ratio      float64
	supporters []placedBox
}

// analyzeSupport computes the supported-area ratio and supporting set for a
// candidate footprint (x, y) of size (length, width) at height z, given the
// boxes already placed and the padding currently in effect (spec §4.3).
//
// A candidate at or below floorZ+floorTolerance is considered to rest on
// the floor: fully supported, no supporters. Otherwise a placed box r
// supports the candidate iff its top face, once padding is added, sits
// within zAlignTolerance of the candidate's z.
func analyzeSupport(x, y, z, length, width float64, placed []placedBox, floorZ, padding float64) supportAnalysis {
	if z <= floorZ+floorTolerance {
		return supportAnalysis{ratio: 1, supporters: nil}
	}

	area := length * width
	if area <= 0 {
		return supportAnalysis{ratio: 0, supporters: nil}
	}

	candidate := orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + length, y + width}}

	var supportedArea float64
	var supporters []placedBox
	for _, r := range placed {
		if math.Abs(r.zEnd()+padding-z) > zAlignTolerance {
			continue
		}
		overlap := footprintOverlapArea(candidate, r.footprint())
		if overlap > 0 {
			supportedArea += overlap
			supporters = append(supporters, r)
		}
	}

	ratio := supportedArea / area
	if ratio > 1 {
		ratio = 1
	}
	return supportAnalysis{ratio: ratio, supporters: supporters}
}

// checkLoad reports whether placing candidate (with the given weight) on
// the given supporters would exceed any supporter's declared load limit,
// once the weight already resting on that supporter (determined by reusing
// analyzeSupport at the supporter's own top face) is accounted for.
// Supporters with an undefined limit never gate; see Box.maxSupportedLoad
// for how an undefined limit still resolves to a fragility-keyed default —
// every supporter therefore has a limit, so this only skips boxes that
// aren't in boxesByID (which should not happen for a well-formed request).
// The re-analysis passes zero padding, whatever padding is in effect for the
// candidate itself.
func checkLoad(candidateWeight float64, supporters []placedBox, placed []placedBox, boxesByID map[string]Box) bool {
	for _, s := range supporters {
		supportBox, ok := boxesByID[s.box.ID]
		if !ok {
			continue
		}
		limit := supportBox.maxSupportedLoad()

		var currentLoad float64
		for _, other := range placed {
			if other.box.ID == s.box.ID {
				continue
			}
			if other.placement.Z <= s.zEnd()-zAlignTolerance {
				continue
			}
			analysis := analyzeSupport(
				other.placement.X, other.placement.Y, other.placement.Z,
				other.placedLength, other.placedWidth,
				[]placedBox{s}, s.placement.Z, 0,
			)
			if len(analysis.supporters) > 0 {
				currentLoad += other.box.Weight
			}
		}

		if currentLoad+candidateWeight > limit {
			return false
		}
	}
	return true
}

// checkFragility reports whether candidateWeight may rest on the given
// supporters per the fixed fragility thresholds (spec §4.3): a fragile
// supporter cannot carry more than supportFragileLimit kg, a normal
// supporter cannot carry more than supportNormalLimit kg.
func checkFragility(candidateWeight float64, supporters []placedBox) bool {
	for _, s := range supporters {
		switch s.box.Fragility {
		case Fragile:
			if candidateWeight > supportFragileLimit {
				return false
			}
		case Normal:
			if candidateWeight > supportNormalLimit {
				return false
			}
		}
	}
	return true
}
