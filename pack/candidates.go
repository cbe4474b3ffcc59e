package pack

import "math"

// candidatePoint is one corner-point candidate position for a box, before
// feasibility filtering.
type candidatePoint struct {
	x, y, z float64
}

// candidatePositions returns the corner-point candidate set for a box
// occupying usable: the usable region's origin, plus three points per
// already-placed box — to its right, behind it, and on top of it, each
// offset by padding (spec §4.4).
func candidatePositions(placed []placedBox, usable usableRegion, padding float64) []candidatePoint {
	points := make([]candidatePoint, 0, 1+3*len(placed))
	points = append(points, candidatePoint{usable.x, usable.y, usable.z})

	for _, r := range placed {
		points = append(points,
			candidatePoint{r.xEnd() + padding, r.placement.Y, r.placement.Z},
			candidatePoint{r.placement.X, r.yEnd() + padding, r.placement.Z},
			candidatePoint{r.placement.X, r.placement.Y, r.zEnd() + padding},
		)
	}
	return points
}

// fitsWithin reports whether a (length, width, height) footprint placed at
// (x, y, z) fits entirely inside usable.
func fitsWithin(x, y, z, length, width, height float64, usable usableRegion) bool {
	if x < usable.x || x+length > usable.xEnd() {
		return false
	}
	if y < usable.y || y+width > usable.yEnd() {
		return false
	}
	if z < usable.z || z+height > usable.zEnd() {
		return false
	}
	return true
}

// feasiblePosition is a candidate position that survived every filter,
// carrying the strategy-dependent score it was assigned (spec §4.4).
type feasiblePosition struct {
	x, y, z float64
	score   float64
}

// bestPositionForOrientation filters the candidate set down to feasible
// positions for one oriented box and returns the minimum-score one, or
// (feasiblePosition{}, false) if none are feasible.
func bestPositionForOrientation(
	box Box,
	dims orientedDims,
	placed []placedBox,
	boxesByID map[string]Box,
	usable usableRegion,
	containerLength, containerWidth, cornerRadius, totalMargin float64,
	padding float64,
	strategy Strategy,
) (feasiblePosition, bool) {
	length, width, height := dims.length, dims.width, dims.height

	var best feasiblePosition
	found := false

	for _, c := range candidatePositions(placed, usable, padding) {
		x, y, z := c.x, c.y, c.z

		if !fitsWithin(x, y, z, length, width, height, usable) {
			continue
		}

		if intersectsRoundedCorner(x, y, length, width, containerLength, containerWidth, cornerRadius, totalMargin) {
			continue
		}

		collision := false
		for _, r := range placed {
			if collides(x, y, z, length, width, height, padding, r) {
				collision = true
				break
			}
		}
		if collision {
			continue
		}

		support := analyzeSupport(x, y, z, length, width, placed, usable.z, padding)
		if z > usable.z+floorTolerance && support.ratio < minSupportRatio {
			continue
		}

		if !checkLoad(box.Weight, support.supporters, placed, boxesByID) {
			continue
		}
		if !checkFragility(box.Weight, support.supporters) {
			continue
		}

		score := positionScore(x, y, z, placed, padding, strategy)
		if !found || score < best.score {
			best = feasiblePosition{x: x, y: y, z: z, score: score}
			found = true
		}
	}

	return best, found
}

// positionScore assigns a scalar to a feasible candidate position per the
// active strategy (spec §4.4). For maximize_volume it is a plain
// lowest-first preference over (x, y, z). For minimize_holes it starts
// from the same base and rewards adjacency to already-placed boxes.
func positionScore(x, y, z float64, placed []placedBox, padding float64, strategy Strategy) float64 {
	score := x + 0.1*y + 0.01*z
	if strategy != MinimizeHoles {
		return score
	}

	for _, r := range placed {
		if math.Abs(r.xEnd()+padding-x) < zAlignTolerance {
			score -= 10
		}
		if math.Abs(r.yEnd()+padding-y) < zAlignTolerance {
			score -= 10
		}
		if math.Abs(r.zEnd()-z) < zAlignTolerance {
			score -= 5
		}
	}
	return score
}

// crossOrientationScore is the strategy-independent outer score used to
// pick among feasible (orientation, position) pairs for a box: a strong
// preference for lower z, then low x, then low y (spec §4.4).
func crossOrientationScore(x, y, z float64) float64 {
	return z*1000 + x + 0.1*y
}
