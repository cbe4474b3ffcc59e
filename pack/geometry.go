package pack

import (
	"math"

	"github.com/paulmach/orb"
)

// cornerDedupeTolerance is the tolerance (cm) below which two placed-
// dimension triples are considered the same orientation (spec §4.1).
const cornerDedupeTolerance = 1e-3

// zAlignTolerance is the tolerance (cm) used when deciding whether a
// candidate sits directly on top of a placed box (spec §4.3).
const zAlignTolerance = 0.1

// floorTolerance is the tolerance (cm) used when deciding whether a
// candidate z-coordinate is "on the floor" (spec §4.3).
const floorTolerance = 1e-3

// footprint returns the placed box's axis-aligned base rectangle in the XY
// plane as an orb.Bound, used by overlap area computation in the support
// analyzer.
func (p placedBox) footprint() orb.Bound {
	return orb.Bound{
		Min: orb.Point{p.placement.X, p.placement.Y},
		Max: orb.Point{p.xEnd(), p.yEnd()},
	}
}

// footprintOverlapArea returns the area of the intersection of two XY
// footprints, or zero if they don't overlap.
func footprintOverlapArea(a, b orb.Bound) float64 {
	xStart := math.Max(a.Min[0], b.Min[0])
	xEnd := math.Min(a.Max[0], b.Max[0])
	yStart := math.Max(a.Min[1], b.Min[1])
	yEnd := math.Min(a.Max[1], b.Max[1])
	if xEnd <= xStart || yEnd <= yStart {
		return 0
	}
	return (xEnd - xStart) * (yEnd - yStart)
}

// collides reports whether a candidate cuboid at (x, y, z) with placed
// dimensions (length, width, height) overlaps a committed placement once
// padding p is applied on every axis, including vertical (spec §4.2).
//
// Two cuboids A and B collide iff on every axis the padded intervals
// intersect; equivalently, they do NOT collide if any axis has
// A.end+p <= B.start or B.end+p <= A.start.
func collides(x, y, z, length, width, height, p float64, other placedBox) bool {
	if x+length+p <= other.placement.X || other.xEnd()+p <= x {
		return false
	}
	if y+width+p <= other.placement.Y || other.yEnd()+p <= y {
		return false
	}
	if z+height+p <= other.placement.Z || other.zEnd()+p <= z {
		return false
	}
	return true
}

// cornerCenters returns the four interior-corner arc centres for a container
// whose full lateral extent is (length, width) and whose total margin
// (bed margin + settings margin) is totalMargin.
func cornerCenters(length, width, radius, totalMargin float64) [4]orb.Point {
	return [4]orb.Point{
		{totalMargin + radius, totalMargin + radius},                   // bottom-left
		{length - totalMargin - radius, totalMargin + radius},          // bottom-right
		{totalMargin + radius, width - totalMargin - radius},           // top-left
		{length - totalMargin - radius, width - totalMargin - radius},  // top-right
	}
}

// inCornerExclusionZone reports whether point p is excluded by the rounded
// corner centred at c: inside the corner's outer square but outside the arc
// of the given radius (spec §4.2). idx identifies which of the four corners
// c is, to pick the right "outer square" quadrant test.
func inCornerExclusionZone(p, c orb.Point, radius float64, idx int) bool {
	var inSquare bool
	switch idx {
	case 0: // bottom-left
		inSquare = p[0] < c[0] && p[1] < c[1]
	case 1: // bottom-right
		inSquare = p[0] > c[0] && p[1] < c[1]
	case 2: // top-left
		inSquare = p[0] < c[0] && p[1] > c[1]
	default: // top-right
		inSquare = p[0] > c[0] && p[1] > c[1]
	}
	if !inSquare {
		return false
	}
	dx, dy := p[0]-c[0], p[1]-c[1]
	return math.Hypot(dx, dy) > radius
}

// intersectsRoundedCorner reports whether a footprint at (x, y) with extent
// (length, width) intersects any of the four rounded corner exclusion
// zones of a container whose full lateral extent is (bedLength, bedWidth)
// and whose total margin is totalMargin. Samples the four corners and four
// edge midpoints of the footprint (eight points), the minimum density the
// spec allows (§4.2). Returns false immediately when radius <= 0.
func intersectsRoundedCorner(x, y, length, width, bedLength, bedWidth, radius, totalMargin float64) bool {
	if radius <= 0 {
		return false
	}

	corners := cornerCenters(bedLength, bedWidth, radius, totalMargin)

	samples := [8]orb.Point{
		{x, y},
		{x + length, y},
		{x, y + width},
		{x + length, y + width},
		{x + length/2, y},
		{x + length/2, y + width},
		{x, y + width/2},
		{x + length, y + width/2},
	}

	for _, s := range samples {
		for i, c := range corners {
			if inCornerExclusionZone(s, c, radius, i) {
				return true
			}
		}
	}
	return false
}
