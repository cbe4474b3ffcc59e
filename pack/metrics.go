package pack

import "math"

const metricsRoundingFactor = 10000.0

// round4 rounds v to four decimal places, matching the tolerance the spec's
// testable properties (§8) expect metrics to be compared at.
func round4(v float64) float64 {
	return math.Round(v*metricsRoundingFactor) / metricsRoundingFactor
}

// computeMetrics computes the aggregate quality metrics for a completed
// packing run (spec §4.6). usableVolume is clamped to at least 1 so an
// empty or negative usable region never divides by zero.
func computeMetrics(totalBoxes int, placed []placedBox, usableVolume float64) Metrics {
	if usableVolume < 1 {
		usableVolume = 1
	}

	var usedVolume float64
	for _, p := range placed {
		usedVolume += p.placedLength * p.placedWidth * p.placedHeight
	}

	usedRatio := usedVolume / usableVolume
	if usedRatio > 1 {
		usedRatio = 1
	}
	freeRatio := 1 - usedRatio

	fragmentation := fragmentationScore(placed, usedVolume)

	return Metrics{
		TotalBoxes:         totalBoxes,
		PlacedBoxes:        len(placed),
		UsedVolumeRatio:    round4(usedRatio),
		FreeVolumeRatio:    round4(freeRatio),
		FragmentationScore: round4(fragmentation),
	}
}

// fragmentationScore computes 1 - used/boundingVolume over the axis-aligned
// bounding box of all placements; 1.0 when nothing was placed, 0 when the
// bounding box is degenerate (spec §4.6).
func fragmentationScore(placed []placedBox, usedVolume float64) float64 {
	if len(placed) == 0 {
		return 1.0
	}

	minX, maxX := placed[0].placement.X, placed[0].xEnd()
	minY, maxY := placed[0].placement.Y, placed[0].yEnd()
	minZ, maxZ := placed[0].placement.Z, placed[0].zEnd()

	for _, p := range placed[1:] {
		minX, maxX = math.Min(minX, p.placement.X), math.Max(maxX, p.xEnd())
		minY, maxY = math.Min(minY, p.placement.Y), math.Max(maxY, p.yEnd())
		minZ, maxZ = math.Min(minZ, p.placement.Z), math.Max(maxZ, p.zEnd())
	}

	boundingVolume := (maxX - minX) * (maxY - minY) * (maxZ - minZ)
	if boundingVolume <= 0 {
		return 0
	}
	return 1 - usedVolume/boundingVolume
}
