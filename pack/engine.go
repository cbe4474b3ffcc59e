package pack

// Optimize runs the full packing pipeline for the given container, boxes,
// and settings, and returns the placements it was able to commit, the IDs
// of boxes it could not place, and aggregate metrics (spec §4, §6).
//
// Optimize never errors: a box that cannot be placed is not a failure, it
// is recorded in Result.UnplacedBoxIDs and packing continues (spec §7).
// Callers are expected to have validated the request first; see Validate.
func Optimize(container Container, boxes []Box, settings Settings) Result {
	totalMargin := container.Margin + settings.ExtraMargin
	usableLength := container.Length - 2*totalMargin
	usableWidth := container.Width - 2*totalMargin
	usableHeight := container.Height

	if usableLength <= 0 || usableWidth <= 0 || usableHeight <= 0 {
		unplaced := make([]string, len(boxes))
		for i, b := range boxes {
			unplaced[i] = b.ID
		}
		return Result{
			Placements:     nil,
			UnplacedBoxIDs: unplaced,
			Metrics:        computeMetrics(len(boxes), nil, usableLength*usableWidth*usableHeight),
		}
	}

	usable := usableRegion{
		x: totalMargin, y: totalMargin, z: 0,
		length: usableLength, width: usableWidth, height: usableHeight,
	}

	boxesByID := make(map[string]Box, len(boxes))
	for _, b := range boxes {
		boxesByID[b.ID] = b
	}

	ordered := orderBoxes(boxes, settings.AccessibilityPreference)

	var placements []Placement
	var placed []placedBox
	var unplaced []string

	for _, box := range ordered {
		var (
			bestX, bestY, bestZ float64
			bestOrientation     Orientation
			bestLength, bestWidth, bestHeight float64
			bestScore           = -1.0
			found               bool
		)

		for _, dims := range orientationsFor(box) {
			if dims.length > usableLength || dims.width > usableWidth || dims.height > usableHeight {
				continue
			}

			pos, ok := bestPositionForOrientation(
				box, dims, placed, boxesByID, usable,
				container.Length, container.Width, container.CornerRadius, totalMargin,
				settings.Padding, settings.Strategy,
			)
			if !ok {
				continue
			}

			score := crossOrientationScore(pos.x, pos.y, pos.z)
			if !found || score < bestScore {
				found = true
				bestScore = score
				bestX, bestY, bestZ = pos.x, pos.y, pos.z
				bestOrientation = dims.orientation
				bestLength, bestWidth, bestHeight = dims.length, dims.width, dims.height
			}
		}

		if !found {
			unplaced = append(unplaced, box.ID)
			continue
		}

		placement := Placement{
			BoxID:       box.ID,
			X:           bestX,
			Y:           bestY,
			Z:           bestZ,
			Orientation: bestOrientation,
		}
		placements = append(placements, placement)
		placed = append(placed, placedBox{
			box:          box,
			placement:    placement,
			placedLength: bestLength,
			placedWidth:  bestWidth,
			placedHeight: bestHeight,
		})
	}

	return Result{
		Placements:     placements,
		UnplacedBoxIDs: unplaced,
		Metrics:        computeMetrics(len(boxes), placed, usable.volume()),
	}
}
