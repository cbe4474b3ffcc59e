package pack

// orientedDims is one candidate (length, width, height, orientation) tuple
// produced by the orientation enumerator: the box's placed dimensions once
// Orientation is applied.
type orientedDims struct {
	length, width, height float64
	orientation           Orientation
}

// sixPermutations enumerates the six ways to assign the labels
// {length, width, height} to the three container axes, identity first.
var sixPermutations = [6][3]Axis{
	{AxisLength, AxisWidth, AxisHeight},
	{AxisLength, AxisHeight, AxisWidth},
	{AxisWidth, AxisLength, AxisHeight},
	{AxisWidth, AxisHeight, AxisLength},
	{AxisHeight, AxisLength, AxisWidth},
	{AxisHeight, AxisWidth, AxisLength},
}

// permissionOK reports whether the rotation flags on box permit the
// permutation (lAxis, wAxis, hAxis), per the conservative mapping in
// spec §4.1: the identity permutation is always allowed; for any other
// permutation, a planar (length<->width) relabeling requires can_rotate_z,
// and a height label drawn from/sent to width requires can_rotate_x, and a
// height label drawn from/sent to length requires can_rotate_y.
func permissionOK(box Box, lAxis, wAxis, hAxis Axis) bool {
	if lAxis == AxisLength && wAxis == AxisWidth && hAxis == AxisHeight {
		return true
	}

	allowed := true
	if lAxis != AxisLength || wAxis != AxisWidth {
		allowed = allowed && box.RotateZ
	}
	if hAxis != AxisHeight {
		if wAxis == AxisHeight || hAxis == AxisWidth {
			allowed = allowed && box.RotateX
		}
		if lAxis == AxisHeight || hAxis == AxisLength {
			allowed = allowed && box.RotateY
		}
	}
	return allowed
}

// orientationsFor returns the ordered, deduplicated set of placed-dimension
// tuples a box may be placed in, given its rotation flags (spec §4.1).
// Emitted in insertion order; tuples whose placed dimensions coincide with
// an already-accepted tuple (within cornerDedupeTolerance) are dropped,
// which collapses the redundant permutations a cube or any box with two
// equal dimensions would otherwise produce.
func orientationsFor(box Box) []orientedDims {
	dim := map[Axis]float64{
		AxisLength: box.Length,
		AxisWidth:  box.Width,
		AxisHeight: box.Height,
	}

	var out []orientedDims
	for _, perm := range sixPermutations {
		lAxis, wAxis, hAxis := perm[0], perm[1], perm[2]
		if !permissionOK(box, lAxis, wAxis, hAxis) {
			continue
		}

		l, w, h := dim[lAxis], dim[wAxis], dim[hAxis]
		if isDuplicateDims(out, l, w, h) {
			continue
		}
		out = append(out, orientedDims{
			length: l, width: w, height: h,
			orientation: Orientation{LengthAxis: lAxis, WidthAxis: wAxis, HeightAxis: hAxis},
		})
	}
	return out
}

func isDuplicateDims(existing []orientedDims, l, w, h float64) bool {
	for _, o := range existing {
		if absDiff(o.length, l) < cornerDedupeTolerance &&
			absDiff(o.width, w) < cornerDedupeTolerance &&
			absDiff(o.height, h) < cornerDedupeTolerance {
			return true
		}
	}
	return false
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
