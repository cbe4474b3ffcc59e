package pack

import "testing"

func TestCollides_SeparatedOnEachAxis(t *testing.T) {
	other := placedBox{
		box:          Box{ID: "a"},
		placement:    Placement{X: 10, Y: 10, Z: 10},
		placedLength: 10, placedWidth: 10, placedHeight: 10,
	}

	tests := []struct {
		name           string
		x, y, z        float64
		l, w, h, pad   float64
		wantCollision  bool
	}{
		{"far away on x", 0, 10, 10, 5, 10, 10, 0, false},
		{"overlapping", 15, 15, 15, 10, 10, 10, 0, true},
		{"touching with zero padding does not collide", 0, 10, 10, 10, 10, 10, 0, false},
		{"touching with positive padding collides", 0, 10, 10, 10, 10, 10, 1, true},
		{"separated on y only", 10, 0, 10, 10, 5, 10, 0, false},
		{"separated on z only", 10, 10, 0, 10, 10, 5, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collides(tc.x, tc.y, tc.z, tc.l, tc.w, tc.h, tc.pad, other)
			if got != tc.wantCollision {
				t.Errorf("collides() = %v, want %v", got, tc.wantCollision)
			}
		})
	}
}

func TestFootprintOverlapArea(t *testing.T) {
	a := placedBox{placement: Placement{X: 0, Y: 0}, placedLength: 10, placedWidth: 10}.footprint()
	b := placedBox{placement: Placement{X: 5, Y: 5}, placedLength: 10, placedWidth: 10}.footprint()
	c := placedBox{placement: Placement{X: 20, Y: 20}, placedLength: 10, placedWidth: 10}.footprint()

	if got := footprintOverlapArea(a, b); got != 25 {
		t.Errorf("overlap area = %v, want 25", got)
	}
	if got := footprintOverlapArea(a, c); got != 0 {
		t.Errorf("disjoint overlap area = %v, want 0", got)
	}
}

func TestIntersectsRoundedCorner_ZeroRadiusNeverExcludes(t *testing.T) {
	if intersectsRoundedCorner(0, 0, 5, 5, 100, 100, 0, 0) {
		t.Error("zero radius should never exclude any position")
	}
}

func TestIntersectsRoundedCorner_CornerBoxExcluded(t *testing.T) {
	// A small box tucked right into the bottom-left corner, well inside the
	// square the arc of radius 10 carves out, should be excluded.
	if !intersectsRoundedCorner(0, 0, 3, 3, 100, 100, 10, 0) {
		t.Error("box flush with a rounded corner should intersect the exclusion zone")
	}
}

func TestIntersectsRoundedCorner_CenterBoxNotExcluded(t *testing.T) {
	if intersectsRoundedCorner(40, 40, 20, 20, 100, 100, 10, 0) {
		t.Error("box near the center should not intersect any corner exclusion zone")
	}
}

func TestIntersectsRoundedCorner_InsideArcNotExcluded(t *testing.T) {
	// Sits in the corner's outer square, but close enough to the arc center
	// (radius 10, centered at (10, 10)) that it falls within the rounded
	// sweep rather than the carved-out exclusion wedge.
	if intersectsRoundedCorner(8, 8, 1, 1, 100, 100, 10, 0) {
		t.Error("box within the corner arc radius should not be excluded")
	}
}
