package pack

import "testing"

func TestComputeMetrics_NothingPlaced(t *testing.T) {
	m := computeMetrics(3, nil, 1000)
	if m.TotalBoxes != 3 || m.PlacedBoxes != 0 {
		t.Fatalf("got %+v", m)
	}
	if m.UsedVolumeRatio != 0 || m.FreeVolumeRatio != 1 {
		t.Errorf("empty result should have 0 used / 1 free, got %+v", m)
	}
	if m.FragmentationScore != 1 {
		t.Errorf("empty result should have fragmentation 1, got %v", m.FragmentationScore)
	}
}

func TestComputeMetrics_SingleBoxFillsBoundingVolumeExactly(t *testing.T) {
	placed := []placedBox{makePlaced("a", 0, 0, 0, 10, 10, 10)}
	m := computeMetrics(1, placed, 2000)
	if m.UsedVolumeRatio != 0.5 {
		t.Errorf("used ratio = %v, want 0.5", m.UsedVolumeRatio)
	}
	if m.FreeVolumeRatio != 0.5 {
		t.Errorf("free ratio = %v, want 0.5", m.FreeVolumeRatio)
	}
	if m.FragmentationScore != 0 {
		t.Errorf("a single box's bounding box equals its own volume, fragmentation should be 0, got %v", m.FragmentationScore)
	}
}

func TestComputeMetrics_UsedVolumeRatioClampedToOne(t *testing.T) {
	placed := []placedBox{makePlaced("a", 0, 0, 0, 10, 10, 10)}
	m := computeMetrics(1, placed, 1) // degenerate usable volume, smaller than used
	if m.UsedVolumeRatio != 1 {
		t.Errorf("used ratio should clamp to 1, got %v", m.UsedVolumeRatio)
	}
	if m.FreeVolumeRatio != 0 {
		t.Errorf("free ratio should be 0 once used is clamped, got %v", m.FreeVolumeRatio)
	}
}

func TestFragmentationScore_SpreadOutBoxesScoreHigher(t *testing.T) {
	tight := []placedBox{
		makePlaced("a", 0, 0, 0, 10, 10, 10),
		makePlaced("b", 10, 0, 0, 10, 10, 10),
	}
	spread := []placedBox{
		makePlaced("a", 0, 0, 0, 10, 10, 10),
		makePlaced("b", 90, 0, 0, 10, 10, 10),
	}
	usedVolume := 2000.0
	tightScore := fragmentationScore(tight, usedVolume)
	spreadScore := fragmentationScore(spread, usedVolume)
	if !(spreadScore > tightScore) {
		t.Errorf("a larger bounding box around the same used volume should fragment more: tight=%v spread=%v", tightScore, spreadScore)
	}
}

func TestRound4(t *testing.T) {
	if got := round4(0.123456); got != 0.1235 {
		t.Errorf("round4(0.123456) = %v, want 0.1235", got)
	}
	if got := round4(1.0/3.0); got != 0.3333 {
		t.Errorf("round4(1/3) = %v, want 0.3333", got)
	}
}
