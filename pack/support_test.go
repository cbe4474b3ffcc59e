package pack

import "testing"

func makePlaced(id string, x, y, z, l, w, h float64) placedBox {
	return placedBox{
		box:          Box{ID: id, Weight: 1},
		placement:    Placement{BoxID: id, X: x, Y: y, Z: z},
		placedLength: l, placedWidth: w, placedHeight: h,
	}
}

func TestAnalyzeSupport_OnFloorIsFullySupported(t *testing.T) {
	got := analyzeSupport(0, 0, 0, 10, 10, nil, 0, 0)
	if got.ratio != 1 {
		t.Errorf("floor ratio = %v, want 1", got.ratio)
	}
	if got.supporters != nil {
		t.Errorf("floor placement should report no supporters, got %v", got.supporters)
	}
}

func TestAnalyzeSupport_FullyCoveredByOneSupporter(t *testing.T) {
	under := makePlaced("under", 0, 0, 0, 10, 10, 5)
	got := analyzeSupport(0, 0, 5, 10, 10, []placedBox{under}, 0, 0)
	if got.ratio != 1 {
		t.Errorf("ratio = %v, want 1", got.ratio)
	}
	if len(got.supporters) != 1 {
		t.Fatalf("expected one supporter, got %d", len(got.supporters))
	}
}

func TestAnalyzeSupport_PartialOverlapGivesPartialRatio(t *testing.T) {
	under := makePlaced("under", 0, 0, 0, 5, 10, 5)
	got := analyzeSupport(0, 0, 5, 10, 10, []placedBox{under}, 0, 0)
	if got.ratio != 0.5 {
		t.Errorf("ratio = %v, want 0.5", got.ratio)
	}
}

func TestAnalyzeSupport_WrongHeightDoesNotSupport(t *testing.T) {
	under := makePlaced("under", 0, 0, 0, 10, 10, 3)
	got := analyzeSupport(0, 0, 5, 10, 10, []placedBox{under}, 0, 0)
	if got.ratio != 0 {
		t.Errorf("ratio = %v, want 0 (candidate floats above supporter top)", got.ratio)
	}
}

func TestAnalyzeSupport_PaddingShiftsSupporterTop(t *testing.T) {
	under := makePlaced("under", 0, 0, 0, 10, 10, 4)
	got := analyzeSupport(0, 0, 5, 10, 10, []placedBox{under}, 0, 1)
	if got.ratio != 1 {
		t.Errorf("padded supporter top should still register as support, ratio = %v", got.ratio)
	}
}

func TestCheckFragility(t *testing.T) {
	fragileSupporter := placedBox{box: Box{ID: "f", Fragility: Fragile}}
	normalSupporter := placedBox{box: Box{ID: "n", Fragility: Normal}}
	robustSupporter := placedBox{box: Box{ID: "r", Fragility: Robust}}

	if !checkFragility(5, []placedBox{fragileSupporter}) {
		t.Error("5kg on a fragile supporter should be allowed (at the limit)")
	}
	if checkFragility(5.1, []placedBox{fragileSupporter}) {
		t.Error("over 5kg on a fragile supporter should be rejected")
	}
	if checkFragility(15.1, []placedBox{normalSupporter}) {
		t.Error("over 15kg on a normal supporter should be rejected")
	}
	if !checkFragility(1000, []placedBox{robustSupporter}) {
		t.Error("robust supporters have no fixed fragility ceiling")
	}
}

func TestCheckLoad_RespectsDeclaredLimit(t *testing.T) {
	limit := 10.0
	supportBox := Box{ID: "s", MaxSupportedLoad: &limit}
	supporter := makePlaced("s", 0, 0, 0, 10, 10, 5)
	boxesByID := map[string]Box{"s": supportBox}

	if !checkLoad(10, []placedBox{supporter}, []placedBox{supporter}, boxesByID) {
		t.Error("load at exactly the limit should be allowed")
	}
	if checkLoad(10.1, []placedBox{supporter}, []placedBox{supporter}, boxesByID) {
		t.Error("load over the limit should be rejected")
	}
}

func TestCheckLoad_AccumulatesExistingLoadAboveSupporter(t *testing.T) {
	limit := 10.0
	supportBox := Box{ID: "s", MaxSupportedLoad: &limit}
	supporter := makePlaced("s", 0, 0, 0, 10, 10, 5)
	existingOnTop := makePlaced("e", 0, 0, 5, 10, 10, 2)
	existingOnTop.box.Weight = 6
	boxesByID := map[string]Box{"s": supportBox}

	placed := []placedBox{supporter, existingOnTop}
	if !checkLoad(4, []placedBox{supporter}, placed, boxesByID) {
		t.Error("6kg existing + 4kg candidate = 10kg, exactly the limit, should be allowed")
	}
	if checkLoad(4.1, []placedBox{supporter}, placed, boxesByID) {
		t.Error("6kg existing + 4.1kg candidate exceeds the limit, should be rejected")
	}
}
