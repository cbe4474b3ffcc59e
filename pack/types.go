package pack

// Fragility classifies how delicate a box is. Fragile boxes cannot support
// heavy boxes on top of them; see checkFragility.
type Fragility string

const (
	Robust  Fragility = "robust"
	Normal  Fragility = "normal"
	Fragile Fragility = "fragile"
)

// defaultMaxLoad returns the default max_supported_load (kg) for a box that
// did not declare one explicitly, keyed by fragility (spec §3).
func defaultMaxLoad(f Fragility) float64 {
	switch f {
	case Robust:
		return 50.0
	case Fragile:
		return 5.0
	default:
		return 20.0
	}
}

// AccessFrequency describes how often the owner expects to retrieve a box.
type AccessFrequency string

const (
	Rare      AccessFrequency = "rare"
	Sometimes AccessFrequency = "sometimes"
	Often     AccessFrequency = "often"
)

// Priority distinguishes boxes that must be placed from boxes the engine may
// leave unplaced under space pressure.
type Priority string

const (
	MustFit  Priority = "must_fit"
	Optional Priority = "optional"
)

// Strategy selects the per-orientation scoring rule used during candidate
// position selection (spec §4.4).
type Strategy string

const (
	MaximizeVolume Strategy = "maximize_volume"
	MinimizeHoles  Strategy = "minimize_holes"
)

// Axis is one of the three intrinsic box dimensions, used as a label in an
// Orientation to say which intrinsic dimension aligns with which container
// axis.
type Axis string

const (
	AxisLength Axis = "length"
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

// Container is the rectangular cavity boxes are packed into (the "bed").
// All dimensions are centimetres. CornerRadius is the radius of the four
// rounded interior corners; zero means square corners.
type Container struct {
	Length       float64
	Width        float64
	Height       float64
	Margin       float64
	CornerRadius float64
}

// Box is an input item to be packed. MaxSupportedLoad is a pointer so the
// caller can distinguish "not specified" (apply the fragility default, see
// defaultMaxLoad) from an explicit zero.
type Box struct {
	ID               string
	Name             string
	Length           float64
	Width            float64
	Height           float64
	Weight           float64
	Fragility        Fragility
	AccessFrequency  AccessFrequency
	Priority         Priority
	RotateX          bool
	RotateY          bool
	RotateZ          bool
	MaxSupportedLoad *float64
}

// maxSupportedLoad resolves the box's effective load limit: the explicit
// value if set, otherwise the fragility-keyed default.
func (b Box) maxSupportedLoad() float64 {
	if b.MaxSupportedLoad != nil {
		return *b.MaxSupportedLoad
	}
	return defaultMaxLoad(b.Fragility)
}

// Volume returns the box's intrinsic (unrotated) volume.
func (b Box) Volume() float64 {
	return b.Length * b.Width * b.Height
}

// Settings carries user-tunable packing preferences.
type Settings struct {
	Strategy                Strategy
	AccessibilityPreference float64
	Padding                 float64
	ExtraMargin             float64
}

// Orientation records which intrinsic box dimension (Axis) is aligned with
// each container axis. LengthAxis, WidthAxis, and HeightAxis are always a
// permutation of {AxisLength, AxisWidth, AxisHeight}.
type Orientation struct {
	LengthAxis Axis
	WidthAxis  Axis
	HeightAxis Axis
}

// DefaultOrientation is the identity orientation: no rotation.
func DefaultOrientation() Orientation {
	return Orientation{LengthAxis: AxisLength, WidthAxis: AxisWidth, HeightAxis: AxisHeight}
}

// Short returns a three-letter abbreviation of the orientation (e.g. "lwh"),
// used by the boundary layer as the wire-level orientation of a placement.
func (o Orientation) Short() string {
	return string(o.LengthAxis[0]) + string(o.WidthAxis[0]) + string(o.HeightAxis[0])
}

// Placement is where and how a box ended up: position of its origin corner
// (x = along length, y = along width, z = vertical; all measured from the
// container's origin, so the usable region starts at the total margin on x
// and y) plus the orientation that produced its placed dimensions.
type Placement struct {
	BoxID       string
	X           float64
	Y           float64
	Z           float64
	Orientation Orientation
}

// Metrics summarizes the quality of a completed packing run (spec §4.6).
type Metrics struct {
	TotalBoxes         int
	PlacedBoxes        int
	UsedVolumeRatio    float64
	FreeVolumeRatio    float64
	FragmentationScore float64
}

// Result is the full output of Optimize.
type Result struct {
	Placements     []Placement
	UnplacedBoxIDs []string
	Metrics        Metrics
}

// placedBox is the engine-internal record of a committed placement: the
// input box, its placement, and its dimensions after orientation was
// applied.
type placedBox struct {
	box           Box
	placement     Placement
	placedLength  float64
	placedWidth   float64
	placedHeight  float64
}

func (p placedBox) xEnd() float64 { return p.placement.X + p.placedLength }
func (p placedBox) yEnd() float64 { return p.placement.Y + p.placedWidth }
func (p placedBox) zEnd() float64 { return p.placement.Z + p.placedHeight }

// usableRegion describes the axis-aligned cuboid boxes may be placed in:
// the container shrunk on all four lateral sides by the total margin, full
// vertical extent.
type usableRegion struct {
	x, y, z          float64
	length, width, height float64
}

func (r usableRegion) xEnd() float64 { return r.x + r.length }
func (r usableRegion) yEnd() float64 { return r.y + r.width }
func (r usableRegion) zEnd() float64 { return r.z + r.height }

func (r usableRegion) volume() float64 { return r.length * r.width * r.height }
