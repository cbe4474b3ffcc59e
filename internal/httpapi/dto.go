package httpapi

import "github.com/stacktics/underbed/pack"

// ContainerDTO is the wire shape of the packing container ("bed").
type ContainerDTO struct {
	Length       float64 `json:"length" validate:"required,gt=0"`
	Width        float64 `json:"width" validate:"required,gt=0"`
	Height       float64 `json:"height" validate:"required,gt=0"`
	Margin       float64 `json:"margin" validate:"gte=0"`
	CornerRadius float64 `json:"corner_radius" validate:"gte=0"`
}

// BoxDTO is the wire shape of a single box to pack.
type BoxDTO struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name"`
	Length           float64  `json:"length" validate:"required,gt=0"`
	Width            float64  `json:"width" validate:"required,gt=0"`
	Height           float64  `json:"height" validate:"required,gt=0"`
	Weight           float64  `json:"weight" validate:"gte=0"`
	Fragility        string   `json:"fragility" validate:"omitempty,oneof=robust normal fragile"`
	AccessFrequency  string   `json:"access_frequency" validate:"omitempty,oneof=rare sometimes often"`
	Priority         string   `json:"priority" validate:"omitempty,oneof=must_fit optional"`
	RotateX          *bool    `json:"rotate_x"`
	RotateY          *bool    `json:"rotate_y"`
	RotateZ          *bool    `json:"rotate_z"`
	MaxSupportedLoad *float64 `json:"max_supported_load,omitempty" validate:"omitempty,gte=0"`
}

// SettingsDTO is the wire shape of caller-tunable packing preferences. Any
// field left at its zero value is filled from the server's configured
// defaults during conversion (see toDomainSettings).
type SettingsDTO struct {
	Strategy                string  `json:"strategy" validate:"omitempty,oneof=maximize_volume minimize_holes"`
	AccessibilityPreference float64 `json:"accessibility_preference" validate:"gte=0,lte=1"`
	Padding                 float64 `json:"padding" validate:"gte=0"`
	ExtraMargin             float64 `json:"extra_margin" validate:"gte=0"`
}

// OptimizeRequest is the body of POST /optimize.
type OptimizeRequest struct {
	Bed      ContainerDTO `json:"bed" validate:"required"`
	Boxes    []BoxDTO     `json:"boxes" validate:"required,min=1,dive"`
	Settings *SettingsDTO `json:"settings"`
}

// PlacementDTO is the wire shape of one committed placement.
type PlacementDTO struct {
	BoxID       string `json:"box_id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Orientation string  `json:"orientation"`
}

// MetricsDTO is the wire shape of the packing quality metrics.
type MetricsDTO struct {
	TotalBoxes         int     `json:"total_boxes"`
	PlacedBoxes        int     `json:"placed_boxes"`
	UsedVolumeRatio    float64 `json:"used_volume_ratio"`
	FreeVolumeRatio    float64 `json:"free_volume_ratio"`
	FragmentationScore float64 `json:"fragmentation_score"`
}

// OptimizeResponse is the body returned by a successful POST /optimize.
type OptimizeResponse struct {
	RequestID      string         `json:"request_id"`
	Placements     []PlacementDTO `json:"placements"`
	UnplacedBoxIDs []string       `json:"unplaced_box_ids"`
	Metrics        MetricsDTO     `json:"metrics"`
}

// FieldError is one entry in an ErrorResponse's Details list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorResponse is the shared error body shape for both validation (422) and
// domain (400) failures.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// toDomainContainer converts a ContainerDTO to pack.Container.
func toDomainContainer(c ContainerDTO) pack.Container {
	return pack.Container{
		Length:       c.Length,
		Width:        c.Width,
		Height:       c.Height,
		Margin:       c.Margin,
		CornerRadius: c.CornerRadius,
	}
}

// toDomainBoxes converts BoxDTOs to pack.Box. fragility, access_frequency,
// and priority default to Normal/Sometimes/MustFit when omitted — a
// boundary-layer convenience invented for this port, not a port of the
// Python prototype's __post_init__ (which only defaults max_supported_load;
// those three fields are required dataclass fields there).
//
// rotate_x/rotate_y/rotate_z default to true when omitted, matching the
// Python prototype's can_rotate_x/y/z: bool = True defaults
// (_examples/original_source/backend/app/models.py:59-61). A plain bool
// can't distinguish "omitted" from "explicitly false", so BoxDTO carries
// these as *bool.
func toDomainBoxes(dtos []BoxDTO) []pack.Box {
	boxes := make([]pack.Box, len(dtos))
	for i, d := range dtos {
		fragility := pack.Fragility(d.Fragility)
		if fragility == "" {
			fragility = pack.Normal
		}
		accessFrequency := pack.AccessFrequency(d.AccessFrequency)
		if accessFrequency == "" {
			accessFrequency = pack.Sometimes
		}
		priority := pack.Priority(d.Priority)
		if priority == "" {
			priority = pack.MustFit
		}

		boxes[i] = pack.Box{
			ID:               d.ID,
			Name:             d.Name,
			Length:           d.Length,
			Width:            d.Width,
			Height:           d.Height,
			Weight:           d.Weight,
			Fragility:        fragility,
			AccessFrequency:  accessFrequency,
			Priority:         priority,
			RotateX:          boolOrDefault(d.RotateX, true),
			RotateY:          boolOrDefault(d.RotateY, true),
			RotateZ:          boolOrDefault(d.RotateZ, true),
			MaxSupportedLoad: d.MaxSupportedLoad,
		}
	}
	return boxes
}

// boolOrDefault returns *b when non-nil, else def.
func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// toDomainSettings converts a SettingsDTO to pack.Settings, falling back to
// defaults for any field the request omitted.
func toDomainSettings(s *SettingsDTO, defaults pack.Settings) pack.Settings {
	if s == nil {
		return defaults
	}
	settings := defaults
	if s.Strategy != "" {
		settings.Strategy = pack.Strategy(s.Strategy)
	}
	if s.AccessibilityPreference != 0 {
		settings.AccessibilityPreference = s.AccessibilityPreference
	}
	if s.Padding != 0 {
		settings.Padding = s.Padding
	}
	if s.ExtraMargin != 0 {
		settings.ExtraMargin = s.ExtraMargin
	}
	return settings
}

// ToDomain converts a decoded OptimizeRequest to the pack domain types
// Optimize needs, filling any omitted setting from defaults. Exported so
// internal/mqttingest can share the same conversion the HTTP handler uses.
func ToDomain(req OptimizeRequest, defaults pack.Settings) (pack.Container, []pack.Box, pack.Settings) {
	return toDomainContainer(req.Bed), toDomainBoxes(req.Boxes), toDomainSettings(req.Settings, defaults)
}

// FromResult converts a pack.Result to the wire response shape. Exported for
// the same reason as ToDomain.
func FromResult(requestID string, result pack.Result) OptimizeResponse {
	return fromDomainResult(requestID, result)
}

// fromDomainResult converts a pack.Result to the wire response shape.
func fromDomainResult(requestID string, result pack.Result) OptimizeResponse {
	placements := make([]PlacementDTO, len(result.Placements))
	for i, p := range result.Placements {
		placements[i] = PlacementDTO{
			BoxID:       p.BoxID,
			X:           p.X,
			Y:           p.Y,
			Z:           p.Z,
			Orientation: p.Orientation.Short(),
		}
	}
	unplaced := result.UnplacedBoxIDs
	if unplaced == nil {
		unplaced = []string{}
	}
	return OptimizeResponse{
		RequestID:      requestID,
		Placements:     placements,
		UnplacedBoxIDs: unplaced,
		Metrics: MetricsDTO{
			TotalBoxes:         result.Metrics.TotalBoxes,
			PlacedBoxes:        result.Metrics.PlacedBoxes,
			UsedVolumeRatio:    result.Metrics.UsedVolumeRatio,
			FreeVolumeRatio:    result.Metrics.FreeVolumeRatio,
			FragmentationScore: result.Metrics.FragmentationScore,
		},
	}
}
