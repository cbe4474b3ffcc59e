// Package render draws a completed packing plan as an SVG diagram: a
// top-down view (length x width) and a side elevation (length x height),
// one rectangle per placed box, colored by fragility. It is a
// visualization companion to the JSON plan pack.Optimize returns, not part
// of the core engine.
package render

import (
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/stacktics/underbed/pack"
)

// marginPx is the padding, in canvas units, around the drawn container.
const marginPx = 20.0

// elevationGap is the vertical gap, in canvas units, between the top-down
// view and the side elevation.
const elevationGap = 40.0

// Fill colors per fragility level, chosen for contrast against the white
// background and each other.
var (
	fragileFill = color.RGBA{R: 230, G: 126, B: 34, A: 255}  // orange
	robustFill  = color.RGBA{R: 39, G: 174, B: 96, A: 255}   // green
	normalFill  = color.RGBA{R: 52, G: 120, B: 219, A: 255}  // blue
)

// fragilityFill maps a box's fragility to a fill color for the diagram.
func fragilityFill(f pack.Fragility) canvas.Paint {
	switch f {
	case pack.Fragile:
		return canvas.Paint{Color: fragileFill}
	case pack.Robust:
		return canvas.Paint{Color: robustFill}
	default:
		return canvas.Paint{Color: normalFill}
	}
}

// placedDims resolves a placement's placed (length, width, height) from its
// orientation and the box's intrinsic dimensions.
func placedDims(box pack.Box, o pack.Orientation) (length, width, height float64) {
	dim := map[pack.Axis]float64{
		pack.AxisLength: box.Length,
		pack.AxisWidth:  box.Width,
		pack.AxisHeight: box.Height,
	}
	return dim[o.LengthAxis], dim[o.WidthAxis], dim[o.HeightAxis]
}

// Plan bundles a container and the result of packing it, the minimum
// inputs SVG needs to draw a plan.
type Plan struct {
	Container pack.Container
	Boxes     map[string]pack.Box
	Result    pack.Result
}

// WriteSVG renders plan as an SVG document to w: a top-down view above a
// side elevation. Boxes are drawn as filled rectangles without text labels.
func WriteSVG(w io.Writer, plan Plan) error {
	width := plan.Container.Length + 2*marginPx
	height := 2*plan.Container.Width + elevationGap + plan.Container.Height + 2*marginPx

	svgRenderer := svg.New(w, width, height, nil)

	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	svgRenderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	outline := canvas.DefaultStyle
	outline.Fill = canvas.Paint{Color: canvas.Transparent}
	outline.Stroke = canvas.Paint{Color: canvas.Black}
	outline.StrokeWidth = 1.5

	topX, topY := marginPx, marginPx
	topOutline := canvas.Rectangle(plan.Container.Length, plan.Container.Width).Translate(topX, topY)
	svgRenderer.RenderPath(topOutline, outline, canvas.Identity)

	for _, p := range plan.Result.Placements {
		box, ok := plan.Boxes[p.BoxID]
		if !ok {
			continue
		}
		length, width, _ := placedDims(box, p.Orientation)

		style := canvas.DefaultStyle
		style.Fill = fragilityFill(box.Fragility)
		style.Stroke = canvas.Paint{Color: canvas.Black}
		style.StrokeWidth = 0.5

		box2D := canvas.Rectangle(length, width).Translate(topX+p.X, topY+p.Y)
		svgRenderer.RenderPath(box2D, style, canvas.Identity)
	}

	elevX, elevY := marginPx, marginPx+plan.Container.Width+elevationGap
	elevationOutline := canvas.Rectangle(plan.Container.Length, plan.Container.Height).Translate(elevX, elevY)
	svgRenderer.RenderPath(elevationOutline, outline, canvas.Identity)

	for _, p := range plan.Result.Placements {
		box, ok := plan.Boxes[p.BoxID]
		if !ok {
			continue
		}
		length, _, height := placedDims(box, p.Orientation)

		style := canvas.DefaultStyle
		style.Fill = fragilityFill(box.Fragility)
		style.Stroke = canvas.Paint{Color: canvas.Black}
		style.StrokeWidth = 0.5

		elevationBox := canvas.Rectangle(length, height).Translate(elevX+p.X, elevY+p.Z)
		svgRenderer.RenderPath(elevationBox, style, canvas.Identity)
	}

	return svgRenderer.Close()
}
