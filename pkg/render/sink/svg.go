package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/facadeplan/pkg/facade"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	gap    float64
	margin float64
	labels bool
}

// WithScale sets the number of SVG units per metre (default 20).
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithGap sets the horizontal space between faces, in metres (default 2).
func WithGap(g float64) SVGOption { return func(r *svgRenderer) { r.gap = g } }

// WithLabels writes the face direction below each elevation.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

var kindFill = map[facade.PanelKind]string{
	facade.ShadowWall:               "#2b2b2b",
	facade.BoundaryWall:             "#7a6a58",
	facade.ApartmentWall:            "#d9c7a7",
	facade.ApartmentWindow:          "#8fb8d8",
	facade.ApartmentEntrance:        "#8b5a2b",
	facade.OfficeFullWindow:         "#6fa3c7",
	facade.OfficeSpandrelWindow:     "#4a6f8a",
	facade.OfficeEntrance:           "#34495e",
	facade.CommercialFullWindow:     "#9fd3e6",
	facade.CommercialSmallWindow:    "#b7dbe8",
	facade.CommercialWallWithFrame:  "#c8b49a",
	facade.CommercialDepressionWall: "#9e8a72",
	facade.CommercialEntrance:       "#5d4037",
	facade.HouseWall:                "#e8d8b8",
	facade.HouseWindow:              "#a3c4dc",
	facade.HouseEntrance:            "#795548",
	facade.FactorySocle:             "#616161",
	facade.FactorySocleTop:          "#9e9e9e",
	facade.FactoryWall:              "#b0a18f",
	facade.FactoryWindow:            "#90a4ae",
	facade.FactoryEntrance:          "#455a64",
}

func fillFor(p PanelPlacement) string {
	if p.Kind == facade.FactoryWallOrWindow {
		if p.Variant == facade.VariantWindow {
			return kindFill[facade.FactoryWindow]
		}
		return kindFill[facade.FactoryWall]
	}
	if c, ok := kindFill[p.Kind]; ok {
		return c
	}
	return "#cccccc"
}

// RenderSVG draws every face of res as an elevation, left to right in face
// order. Panels are filled by kind; the shadow wall is drawn first, dimmed.
func RenderSVG(res *facade.Result, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 20, gap: 2, margin: 1}
	for _, opt := range opts {
		opt(&r)
	}
	faces := Resolve(res)

	var width, height float64
	for i, f := range faces {
		if i > 0 {
			width += r.gap
		}
		width += f.Width
		height = max(height, f.Height)
	}
	labelRoom := 0.0
	if r.labels {
		labelRoom = 1.5
	}
	totalW := (width + 2*r.margin) * r.scale
	totalH := (height + 2*r.margin + labelRoom) * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)

	x0 := r.margin
	for _, f := range faces {
		r.renderFace(&buf, f, x0, height)
		x0 += f.Width + r.gap
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderFace(buf *bytes.Buffer, f FacePlacement, x0, maxHeight float64) {
	fmt.Fprintf(buf, `  <g class="face" id="face-%d" data-direction="%s">`+"\n", f.Index, f.Direction)
	ground := r.margin + maxHeight
	for _, p := range f.Panels {
		x := (x0 + p.X) * r.scale
		y := (ground - p.Y - p.Height) * r.scale
		w, h := p.Width*r.scale, p.Height*r.scale
		opacity := "1"
		if p.Background {
			opacity = "0.35"
		}
		fmt.Fprintf(buf, `    <rect class="panel %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%s" stroke="#333" stroke-width="0.5"/>`+"\n",
			p.Kind, x, y, w, h, fillFor(p), opacity)
	}
	if r.labels {
		cx := (x0 + f.Width/2) * r.scale
		cy := (ground + 1) * r.scale
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="%.1f">%s</text>`+"\n",
			cx, cy, 0.6*r.scale, html.EscapeString(f.Direction.String()))
	}
	buf.WriteString("  </g>\n")
}
