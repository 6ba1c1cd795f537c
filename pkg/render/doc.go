// Package render holds the output side of facadeplan.
//
// The subpackages turn a planned building into documents:
//
//   - [sink]: facade elevations as SVG and panel placements as JSON
//   - [tree]: the layout tree itself as a Graphviz diagram
//
// [ToPDF] and [ToPNG] convert any SVG produced by those packages using the
// external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(res)
//	png, err := render.ToPNG(svg, 2.0)
package render
