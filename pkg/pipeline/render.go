package pipeline

import (
	"fmt"

	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/render"
	"github.com/matzehuels/facadeplan/pkg/render/sink"
	"github.com/matzehuels/facadeplan/pkg/render/tree"
)

// Plan lays out every face of the building described by opts.
func Plan(opts Options) (*facade.Result, error) {
	p := facade.NewPlanner(facade.WithSeed(opts.Seed), facade.WithLogger(opts.Logger))
	return p.Plan(opts.Footprint, opts.Building)
}

// Render generates output artifacts in the requested formats.
func Render(res *facade.Result, opts Options) (map[string][]byte, error) {
	var svg []byte
	elevation := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(res, buildSVGOptions(opts)...)
		}
		return svg
	}
	var dot string
	diagram := func() string {
		if dot == "" {
			dot = tree.ToDOT(res, tree.Options{Rows: opts.Rows})
		}
		return dot
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = elevation()
		case FormatJSON:
			data, err = sink.RenderJSON(res, sink.WithJSONSeed(opts.Seed))
		case FormatDOT:
			data = []byte(diagram())
		case FormatTree:
			data, err = tree.RenderSVG(diagram())
		case FormatPNG:
			data, err = render.ToPNG(elevation(), PNGZoom)
		case FormatPDF:
			data, err = render.ToPDF(elevation())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithScale(opts.Scale)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	return svgOpts
}
