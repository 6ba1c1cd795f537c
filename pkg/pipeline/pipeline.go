// Package pipeline runs the plan → render pipeline shared by every
// facadeplan entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Plan: divide each footprint edge into panel slots and build its layout tree
//  2. Render: generate output in the requested formats (SVG, JSON, DOT, PNG, PDF)
//
// Planning is deterministic for a given building, footprint and seed, so both
// stages are cached under a hash of those inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Building:  facade.BuildingConfig{Height: 12, Type: facade.Office},
//	    Footprint: footprint,
//	    Formats:   []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facadeplan/pkg/cache"
	"github.com/matzehuels/facadeplan/pkg/config"
	"github.com/matzehuels/facadeplan/pkg/errors"
	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/geom"
)

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(1)

	// DefaultScale is the default number of SVG units per metre.
	DefaultScale = config.DefaultScale

	// PNGZoom is the rsvg-convert zoom factor used for PNG output.
	PNGZoom = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatTree = "tree" // layout tree diagram rendered by Graphviz
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatTree: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatTree {
		return "tree.svg"
	}
	return format
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Plan options
	Building  facade.BuildingConfig `json:"building"`
	Footprint geom.Polygon          `json:"footprint"`
	Seed      uint64                `json:"seed,omitempty"`
	Refresh   bool                  `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Rows    bool     `json:"rows,omitempty"` // collapse band rows in tree diagrams

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// FromFile builds pipeline options from a decoded building file.
func FromFile(f config.File) (Options, error) {
	poly, err := f.Footprint.Polygon()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Building:  f.Building,
		Footprint: poly,
		Seed:      f.Render.Seed,
		Formats:   append([]string(nil), f.Render.Formats...),
		Scale:     f.Render.Scale,
	}, nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the planned building. It is nil when every stage was served
	// from the cache.
	Plan *facade.Result

	// ID identifies the plan. It is stable across cached runs.
	ID string

	// InputHash is the content hash of the building and footprint.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Faces      int
	Panels     int
	PlanTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan identity came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormats([]string{format}, ValidFormats)
}

// ValidateAndSetDefaults checks the inputs and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPlan checks the footprint and building and applies plan defaults.
// The building is defaulted and clamped the same way the planner does it.
func (o *Options) ValidateForPlan() error {
	if len(o.Footprint) == 0 {
		return errors.New(errors.ErrCodeInvalidFootprint, "footprint is required")
	}
	if err := o.Footprint.Validate(); err != nil {
		return err
	}
	o.Building = o.Building.WithDefaults().Clamped()
	if err := o.Building.Validate(); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateFormats(o.Formats, ValidFormats); err != nil {
		return err
	}
	return errors.ValidatePositive("scale", o.Scale)
}

// InputHash returns the content hash of the building and footprint.
func (o *Options) InputHash() string {
	h, err := cache.HashJSON(struct {
		Building  facade.BuildingConfig `json:"building"`
		Footprint geom.Polygon          `json:"footprint"`
	}{o.Building, o.Footprint})
	if err != nil {
		return ""
	}
	return h
}

// PlanKeyOpts returns cache key options for planning.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{Seed: o.Seed}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Seed: o.Seed}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		opts.Scale = o.Scale
		opts.Labels = o.Labels
	case FormatDOT, FormatTree:
		opts.Rows = o.Rows
	}
	return opts
}
