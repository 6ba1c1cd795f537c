// Package config reads and writes building description files.
//
// A building file is TOML with three tables:
//
//	[building]
//	height = 30.0
//	type = "complex"
//	lower_type = "commercial"
//	upper_type = "office"
//	boundary_height = 15.0
//
//	[footprint]
//	points = [[0, 0], [10, 0], [10, 10], [0, 10]]
//
//	[render]
//	seed = 42
//	formats = ["svg", "json"]
//	scale = 20.0
//
// Omitted fields take the values of [Default]. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/facadeplan/pkg/errors"
	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/geom"
)

// File is a decoded building file.
type File struct {
	Building  facade.BuildingConfig `toml:"building"`
	Footprint Footprint             `toml:"footprint"`
	Render    Render                `toml:"render"`
}

// Footprint lists the outline points of the building, one [x, y] pair each.
type Footprint struct {
	Points [][]float64 `toml:"points"`
}

// Render holds output preferences.
type Render struct {
	Seed    uint64   `toml:"seed"`
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// Default render settings.
const (
	DefaultScale  = 20.0
	DefaultFormat = "svg"
)

// DefaultFootprint is a 10 by 10 square.
func DefaultFootprint() Footprint {
	return Footprint{Points: [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
}

// Default returns a 12 unit office building on a 10 by 10 square.
func Default() File {
	return File{
		Building:  facade.DefaultConfig(),
		Footprint: DefaultFootprint(),
		Render:    Render{Seed: 1, Formats: []string{DefaultFormat}, Scale: DefaultScale},
	}
}

// Polygon converts the footprint points.
func (f Footprint) Polygon() (geom.Polygon, error) {
	poly := make(geom.Polygon, 0, len(f.Points))
	for i, p := range f.Points {
		if len(p) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFootprint, "point %d has %d coordinates, want 2", i, len(p))
		}
		poly = append(poly, geom.Vec2{X: p[0], Y: p[1]})
	}
	return poly, poly.Validate()
}

// Load reads and validates the building file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "building file %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return f, nil
}

// Parse decodes a building file, fills defaults and validates the result.
func Parse(data []byte) (File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode building file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}

	f = f.withDefaults()
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) withDefaults() File {
	def := Default()
	if f.Building.Type == 0 {
		f.Building.Type = def.Building.Type
	}
	if f.Building.Height == 0 {
		f.Building.Height = def.Building.Height
	}
	f.Building = f.Building.WithDefaults()
	if len(f.Footprint.Points) == 0 {
		f.Footprint = def.Footprint
	}
	if len(f.Render.Formats) == 0 {
		f.Render.Formats = def.Render.Formats
	}
	if f.Render.Seed == 0 {
		f.Render.Seed = def.Render.Seed
	}
	if f.Render.Scale == 0 {
		f.Render.Scale = def.Render.Scale
	}
	return f
}

// Validate checks the building and footprint.
func (f File) Validate() error {
	if err := f.Building.Validate(); err != nil {
		return err
	}
	if _, err := f.Footprint.Polygon(); err != nil {
		return err
	}
	return errors.ValidatePositive("render scale", f.Render.Scale)
}

// Write encodes f as TOML.
func Write(w io.Writer, f File) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode building file")
	}
	return nil
}
