package facade

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/facadeplan/pkg/errors"
	"github.com/matzehuels/facadeplan/pkg/facade/layout"
)

// Layout constants, in metres.
const (
	MaxBuildingHeight    = 100.0
	MinFloorHeight       = 2.75
	MaxFloorHeight       = 3.25
	FloorHeightStep      = 0.05
	SmallWallHeight      = 1.0
	DepressionWallHeight = 1.0
	SmallWindowHeight    = 1.5
	ConcaveBuffer        = 2.0
	ShadowWallOffset     = 0.65
	EntranceWindowHeight = 2.5
	SocleHeight          = 0.3
	SocleTopHeight       = 0.05
)

// PanelSize names a panel width class.
type PanelSize uint8

// Narrow is the only width class in the default table.
const Narrow PanelSize = iota

// SizeTable maps width classes to panel widths.
type SizeTable map[PanelSize]float64

// DefaultSizes returns the width table used when none is configured.
func DefaultSizes() SizeTable { return SizeTable{Narrow: 2.5} }

// sizes returns the table keys in ascending order.
func (t SizeTable) sizes() []PanelSize {
	keys := make([]PanelSize, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Width returns the total width of slots.
func (t SizeTable) Width(slots []PanelSize) float64 {
	var sum float64
	for _, s := range slots {
		sum += t[s]
	}
	return sum
}

// PanelKind identifies what a band element depicts.
type PanelKind uint8

// Panel kinds. KindNone is the zero value and is never constructed.
const (
	KindNone PanelKind = iota

	ShadowWall
	BoundaryWall

	ApartmentWall
	ApartmentWindow
	ApartmentEntrance

	OfficeFullWindow
	OfficeSpandrelWindow
	OfficeEntrance

	CommercialFullWindow
	CommercialSmallWindow
	CommercialWallWithFrame
	CommercialDepressionWall
	CommercialEntrance

	HouseWall
	HouseWindow
	HouseEntrance

	FactorySocle
	FactorySocleTop
	FactoryWall
	FactoryWindow
	FactoryWallOrWindow
	FactoryEntrance

	kindCount
)

var kindInfo = [kindCount]struct {
	name  string
	owner BuildingType
}{
	KindNone:                 {"none", 0},
	ShadowWall:               {"shadow-wall", ComplexBuilding},
	BoundaryWall:             {"boundary-wall", ComplexBuilding},
	ApartmentWall:            {"apartment-wall", Apartment},
	ApartmentWindow:          {"apartment-window", Apartment},
	ApartmentEntrance:        {"apartment-entrance", Apartment},
	OfficeFullWindow:         {"office-full-window", Office},
	OfficeSpandrelWindow:     {"office-spandrel-window", Office},
	OfficeEntrance:           {"office-entrance", Office},
	CommercialFullWindow:     {"commercial-full-window", Commercial},
	CommercialSmallWindow:    {"commercial-small-window", Commercial},
	CommercialWallWithFrame:  {"commercial-wall-with-frame", Commercial},
	CommercialDepressionWall: {"commercial-depression-wall", Commercial},
	CommercialEntrance:       {"commercial-entrance", Commercial},
	HouseWall:                {"house-wall", House},
	HouseWindow:              {"house-window", House},
	HouseEntrance:            {"house-entrance", House},
	FactorySocle:             {"factory-socle", Factory},
	FactorySocleTop:          {"factory-socle-top", Factory},
	FactoryWall:              {"factory-wall", Factory},
	FactoryWindow:            {"factory-window", Factory},
	FactoryWallOrWindow:      {"factory-wall-or-window", Factory},
	FactoryEntrance:          {"factory-entrance", Factory},
}

// String returns the kebab-case kind name.
func (k PanelKind) String() string {
	if k < kindCount {
		return kindInfo[k].name
	}
	return "unknown"
}

// Owner returns the building type the kind belongs to.
func (k PanelKind) Owner() BuildingType {
	if k < kindCount {
		return kindInfo[k].owner
	}
	return 0
}

// Kinds returns every constructible kind.
func Kinds() []PanelKind {
	out := make([]PanelKind, 0, kindCount-1)
	for k := KindNone + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Position tells a constructor which neighbours a panel has within its row.
type Position uint8

// Row positions.
const (
	Middle Position = iota
	NoLeft
	NoRight
	NoLeftRight
)

func (p Position) String() string {
	switch p {
	case NoLeft:
		return "no-left"
	case NoRight:
		return "no-right"
	case NoLeftRight:
		return "no-left-right"
	}
	return "middle"
}

// positionOf returns the position of slot i in a facade of n slots.
func positionOf(i, n int) Position {
	switch {
	case n <= 1:
		return NoLeftRight
	case i == 0:
		return NoLeft
	case i == n-1:
		return NoRight
	}
	return Middle
}

// Request is what a constructor is asked to build.
type Request struct {
	Kind     PanelKind
	Width    float64
	Height   float64
	Position Position
}

// Constructor builds the payload for one panel.
type Constructor func(Request) layout.Payload

// Registry maps panel kinds to their constructors.
type Registry struct {
	constructors map[PanelKind][]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[PanelKind][]Constructor)}
}

// Register appends constructors for kind. When a kind has several,
// one is picked uniformly at random per panel.
func (r *Registry) Register(kind PanelKind, cs ...Constructor) {
	r.constructors[kind] = append(r.constructors[kind], cs...)
}

// Replace swaps the constructors registered for kind.
func (r *Registry) Replace(kind PanelKind, cs ...Constructor) {
	r.constructors[kind] = slices.Clone(cs)
}

// Has reports whether kind has at least one constructor.
func (r *Registry) Has(kind PanelKind) bool { return len(r.constructors[kind]) > 0 }

func (r *Registry) build(req Request, rng *rand.Rand) (layout.Payload, error) {
	cs := r.constructors[req.Kind]
	switch len(cs) {
	case 0:
		return nil, errors.New(errors.ErrCodeInternal, "no constructor registered for %s", req.Kind)
	case 1:
		return cs[0](req), nil
	}
	return cs[rng.IntN(len(cs))](req), nil
}

// Panel is the payload produced by DefaultRegistry.
type Panel struct {
	Kind     PanelKind
	Variant  int
	Position Position
}

func (Panel) WidthScale() float64  { return 1 }
func (Panel) HeightScale() float64 { return 1 }

// PanelConstructor returns a constructor that yields Panel payloads of the given variant.
func PanelConstructor(variant int) Constructor {
	return func(req Request) layout.Payload {
		return Panel{Kind: req.Kind, Variant: variant, Position: req.Position}
	}
}

// Variants of FactoryWallOrWindow.
const (
	VariantWall   = 0
	VariantWindow = 1
)

// DefaultRegistry registers a Panel constructor for every kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range Kinds() {
		r.Register(k, PanelConstructor(0))
	}
	r.Register(FactoryWallOrWindow, PanelConstructor(VariantWindow))
	return r
}
