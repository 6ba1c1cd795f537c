package facade

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/facadeplan/pkg/facade/layout"
	"github.com/matzehuels/facadeplan/pkg/geom"
)

// MaxFaces is the number of footprint edges that are planned.
const MaxFaces = 4

// Direction names the side of the building a face looks out to.
type Direction uint8

// Face directions in footprint edge order.
const (
	Back Direction = iota
	Right
	Front
	Left
)

func (d Direction) String() string {
	switch d {
	case Back:
		return "back"
	case Right:
		return "right"
	case Front:
		return "front"
	case Left:
		return "left"
	}
	return "unknown"
}

// Facade is the planned layout of one face.
type Facade struct {
	Index     int
	Direction Direction
	Width     float64
	Slots     Slots
	Heights   Heights
	Layout    *layout.Vertical
}

// Result is a planned building.
type Result struct {
	ID     string
	Height float64 // after clamping
	Config BuildingConfig
	Faces  []Facade
}

// Planner lays out the facades of a building footprint.
//
// A Planner owns its random source and is not safe for concurrent use.
// Planners with the same seed produce identical layouts.
type Planner struct {
	rng      *rand.Rand
	registry *Registry
	sizes    SizeTable
	logger   *log.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithSeed seeds the random source used for slot order and constructor choice.
func WithSeed(seed uint64) Option {
	return func(p *Planner) { p.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// WithRegistry sets the panel constructors.
func WithRegistry(r *Registry) Option {
	return func(p *Planner) { p.registry = r }
}

// WithSizes sets the panel width table.
func WithSizes(t SizeTable) Option {
	return func(p *Planner) { p.sizes = t }
}

// WithLogger sets the logger. Plans are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// NewPlanner returns a planner using the default registry and size table.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		registry: DefaultRegistry(),
		sizes:    DefaultSizes(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		seed := uint64(time.Now().UnixNano())
		p.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
	return p
}

// Plan lays out every face of footprint. The config is copied, defaulted
// and clamped to MaxBuildingHeight before validation.
func (p *Planner) Plan(footprint geom.Polygon, cfg BuildingConfig) (*Result, error) {
	if err := footprint.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults().Clamped()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	faces := len(footprint)
	if faces > MaxFaces {
		p.logger.Warn("footprint has more edges than faces; extra edges are not planned",
			"edges", faces, "planned", MaxFaces)
		faces = MaxFaces
	}

	res := &Result{ID: uuid.NewString(), Height: cfg.Height, Config: cfg}
	for i := range faces {
		edge := footprint.Edge(i)
		heights := SolveHeights(cfg)
		slots := DivideFacade(edge.Width, edge.LeftConvex, edge.RightConvex, p.sizes, p.rng)
		dir := Direction(i)

		root := &layout.Vertical{}
		shadow, err := p.construct(Request{
			Kind:     ShadowWall,
			Width:    math.Max(0, edge.Width-ShadowWallOffset),
			Height:   math.Max(0, cfg.Height-ShadowWallOffset),
			Position: NoLeftRight,
		})
		if err != nil {
			return nil, err
		}
		shadow.Background = true
		root.Add(shadow)

		ctx := NewBuildContext(cfg, heights)
		var body layout.Node
		if dir == Front {
			body, err = p.PlanEntranceFacade(slots, ctx)
		} else {
			body, err = p.PlanNormalFacade(slots, ctx)
		}
		if err != nil {
			return nil, err
		}
		root.Add(body)

		p.logger.Debug("planned face",
			"face", i, "direction", dir, "width", edge.Width,
			"slots", len(slots.Sizes), "remainder", slots.Remainder,
			"floor_height", heights.Floor, "lower_height", heights.Lower, "upper_height", heights.Upper)

		res.Faces = append(res.Faces, Facade{
			Index:     i,
			Direction: dir,
			Width:     edge.Width,
			Slots:     slots,
			Heights:   heights,
			Layout:    root,
		})
	}
	return res, nil
}

// PlanNormalFacade builds a face as one column spanning every slot.
func (p *Planner) PlanNormalFacade(s Slots, ctx BuildContext) (layout.Node, error) {
	return p.BuildColumn(s, Column{From: 0, To: len(s.Sizes)}, ctx)
}

// EntranceIndex returns the slot that holds the door of an entrance face.
func EntranceIndex(slotCount int) int { return (slotCount - 1) / 2 }

// PlanEntranceFacade builds a face as left, entrance and right columns side
// by side. Empty side columns are left out and a face without slots falls
// back to a normal facade.
func (p *Planner) PlanEntranceFacade(s Slots, ctx BuildContext) (layout.Node, error) {
	n := len(s.Sizes)
	if n == 0 {
		return p.PlanNormalFacade(s, ctx)
	}
	idx := EntranceIndex(n)
	row := &layout.Horizontal{}
	for _, col := range []Column{
		{From: 0, To: idx},
		{From: idx, To: idx + 1, Entrance: true},
		{From: idx + 1, To: n},
	} {
		if col.From == col.To {
			continue
		}
		v, err := p.BuildColumn(s, col, ctx)
		if err != nil {
			return nil, err
		}
		row.Add(v)
	}
	return row, nil
}

// construct builds one element, scaling the requested size by the payload.
func (p *Planner) construct(req Request) (*layout.Element, error) {
	payload, err := p.registry.build(req, p.rng)
	if err != nil {
		return nil, err
	}
	return &layout.Element{
		Width:   req.Width * payload.WidthScale(),
		Height:  req.Height * payload.HeightScale(),
		Payload: payload,
	}, nil
}
