package facade

import (
	"math"

	"github.com/matzehuels/facadeplan/pkg/errors"
	"github.com/matzehuels/facadeplan/pkg/facade/layout"
)

// minBandHeight is the smallest band a column may emit.
const minBandHeight = 0.0005

// BuildContext is the per-column planning state. Each column receives its
// own copy, so crossing the boundary in one column never leaks into another.
type BuildContext struct {
	Config          BuildingConfig
	Heights         Heights
	CrossedBoundary bool
}

// NewBuildContext returns a context with the boundary not yet crossed.
func NewBuildContext(cfg BuildingConfig, h Heights) BuildContext {
	return BuildContext{Config: cfg, Heights: h}
}

// ActiveType is the building type whose profile applies at the current height.
func (c BuildContext) ActiveType() BuildingType {
	if !c.Config.IsComplex() {
		return c.Config.Type
	}
	if c.CrossedBoundary {
		return c.Config.UpperType
	}
	return c.Config.LowerType
}

// Storey is the solved storey height for the current portion of the column.
func (c BuildContext) Storey() float64 {
	switch {
	case !c.Config.IsComplex():
		return c.Heights.Floor
	case c.CrossedBoundary:
		return c.Heights.Upper
	}
	return c.Heights.Lower
}

func (c BuildContext) boundaryPending() bool {
	return c.Config.IsComplex() && !c.CrossedBoundary && c.Config.BoundaryHeight < c.Config.Height
}

// Column selects the slot range [From, To) of a face. The entrance column
// gets a door in its ground band.
type Column struct {
	From, To int
	Entrance bool
}

// column accumulates the bands of one vertical column.
type column struct {
	p         *Planner
	ctx       BuildContext
	widths    []float64
	positions []Position
	index     []int // face slot index of each column slot
	slots     int   // slot count of the whole face
	entrance  float64
	v         *layout.Vertical
	current   float64
	remaining float64
	floors    map[BuildingType]int
}

// BuildColumn stacks the bands of one column from the ground to the roof.
// Every band is a row with one panel per slot. A face without slots is
// built as a single slot spanning its whole width.
func (p *Planner) BuildColumn(s Slots, col Column, ctx BuildContext) (*layout.Vertical, error) {
	c := &column{
		p:         p,
		ctx:       ctx,
		v:         &layout.Vertical{},
		remaining: round3(ctx.Config.Height),
		floors:    make(map[BuildingType]int),
		entrance:  EntranceHeight(ctx.Config, ctx.Heights),
	}
	if len(s.Sizes) == 0 {
		c.widths = []float64{s.Width}
		c.positions = []Position{NoLeftRight}
		c.index = []int{0}
		c.slots = 1
	} else {
		offset := s.Offset()
		c.slots = len(s.Sizes)
		for i := col.From; i < col.To; i++ {
			c.widths = append(c.widths, p.sizes[s.Sizes[i]]+offset)
			c.positions = append(c.positions, positionOf(i, c.slots))
			c.index = append(c.index, i)
		}
	}

	if err := c.ground(col.Entrance); err != nil {
		return nil, err
	}
	if err := c.transition(); err != nil {
		return nil, err
	}
	for c.remaining > 0 {
		if err := c.floor(); err != nil {
			return nil, err
		}
	}
	return c.v, nil
}

func (c *column) emit(kind PanelKind, h float64) error {
	return c.emitRow(func(int) PanelKind { return kind }, h)
}

// emitRow emits one band whose kind may differ per column slot.
func (c *column) emitRow(kindAt func(i int) PanelKind, h float64) error {
	h = round3(h)
	if h <= minBandHeight {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"%s band at %.3f has height %.4f", kindAt(0), c.current, h)
	}
	row := &layout.Horizontal{}
	for i, w := range c.widths {
		e, err := c.p.construct(Request{Kind: kindAt(i), Width: w, Height: h, Position: c.positions[i]})
		if err != nil {
			return err
		}
		row.Add(e)
	}
	c.v.Add(row)
	c.current = round3(c.current + h)
	c.remaining = round3(c.remaining - h)
	return nil
}

// ground emits the entrance band, split into socle bands or a door.
func (c *column) ground(entrance bool) error {
	prof, err := ProfileFor(c.ctx.ActiveType())
	if err != nil {
		return err
	}
	h := math.Min(c.entrance, c.remaining)
	if h <= 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry, "entrance height %.4f is not positive", h)
	}

	if entrance {
		if upper := round3(h - EntranceWindowHeight); upper > 0 {
			if err := c.emit(prof.Door, EntranceWindowHeight); err != nil {
				return err
			}
			return c.emit(prof.DoorUpper, upper)
		}
		return c.emit(prof.Door, h)
	}

	rest := h
	for _, b := range prof.Socle {
		if round3(rest-b.Height) <= 0 {
			break
		}
		if err := c.emit(b.Kind, b.Height); err != nil {
			return err
		}
		rest = round3(rest - b.Height)
	}
	if prof.GroundRow == nil {
		return c.emit(prof.Entrance, rest)
	}
	row := prof.GroundRow(c.slots)
	return c.emitRow(func(i int) PanelKind { return row[c.index[i]] }, rest)
}

// transition emits the profile's transition bands while each one fits below the roof.
func (c *column) transition() error {
	prof, err := ProfileFor(c.ctx.ActiveType())
	if err != nil {
		return err
	}
	for _, b := range prof.Transition {
		if c.remaining-b.Height <= 0 {
			break
		}
		if err := c.emit(b.Kind, b.Height); err != nil {
			return err
		}
	}
	return nil
}

// floor emits the next band of the repeating floor pattern, crossing the
// boundary when the band would reach it.
func (c *column) floor() error {
	t := c.ctx.ActiveType()
	prof, err := ProfileFor(t)
	if err != nil {
		return err
	}
	rule := prof.Floors[c.floors[t]%len(prof.Floors)]
	c.floors[t]++

	storey := c.ctx.Storey()
	if storey <= 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry, "storey height %.4f is not positive", storey)
	}
	panel := round3(rule.Height.resolve(storey, c.ctx.Config.SpandrelHeight, c.entrance))
	if panel <= 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry, "%s band height %.4f is not positive", rule.Kind, panel)
	}

	if c.ctx.boundaryPending() {
		if b := c.ctx.Config.BoundaryHeight; b <= c.current+math.Min(panel, c.remaining) {
			if lower := round3(b - c.current); lower > 0 {
				if err := c.emit(rule.kind(lower < panel), lower); err != nil {
					return err
				}
			}
			if wall := math.Min(DepressionWallHeight, c.remaining); wall > 0 {
				if err := c.emit(BoundaryWall, wall); err != nil {
					return err
				}
			}
			c.ctx.CrossedBoundary = true
			return nil
		}
	}

	h := math.Min(panel, c.remaining)
	return c.emit(rule.kind(h < panel), h)
}
