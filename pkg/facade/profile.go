package facade

import (
	"fmt"

	"github.com/matzehuels/facadeplan/pkg/errors"
)

// HeightSource says where a floor band takes its height from.
type HeightSource uint8

const (
	HeightFixed    HeightSource = iota // HeightRule.Value
	HeightStorey                       // solved storey height
	HeightSpandrel                     // BuildingConfig.SpandrelHeight
	HeightEntrance                     // ground band height of the building
)

// HeightRule resolves a band height.
type HeightRule struct {
	Source HeightSource
	Value  float64
}

func (r HeightRule) resolve(storey, spandrel, entrance float64) float64 {
	switch r.Source {
	case HeightStorey:
		return storey
	case HeightSpandrel:
		return spandrel
	case HeightEntrance:
		return entrance
	}
	return r.Value
}

func (r HeightRule) String() string {
	switch r.Source {
	case HeightStorey:
		return "storey"
	case HeightSpandrel:
		return "spandrel"
	case HeightEntrance:
		return "entrance"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// Band is a fixed-height band of one kind.
type Band struct {
	Kind   PanelKind
	Height float64
}

// FloorRule is one entry of a profile's repeating floor pattern.
type FloorRule struct {
	Kind   PanelKind
	Height HeightRule
	// Partial replaces Kind when the band is cut short by the top of the
	// column or by the boundary. KindNone keeps Kind.
	Partial PanelKind
}

func (r FloorRule) kind(partial bool) PanelKind {
	if partial && r.Partial != KindNone {
		return r.Partial
	}
	return r.Kind
}

// Profile is the floor pattern of one simple building type.
type Profile struct {
	Type BuildingType

	// Socle bands sit below the entrance band of normal columns and shrink it.
	Socle []Band
	// Entrance fills the ground band of normal columns.
	Entrance PanelKind
	// GroundRow, when set, replaces Entrance with one kind per slot of a
	// face with the given slot count.
	GroundRow func(slots int) []PanelKind
	// Door and DoorUpper split the ground band of the entrance column.
	Door, DoorUpper PanelKind
	// Transition bands follow the ground band while there is room for them.
	Transition []Band
	// Floors repeat cyclically up to the top of the column.
	Floors []FloorRule
}

var (
	storeyRule   = HeightRule{Source: HeightStorey}
	spandrelRule = HeightRule{Source: HeightSpandrel}
	entranceRule = HeightRule{Source: HeightEntrance}
)

func fixed(v float64) HeightRule { return HeightRule{Source: HeightFixed, Value: v} }

var profiles = map[BuildingType]Profile{
	Apartment: {
		Type:      Apartment,
		Entrance:  ApartmentWall,
		Door:      ApartmentEntrance,
		DoorUpper: ApartmentWall,
		Floors:    []FloorRule{{Kind: ApartmentWindow, Height: storeyRule, Partial: ApartmentWall}},
	},
	Office: {
		Type:      Office,
		Entrance:  OfficeFullWindow,
		Door:      OfficeEntrance,
		DoorUpper: OfficeFullWindow,
		Floors: []FloorRule{
			{Kind: OfficeSpandrelWindow, Height: spandrelRule},
			{Kind: OfficeFullWindow, Height: entranceRule},
		},
	},
	Commercial: {
		Type:      Commercial,
		Entrance:  CommercialFullWindow,
		Door:      CommercialEntrance,
		DoorUpper: CommercialFullWindow,
		Transition: []Band{
			{Kind: CommercialWallWithFrame, Height: SmallWallHeight},
			{Kind: CommercialDepressionWall, Height: DepressionWallHeight},
		},
		Floors: []FloorRule{
			{Kind: CommercialWallWithFrame, Height: entranceRule},
			{Kind: CommercialWallWithFrame, Height: entranceRule},
			{Kind: CommercialWallWithFrame, Height: entranceRule},
			{Kind: CommercialSmallWindow, Height: fixed(SmallWindowHeight)},
		},
	},
	House: {
		Type:      House,
		Entrance:  HouseWall,
		Door:      HouseEntrance,
		DoorUpper: HouseWall,
		Floors:    []FloorRule{{Kind: HouseWindow, Height: storeyRule, Partial: HouseWall}},
	},
	Factory: {
		Type: Factory,
		Socle: []Band{
			{Kind: FactorySocle, Height: SocleHeight},
			{Kind: FactorySocleTop, Height: SocleTopHeight},
		},
		Entrance:  FactoryWall,
		GroundRow: factoryWindowRow,
		Door:      FactoryEntrance,
		DoorUpper: FactoryWall,
		Floors:    []FloorRule{{Kind: FactoryWall, Height: storeyRule}},
	},
}

// factoryWindowRow lays walls and pairs of windows along the ground band.
// Both end slots are always walls.
func factoryWindowRow(n int) []PanelKind {
	row := make([]PanelKind, n)
	for i := range row {
		row[i] = FactoryWall
	}
	for i := 0; i < n-1; {
		i++ // wall
		switch {
		case i+1 < n-1:
			row[i], row[i+1] = FactoryWindow, FactoryWindow
			i += 2
		case i < n-1:
			row[i] = FactoryWindow
			i++
		}
	}
	return row
}

// ProfileFor returns the floor pattern of a simple building type.
func ProfileFor(t BuildingType) (Profile, error) {
	p, ok := profiles[t]
	if !ok {
		return Profile{}, errors.New(errors.ErrCodeInvalidBuildingType, "no floor profile for building type %s", t)
	}
	return p, nil
}
