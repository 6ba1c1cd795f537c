package facade

import (
	"math"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/matzehuels/facadeplan/pkg/errors"
)

// BuildingType selects the floor pattern used for a facade.
type BuildingType uint8

// Building types. ComplexBuilding combines a lower and an upper simple type.
const (
	Apartment BuildingType = iota + 1
	Office
	Commercial
	House
	Factory
	ComplexBuilding
)

var buildingTypeNames = map[BuildingType]string{
	Apartment:       "apartment",
	Office:          "office",
	Commercial:      "commercial",
	House:           "house",
	Factory:         "factory",
	ComplexBuilding: "complex",
}

// aliases accepted by ParseBuildingType after normalisation.
var buildingTypeAliases = map[string]BuildingType{
	"officebuilding":     Office,
	"commercialbuilding": Commercial,
	"complexbuilding":    ComplexBuilding,
	"residence":          House,
	"condominium":        Apartment,
}

// String returns the canonical lowercase name.
func (t BuildingType) String() string {
	if name, ok := buildingTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is a known building type.
func (t BuildingType) Valid() bool {
	_, ok := buildingTypeNames[t]
	return ok
}

// CanBeFloorType reports whether t may be used as the lower or upper
// type of a complex building.
func (t BuildingType) CanBeFloorType() bool {
	return t == Apartment || t == Office || t == Commercial
}

// MarshalText implements encoding.TextMarshaler.
func (t BuildingType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidBuildingType, "unknown building type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *BuildingType) UnmarshalText(text []byte) error {
	parsed, err := ParseBuildingType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseBuildingType resolves a building type name. Case, spaces, dashes and
// underscores are ignored. Unknown names report the closest known name.
func ParseBuildingType(name string) (BuildingType, error) {
	key := normalizeTypeName(name)
	for t, n := range buildingTypeNames {
		if n == key {
			return t, nil
		}
	}
	if t, ok := buildingTypeAliases[key]; ok {
		return t, nil
	}
	if s := suggestBuildingType(key); s != "" {
		return 0, errors.New(errors.ErrCodeInvalidBuildingType, "unknown building type %q (did you mean %q?)", name, s)
	}
	return 0, errors.New(errors.ErrCodeInvalidBuildingType, "unknown building type %q", name)
}

// BuildingTypeNames returns the canonical names in declaration order.
func BuildingTypeNames() []string {
	types := make([]BuildingType, 0, len(buildingTypeNames))
	for t := range buildingTypeNames {
		types = append(types, t)
	}
	slices.Sort(types)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func normalizeTypeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// suggestBuildingType returns the nearest canonical name within an edit distance of 3.
func suggestBuildingType(key string) string {
	const maxDistance = 3
	best, bestDist := "", maxDistance+1
	for _, n := range BuildingTypeNames() {
		if d := levenshtein.ComputeDistance(key, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// BuildingConfig describes the building to lay out.
//
// Plan receives the config by value: the caller's copy is never modified,
// so one config may be shared between independent planners.
type BuildingConfig struct {
	Height         float64      `toml:"height" json:"height"`
	Type           BuildingType `toml:"type" json:"type"`
	LowerType      BuildingType `toml:"lower_type" json:"lower_type,omitempty"`
	UpperType      BuildingType `toml:"upper_type" json:"upper_type,omitempty"`
	BoundaryHeight float64      `toml:"boundary_height" json:"boundary_height,omitempty"`
	SpandrelHeight float64      `toml:"spandrel_height" json:"spandrel_height,omitempty"`
}

// Default complex-building parameters.
const (
	DefaultBoundaryHeight = 15.0
	DefaultSpandrelHeight = 1.25
)

// DefaultConfig returns a 12 unit office building.
func DefaultConfig() BuildingConfig {
	return BuildingConfig{
		Height:         12,
		Type:           Office,
		LowerType:      Commercial,
		UpperType:      Office,
		BoundaryHeight: DefaultBoundaryHeight,
		SpandrelHeight: DefaultSpandrelHeight,
	}
}

// WithDefaults fills zero-valued optional fields.
func (c BuildingConfig) WithDefaults() BuildingConfig {
	if c.LowerType == 0 {
		c.LowerType = Commercial
	}
	if c.UpperType == 0 {
		c.UpperType = Office
	}
	if c.BoundaryHeight == 0 {
		c.BoundaryHeight = DefaultBoundaryHeight
	}
	if c.SpandrelHeight == 0 {
		c.SpandrelHeight = DefaultSpandrelHeight
	}
	return c
}

// Clamped returns c with Height limited to MaxBuildingHeight.
func (c BuildingConfig) Clamped() BuildingConfig {
	c.Height = math.Min(c.Height, MaxBuildingHeight)
	return c
}

// IsComplex reports whether the building switches type at BoundaryHeight.
func (c BuildingConfig) IsComplex() bool { return c.Type == ComplexBuilding }

// Validate reports configuration faults.
func (c BuildingConfig) Validate() error {
	if err := errors.ValidatePositive("building height", c.Height); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidBuildingType, "unknown building type %d", uint8(c.Type))
	}
	if err := errors.ValidateRange("spandrel height", c.SpandrelHeight, 0, MinFloorHeight); err != nil {
		return err
	}
	if !c.IsComplex() {
		return nil
	}
	if !c.LowerType.CanBeFloorType() {
		return errors.New(errors.ErrCodeInvalidBuildingType, "lower floor type %s is not allowed in a complex building", c.LowerType)
	}
	if !c.UpperType.CanBeFloorType() {
		return errors.New(errors.ErrCodeInvalidBuildingType, "upper floor type %s is not allowed in a complex building", c.UpperType)
	}
	return errors.ValidatePositive("boundary height", c.BoundaryHeight)
}
