package facade

import (
	"strings"
	"testing"

	"github.com/matzehuels/facadeplan/pkg/errors"
)

func TestParseBuildingType(t *testing.T) {
	tests := []struct {
		in      string
		want    BuildingType
		wantErr string
	}{
		{"office", Office, ""},
		{"Office", Office, ""},
		{" COMMERCIAL ", Commercial, ""},
		{"complex_building", ComplexBuilding, ""},
		{"Complex-Building", ComplexBuilding, ""},
		{"factory", Factory, ""},
		{"ofice", 0, `did you mean "office"`},
		{"apartmnt", 0, `did you mean "apartment"`},
		{"skyscraper", 0, "unknown building type"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBuildingType(tt.in)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseBuildingType(%q) = %v, want error", tt.in, got)
				}
				if !errors.Is(err, errors.ErrCodeInvalidBuildingType) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidBuildingType)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBuildingType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBuildingType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBuildingTypeNoSuggestionForDistantNames(t *testing.T) {
	_, err := ParseBuildingType("skyscraper")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("ParseBuildingType(skyscraper) = %v, want error without suggestion", err)
	}
}

func TestBuildingTypeText(t *testing.T) {
	for _, name := range BuildingTypeNames() {
		var bt BuildingType
		if err := bt.UnmarshalText([]byte(name)); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", name, err)
		}
		out, err := bt.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", bt, err)
		}
		if string(out) != name {
			t.Errorf("MarshalText() = %q, want %q", out, name)
		}
	}
	if _, err := BuildingType(0).MarshalText(); err == nil {
		t.Error("MarshalText(0) = nil error, want error")
	}
}

func TestBuildingConfigValidate(t *testing.T) {
	base := DefaultConfig()
	tests := []struct {
		name   string
		modify func(*BuildingConfig)
		code   errors.Code
	}{
		{"default", func(*BuildingConfig) {}, ""},
		{"zero height", func(c *BuildingConfig) { c.Height = 0 }, errors.ErrCodeInvalidConfig},
		{"negative height", func(c *BuildingConfig) { c.Height = -3 }, errors.ErrCodeInvalidConfig},
		{"unknown type", func(c *BuildingConfig) { c.Type = 99 }, errors.ErrCodeInvalidBuildingType},
		{"spandrel too tall", func(c *BuildingConfig) { c.SpandrelHeight = 3 }, errors.ErrCodeInvalidConfig},
		{"complex", func(c *BuildingConfig) { c.Type = ComplexBuilding }, ""},
		{"complex with house lower", func(c *BuildingConfig) {
			c.Type, c.LowerType = ComplexBuilding, House
		}, errors.ErrCodeInvalidBuildingType},
		{"complex with factory upper", func(c *BuildingConfig) {
			c.Type, c.UpperType = ComplexBuilding, Factory
		}, errors.ErrCodeInvalidBuildingType},
		{"complex with zero boundary", func(c *BuildingConfig) {
			c.Type, c.BoundaryHeight = ComplexBuilding, 0
		}, errors.ErrCodeInvalidConfig},
		{"simple ignores floor types", func(c *BuildingConfig) { c.LowerType = Factory }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestBuildingConfigClampedAndDefaults(t *testing.T) {
	cfg := BuildingConfig{Height: 100.5, Type: Office}
	got := cfg.WithDefaults().Clamped()
	if got.Height != MaxBuildingHeight {
		t.Errorf("Clamped().Height = %v, want %v", got.Height, MaxBuildingHeight)
	}
	if cfg.Height != 100.5 {
		t.Errorf("caller config modified: Height = %v", cfg.Height)
	}
	if got.LowerType != Commercial || got.UpperType != Office {
		t.Errorf("WithDefaults() floor types = %v/%v, want commercial/office", got.LowerType, got.UpperType)
	}
	if got.BoundaryHeight != DefaultBoundaryHeight || got.SpandrelHeight != DefaultSpandrelHeight {
		t.Errorf("WithDefaults() = %+v", got)
	}
}
