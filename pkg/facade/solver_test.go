package facade

import "testing"

func TestSolveFloorHeight(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		step  float64
		want  float64
	}{
		{"exact twelve", 12, FloorHeightStep, 3.0},
		{"exact thirty", 30, FloorHeightStep, 3.0},
		{"exact fourteen", 14, FloorHeightStep, 2.8},
		{"max is exclusive", 10, FloorHeightStep, 3.2},
		{"lower than one floor", 2, FloorHeightStep, 3.2},
		{"zero step", 12, 0, MinFloorHeight},
		{"negative step", 12, -0.05, MinFloorHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveFloorHeight(tt.total, MinFloorHeight, MaxFloorHeight, tt.step)
			if got != tt.want {
				t.Errorf("SolveFloorHeight(%v) = %v, want %v", tt.total, got, tt.want)
			}
		})
	}
}

func TestSolveFloorHeightDeterministic(t *testing.T) {
	for _, total := range []float64{3, 7.7, 12, 33.3, 100} {
		first := SolveFloorHeight(total, MinFloorHeight, MaxFloorHeight, FloorHeightStep)
		for range 10 {
			if got := SolveFloorHeight(total, MinFloorHeight, MaxFloorHeight, FloorHeightStep); got != first {
				t.Fatalf("SolveFloorHeight(%v) = %v, then %v", total, first, got)
			}
		}
		if first < MinFloorHeight || first >= MaxFloorHeight {
			t.Errorf("SolveFloorHeight(%v) = %v, outside [%v, %v)", total, first, MinFloorHeight, MaxFloorHeight)
		}
	}
}

func TestSolveHeights(t *testing.T) {
	cfg := BuildingConfig{Height: 30, Type: ComplexBuilding, BoundaryHeight: 15}
	got := SolveHeights(cfg)
	want := Heights{Floor: 3.0, Upper: 2.8, Lower: 3.0}
	if got != want {
		t.Errorf("SolveHeights() = %+v, want %+v", got, want)
	}
}

func TestEntranceHeight(t *testing.T) {
	tests := []struct {
		name string
		cfg  BuildingConfig
		want float64
	}{
		{"simple", BuildingConfig{Height: 12, Type: Office}, 3},
		{"below one storey", BuildingConfig{Height: 2, Type: House}, 2},
		{"complex", BuildingConfig{Height: 30, Type: ComplexBuilding, BoundaryHeight: 15}, 3},
		{"complex boundary above roof", BuildingConfig{Height: 12, Type: ComplexBuilding, BoundaryHeight: 40}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntranceHeight(tt.cfg, SolveHeights(tt.cfg)); got != tt.want {
				t.Errorf("EntranceHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.75 + 5*0.05, 3},
		{1.2346, 1.235},
		{-1.2346, -1.235},
		{0.0004, 0},
	}
	for _, tt := range tests {
		if got := round3(tt.in); got != tt.want {
			t.Errorf("round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
