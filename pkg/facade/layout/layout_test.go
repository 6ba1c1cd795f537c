package layout

import "testing"

type unit struct{}

func (unit) WidthScale() float64  { return 1 }
func (unit) HeightScale() float64 { return 1 }

func el(w, h float64) *Element { return &Element{Width: w, Height: h, Payload: unit{}} }

func TestExtent(t *testing.T) {
	row := &Horizontal{}
	row.Add(el(2, 3))
	row.Add(el(2.5, 3))

	col := &Vertical{}
	col.Add(row)
	col.Add(el(4.5, 1))
	col.Add(nil)

	tests := []struct {
		name  string
		node  Node
		wantW float64
		wantH float64
	}{
		{"element", el(2, 3), 2, 3},
		{"background element", &Element{Width: 9, Height: 9, Background: true}, 0, 0},
		{"horizontal", row, 4.5, 3},
		{"vertical", col, 4.5, 4},
		{"empty vertical", &Vertical{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.node.Extent()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Extent() = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
	if col.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (nil must be ignored)", col.Len())
	}
}

func TestWalkOrigins(t *testing.T) {
	bottom := &Horizontal{}
	bottom.Add(el(2, 1))
	bottom.Add(el(3, 1))

	root := &Vertical{}
	root.Add(&Element{Width: 4, Height: 1.5, Background: true})
	root.Add(bottom)
	root.Add(el(5, 2))

	type origin struct{ x, y float64 }
	var got []origin
	Walk(root, 10, 20, func(p Placement) { got = append(got, origin{p.X, p.Y}) })

	want := []origin{{10, 20}, {10, 20}, {12, 20}, {10, 21}}
	if len(got) != len(want) {
		t.Fatalf("Walk visited %d leaves, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leaf %d origin = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLeaves(t *testing.T) {
	root := &Horizontal{}
	inner := &Vertical{}
	inner.Add(el(1, 1))
	inner.Add(el(1, 1))
	root.Add(inner)
	root.Add(el(1, 2))

	if n := len(Leaves(root)); n != 3 {
		t.Errorf("Leaves() = %d, want 3", n)
	}
}

func TestValidate(t *testing.T) {
	good := &Vertical{}
	row := &Horizontal{}
	row.Add(el(1, 2))
	row.Add(el(1, 2))
	good.Add(&Element{Width: 7, Height: 7, Background: true})
	good.Add(row)
	good.Add(el(2, 1))

	if err := Validate(good, 1e-6); err != nil {
		t.Errorf("Validate(good) = %v, want nil", err)
	}

	badRow := &Horizontal{}
	badRow.Add(el(1, 2))
	badRow.Add(el(1, 2.5))
	if err := Validate(badRow, 1e-6); err == nil {
		t.Error("Validate(mismatched row heights) = nil, want error")
	}

	badCol := &Vertical{}
	badCol.Add(el(2, 1))
	badCol.Add(el(3, 1))
	if err := Validate(badCol, 1e-6); err == nil {
		t.Error("Validate(mismatched column widths) = nil, want error")
	}
}
