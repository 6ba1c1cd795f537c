package sink

import (
	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/facade/layout"
)

// PanelPlacement is one leaf of a face with its absolute position.
// Y grows upward from the ground line of the face.
type PanelPlacement struct {
	Kind       facade.PanelKind
	Variant    int
	Position   facade.Position
	X, Y       float64
	Width      float64
	Height     float64
	Background bool
}

// FacePlacement is a face with every panel resolved.
type FacePlacement struct {
	Index     int
	Direction facade.Direction
	Width     float64
	Height    float64
	Panels    []PanelPlacement
}

// Paneler is implemented by custom payloads that can describe themselves
// as a default panel for rendering.
type Paneler interface {
	Panel() facade.Panel
}

// Resolve walks every face of res and returns its panels in stacking order.
func Resolve(res *facade.Result) []FacePlacement {
	faces := make([]FacePlacement, 0, len(res.Faces))
	for _, f := range res.Faces {
		fp := FacePlacement{Index: f.Index, Direction: f.Direction, Width: f.Width}
		_, fp.Height = f.Layout.Extent()
		layout.Walk(f.Layout, 0, 0, func(p layout.Placement) {
			pl := panelOf(p.Element.Payload)
			fp.Panels = append(fp.Panels, PanelPlacement{
				Kind:       pl.Kind,
				Variant:    pl.Variant,
				Position:   pl.Position,
				X:          p.X,
				Y:          p.Y,
				Width:      p.Element.Width,
				Height:     p.Element.Height,
				Background: p.Element.Background,
			})
		})
		faces = append(faces, fp)
	}
	return faces
}

func panelOf(p layout.Payload) facade.Panel {
	switch t := p.(type) {
	case facade.Panel:
		return t
	case Paneler:
		return t.Panel()
	}
	return facade.Panel{}
}
