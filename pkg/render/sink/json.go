package sink

import (
	"encoding/json"

	"github.com/matzehuels/facadeplan/pkg/facade"
)

type jsonOutput struct {
	ID     string     `json:"id"`
	Height float64    `json:"height"`
	Type   string     `json:"type"`
	Seed   uint64     `json:"seed,omitempty"`
	Faces  []jsonFace `json:"faces"`
}

type jsonFace struct {
	Index       int         `json:"index"`
	Direction   string      `json:"direction"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Slots       int         `json:"slots"`
	Remainder   float64     `json:"remainder"`
	FloorHeight float64     `json:"floor_height"`
	Panels      []jsonPanel `json:"panels"`
}

type jsonPanel struct {
	Kind       string  `json:"kind"`
	Variant    int     `json:"variant,omitempty"`
	Position   string  `json:"position"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background bool    `json:"background,omitempty"`
}

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonOutput)

// WithJSONSeed records the planner seed so the plan can be reproduced.
func WithJSONSeed(seed uint64) JSONOption { return func(o *jsonOutput) { o.Seed = seed } }

// RenderJSON exports every resolved panel of res as a pretty-printed document.
func RenderJSON(res *facade.Result, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{ID: res.ID, Height: res.Height, Type: res.Config.Type.String()}
	for _, opt := range opts {
		opt(&out)
	}

	for i, f := range Resolve(res) {
		face := res.Faces[i]
		jf := jsonFace{
			Index:       f.Index,
			Direction:   f.Direction.String(),
			Width:       f.Width,
			Height:      f.Height,
			Slots:       len(face.Slots.Sizes),
			Remainder:   face.Slots.Remainder,
			FloorHeight: face.Heights.Floor,
			Panels:      make([]jsonPanel, 0, len(f.Panels)),
		}
		for _, p := range f.Panels {
			jf.Panels = append(jf.Panels, jsonPanel{
				Kind:       p.Kind.String(),
				Variant:    p.Variant,
				Position:   p.Position.String(),
				X:          p.X,
				Y:          p.Y,
				Width:      p.Width,
				Height:     p.Height,
				Background: p.Background,
			})
		}
		out.Faces = append(out.Faces, jf)
	}
	return json.MarshalIndent(out, "", "  ")
}
