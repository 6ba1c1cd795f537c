package sink

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/facade/layout"
	"github.com/matzehuels/facadeplan/pkg/geom"
)

func testResult(t *testing.T) *facade.Result {
	t.Helper()
	quiet := log.New(io.Discard)
	p := facade.NewPlanner(facade.WithSeed(5), facade.WithLogger(quiet))
	fp := geom.Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 7.5}, {X: 0, Y: 7.5}}
	res, err := p.Plan(fp, facade.BuildingConfig{Height: 20, Type: facade.ComplexBuilding, BoundaryHeight: 9})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	return res
}

func leafCount(res *facade.Result) int {
	n := 0
	for _, f := range res.Faces {
		n += len(layout.Leaves(f.Layout))
	}
	return n
}

func TestResolve(t *testing.T) {
	res := testResult(t)
	faces := Resolve(res)
	if len(faces) != len(res.Faces) {
		t.Fatalf("Resolve() faces = %d, want %d", len(faces), len(res.Faces))
	}
	total := 0
	for _, f := range faces {
		total += len(f.Panels)
		if math.Abs(f.Height-20) > 1e-6 {
			t.Errorf("face %d height = %v, want 20", f.Index, f.Height)
		}
		first := f.Panels[0]
		if !first.Background || first.Kind != facade.ShadowWall {
			t.Errorf("face %d first panel = %+v, want shadow wall background", f.Index, first)
		}
		for _, p := range f.Panels {
			if p.X < -1e-9 || p.Y < -1e-9 || p.X+p.Width > f.Width+1e-6 || p.Y+p.Height > f.Height+1e-6 {
				t.Errorf("face %d panel %v at (%v,%v) %vx%v lies outside the face", f.Index, p.Kind, p.X, p.Y, p.Width, p.Height)
			}
		}
	}
	if total != leafCount(res) {
		t.Errorf("Resolve() panels = %d, want %d", total, leafCount(res))
	}
}

func TestRenderSVG(t *testing.T) {
	res := testResult(t)
	svg := string(RenderSVG(res, WithScale(10), WithGap(1), WithLabels()))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("RenderSVG() is not a complete document:\n%.200s", svg)
	}
	if got := strings.Count(svg, "<rect "); got != leafCount(res) {
		t.Errorf("rects = %d, want %d", got, leafCount(res))
	}
	if got := strings.Count(svg, `class="face"`); got != 4 {
		t.Errorf("faces = %d, want 4", got)
	}
	for _, dir := range []string{"back", "right", "front", "left"} {
		if !strings.Contains(svg, ">"+dir+"</text>") {
			t.Errorf("label %q missing", dir)
		}
	}
	if !strings.Contains(svg, "boundary-wall") {
		t.Error("complex building SVG has no boundary wall panel")
	}
}

func TestRenderJSON(t *testing.T) {
	res := testResult(t)
	data, err := RenderJSON(res, WithJSONSeed(5))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out.ID != res.ID || out.Seed != 5 || out.Type != "complex" {
		t.Errorf("header = %+v", out)
	}
	if len(out.Faces) != 4 {
		t.Fatalf("faces = %d, want 4", len(out.Faces))
	}
	panels := 0
	for _, f := range out.Faces {
		panels += len(f.Panels)
	}
	if panels != leafCount(res) {
		t.Errorf("panels = %d, want %d", panels, leafCount(res))
	}
	if out.Faces[2].Direction != "front" || !out.Faces[0].Panels[0].Background {
		t.Errorf("unexpected face data: %+v", out.Faces[0].Panels[0])
	}
}
