package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facadeplan/pkg/cache"
	"github.com/matzehuels/facadeplan/pkg/config"
	"github.com/matzehuels/facadeplan/pkg/errors"
	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/geom"
	"github.com/matzehuels/facadeplan/pkg/observability"
)

func square(side float64) geom.Polygon {
	return geom.Polygon{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

func testOptions() Options {
	return Options{
		Building:  facade.BuildingConfig{Height: 12, Type: facade.Office},
		Footprint: square(10),
		Seed:      7,
		Formats:   []string{FormatSVG, FormatJSON, FormatDOT},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"tree", false},
		{"png", false},
		{"pdf", false},
		{"SVG", false}, // case-insensitive
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestOptionsValidateForPlan(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"valid", testOptions(), ""},
		{"no footprint", Options{Building: facade.DefaultConfig()}, errors.ErrCodeInvalidFootprint},
		{"degenerate footprint", Options{Building: facade.DefaultConfig(), Footprint: geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}}}, errors.ErrCodeInvalidFootprint},
		{"no height", Options{Building: facade.BuildingConfig{Type: facade.Office}, Footprint: square(5)}, errors.ErrCodeInvalidConfig},
		{"no type", Options{Building: facade.BuildingConfig{Height: 10}, Footprint: square(5)}, errors.ErrCodeInvalidBuildingType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForPlan()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateForPlan() error = %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("ValidateForPlan() code = %q (%v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestOptionsClampsHeight(t *testing.T) {
	opts := testOptions()
	opts.Building.Height = 250
	if err := opts.ValidateForPlan(); err != nil {
		t.Fatal(err)
	}
	if opts.Building.Height != facade.MaxBuildingHeight {
		t.Errorf("Height = %v, want %v", opts.Building.Height, facade.MaxBuildingHeight)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := testOptions()
	opts.Formats = []string{" SVG "}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	if opts.Formats[0] != FormatSVG {
		t.Errorf("format not normalised: %q", opts.Formats[0])
	}
	building := opts.Building
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Building != building {
		t.Error("Building changed on second call")
	}
}

func TestInputHash(t *testing.T) {
	a := testOptions()
	b := testOptions()
	if a.InputHash() != b.InputHash() {
		t.Error("InputHash should be deterministic")
	}
	b.Building.Height = 13
	if a.InputHash() == b.InputHash() {
		t.Error("InputHash should change with the building")
	}
	c := testOptions()
	c.Footprint = square(11)
	if a.InputHash() == c.InputHash() {
		t.Error("InputHash should change with the footprint")
	}
	d := testOptions()
	d.Seed = 99
	if a.InputHash() != d.InputHash() {
		t.Error("InputHash should not depend on the seed")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := testOptions()
	opts.Labels = true
	opts.Rows = true
	opts.SetRenderDefaults()

	if k := opts.ArtifactKeyOpts(FormatSVG); !k.Labels || k.Scale != DefaultScale || k.Rows {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); k.Labels || k.Scale != 0 || !k.Rows {
		t.Errorf("dot key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Seed != 7 || k.Labels || k.Rows {
		t.Errorf("json key opts = %+v", k)
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(FormatTree); got != "tree.svg" {
		t.Errorf("Extension(tree) = %q", got)
	}
	if got := Extension(FormatJSON); got != "json" {
		t.Errorf("Extension(json) = %q", got)
	}
}

func TestFromFile(t *testing.T) {
	f := config.Default()
	f.Render.Formats = []string{"json"}
	opts, err := FromFile(f)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if len(opts.Footprint) != 4 || opts.Seed != f.Render.Seed || opts.Formats[0] != "json" {
		t.Errorf("FromFile() = %+v", opts)
	}

	f.Footprint.Points = [][]float64{{0, 0, 1}}
	if _, err := FromFile(f); !errors.Is(err, errors.ErrCodeInvalidFootprint) {
		t.Errorf("FromFile(bad points) error = %v", err)
	}
}

func TestRender(t *testing.T) {
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	res, err := Plan(opts)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	artifacts, err := Render(res, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg ")) {
		t.Error("svg artifact is not an SVG document")
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "digraph G {") {
		t.Error("dot artifact is not a DOT graph")
	}
	var doc struct {
		ID   string `json:"id"`
		Seed uint64 `json:"seed"`
	}
	if err := json.Unmarshal(artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.ID != res.ID || doc.Seed != 7 {
		t.Errorf("json header = %+v", doc)
	}
}

func TestRenderUnsupported(t *testing.T) {
	opts := testOptions()
	opts.Formats = []string{"gif"}
	if _, err := Render(&facade.Result{}, opts); err == nil {
		t.Error("Render(gif) should fail")
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, log.New(io.Discard))
	defer runner.Close()

	first, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.PlanHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}
	if first.Plan == nil || first.Stats.Faces != 4 || first.Stats.Panels == 0 {
		t.Errorf("first run stats = %+v", first.Stats)
	}

	second, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.PlanHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if second.Plan != nil {
		t.Error("fully cached run should not plan")
	}
	if second.ID != first.ID || second.Stats != (Stats{Faces: first.Stats.Faces, Panels: first.Stats.Panels}) {
		t.Errorf("cached identity = %s %+v, want %s %+v", second.ID, second.Stats, first.ID, first.Stats)
	}
	for format, data := range first.Artifacts {
		if !bytes.Equal(second.Artifacts[format], data) {
			t.Errorf("cached %s artifact differs", format)
		}
	}

	// A changed render setting replans under the cached identity.
	opts := testOptions()
	opts.Labels = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.PlanHit || third.CacheInfo.RenderHit || third.ID != first.ID {
		t.Errorf("third run = %s %+v", third.ID, third.CacheInfo)
	}
	if !bytes.Equal(third.Artifacts[FormatJSON], first.Artifacts[FormatJSON]) {
		t.Error("replanned JSON differs from the cached plan")
	}

	opts = testOptions()
	opts.Refresh = true
	fresh, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.PlanHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refresh run hit the cache: %+v", fresh.CacheInfo)
	}
}

func TestRunnerNullCache(t *testing.T) {
	runner := NewRunner(nil, nil, log.New(io.Discard))
	for range 2 {
		res, err := runner.Execute(context.Background(), testOptions())
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.PlanHit || res.CacheInfo.RenderHit {
			t.Errorf("NullCache run hit: %+v", res.CacheInfo)
		}
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	opts := testOptions()
	opts.Formats = []string{"bmp"}
	_, err := NewRunner(nil, nil, log.New(io.Discard)).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want INVALID_FORMAT", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
	panels int
}

func (h *recordingHooks) OnPlanStart(_ context.Context, typ string, faces int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "plan-start:"+typ)
}

func (h *recordingHooks) OnPlanComplete(_ context.Context, _ string, panels int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "plan-complete")
	h.panels = panels
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "render-start")
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	res, err := NewRunner(nil, nil, log.New(io.Discard)).Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"plan-start:office", "plan-complete", "render-start"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
	if hooks.panels != res.Stats.Panels {
		t.Errorf("hook panels = %d, want %d", hooks.panels, res.Stats.Panels)
	}
}
