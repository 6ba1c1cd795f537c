package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/facadeplan/pkg/cache"
	"github.com/matzehuels/facadeplan/pkg/facade"
	"github.com/matzehuels/facadeplan/pkg/facade/layout"
	"github.com/matzehuels/facadeplan/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Summary is the cached identity of a plan.
type Summary struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Height float64 `json:"height"`
	Faces  int     `json:"faces"`
	Panels int     `json:"panels"`
}

// Summarize counts the faces and panels of res.
func Summarize(res *facade.Result) Summary {
	s := Summary{ID: res.ID, Type: res.Config.Type.String(), Height: res.Height, Faces: len(res.Faces)}
	for _, f := range res.Faces {
		s.Panels += len(layout.Leaves(f.Layout))
	}
	return s
}

// Execute runs the complete plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{InputHash: opts.InputHash()}

	// Everything cached: skip planning entirely.
	if !opts.Refresh {
		if sum, ok := r.cachedSummary(ctx, result.InputHash, opts); ok {
			if artifacts, ok := r.cachedArtifacts(ctx, result.InputHash, opts); ok {
				result.ID = sum.ID
				result.Artifacts = artifacts
				result.Stats.Faces = sum.Faces
				result.Stats.Panels = sum.Panels
				result.CacheInfo = CacheInfo{PlanHit: true, RenderHit: true}
				r.Logger.Info("served from cache", "id", sum.ID, "formats", opts.Formats)
				return result, nil
			}
		}
	}

	// Stage 1: Plan
	planStart := time.Now()
	res, planHit, err := r.PlanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	sum := Summarize(res)
	result.Plan = res
	result.ID = res.ID
	result.Stats.Faces = sum.Faces
	result.Stats.Panels = sum.Panels
	result.Stats.PlanTime = time.Since(planStart)
	result.CacheInfo.PlanHit = planHit

	r.Logger.Info("planned facades",
		"id", res.ID,
		"faces", sum.Faces,
		"panels", sum.Panels,
		"duration", result.Stats.PlanTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PlanWithCacheInfo plans the building and reports whether its identity came
// from the cache. Layouts are always rebuilt; a cached identity keeps the
// plan ID stable so that cached artifacts stay consistent with it.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts Options) (*facade.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForPlan(); err != nil {
		return nil, false, err
	}
	hash := opts.InputHash()

	var cached Summary
	hit := false
	if !opts.Refresh {
		cached, hit = r.cachedSummary(ctx, hash, opts)
	}

	typ := opts.Building.Type.String()
	faces := min(len(opts.Footprint), facade.MaxFaces)
	observability.Pipeline().OnPlanStart(ctx, typ, faces)
	start := time.Now()

	res, err := Plan(opts)
	if err != nil {
		observability.Pipeline().OnPlanComplete(ctx, typ, 0, time.Since(start), err)
		return nil, false, err
	}
	if hit {
		res.ID = cached.ID
	}
	sum := Summarize(res)
	observability.Pipeline().OnPlanComplete(ctx, typ, sum.Panels, time.Since(start), nil)

	if !hit {
		if data, err := json.Marshal(sum); err == nil {
			_ = r.Cache.Set(ctx, r.Keyer.PlanKey(hash, opts.PlanKeyOpts()), data, cache.TTLPlan)
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return res, hit, nil
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, opts Options) (*facade.Result, error) {
	res, _, err := r.PlanWithCacheInfo(ctx, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Artifacts are keyed by the input hash, so res must have been planned from opts.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *facade.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hash := opts.InputHash()

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			return artifacts, true, nil
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *facade.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedSummary(ctx context.Context, hash string, opts Options) (Summary, bool) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.PlanKey(hash, opts.PlanKeyOpts()))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "plan")
		return Summary{}, false
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil || s.ID == "" {
		observability.Cache().OnCacheMiss(ctx, "plan")
		return Summary{}, false
	}
	observability.Cache().OnCacheHit(ctx, "plan")
	return s, true
}

// cachedArtifacts returns every requested format, or false if any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
