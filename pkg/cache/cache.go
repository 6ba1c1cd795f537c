// Package cache stores rendered plans between runs.
//
// Planning is deterministic for a given building, footprint and seed, so the
// rendered artifacts of a run can be reused whenever the same inputs come
// back. The CLI uses [FileCache] under the user cache directory; [NullCache]
// disables caching.
//
// Keys are produced by a [Keyer] so that all callers agree on their layout:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(inputHash, cache.ArtifactKeyOpts{Format: "svg", Scale: 20})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Entry lifetimes.
const (
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// PlanKey identifies a planned building by the hash of its inputs.
	PlanKey(inputHash string, opts PlanKeyOpts) string
	// ArtifactKey identifies one rendered format of a plan.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// PlanKeyOpts holds the planner settings that change the plan.
type PlanKeyOpts struct {
	Seed uint64 `json:"seed"`
}

// ArtifactKeyOpts holds the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Seed   uint64  `json:"seed"`
	Scale  float64 `json:"scale,omitempty"`
	Labels bool    `json:"labels,omitempty"`
	Rows   bool    `json:"rows,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanKey returns "plan:<sha256>".
func (DefaultKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	return hashKey("plan", inputHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
