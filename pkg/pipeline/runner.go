package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/arborgraph/arbor/pkg/cache"
	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/graph"
	"github.com/arborgraph/arbor/pkg/layout"
	"github.com/arborgraph/arbor/pkg/observability"
	"github.com/arborgraph/arbor/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete fetch → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		LayoutID:  uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	members, fetchHit, err := r.FetchWithCacheInfo(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Members = members
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.MemberCount = len(members)
	result.CacheInfo.FetchHit = fetchHit

	// Compute member hash for cache keys and API responses
	if data, err := json.Marshal(members); err == nil {
		result.MembersHash = cache.Hash(data)
	}

	r.Logger.Info("fetched members",
		"source", src.Description(),
		"members", len(members),
		"duration", result.Stats.FetchTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, members, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo reads members from a source with caching and returns
// cache hit info.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, src source.Source, opts Options) ([]family.Member, bool, error) {
	r.applyLogger(&opts)

	desc := src.Description()
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, desc)
	start := time.Now()

	cacheKey := r.Keyer.MembersKey(desc)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var members []family.Member
			if err := json.Unmarshal(data, &members); err == nil {
				observability.Cache().OnCacheHit(ctx, "members")
				hooks.OnFetchComplete(ctx, desc, len(members), time.Since(start), nil)
				return members, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "members")
	}

	// Fetch
	members, err := src.Fetch(ctx)
	hooks.OnFetchComplete(ctx, desc, len(members), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(members); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLMembers); err == nil {
			observability.Cache().OnCacheSet(ctx, "members", len(data))
		}
	}

	return members, false, nil // Cache miss
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Fetch(ctx context.Context, src source.Source, opts Options) ([]family.Member, error) {
	members, _, err := r.FetchWithCacheInfo(ctx, src, opts)
	return members, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, members []family.Member, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	data, _ := json.Marshal(members)
	membersHash := cache.Hash(data)
	cacheKey := r.Keyer.LayoutKey(membersHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := graph.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Compute layout
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(members))
	start := time.Now()
	l := layout.Compute(members, opts.LayoutConfig())
	hooks.OnLayoutComplete(ctx, len(l.Nodes), time.Since(start))

	// Cache the result
	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, members []family.Member, opts Options) (graph.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, members, opts)
	return l, err
}

// Render generates artifacts in all requested formats. Artifacts are not
// cached: JSON and DOT are trivial to produce, and the Graphviz formats are
// local CPU work keyed awkwardly by everything in the layout.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte)
	var dot string

	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderFormat(format, l, &dot, opts)
		hooks.OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
