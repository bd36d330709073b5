package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/graph"
	"github.com/matzehuels/bstviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached; zero means
	// cache.TTLArtifact.
	TTL time.Duration
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

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, opts.Category, len(opts.Values))
	t, values, dropped, err := Build(opts)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, opts.Category, 0, result.Stats.BuildTime, err)
		return nil, fmt.Errorf("build: %w", err)
	}
	hooks.OnBuildComplete(ctx, opts.Category, t.Len(), result.Stats.BuildTime, nil)
	result.Tree = t
	result.Values = values
	result.Dropped = dropped
	result.Stats.NodeCount = t.Len()
	result.Stats.Depth = t.MaxDepth()
	result.TreeHash = r.TreeHash(t.Category(), values)

	opts.Logger.Info("built tree",
		"category", t.Category(),
		"nodes", t.Len(),
		"depth", result.Stats.Depth,
		"dropped", dropped,
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := Layout(t, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, t.Len(), result.Stats.Depth, result.Stats.LayoutTime)

	opts.Logger.Debug("computed layout",
		"width", opts.Width,
		"height", opts.Height,
		"spacing", opts.Bounds().Spacing(result.Stats.Depth),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.TreeHash, t, l, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TreeHash returns the hash identifying a tree built from values in order.
func (r *Runner) TreeHash(c bst.Category, values []bst.Value) string {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = v.String()
	}
	return cache.Hash([]byte(r.Keyer.TreeKey(c.String(), texts)))
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, treeHash string, t *bst.Tree, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, t, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
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
