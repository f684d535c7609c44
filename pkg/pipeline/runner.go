package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitlite/flowgraph/pkg/cache"
	"github.com/gitlite/flowgraph/pkg/flow"
	"github.com/gitlite/flowgraph/pkg/graph"
	"github.com/gitlite/flowgraph/pkg/history"
	"github.com/gitlite/flowgraph/pkg/observability"
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

// Execute runs the complete layout → labels → flows pipeline with caching.
func (r *Runner) Execute(ctx context.Context, h history.History, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("invalid history: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		HistoryHash: historyHash(h),
	}
	result.Stats.CommitCount = len(h.Commits)

	// Stage 1: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, h, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LaneCount = layout.LaneCount
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"commits", len(h.Commits),
		"lanes", layout.LaneCount,
		"edges", len(layout.Edges),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stages 2+3: Labels and Flows
	flowStart := time.Now()
	flows, flowsHit, err := r.ComputeFlowsWithCacheInfo(ctx, h, layout.LaneByRow, opts)
	if err != nil {
		return nil, fmt.Errorf("flows: %w", err)
	}
	result.Flows = flows
	result.Stats.FlowTime = time.Since(flowStart)
	result.Stats.GroupCount = len(flows.Groups)
	result.CacheInfo.FlowsHit = flowsHit

	r.Logger.Info("grouped flows",
		"labels", len(flows.Labels),
		"groups", len(flows.Groups),
		"cached", flowsHit,
		"duration", result.Stats.FlowTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes the lane/edge layout with caching and
// returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, h history.History, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(historyHash(h), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute
	observability.Engine().OnLayoutStart(ctx, len(h.Commits))
	start := time.Now()
	layout := graph.Compute(h.Commits, opts.Params())
	observability.Engine().OnLayoutComplete(ctx, layout.LaneCount, len(layout.Edges), time.Since(start))

	// Cache the result
	if data, err := graph.MarshalLayout(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, h history.History, opts Options) (graph.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, h, opts)
	return layout, err
}

// ComputeFlowsWithCacheInfo resolves branch labels and groups the commit
// stream, with caching, and returns cache hit info.
//
// laneByRow must come from the layout stage over the same snapshot; it may be
// nil, in which case every group reports lane 0.
func (r *Runner) ComputeFlowsWithCacheInfo(ctx context.Context, h history.History, laneByRow []int, opts Options) (flow.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return flow.Result{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.FlowKey(historyHash(h), opts.FlowKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := flow.UnmarshalResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "flows")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "flows")
	}

	observability.Engine().OnLabelsStart(ctx, len(h.Branches))
	labelStart := time.Now()
	labels := flow.ResolveLabels(h.Commits, h.Branches)
	observability.Engine().OnLabelsComplete(ctx, len(labels), time.Since(labelStart))

	observability.Engine().OnGroupingStart(ctx, len(h.Commits))
	groupStart := time.Now()
	groups := flow.GroupCommits(h.Commits, laneByRow, labels, opts.FlowOptions())
	observability.Engine().OnGroupingComplete(ctx, len(groups), time.Since(groupStart))

	result := flow.Result{Labels: labels, Groups: groups}

	if data, err := flow.MarshalResult(result); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFlows)
		observability.Cache().OnCacheSet(ctx, "flows", len(data))
	}

	return result, false, nil
}

// ComputeFlows is a convenience wrapper that calls ComputeFlowsWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeFlows(ctx context.Context, h history.History, laneByRow []int, opts Options) (flow.Result, error) {
	flows, _, err := r.ComputeFlowsWithCacheInfo(ctx, h, laneByRow, opts)
	return flows, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// historyHash computes the content hash of a snapshot for cache keys and API
// responses. Serialization of a plain value cannot fail; the error path only
// guards against future type changes.
func historyHash(h history.History) string {
	data, err := history.MarshalHistory(h)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
