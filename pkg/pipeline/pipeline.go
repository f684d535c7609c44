// Package pipeline provides the core computation pipeline for flowgraph.
//
// This package implements the complete layout → labels → flows pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: Allocate lanes and build edges for the commit graph
//  2. Labels: Resolve the best branch label for every reachable commit
//  3. Flows: Collapse the labeled commit stream into flow groups
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Window: 3600}
//	result, err := runner.Execute(ctx, hist, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout := result.Layout
//	groups := result.Flows.Groups
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.ComputeLayout(ctx, hist, opts)
//
//	// Labels and groups with an existing layout
//	flows, err := runner.ComputeFlows(ctx, hist, layout.LaneByRow, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitlite/flowgraph/pkg/cache"
	"github.com/gitlite/flowgraph/pkg/errors"
	"github.com/gitlite/flowgraph/pkg/flow"
	"github.com/gitlite/flowgraph/pkg/graph"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the computation pipeline.
// This struct supports JSON serialization for API requests.
//
// The zero value is usable: every field falls back to the package defaults
// from pkg/graph and pkg/flow.
type Options struct {
	// Layout geometry overrides. Zero fields take graph.DefaultParams values.
	RowHeight   float64 `json:"row_height,omitempty"`
	LaneWidth   float64 `json:"lane_width,omitempty"`
	LanePadding float64 `json:"lane_padding,omitempty"`
	NodeRadius  float64 `json:"node_radius,omitempty"`
	MaxWidth    float64 `json:"max_width,omitempty"`

	// Flow grouping options. Zero fields take the flow package defaults.
	FallbackLabel string `json:"fallback_label,omitempty"`
	MaxGroupSize  int    `json:"max_group_size,omitempty"`
	Window        int64  `json:"window,omitempty"` // seconds

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// HistoryHash is the content hash of the input snapshot.
	HistoryHash string

	// Layout is the lane/edge layout with derived geometry.
	Layout graph.Layout

	// Flows holds the resolved branch labels and the flow groups.
	Flows flow.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CommitCount int
	LaneCount   int
	GroupCount  int
	LayoutTime  time.Duration
	FlowTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	FlowsHit  bool // Whether labels and groups came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.RowHeight < 0 || o.LaneWidth < 0 || o.LanePadding < 0 || o.NodeRadius < 0 || o.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "geometry values must not be negative")
	}
	if o.MaxGroupSize < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "max_group_size must not be negative")
	}
	if o.Window < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "window must not be negative")
	}

	o.SetLayoutDefaults()
	o.SetFlowDefaults()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero geometry fields from graph.DefaultParams.
func (o *Options) SetLayoutDefaults() {
	d := graph.DefaultParams()
	if o.RowHeight == 0 {
		o.RowHeight = d.RowHeight
	}
	if o.LaneWidth == 0 {
		o.LaneWidth = d.LaneWidth
	}
	if o.LanePadding == 0 {
		o.LanePadding = d.LanePadding
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = d.NodeRadius
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = d.MaxWidth
	}
}

// SetFlowDefaults fills zero grouping fields from the flow package defaults.
func (o *Options) SetFlowDefaults() {
	if o.FallbackLabel == "" {
		o.FallbackLabel = flow.DefaultFallbackLabel
	}
	if o.MaxGroupSize == 0 {
		o.MaxGroupSize = flow.DefaultMaxGroupSize
	}
	if o.Window == 0 {
		o.Window = flow.DefaultWindow
	}
}

// Params returns the layout geometry derived from the options.
func (o *Options) Params() graph.Params {
	o.SetLayoutDefaults()
	return graph.Params{
		RowHeight:   o.RowHeight,
		LaneWidth:   o.LaneWidth,
		LanePadding: o.LanePadding,
		NodeRadius:  o.NodeRadius,
		MaxWidth:    o.MaxWidth,
	}
}

// FlowOptions returns the grouping options derived from the options.
func (o *Options) FlowOptions() flow.Options {
	o.SetFlowDefaults()
	return flow.Options{
		FallbackLabel: o.FallbackLabel,
		MaxGroupSize:  o.MaxGroupSize,
		Window:        o.Window,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		RowHeight:   o.RowHeight,
		LaneWidth:   o.LaneWidth,
		LanePadding: o.LanePadding,
		NodeRadius:  o.NodeRadius,
		MaxWidth:    o.MaxWidth,
	}
}

// FlowKeyOpts returns cache key options for flow grouping.
func (o *Options) FlowKeyOpts() cache.FlowKeyOpts {
	return cache.FlowKeyOpts{
		FallbackLabel: o.FallbackLabel,
		MaxGroupSize:  o.MaxGroupSize,
		Window:        o.Window,
	}
}
