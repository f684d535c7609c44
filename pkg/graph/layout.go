package graph

import "github.com/gitlite/flowgraph/pkg/history"

// =============================================================================
// Params - Presentation Constants
// =============================================================================

// Params holds the fixed presentation constants the geometry derives from.
// The zero value is not usable - start from [DefaultParams].
type Params struct {
	RowHeight   float64 `json:"row_height" toml:"row_height"`
	LaneWidth   float64 `json:"lane_width" toml:"lane_width"`
	LanePadding float64 `json:"lane_padding" toml:"lane_padding"`
	NodeRadius  float64 `json:"node_radius" toml:"node_radius"`

	// MaxWidth caps the total graph width. Once the lane count would push
	// past it, lane spacing is compressed so the graph still fits.
	MaxWidth float64 `json:"max_width" toml:"max_width"`
}

// DefaultParams returns the stock geometry constants.
func DefaultParams() Params {
	return Params{
		RowHeight:   26,
		LaneWidth:   14,
		LanePadding: 8,
		NodeRadius:  4,
		MaxWidth:    220,
	}
}

// LaneStep returns the horizontal distance between lane centers for the
// given lane count, compressing spacing when the graph would exceed
// MaxWidth.
func (p Params) LaneStep(laneCount int) float64 {
	if laneCount <= 0 {
		return p.LaneWidth
	}
	step := p.LaneWidth
	if avail := p.MaxWidth - 2*p.LanePadding; float64(laneCount)*step > avail {
		step = avail / float64(laneCount)
	}
	return step
}

// =============================================================================
// Layout - The Full Graph Output
// =============================================================================

// Layout is the complete lane/edge layout for one history snapshot, plus the
// derived presentation geometry. It is a plain value recomputed from scratch
// on every call; nothing persists between invocations.
type Layout struct {
	LaneByRow []int  `json:"lane_by_row" bson:"lane_by_row"`
	Edges     []Edge `json:"edges" bson:"edges"`
	LaneCount int    `json:"lane_count" bson:"lane_count"`

	// Derived geometry.
	LaneStep float64 `json:"lane_step" bson:"lane_step"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
}

// Compute runs lane allocation and edge building over the snapshot and
// attaches geometry derived from p. An empty commit list yields the zero
// Layout.
func Compute(commits []history.Commit, p Params) Layout {
	if len(commits) == 0 {
		return Layout{LaneByRow: []int{}, Edges: []Edge{}}
	}

	lanes := ComputeLanes(commits)
	edges := BuildEdges(commits, lanes.LaneByRow)
	step := p.LaneStep(lanes.LaneCount)

	return Layout{
		LaneByRow: lanes.LaneByRow,
		Edges:     edges,
		LaneCount: lanes.LaneCount,
		LaneStep:  step,
		Width:     2*p.LanePadding + step*float64(lanes.LaneCount),
		Height:    float64(len(commits)) * p.RowHeight,
	}
}

// NodeCenter returns the drawing center of the commit marker at the given
// row and lane under this layout's geometry.
func (l *Layout) NodeCenter(row, lane int, p Params) Point {
	return Point{
		X: p.LanePadding + float64(lane)*l.LaneStep + l.LaneStep/2,
		Y: float64(row)*p.RowHeight + p.RowHeight/2,
	}
}
