package graph

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/gitlite/flowgraph/pkg/history"
)

func TestComputeEmpty(t *testing.T) {
	l := Compute(nil, DefaultParams())

	if len(l.LaneByRow) != 0 || len(l.Edges) != 0 {
		t.Errorf("empty input should yield empty layout, got %+v", l)
	}
	if l.Width != 0 || l.Height != 0 {
		t.Errorf("empty input should yield zero geometry, got %+v", l)
	}
}

func TestComputeGeometry(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1"),
		commit("c1"),
	}
	p := DefaultParams()

	l := Compute(commits, p)

	if l.LaneCount != 1 {
		t.Fatalf("LaneCount = %d, want 1", l.LaneCount)
	}
	if l.LaneStep != p.LaneWidth {
		t.Errorf("LaneStep = %v, want %v (no compression for one lane)", l.LaneStep, p.LaneWidth)
	}
	wantWidth := 2*p.LanePadding + p.LaneWidth
	if l.Width != wantWidth {
		t.Errorf("Width = %v, want %v", l.Width, wantWidth)
	}
	wantHeight := 2 * p.RowHeight
	if l.Height != wantHeight {
		t.Errorf("Height = %v, want %v", l.Height, wantHeight)
	}
}

func TestLaneStepCompression(t *testing.T) {
	p := DefaultParams()

	// Few lanes: stock spacing.
	if got := p.LaneStep(3); got != p.LaneWidth {
		t.Errorf("LaneStep(3) = %v, want %v", got, p.LaneWidth)
	}

	// Many lanes: compressed so the graph fits MaxWidth.
	lanes := 40
	step := p.LaneStep(lanes)
	if step >= p.LaneWidth {
		t.Errorf("LaneStep(%d) = %v, should compress below %v", lanes, step, p.LaneWidth)
	}
	total := float64(lanes) * step
	if total > p.MaxWidth-2*p.LanePadding+1e-9 {
		t.Errorf("compressed lanes span %v, exceeds available %v", total, p.MaxWidth-2*p.LanePadding)
	}
}

func TestNodeCenter(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1"),
		commit("c1"),
	}
	p := DefaultParams()
	l := Compute(commits, p)

	got := l.NodeCenter(1, 0, p)
	want := Point{
		X: p.LanePadding + l.LaneStep/2,
		Y: p.RowHeight + p.RowHeight/2,
	}
	if got != want {
		t.Errorf("NodeCenter(1, 0) = %v, want %v", got, want)
	}
}

func TestEdgePathKinds(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1", "c2"),
		commit("c1", "c3"),
		commit("c2", "c3"),
		commit("c3"),
	}
	p := DefaultParams()
	l := Compute(commits, p)

	tests := []struct {
		name string
		edge Edge
		want PathKind
	}{
		{"same lane", Edge{FromRow: 1, ToRow: 3, FromLane: 0, ToLane: 0}, PathLine},
		{"adjacent rows", Edge{FromRow: 0, ToRow: 1, FromLane: 0, ToLane: 1}, PathLine},
		{"lane change over rows", Edge{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 1}, PathCubic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := l.EdgePath(tt.edge, p)
			if path.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", path.Kind, tt.want)
			}
		})
	}
}

func TestEdgePathCubicControlPoints(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1", "c2"),
		commit("c1", "c3"),
		commit("c2", "c3"),
		commit("c3"),
	}
	p := DefaultParams()
	l := Compute(commits, p)

	path := l.EdgePath(Edge{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 1}, p)

	if path.Kind != PathCubic {
		t.Fatalf("Kind = %s, want cubic", path.Kind)
	}
	// Control points keep the curve vertical at its endpoints.
	if path.C1.X != path.From.X {
		t.Errorf("C1.X = %v, want %v", path.C1.X, path.From.X)
	}
	if path.C2.X != path.To.X {
		t.Errorf("C2.X = %v, want %v", path.C2.X, path.To.X)
	}
	dy := path.To.Y - path.From.Y
	if math.Abs(path.C1.Y-(path.From.Y+dy*0.4)) > 1e-9 {
		t.Errorf("C1.Y = %v, want %v", path.C1.Y, path.From.Y+dy*0.4)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1"),
		commit("c1"),
	}
	l := Compute(commits, DefaultParams())

	path := filepath.Join(t.TempDir(), "out.layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if got.LaneCount != l.LaneCount || len(got.Edges) != len(l.Edges) {
		t.Errorf("round trip changed layout: %+v vs %+v", got, l)
	}
}
