package graph

import (
	"reflect"
	"testing"

	"github.com/gitlite/flowgraph/pkg/history"
)

func TestBuildEdgesDiamond(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1", "c2"),
		commit("c1", "c3"),
		commit("c2", "c3"),
		commit("c3"),
	}
	lanes := ComputeLanes(commits)

	edges := BuildEdges(commits, lanes.LaneByRow)

	want := []Edge{
		{FromRow: 0, ToRow: 1, FromLane: 0, ToLane: 0},
		{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 1},
		{FromRow: 1, ToRow: 3, FromLane: 0, ToLane: 0},
		{FromRow: 2, ToRow: 3, FromLane: 1, ToLane: 0},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
}

func TestBuildEdgesSkipsInvisibleParents(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1", "gone"),
		commit("c1"),
	}
	lanes := ComputeLanes(commits)

	edges := BuildEdges(commits, lanes.LaneByRow)

	if len(edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(edges))
	}
	if edges[0].FromRow != 0 || edges[0].ToRow != 1 {
		t.Errorf("unexpected edge %v", edges[0])
	}
}

func TestBuildEdgesSkipsOutOfOrderParents(t *testing.T) {
	// A parent sorted above its child violates the newest-first precondition;
	// the pair emits nothing instead of an upward edge.
	commits := []history.Commit{
		commit("c0"),
		commit("c1", "c0"),
	}
	lanes := ComputeLanes(commits)

	edges := BuildEdges(commits, lanes.LaneByRow)

	if len(edges) != 0 {
		t.Errorf("out-of-order parent should emit no edges, got %v", edges)
	}
}

func TestBuildEdgesRowOrderInvariant(t *testing.T) {
	commits := []history.Commit{
		commit("m0", "m1", "s0"),
		commit("m1", "m2", "s1"),
		commit("m2"),
		commit("s0", "m2"),
		commit("s1", "m2"),
	}
	lanes := ComputeLanes(commits)

	for _, e := range BuildEdges(commits, lanes.LaneByRow) {
		if e.ToRow <= e.FromRow {
			t.Errorf("edge %v violates ToRow > FromRow", e)
		}
		if e.FromLane != lanes.LaneByRow[e.FromRow] || e.ToLane != lanes.LaneByRow[e.ToRow] {
			t.Errorf("edge %v lanes disagree with allocation %v", e, lanes.LaneByRow)
		}
	}
}
