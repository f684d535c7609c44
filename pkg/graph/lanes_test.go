package graph

import (
	"reflect"
	"testing"

	"github.com/gitlite/flowgraph/pkg/history"
)

// commit builds a test commit with just the fields lane allocation reads.
func commit(hash string, parents ...string) history.Commit {
	return history.Commit{Hash: hash, Parents: parents}
}

func TestComputeLanesEmpty(t *testing.T) {
	lanes := ComputeLanes(nil)
	if len(lanes.LaneByRow) != 0 {
		t.Errorf("LaneByRow should be empty, got %v", lanes.LaneByRow)
	}
	if lanes.LaneCount != 0 {
		t.Errorf("LaneCount should be 0, got %d", lanes.LaneCount)
	}
}

func TestComputeLanesLinearChain(t *testing.T) {
	// c0 ← c1 ← c2 ← c3: everything is mainline.
	commits := []history.Commit{
		commit("c0", "c1"),
		commit("c1", "c2"),
		commit("c2", "c3"),
		commit("c3"),
	}

	lanes := ComputeLanes(commits)

	want := []int{0, 0, 0, 0}
	if !reflect.DeepEqual(lanes.LaneByRow, want) {
		t.Errorf("LaneByRow = %v, want %v", lanes.LaneByRow, want)
	}
	if lanes.LaneCount != 1 {
		t.Errorf("LaneCount = %d, want 1", lanes.LaneCount)
	}
	for _, c := range commits {
		if !lanes.Mainline[c.Hash] {
			t.Errorf("commit %s should be on the mainline", c.Hash)
		}
	}
}

func TestComputeLanesDiamond(t *testing.T) {
	// A merge diamond:
	//   c0 merges c1 (mainline) and c2 (side branch), both on top of c3.
	commits := []history.Commit{
		commit("c0", "c1", "c2"),
		commit("c1", "c3"),
		commit("c2", "c3"),
		commit("c3"),
	}

	lanes := ComputeLanes(commits)

	want := []int{0, 0, 1, 0}
	if !reflect.DeepEqual(lanes.LaneByRow, want) {
		t.Errorf("LaneByRow = %v, want %v", lanes.LaneByRow, want)
	}
	if lanes.LaneCount != 2 {
		t.Errorf("LaneCount = %d, want 2", lanes.LaneCount)
	}
	if lanes.Mainline["c2"] {
		t.Error("c2 is a merge source, not mainline")
	}
}

func TestComputeLanesSideBranchInheritsLane(t *testing.T) {
	// A two-commit side branch: the branch tip c1 should share its parent
	// c2's fresh lane rather than open a second one.
	commits := []history.Commit{
		commit("c0", "c3", "c1"), // merge of the side branch
		commit("c1", "c2"),       // side branch tip
		commit("c2", "c4"),       // side branch base
		commit("c3", "c4"),       // mainline
		commit("c4"),
	}

	lanes := ComputeLanes(commits)

	if lanes.LaneByRow[0] != 0 || lanes.LaneByRow[3] != 0 || lanes.LaneByRow[4] != 0 {
		t.Errorf("mainline rows should be lane 0, got %v", lanes.LaneByRow)
	}
	if lanes.LaneByRow[1] != lanes.LaneByRow[2] {
		t.Errorf("side branch should stay in one lane, got %v", lanes.LaneByRow)
	}
	if lanes.LaneByRow[1] == 0 {
		t.Errorf("side branch must not use the mainline lane, got %v", lanes.LaneByRow)
	}
	if lanes.LaneCount != 2 {
		t.Errorf("LaneCount = %d, want 2", lanes.LaneCount)
	}
}

func TestComputeLanesFreshLanesNeverReused(t *testing.T) {
	// Two disjoint side branches merged at different points. Each must get
	// its own lane even though their row ranges do not overlap.
	commits := []history.Commit{
		commit("m0", "m1", "s0"),
		commit("m1", "m2", "s1"),
		commit("m2"),
		commit("s0", "m2"),
		commit("s1", "m2"),
	}

	lanes := ComputeLanes(commits)

	if lanes.LaneByRow[3] == lanes.LaneByRow[4] {
		t.Errorf("independent branches must not share a lane, got %v", lanes.LaneByRow)
	}
	if lanes.LaneByRow[3] == 0 || lanes.LaneByRow[4] == 0 {
		t.Errorf("side branches must be off lane 0, got %v", lanes.LaneByRow)
	}
	if lanes.LaneCount != 3 {
		t.Errorf("LaneCount = %d, want 3", lanes.LaneCount)
	}
}

func TestComputeLanesInvisibleParents(t *testing.T) {
	// Parents outside the visible window neither crash nor affect lanes.
	commits := []history.Commit{
		commit("c0", "c1"),
		commit("c1", "gone"),
		commit("c2", "also-gone"),
	}

	lanes := ComputeLanes(commits)

	if len(lanes.LaneByRow) != 3 {
		t.Fatalf("LaneByRow length = %d, want 3", len(lanes.LaneByRow))
	}
	if lanes.LaneByRow[0] != 0 || lanes.LaneByRow[1] != 0 {
		t.Errorf("truncated mainline should stay on lane 0, got %v", lanes.LaneByRow)
	}
	if lanes.LaneByRow[2] != 1 {
		t.Errorf("disconnected commit should open lane 1, got %v", lanes.LaneByRow)
	}
}

func TestComputeLanesCycleTerminates(t *testing.T) {
	// Corrupt input with a parent cycle must still terminate and assign a
	// lane to every row.
	commits := []history.Commit{
		commit("c0", "c1"),
		commit("c1", "c0"),
	}

	lanes := ComputeLanes(commits)

	if len(lanes.LaneByRow) != 2 {
		t.Fatalf("LaneByRow length = %d, want 2", len(lanes.LaneByRow))
	}
}

func TestComputeLanesDeterministic(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "c1", "c2"),
		commit("c1", "c3"),
		commit("c2", "c3"),
		commit("c3"),
	}

	first := ComputeLanes(commits)
	for i := 0; i < 5; i++ {
		got := ComputeLanes(commits)
		if !reflect.DeepEqual(got.LaneByRow, first.LaneByRow) {
			t.Fatalf("run %d: LaneByRow = %v, want %v", i, got.LaneByRow, first.LaneByRow)
		}
	}
}

func TestComputeLanesDuplicateHashFirstRowWins(t *testing.T) {
	commits := []history.Commit{
		commit("c0", "dup"),
		commit("dup"),
		commit("dup"),
	}

	lanes := ComputeLanes(commits)

	if len(lanes.LaneByRow) != 3 {
		t.Fatalf("LaneByRow length = %d, want 3", len(lanes.LaneByRow))
	}
	// The newest duplicate row carries the hash; c0's parent edge lands there.
	if lanes.LaneByRow[0] != 0 || lanes.LaneByRow[1] != 0 {
		t.Errorf("mainline should run through the first duplicate, got %v", lanes.LaneByRow)
	}
}
