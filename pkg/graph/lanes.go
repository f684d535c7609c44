package graph

import "github.com/gitlite/flowgraph/pkg/history"

// Lanes is the result of lane allocation: one lane index per commit row plus
// the mainline membership set.
type Lanes struct {
	// LaneByRow has exactly one entry per input commit. Lane 0 is the
	// mainline; all other lanes are allocated fresh and never reused.
	LaneByRow []int

	// LaneCount is the total number of allocated lanes (max lane + 1).
	LaneCount int

	// Mainline holds the hashes reached by the first-parent walk from row 0.
	Mainline map[string]bool
}

// ComputeLanes assigns one lane per commit row.
//
// The mainline - the chain obtained by repeatedly following the first
// visible parent from row 0 - always occupies lane 0. Walking rows oldest
// to newest, a non-mainline commit inherits its parent's lane only when it
// is that parent's primary child and the parent is itself off the mainline;
// every other commit opens a brand-new lane. Lanes are never reused once
// their branch ends, trading total lane count for layout stability: a new
// short branch never silently overlaps a finished one.
func ComputeLanes(commits []history.Commit) Lanes {
	if len(commits) == 0 {
		return Lanes{Mainline: map[string]bool{}}
	}

	index := rowIndex(commits)
	mainline := walkMainline(commits, index)
	primary := primaryChildren(commits, index, mainline)

	laneByRow := make([]int, len(commits))
	nextLane := 1

	// Oldest to newest so a parent's lane is settled before its children ask.
	for row := len(commits) - 1; row >= 0; row-- {
		c := &commits[row]
		if mainline[c.Hash] {
			laneByRow[row] = 0
			continue
		}

		parentHash, parentRow, ok := firstVisibleParent(c, index)
		if ok && primary[parentHash] == row && laneByRow[parentRow] != 0 {
			laneByRow[row] = laneByRow[parentRow]
			continue
		}

		laneByRow[row] = nextLane
		nextLane++
	}

	return Lanes{
		LaneByRow: laneByRow,
		LaneCount: nextLane,
		Mainline:  mainline,
	}
}

// rowIndex builds the hash→row lookup. On duplicate hashes the newest row
// wins; duplicates are a precondition violation, not an error.
func rowIndex(commits []history.Commit) map[string]int {
	index := make(map[string]int, len(commits))
	for row := range commits {
		if _, seen := index[commits[row].Hash]; !seen {
			index[commits[row].Hash] = row
		}
	}
	return index
}

// walkMainline follows the first visible parent from row 0 until the chain
// leaves the visible set or revisits a hash (cycle guard).
func walkMainline(commits []history.Commit, index map[string]int) map[string]bool {
	mainline := make(map[string]bool, len(commits))
	cur := &commits[0]
	for {
		if mainline[cur.Hash] {
			break // cycle guard
		}
		mainline[cur.Hash] = true

		_, parentRow, ok := firstVisibleParent(cur, index)
		if !ok {
			break
		}
		cur = &commits[parentRow]
	}
	return mainline
}

// primaryChildren picks, for each parent hash with at least one visible
// child, the child row that continues the parent's lane. Preference order:
// a mainline child, then a child whose own first parent is this parent
// (i.e. we are its primary git parent, not a merge source), then the child
// nearest the head.
func primaryChildren(commits []history.Commit, index map[string]int, mainline map[string]bool) map[string]int {
	// Child rows per parent, ascending (nearer the head first).
	children := make(map[string][]int, len(commits))
	for row := range commits {
		for _, parent := range commits[row].Parents {
			if _, visible := index[parent]; visible {
				children[parent] = append(children[parent], row)
			}
		}
	}

	primary := make(map[string]int, len(children))
	for parent, rows := range children {
		chosen := -1
		for _, row := range rows {
			if mainline[commits[row].Hash] {
				chosen = row
				break
			}
		}
		if chosen < 0 {
			for _, row := range rows {
				if p := commits[row].Parents; len(p) > 0 && p[0] == parent {
					chosen = row
					break
				}
			}
		}
		if chosen < 0 {
			chosen = rows[0]
		}
		primary[parent] = chosen
	}
	return primary
}

// firstVisibleParent returns the first parent hash of c that is present in
// the visible set, along with its row.
func firstVisibleParent(c *history.Commit, index map[string]int) (string, int, bool) {
	for _, parent := range c.Parents {
		if row, ok := index[parent]; ok {
			return parent, row, true
		}
	}
	return "", 0, false
}
