package graph

import "github.com/gitlite/flowgraph/pkg/history"

// Edge is one parent→child connector segment. FromRow is the child (newer)
// commit, ToRow the parent (older). ToRow > FromRow always holds; pairs
// violating it are skipped at build time as corrupt input.
type Edge struct {
	FromRow  int `json:"from_row" bson:"from_row"`
	ToRow    int `json:"to_row" bson:"to_row"`
	FromLane int `json:"from_lane" bson:"from_lane"`
	ToLane   int `json:"to_lane" bson:"to_lane"`
}

// BuildEdges derives connector segments from lane assignments and the
// (row, parent hash) relation.
//
// For every commit, each parent present in the visible set yields one edge;
// merge commits therefore emit several edges from the same row. Parents
// outside the visible set, and parents whose row is not strictly below the
// child's (out-of-order input), emit nothing.
//
// laneByRow must come from [ComputeLanes] over the same commit slice.
func BuildEdges(commits []history.Commit, laneByRow []int) []Edge {
	index := rowIndex(commits)

	var edges []Edge
	for row := range commits {
		for _, parent := range commits[row].Parents {
			parentRow, visible := index[parent]
			if !visible || parentRow <= row {
				continue
			}
			edges = append(edges, Edge{
				FromRow:  row,
				ToRow:    parentRow,
				FromLane: laneByRow[row],
				ToLane:   laneByRow[parentRow],
			})
		}
	}
	return edges
}
