package flow

import (
	"sort"

	"github.com/gitlite/flowgraph/pkg/history"
)

// Branch walk priorities. Lower wins.
const (
	priorityCurrent = 0
	priorityLocal   = 1
	priorityRemote  = 2
)

// extraHops pads the ancestry walk bound beyond the commit count so that a
// walk over a well-formed chain always completes, while malformed (cyclic)
// parent graphs still terminate.
const extraHops = 8

// assignment is the best label seen so far for one commit hash.
type assignment struct {
	label    string
	priority int
	distance int
}

// better reports whether the candidate should replace the incumbent:
// strictly lower priority, or equal priority and strictly smaller distance.
func (a assignment) better(than assignment) bool {
	if a.priority != than.priority {
		return a.priority < than.priority
	}
	return a.distance < than.distance
}

// ResolveLabels assigns the best branch name to every commit reachable from
// a branch tip.
//
// Branches are ranked by priority - the current local branch first, other
// local branches next, remotes last, ties broken by name ascending - and
// each one's ancestry is walked from its tip along first visible parents.
// A commit keeps the assignment with the lowest priority, breaking ties by
// hop distance from the tip. Remote names lose their remote prefix before
// use as display labels.
//
// Commits no walk reaches are absent from the result; callers fall back to
// a default label.
func ResolveLabels(commits []history.Commit, branches []history.Branch) map[string]string {
	index := make(map[string]int, len(commits))
	for row := range commits {
		if _, seen := index[commits[row].Hash]; !seen {
			index[commits[row].Hash] = row
		}
	}

	ranked := rankBranches(branches)
	assignments := make(map[string]assignment, len(commits))
	maxHops := len(commits) + extraHops

	for _, rb := range ranked {
		row, visible := index[rb.branch.TargetHash]
		if !visible {
			continue
		}

		cur := &commits[row]
		for hop := 0; hop < maxHops; hop++ {
			cand := assignment{label: rb.label, priority: rb.priority, distance: hop}
			if prev, ok := assignments[cur.Hash]; !ok || cand.better(prev) {
				assignments[cur.Hash] = cand
			}

			next, ok := firstVisibleParentRow(cur, index)
			if !ok {
				break
			}
			cur = &commits[next]
		}
	}

	labels := make(map[string]string, len(assignments))
	for hash, a := range assignments {
		labels[hash] = a.label
	}
	return labels
}

// rankedBranch pairs a branch with its walk priority and display label.
type rankedBranch struct {
	branch   history.Branch
	priority int
	label    string
}

// rankBranches orders branches by (priority, name) ascending.
func rankBranches(branches []history.Branch) []rankedBranch {
	ranked := make([]rankedBranch, 0, len(branches))
	for _, b := range branches {
		priority := priorityLocal
		switch {
		case b.IsRemote:
			priority = priorityRemote
		case b.IsCurrent:
			priority = priorityCurrent
		}
		ranked = append(ranked, rankedBranch{branch: b, priority: priority, label: b.ShortName()})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].priority != ranked[j].priority {
			return ranked[i].priority < ranked[j].priority
		}
		return ranked[i].branch.Name < ranked[j].branch.Name
	})
	return ranked
}

func firstVisibleParentRow(c *history.Commit, index map[string]int) (int, bool) {
	for _, parent := range c.Parents {
		if row, ok := index[parent]; ok {
			return row, true
		}
	}
	return 0, false
}
