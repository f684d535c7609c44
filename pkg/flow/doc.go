// Package flow turns a flat commit stream into labeled, collapsible units.
//
// Two independent pure computations live here:
//
//   - [ResolveLabels] walks ancestry from every branch tip and assigns the
//     best branch name to each reachable commit, ordered by branch priority
//     (current local < other local < remote) and hop distance.
//   - [GroupCommits] scans the commit stream once, left to right, and
//     partitions it into contiguous [Group] values sharing a branch label
//     and commit type within a time window.
//
// Like pkg/graph, everything here is deterministic: identical input yields
// identical output, and the concatenation of all group commit slices always
// reproduces the input sequence exactly.
package flow
