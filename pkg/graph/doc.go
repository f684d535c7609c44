// Package graph computes the lane/edge layout for a commit history.
//
// The input is a visible commit list in newest-first order (row 0 = most
// recent commit). The output is a [Layout]: one lane index per row, the
// parent→child connector edges, and the presentation geometry a renderer
// needs to draw a `git log --graph`-style view.
//
// # Pipeline
//
// Layout computation runs in two pure stages:
//
//  1. [ComputeLanes] identifies the mainline (repeated first-parent walk
//     from row 0) and allocates one lane per row. Lane 0 is reserved for
//     the mainline; divergent history gets fresh, monotonically increasing
//     lanes that are never reused.
//  2. [BuildEdges] derives connector segments from the lane assignment and
//     the (row, parent hash) relation. Unresolved or out-of-order parents
//     produce no edge.
//
// [Compute] runs both stages and attaches geometry derived from [Params].
//
// # Determinism
//
// Every function in this package is a pure function of its arguments:
// identical input yields byte-identical output. Lane allocation walks rows
// oldest to newest, tie-breaks are positional, and no map iteration order
// leaks into results. This is required for golden tests and for UI diffing
// in the consuming application.
//
// # Malformed Input
//
// The engine never fails. External parent hashes allocate fresh lanes and
// emit no edges; cyclic parent graphs are bounded by a visited-set guard in
// the mainline walk; duplicate hashes are a caller precondition violation
// and yield an unspecified (but still bounded) layout.
package graph
