package flow

import (
	"strings"

	"github.com/gitlite/flowgraph/pkg/history"
)

// =============================================================================
// Options
// =============================================================================

// Grouping defaults.
const (
	// DefaultFallbackLabel is used for commits no branch walk reached.
	DefaultFallbackLabel = "detached"

	// DefaultMaxGroupSize caps how many commits one group may absorb.
	DefaultMaxGroupSize = 8

	// DefaultWindow is the largest gap, in seconds, between adjacent
	// commits that still groups them together (6 hours).
	DefaultWindow int64 = 6 * 60 * 60
)

// Options configures the grouping scan. The zero value is usable: zero
// fields fall back to the package defaults.
type Options struct {
	FallbackLabel string `json:"fallback_label,omitempty"`
	MaxGroupSize  int    `json:"max_group_size,omitempty"`
	Window        int64  `json:"window,omitempty"` // seconds
}

func (o Options) withDefaults() Options {
	if o.FallbackLabel == "" {
		o.FallbackLabel = DefaultFallbackLabel
	}
	if o.MaxGroupSize == 0 {
		o.MaxGroupSize = DefaultMaxGroupSize
	}
	if o.Window == 0 {
		o.Window = DefaultWindow
	}
	return o
}

// =============================================================================
// Group - One Collapsible Unit
// =============================================================================

// Relation records merge/revert/cherry-pick occurrences within a group,
// deduplicated by kind with an occurrence count.
type Relation struct {
	Kind  string `json:"kind" bson:"kind"`
	Label string `json:"label" bson:"label"`
	Count int    `json:"count" bson:"count"`
}

// Group is a contiguous run of commits collapsed into one visual unit.
//
// StartedAt and EndedAt are the chronological bounds of the group:
// StartedAt is the oldest member's date, EndedAt the newest's. (The window
// check during grouping always measures the gap to the adjacent commit,
// not to these bounds.)
type Group struct {
	ID          string           `json:"id" bson:"id"` // hash of the first (newest) commit
	Lane        int              `json:"lane" bson:"lane"`
	BranchLabel string           `json:"branch_label" bson:"branch_label"`
	TypeLabel   string           `json:"type_label" bson:"type_label"`
	StartedAt   int64            `json:"started_at" bson:"started_at"`
	EndedAt     int64            `json:"ended_at" bson:"ended_at"`
	Commits     []history.Commit `json:"commits" bson:"commits"`
	Relations   []Relation       `json:"relations,omitempty" bson:"relations,omitempty"`
}

// =============================================================================
// Grouping Scan
// =============================================================================

// GroupCommits partitions the commit stream into groups.
//
// One forward scan with an explicit open-group builder: each commit either
// joins the open group (same branch label, same type label, group below the
// size cap, and within the time window of the previously appended commit)
// or closes it and opens a new one seeded with its own hash and lane.
//
// The concatenation of all returned group commit slices reproduces the
// input exactly - no gaps, overlaps, or reordering.
//
// laneByRow must come from graph.ComputeLanes over the same commit slice;
// labels from [ResolveLabels]. Both may be nil, in which case lane 0 and
// the fallback label apply throughout.
func GroupCommits(commits []history.Commit, laneByRow []int, labels map[string]string, opts Options) []Group {
	opts = opts.withDefaults()

	var groups []Group
	var open *builder

	for row := range commits {
		c := &commits[row]

		branchLabel := opts.FallbackLabel
		if label, ok := labels[c.Hash]; ok {
			branchLabel = label
		}
		typeLabel := ClassifyMessage(c.Message)

		if open != nil && open.accepts(branchLabel, typeLabel, c.Date, opts) {
			open.append(c)
			continue
		}

		if open != nil {
			groups = append(groups, open.group)
		}
		lane := 0
		if row < len(laneByRow) {
			lane = laneByRow[row]
		}
		open = newBuilder(c, lane, branchLabel, typeLabel)
	}

	if open != nil {
		groups = append(groups, open.group)
	}
	return groups
}

// builder is the explicit open-group state: the group value under
// construction plus the date of the last appended commit, which drives the
// adjacency window check.
type builder struct {
	group    Group
	lastDate int64
}

func newBuilder(c *history.Commit, lane int, branchLabel, typeLabel string) *builder {
	b := &builder{
		group: Group{
			ID:          c.Hash,
			Lane:        lane,
			BranchLabel: branchLabel,
			TypeLabel:   typeLabel,
			StartedAt:   c.Date,
			EndedAt:     c.Date,
		},
		lastDate: c.Date,
	}
	b.push(c)
	return b
}

// accepts reports whether the commit may join the open group.
func (b *builder) accepts(branchLabel, typeLabel string, date int64, opts Options) bool {
	if branchLabel != b.group.BranchLabel || typeLabel != b.group.TypeLabel {
		return false
	}
	if len(b.group.Commits) >= opts.MaxGroupSize {
		return false
	}
	gap := b.lastDate - date
	if gap < 0 {
		gap = -gap
	}
	return gap <= opts.Window
}

// append adds the commit and widens the group's chronological bounds.
func (b *builder) append(c *history.Commit) {
	b.push(c)
	b.lastDate = c.Date
	if c.Date < b.group.StartedAt {
		b.group.StartedAt = c.Date
	}
	if c.Date > b.group.EndedAt {
		b.group.EndedAt = c.Date
	}
}

// push records the commit and its relation tags.
func (b *builder) push(c *history.Commit) {
	b.group.Commits = append(b.group.Commits, *c)
	for _, rel := range relationTags(c.Message) {
		b.addRelation(rel.kind, rel.label)
	}
}

// addRelation increments the count for kind, creating the entry on first use.
func (b *builder) addRelation(kind, label string) {
	for i := range b.group.Relations {
		if b.group.Relations[i].Kind == kind {
			b.group.Relations[i].Count++
			return
		}
	}
	b.group.Relations = append(b.group.Relations, Relation{Kind: kind, Label: label, Count: 1})
}

// relationTag is one merge/revert/cherry-pick occurrence in a message.
type relationTag struct {
	kind  string
	label string
}

// relationTags extracts relation markers from a commit message. A message
// can carry several (a revert of a cherry-picked commit tags both kinds).
func relationTags(message string) []relationTag {
	var tags []relationTag
	if strings.HasPrefix(message, "Merge") {
		tags = append(tags, relationTag{kind: TypeMerge, label: "Merge"})
	}
	if strings.HasPrefix(message, "Revert") {
		tags = append(tags, relationTag{kind: TypeRevert, label: "Revert"})
	}
	if hasCherryPickMarker(message) {
		tags = append(tags, relationTag{kind: TypeCherryPick, label: "Cherry-pick"})
	}
	return tags
}
