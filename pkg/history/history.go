// Package history defines the commit and branch snapshot types consumed by
// the layout and flow-grouping engines.
//
// A History is an immutable snapshot supplied by the surrounding application:
// an ordered commit list (newest first, row 0 = most recent) and the branch
// heads known at snapshot time. The engines in pkg/graph and pkg/flow never
// touch a repository themselves - they only read these values.
//
// Commit dates are Unix timestamps in seconds. Every duration in this module
// (notably the flow-grouping window) is expressed in the same unit.
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// Commit - One Row of the Visible History
// =============================================================================

// Commit is a single entry of the visible commit list.
//
// Parents holds the parent hashes in git order: the first entry is the
// primary parent, additional entries are merge sources. A parent hash that
// does not appear in the visible set is external - it produces no edge and
// no lane inheritance.
type Commit struct {
	Hash    string   `json:"hash" bson:"hash"`
	Author  string   `json:"author" bson:"author"`
	Message string   `json:"message" bson:"message"`
	Date    int64    `json:"date" bson:"date"` // Unix seconds
	Parents []string `json:"parents" bson:"parents"`
}

// IsRoot reports whether the commit has no parents at all.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// IsMerge reports whether the commit has two or more parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) >= 2 }

// Summary returns the first line of the commit message.
func (c *Commit) Summary() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// =============================================================================
// Branch - A Named Head
// =============================================================================

// Branch is a branch record from the snapshot. TargetHash is the tip commit
// hash, or empty when the branch points nowhere (e.g. an unborn branch).
type Branch struct {
	Name       string `json:"name" bson:"name"`
	IsCurrent  bool   `json:"is_current" bson:"is_current"`
	IsRemote   bool   `json:"is_remote" bson:"is_remote"`
	TargetHash string `json:"target_hash,omitempty" bson:"target_hash,omitempty"`
}

// ShortName returns the branch name with any remote prefix stripped:
// "origin/feature/x" becomes "feature/x". Local names pass through.
func (b *Branch) ShortName() string {
	if !b.IsRemote {
		return b.Name
	}
	if i := strings.IndexByte(b.Name, '/'); i >= 0 {
		return b.Name[i+1:]
	}
	return b.Name
}

// =============================================================================
// History - The Full Snapshot
// =============================================================================

// History is the canonical serialization format for one engine input:
// the visible commits (newest first) plus the branch list.
//
// The format is human-readable and round-trips exactly: import → compute →
// export → re-import yields identical engine output.
type History struct {
	Commits  []Commit `json:"commits" bson:"commits"`
	Branches []Branch `json:"branches" bson:"branches"`
}

// Index returns a hash→row lookup for the visible commits.
// On duplicate hashes the first (newest) row wins; duplicates are a caller
// precondition violation and are reported by Validate, not here.
func (h *History) Index() map[string]int {
	idx := make(map[string]int, len(h.Commits))
	for row := range h.Commits {
		if _, seen := idx[h.Commits[row].Hash]; !seen {
			idx[h.Commits[row].Hash] = row
		}
	}
	return idx
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalHistory serializes a History to pretty-printed JSON bytes.
func MarshalHistory(h History) ([]byte, error) {
	return json.MarshalIndent(h, "", "  ")
}

// ReadHistory decodes a JSON history snapshot from r.
func ReadHistory(r io.Reader) (History, error) {
	var h History
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return History{}, fmt.Errorf("decode: %w", err)
	}
	return h, nil
}

// ReadHistoryFile reads a JSON file at path and returns the decoded History.
func ReadHistoryFile(path string) (History, error) {
	f, err := os.Open(path)
	if err != nil {
		return History{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadHistory(f)
}

// WriteHistoryFile writes a History to a JSON file.
func WriteHistoryFile(h History, path string) error {
	data, err := MarshalHistory(h)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
