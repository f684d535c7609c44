package history

import "github.com/gitlite/flowgraph/pkg/errors"

// Validate checks the snapshot against the engine preconditions:
// non-empty commit list, well-formed unique hashes, well-formed branch names.
//
// Validation belongs to the import boundary (file load, HTTP request).
// The engines themselves absorb malformed input locally and never fail,
// so a History that skips Validate still produces output - just an
// unspecified one where preconditions were violated.
func (h *History) Validate() error {
	if len(h.Commits) == 0 {
		return errors.New(errors.ErrCodeEmptyHistory, "history contains no commits")
	}

	seen := make(map[string]int, len(h.Commits))
	for row := range h.Commits {
		hash := h.Commits[row].Hash
		if err := errors.ValidateHash(hash); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidHistory, err, "commit at row %d", row)
		}
		if prev, dup := seen[hash]; dup {
			return errors.New(errors.ErrCodeDuplicateHash, "hash %s appears at rows %d and %d", hash, prev, row)
		}
		seen[hash] = row
	}

	for i := range h.Branches {
		if err := errors.ValidateBranchName(h.Branches[i].Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidHistory, err, "branch at index %d", i)
		}
	}

	return nil
}
