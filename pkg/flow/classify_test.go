package flow

import "testing"

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		// Conventional commit tokens
		{"feat: add lane compression", "feat"},
		{"fix(graph): clamp lane step", "fix"},
		{"refactor!: drop legacy keys", "refactor"},
		{"FEAT: shouting caller", "feat"}, // token is lower-cased
		{"chore(deps)!: bump everything", "chore"},

		// Merge / revert prefixes
		{"Merge branch 'feature/x'", "merge"},
		{"Merge pull request #42", "merge"},
		{"Revert \"feat: add lane compression\"", "revert"},

		// Cherry-pick markers, case- and hyphen-insensitive
		{"Backport (cherry picked from commit abc)", "cherry-pick"},
		{"Cherry-pick hotfix into release", "cherry-pick"},
		{"CHERRY PICK of abc123", "cherry-pick"},

		// Precedence: conventional token beats everything
		{"revert: undo the undo", "revert"},
		{"merge: manual octopus", "merge"},

		// Plain commits
		{"update readme", "commit"},
		{"merged the teams", "commit"}, // lowercase "merge" prefix does not count
		{"", "commit"},
		{"(scope): missing type", "commit"},
		{"123: numeric type", "commit"},
	}

	for _, tt := range tests {
		if got := ClassifyMessage(tt.message); got != tt.want {
			t.Errorf("ClassifyMessage(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestHasCherryPickMarker(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"cherry-pick abc", true},
		{"cherry pick abc", true},
		{"Cherry-Pick abc", true},
		{"picked a cherry", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := hasCherryPickMarker(tt.message); got != tt.want {
			t.Errorf("hasCherryPickMarker(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
