package flow

import (
	"regexp"
	"strings"
)

// Type labels produced when no Conventional-Commit token is present.
const (
	TypeCommit     = "commit"
	TypeMerge      = "merge"
	TypeRevert     = "revert"
	TypeCherryPick = "cherry-pick"
)

// conventionalToken matches a leading Conventional-Commit prefix:
// a bare type, an optional (scope), an optional breaking-change bang,
// then the colon. Only the type token is captured.
var conventionalToken = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)(\([^)]*\))?!?:`)

// ClassifyMessage infers the commit type from its message.
//
// Precedence: a leading Conventional-Commit token (lower-cased) wins, then
// a "Merge" prefix, then a "Revert" prefix, then a cherry-pick marker
// anywhere in the message (matched case- and hyphen-insensitively),
// otherwise the plain "commit" type.
func ClassifyMessage(message string) string {
	if m := conventionalToken.FindStringSubmatch(message); m != nil {
		return strings.ToLower(m[1])
	}
	if strings.HasPrefix(message, "Merge") {
		return TypeMerge
	}
	if strings.HasPrefix(message, "Revert") {
		return TypeRevert
	}
	if hasCherryPickMarker(message) {
		return TypeCherryPick
	}
	return TypeCommit
}

// hasCherryPickMarker reports whether the message mentions a cherry-pick,
// tolerating any case and either a hyphen or a space between the words.
func hasCherryPickMarker(message string) bool {
	normalized := strings.ReplaceAll(strings.ToLower(message), "-", " ")
	return strings.Contains(normalized, "cherry pick")
}
