package errors

import "unicode"

// maxHashLength bounds hash input; git object names never exceed 64 hex
// characters (SHA-256 repositories), anything longer is garbage input.
const maxHashLength = 64

// ValidateHash validates a single commit hash for safety and plausibility.
//
// The validation rules are intentionally conservative:
//   - No empty hashes
//   - No control characters
//   - Maximum length of 64 characters
//
// Uniqueness across a snapshot is checked separately by history.Validate.
func ValidateHash(hash string) error {
	if hash == "" {
		return New(ErrCodeInvalidHistory, "commit hash cannot be empty")
	}

	if len(hash) > maxHashLength {
		return New(ErrCodeInvalidHistory, "commit hash too long (max %d characters)", maxHashLength)
	}

	for _, r := range hash {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidHistory, "commit hash contains invalid control characters")
		}
	}

	return nil
}

// ValidateBranchName validates a branch name from a snapshot.
// Empty names and control characters are rejected; everything else is the
// version-control engine's business.
func ValidateBranchName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "branch name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "branch name contains invalid control characters")
		}
	}
	return nil
}
