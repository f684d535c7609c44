package errors

import (
	"strings"
	"testing"
)

func TestValidateHash(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr bool
	}{
		{"normal sha1", "a1b2c3d4e5f601234567a1b2c3d4e5f601234567", false},
		{"sha256 length", strings.Repeat("f", 64), false},
		{"short ref ok", "abc123", false},
		{"empty", "", true},
		{"too long", strings.Repeat("f", 65), true},
		{"control char", "abc\ndef", true},
		{"null byte", "abc\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHash(tt.hash)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHash(%q) error = %v, wantErr %v", tt.hash, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		branch  string
		wantErr bool
	}{
		{"simple", "main", false},
		{"with slash", "feature/lanes", false},
		{"remote", "origin/main", false},
		{"unicode", "функция", false},
		{"empty", "", true},
		{"control char", "main\tdev", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.branch)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBranchName(%q) error = %v, wantErr %v", tt.branch, err, tt.wantErr)
			}
		})
	}
}
