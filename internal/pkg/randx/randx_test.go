package randx

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{4}$`)

	for i := 0; i < 200; i++ {
		code, err := RoomCode()
		require.NoError(t, err)
		assert.True(t, pattern.MatchString(code), "unexpected room code %q", code)
	}
}

func TestUserIDIsUUID(t *testing.T) {
	id := UserID()

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestConnectionIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		id := ConnectionID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate connection id %q", id)
		seen[id] = struct{}{}
	}
}

func TestIsValidRoomCode(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"uppercase letters", "WXYZ", true},
		{"too short", "WXY", false},
		{"too long", "WXYZA", false},
		{"lowercase", "wxyz", false},
		{"digits", "W1YZ", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidRoomCode(tt.code))
		})
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "ALICE", true},
		{"max length", "ABCDEFGHIJKL", true},
		{"too long", "ABCDEFGHIJKLM", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidName(tt.input))
		})
	}
}
