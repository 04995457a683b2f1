/*
Package randx provides cryptographically secure random identifier generation.

It generates the short alphabetic room codes clients type to join a room, plus the
UUID identifiers used for users and realtime connections, and offers the matching
boundary validation helpers.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// RoomCodeAlphabet is the character set room codes are drawn from.
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// RoomCodeLength is the fixed length of a room code.
	RoomCodeLength = 4

	// MaxNameLength is the longest display name accepted from clients.
	MaxNameLength = 12
)

var alphabetLen = big.NewInt(int64(len(RoomCodeAlphabet)))

// RoomCode generates a room code of RoomCodeLength uppercase letters, each drawn
// independently and uniformly from RoomCodeAlphabet using crypto/rand.
func RoomCode() (string, error) {
	result := make([]byte, RoomCodeLength)

	for i := 0; i < RoomCodeLength; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random letter for room code: %w", err)
		}

		result[i] = RoomCodeAlphabet[num.Int64()]
	}

	return string(result), nil
}

// UserID generates a UUID v4 string used as the opaque server-side user identifier.
func UserID() string {
	return uuid.New().String()
}

// ConnectionID generates a UUID v4 string identifying a single realtime connection.
func ConnectionID() string {
	return uuid.New().String()
}

// MessageID generates a UUID v4 string identifying a single realtime message.
func MessageID() string {
	return uuid.New().String()
}

// IsValidRoomCode reports whether code has the exact shape of a generated room code:
// RoomCodeLength characters, all from RoomCodeAlphabet.
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(RoomCodeAlphabet, char) {
			return false
		}
	}

	return true
}

// IsValidName reports whether name is an acceptable display name: non-empty after
// trimming and at most MaxNameLength characters.
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)

	return trimmed != "" && len(trimmed) <= MaxNameLength
}
