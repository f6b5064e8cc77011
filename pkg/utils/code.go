package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateJoinCode produces an uppercase hex code spectators type to follow
// a match. Collisions are resolved by the caller retrying on the unique
// index.
func GenerateJoinCode(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(bytes)[:length])
}
