package trip

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// CodeLength is the number of characters in a join code.
const CodeLength = 8

// NewCode returns a fresh join code: 4 random bytes rendered as 8 uppercase
// hexadecimal characters. Uniqueness is enforced by the store, not here.
func NewCode() (string, error) {
	b := make([]byte, CodeLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("trip.NewCode: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// NormalizeCode trims and upper-cases user-supplied join codes so that
// "ab12cd34 " matches "AB12CD34".
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCode reports whether code has the persisted join-code shape.
func IsValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}
