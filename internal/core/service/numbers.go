package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// generateNumber returns a reference number in the format PREFIX-XXXXXXXX.
// Uniqueness is enforced by the store's unique index; collisions at 32 bits
// of randomness surface as insert errors, not silent overwrites.
func generateNumber(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%s-%08X", prefix, time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s-%08X", prefix, b)
}
