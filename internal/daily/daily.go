// Package daily derives the puzzle of the day and records who solved it.
//
// Every player gets the same grid on a given UTC date: the generator seed is
// HMAC-SHA256(salt, "YYYY-MM-DD"), so the salt keeps upcoming puzzles unguessable.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the deterministic, non-zero generator seed for t's UTC date.
func Seed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes, sign bit cleared
	n := int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
	if n == 0 {
		n = 1 // 0 means "time-based" to the puzzle generator
	}
	return n
}
