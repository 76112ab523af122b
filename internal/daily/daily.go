// Package daily picks secret words deterministically: by calendar date for
// the server's daily mode, and by (seed, day) for the terminal game's random mode.
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

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Sequence walks a pre-shuffled answer list starting at a 1-based day,
// wrapping around at the end.
type Sequence struct {
	words []string
	pos   int
}

// NewSequence starts at day (1-based). Days beyond the list wrap around.
func NewSequence(shuffled []string, day int) *Sequence {
	s := &Sequence{words: shuffled}
	if len(shuffled) > 0 && day > 0 {
		s.pos = (day - 1) % len(shuffled)
	}
	return s
}

// Next returns the current word and advances to the following day.
// It returns "" for an empty list.
func (s *Sequence) Next() string {
	if len(s.words) == 0 {
		return ""
	}
	w := s.words[s.pos]
	s.pos = (s.pos + 1) % len(s.words)
	return w
}
