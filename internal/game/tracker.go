package game

import "strings"

// Tracker accumulates what has been learned about one secret word.
//
// It is owned by a single game and is not safe for concurrent use. All
// knowledge is monotonic: statuses only move up the LetterStatus order,
// confirmed positions stay confirmed and minimum counts never shrink until
// Reset starts over for a new secret.
type Tracker struct {
	status    [AlphabetSize]LetterStatus
	confirmed [WordLength]bool
	letters   [WordLength]byte // letter at each confirmed position
	minCount  [AlphabetSize]int
	guesses   int
}

// Knowledge is a read-only view of a Tracker, used for inspection and JSON.
type Knowledge struct {
	Letters        map[string]LetterStatus `json:"letters"`
	Confirmed      [WordLength]string      `json:"confirmed"`
	MinOccurrences map[string]int          `json:"minOccurrences"`
	Guesses        int                     `json:"guesses"`
}

// NewTracker returns a fresh tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Reset clears all knowledge.
func (t *Tracker) Reset() { *t = Tracker{} }

// Update folds one scored guess into the tracker. The guess is lower-cased
// first, as in Evaluate; a malformed guess is rejected and leaves the
// tracker untouched.
func (t *Tracker) Update(guess string, res Result) error {
	guess = strings.ToLower(guess)
	if err := validateWord(guess); err != nil {
		return err
	}

	var found [AlphabetSize]int
	for i := 0; i < WordLength; i++ {
		c := idx(guess[i])
		switch res[i] {
		case MarkExact:
			t.confirmed[i] = true
			t.letters[i] = guess[i]
			t.raise(c, StatusConfirmed)
			found[c]++
		case MarkPresent:
			t.raise(c, StatusPresent)
			found[c]++
		default:
			// Only an unknown letter may become absent: the same letter can
			// be reported absent here while confirmed or present elsewhere.
			if t.status[c] == StatusUnknown {
				t.status[c] = StatusAbsent
			}
		}
	}
	for c, n := range found {
		t.minCount[c] = max(t.minCount[c], n)
	}
	t.guesses++
	return nil
}

func (t *Tracker) raise(c int, s LetterStatus) {
	if s > t.status[c] {
		t.status[c] = s
	}
}

// IsConsistent is the difficult-mode check: candidate must keep every
// confirmed letter in place and still carry enough copies of each letter
// known to be in the secret. Case is ignored.
func (t *Tracker) IsConsistent(candidate string) bool {
	candidate = strings.ToLower(candidate)
	if validateWord(candidate) != nil {
		return false
	}
	return t.keepsPositions(candidate) && t.meetsCounts(candidate)
}

// FilterCandidates returns, in dictionary order, the words that could still
// be the secret. On top of IsConsistent it drops every word containing a
// letter known to be absent. Words are kept as spelled in the dictionary,
// which is not modified.
func (t *Tracker) FilterCandidates(dictionary []string) []string {
	out := make([]string, 0)
	for _, w := range dictionary {
		lw := strings.ToLower(w)
		if t.IsConsistent(lw) && !t.usesAbsent(lw) {
			out = append(out, w)
		}
	}
	return out
}

func (t *Tracker) keepsPositions(w string) bool {
	for i := 0; i < WordLength; i++ {
		if t.confirmed[i] && w[i] != t.letters[i] {
			return false
		}
	}
	return true
}

// meetsCounts checks the minimum counts that confirmed positions do not
// already satisfy against the candidate's letters at unconfirmed positions.
func (t *Tracker) meetsCounts(w string) bool {
	need := t.minCount
	var have [AlphabetSize]int
	for i := 0; i < WordLength; i++ {
		if t.confirmed[i] {
			need[idx(t.letters[i])]--
		} else {
			have[idx(w[i])]++
		}
	}
	for c := range need {
		if have[c] < need[c] {
			return false
		}
	}
	return true
}

func (t *Tracker) usesAbsent(w string) bool {
	for i := 0; i < len(w); i++ {
		if t.status[idx(w[i])] == StatusAbsent {
			return true
		}
	}
	return false
}

// Status returns the recorded status of letter c (a–z). Other bytes are unknown.
func (t *Tracker) Status(c byte) LetterStatus {
	if c < 'a' || c > 'z' {
		return StatusUnknown
	}
	return t.status[idx(c)]
}

// Statuses returns a copy of the per-letter statuses, indexed a..z.
func (t *Tracker) Statuses() [AlphabetSize]LetterStatus { return t.status }

// MinOccurrences returns a copy of the per-letter minimum counts, indexed a..z.
func (t *Tracker) MinOccurrences() [AlphabetSize]int { return t.minCount }

// Confirmed returns which positions are fixed.
func (t *Tracker) Confirmed() [WordLength]bool { return t.confirmed }

// Guesses reports how many updates were applied since the last Reset.
func (t *Tracker) Guesses() int { return t.guesses }

// Snapshot builds a Knowledge view containing only letters with information.
func (t *Tracker) Snapshot() Knowledge {
	k := Knowledge{
		Letters:        make(map[string]LetterStatus),
		MinOccurrences: make(map[string]int),
		Guesses:        t.guesses,
	}
	for c := 0; c < AlphabetSize; c++ {
		l := string(rune('a' + c))
		if t.status[c] != StatusUnknown {
			k.Letters[l] = t.status[c]
		}
		if t.minCount[c] > 0 {
			k.MinOccurrences[l] = t.minCount[c]
		}
	}
	for i := 0; i < WordLength; i++ {
		if t.confirmed[i] {
			k.Confirmed[i] = string(t.letters[i])
		}
	}
	return k
}
