// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers ∪ allowed).
//   - Supply RandomAnswer, IsAllowed, IsAnswer, Stats and the seeded Shuffled order.
//
// Word Lists:
//   - "answers": candidate secrets (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//  1. Both paths set: load both; every answer must also be an allowed word.
//  2. Only the allowed path set: use that file for both lists.
//  3. Neither set: use the embedded defaults from the assets package.
//
// Constraints:
//   - Lines are trimmed, lowercased and stripped to letters; blank and '#' lines are skipped.
//   - Words that are not 5 letters after sanitising are dropped.
//   - Lists are deduplicated and sorted.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	mrand "math/rand"
	"os"
	"slices"
	"strings"

	"github.com/robalobadob/wordle-engine/assets"
	"github.com/robalobadob/wordle-engine/internal/game"
)

var (
	ErrEmpty     = errors.New("words: answers list is empty")
	ErrNotSubset = errors.New("words: answers are not a subset of allowed words")
	ErrNoAllowed = errors.New("words: answers file given without an allowed file")
)

// List is an immutable pair of answer and allowed lists.
type List struct {
	answers    []string            // sorted answers
	allowed    []string            // sorted answers ∪ guesses
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load builds a List from optional files; see the package comment.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList, allowList = normalize(ansList), normalize(allowList)
		allowSet := toSet(allowList)
		for _, w := range ansList {
			if _, ok := allowSet[w]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrNotSubset, w)
			}
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	case answersPath != "":
		return nil, ErrNoAllowed

	default:
		if ansList, err = readEmbedded(assets.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile); err != nil {
			return nil, err
		}
	}
	return New(ansList, allowList)
}

// New builds a List from in-memory words, sanitising them the same way as files.
func New(answers, allowed []string) (*List, error) {
	l := &List{
		answers: normalize(answers),
	}
	l.answersSet = toSet(l.answers)
	l.allowed = normalize(append(slices.Clone(answers), allowed...))
	l.allowedSet = toSet(l.allowed)
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	out, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func readEmbedded(name string) ([]string, error) {
	f, err := assets.Words.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open embedded %s: %w", name, err)
	}
	defer f.Close()
	return readLines(f)
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalize sanitises, filters to valid words, sorts and deduplicates.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if w = Sanitize(w); Valid(w) {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Sanitize trims, lowercases and drops every non-letter rune.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether w is exactly game.WordLength letters a–z.
func Valid(w string) bool {
	if len(w) != game.WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Answers returns the sorted answer list. Callers must not modify it.
func (l *List) Answers() []string { return l.answers }

// Allowed returns the sorted allowed list. Callers must not modify it.
func (l *List) Allowed() []string { return l.allowed }

// IsAllowed reports whether w is a valid guess (answers ∪ allowed).
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}

// RandomAnswer returns a cryptographically random answer.
func (l *List) RandomAnswer() string {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	return l.answers[nBig.Int64()]
}

// Shuffled returns a copy of the answers in a deterministic order for seed.
func (l *List) Shuffled(seed int64) []string {
	out := slices.Clone(l.answers)
	rng := mrand.New(mrand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
