// Package stats accumulates win/loss counts and word usage across rounds.
package stats

import (
	"slices"
	"strings"
)

// TopN is how many most-used words Summary reports.
const TopN = 5

// Tally holds running totals for one player or session.
type Tally struct {
	Wins   int
	Losses int
	Tries  int // guesses spent on won rounds
	used   map[string]int
}

// WordCount is one entry of the most-used list.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// New returns an empty tally.
func New() *Tally { return &Tally{used: make(map[string]int)} }

// Record adds a finished round. Guesses count as used words either way.
func (t *Tally) Record(guesses []string, won bool) {
	for _, g := range guesses {
		t.used[strings.ToLower(g)]++
	}
	if won {
		t.Wins++
		t.Tries += len(guesses)
	} else {
		t.Losses++
	}
}

// AverageTries is the mean number of guesses per won round, 0 without wins.
func (t *Tally) AverageTries() float64 {
	if t.Wins == 0 {
		return 0
	}
	return float64(t.Tries) / float64(t.Wins)
}

// Top returns the n most used words, by count desc then word asc.
func (t *Tally) Top(n int) []WordCount {
	out := make([]WordCount, 0, len(t.used))
	for w, c := range t.used {
		out = append(out, WordCount{Word: w, Count: c})
	}
	slices.SortFunc(out, func(a, b WordCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Word, b.Word)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
