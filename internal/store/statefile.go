package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// History is the JSON state file of the terminal game.
type History struct {
	TotalRounds int           `json:"total_rounds"`
	Games       []HistoryGame `json:"games"`
}

// HistoryGame is one finished round; words are stored upper-case.
type HistoryGame struct {
	Answer  string   `json:"answer"`
	Guesses []string `json:"guesses"`
}

// Won reports whether the last guess was the answer.
func (g HistoryGame) Won() bool {
	return len(g.Guesses) > 0 && strings.EqualFold(g.Guesses[len(g.Guesses)-1], g.Answer)
}

// LoadHistory reads a state file. A missing file is an empty history.
func LoadHistory(path string) (*History, error) {
	h := &History{Games: []HistoryGame{}}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(b, h); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if h.Games == nil {
		h.Games = []HistoryGame{}
	}
	return h, nil
}

// Append adds a round, upper-casing the words.
func (h *History) Append(answer string, guesses []string) {
	g := HistoryGame{Answer: strings.ToUpper(answer), Guesses: make([]string, len(guesses))}
	for i, w := range guesses {
		g.Guesses[i] = strings.ToUpper(w)
	}
	h.Games = append(h.Games, g)
	h.TotalRounds++
}

// Save writes the history atomically (temp file + rename).
func (h *History) Save(path string) error {
	b, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", dir, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
