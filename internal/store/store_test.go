package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/stats"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := &Session{Game: game.New("light", nil, false), Mode: "random"}

	if _, err := st.Get(ctx, s.Game.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Save err = %v", err)
	}
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, s.Game.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	_ = st.Delete(ctx, s.Game.ID)
	if _, err := st.Get(ctx, s.Game.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete err = %v", err)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	h, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("LoadHistory(missing) failed: %v", err)
	}
	if h.TotalRounds != 0 || len(h.Games) != 0 {
		t.Fatalf("missing file history = %+v", h)
	}

	h.Append("light", []string{"crane", "light"})
	h.Append("igloo", []string{"crane"})
	if err := h.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	again, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if again.TotalRounds != 2 || len(again.Games) != 2 {
		t.Fatalf("history = %+v", again)
	}
	first := again.Games[0]
	if first.Answer != "LIGHT" || !slices.Equal(first.Guesses, []string{"CRANE", "LIGHT"}) || !first.Won() {
		t.Fatalf("first game = %+v", first)
	}
	if again.Games[1].Won() {
		t.Fatal("second game should be a loss")
	}
}

func TestLoadHistoryDefaults(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "partial.json")
	_ = os.WriteFile(partial, []byte(`{"total_rounds": 1}`), 0o644)
	h, err := LoadHistory(partial)
	if err != nil || h.Games == nil || h.TotalRounds != 1 {
		t.Fatalf("partial = %+v, %v", h, err)
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte(`[`), 0o644)
	if _, err := LoadHistory(bad); err == nil {
		t.Fatal("expected parse error")
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i, err)
		}
		db.Close()
	}
}

func TestPlayers(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	p, err := db.CreatePlayer(ctx, "p1", "Alice", "hash")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if _, err := db.CreatePlayer(ctx, "p2", "alice", "hash"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate err = %v", err)
	}
	got, err := db.PlayerByUsername(ctx, "ALICE")
	if err != nil || got.ID != p.ID || got.PasswordHash != "hash" {
		t.Fatalf("PlayerByUsername = %+v, %v", got, err)
	}
	if _, err := db.PlayerByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing player err = %v", err)
	}
}

func TestCreatePlayerConcurrentSignup(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.CreatePlayer(ctx, fmt.Sprintf("p%d", i), "Carol", "hash")
		}(i)
	}
	wg.Wait()

	created := 0
	for i, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrUsernameTaken):
			t.Fatalf("signup %d err = %v, want ErrUsernameTaken", i, err)
		}
	}
	if created != 1 {
		t.Fatalf("created %d players, want 1", created)
	}
}

func playRecorded(t *testing.T, db *DB, playerID, answer string, guesses ...string) {
	t.Helper()
	ctx := context.Background()
	g := game.New(answer, nil, false)
	if err := db.StartGame(ctx, GameRecord{ID: g.ID, PlayerID: playerID, Mode: "random", Answer: answer}); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	for i, w := range guesses {
		res, st, err := g.ApplyGuess(w)
		if err != nil {
			t.Fatal(err)
		}
		if err := db.RecordGuess(ctx, g.ID, i+1, w, res); err != nil {
			t.Fatalf("RecordGuess failed: %v", err)
		}
		if st.Finished() {
			if err := db.FinishGame(ctx, g.ID, playerID, st, time.Now()); err != nil {
				t.Fatalf("FinishGame failed: %v", err)
			}
		}
	}
}

func TestStatsFor(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if _, err := db.CreatePlayer(ctx, "p1", "bob", "hash"); err != nil {
		t.Fatal(err)
	}

	playRecorded(t, db, "p1", "light", "crane", "light")
	playRecorded(t, db, "p1", "igloo", "crane", "crane", "crane", "crane", "crane", "crane")
	playRecorded(t, db, "p1", "fight", "light", "fight")
	playRecorded(t, db, "p1", "mound", "crane") // unfinished, ignored
	playRecorded(t, db, "", "light", "light")   // guest game

	ps, err := db.StatsFor(ctx, "p1")
	if err != nil {
		t.Fatalf("StatsFor failed: %v", err)
	}
	if ps.GamesPlayed != 3 || ps.Wins != 2 || ps.Losses != 1 || ps.Streak != 1 {
		t.Fatalf("stats = %+v", ps)
	}
	if ps.AverageTries != 2 {
		t.Fatalf("AverageTries = %v", ps.AverageTries)
	}
	want := []stats.WordCount{{Word: "crane", Count: 7}, {Word: "light", Count: 2}, {Word: "fight", Count: 1}}
	if !slices.Equal(ps.TopWords, want) {
		t.Fatalf("TopWords = %v, want %v", ps.TopWords, want)
	}
}
