package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	body := `{"random": true, "difficult": true, "day": 3, "state": "state.json"}`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	want := Game{Random: true, Difficult: true, Day: 3, Seed: DefaultSeed, State: "state.json"}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing err = %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := LoadFile(bad); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Game)
		ok   bool
	}{
		{"defaults", func(*Game) {}, true},
		{"fixed word", func(g *Game) { g.Word = "crane" }, true},
		{"word with random", func(g *Game) { g.Word = "crane"; g.Random = true }, false},
		{"word with seed", func(g *Game) { g.Word = "crane"; g.Seed = 1 }, false},
		{"seed without random", func(g *Game) { g.Seed = 1 }, false},
		{"state without random", func(g *Game) { g.State = "s.json" }, false},
		{"random with seed and state", func(g *Game) { g.Random = true; g.Seed = 1; g.State = "s.json" }, true},
		{"day zero", func(g *Game) { g.Day = 0 }, false},
		{"final without acceptable", func(g *Game) { g.FinalSet = "f.txt" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := DefaultGame()
			tc.mut(&g)
			err := g.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrContradictory) {
				t.Fatalf("Validate() = %v, want ErrContradictory", err)
			}
		})
	}
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRES_DAYS", "3")
	t.Setenv("APP_ENV", "production")
	s := ServerFromEnv()
	if s.Port != "9000" || s.JWTExpiresDays != 3 || !s.Production || s.CookieName != "wordle_token" {
		t.Fatalf("ServerFromEnv() = %+v", s)
	}
}
