package words

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	l, err := Load("", "")
	if err != nil {
		t.Fatalf("Load defaults failed: %v", err)
	}
	a, g := l.Stats()
	if a == 0 || g < a {
		t.Fatalf("Stats() = %d, %d", a, g)
	}
	for _, w := range l.Answers() {
		if !l.IsAllowed(w) {
			t.Fatalf("answer %q not allowed", w)
		}
	}
	if !slices.IsSorted(l.Allowed()) {
		t.Fatal("allowed list not sorted")
	}
	if !l.IsAnswer("LIGHT") || !l.IsAllowed("igloo") {
		t.Fatal("expected light/igloo in the defaults")
	}
}

func TestLoadFiles(t *testing.T) {
	ans := writeList(t, "final.txt", "Light\nCRANE\n\n# comment\nlight\n")
	all := writeList(t, "acceptable.txt", "crane\nlight\nigloo\ntoolong\nab1cd\n")

	l, err := Load(ans, all)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := l.Answers(); !slices.Equal(got, []string{"crane", "light"}) {
		t.Fatalf("Answers() = %v", got)
	}
	// "ab1cd" sanitises to "abcd" and is dropped with "toolong".
	if got := l.Allowed(); !slices.Equal(got, []string{"crane", "igloo", "light"}) {
		t.Fatalf("Allowed() = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	all := writeList(t, "acceptable.txt", "crane\n")
	ans := writeList(t, "final.txt", "light\n")

	if _, err := Load(ans, all); !errors.Is(err, ErrNotSubset) {
		t.Fatalf("subset err = %v", err)
	}
	if _, err := Load(ans, ""); !errors.Is(err, ErrNoAllowed) {
		t.Fatalf("answers-only err = %v", err)
	}
	if _, err := Load("", filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
	empty := writeList(t, "empty.txt", "# nothing\n")
	if _, err := Load("", empty); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty err = %v", err)
	}
}

func TestAllowedOnlyFile(t *testing.T) {
	all := writeList(t, "acceptable.txt", "crane\nlight\n")
	l, err := Load("", all)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(l.Answers(), l.Allowed()) {
		t.Fatalf("answers %v != allowed %v", l.Answers(), l.Allowed())
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"  Light \n": "light",
		"ca-ne!":     "cane",
		"ÀBCDE":      "bcde",
		"":           "",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShuffledDeterministic(t *testing.T) {
	l, err := New([]string{"crane", "light", "igloo", "sheep", "mound", "fight"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	a, b := l.Shuffled(42), l.Shuffled(42)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
	sorted := slices.Clone(a)
	slices.Sort(sorted)
	if !slices.Equal(sorted, l.Answers()) {
		t.Fatalf("shuffle is not a permutation: %v", a)
	}
	if !slices.IsSorted(l.Answers()) {
		t.Fatal("Shuffled mutated the answers")
	}
}

func TestRandomAnswer(t *testing.T) {
	l, _ := New([]string{"crane", "light"}, nil)
	for i := 0; i < 20; i++ {
		if w := l.RandomAnswer(); !l.IsAnswer(w) {
			t.Fatalf("RandomAnswer() = %q", w)
		}
	}
}
