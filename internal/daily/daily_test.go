package daily

import (
	"testing"
	"time"
)

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 100)
	if b := WordIndex(d.Add(-time.Hour), "salt", 100); a != b {
		t.Fatalf("same date gave %d and %d", a, b)
	}
	if a < 0 || a >= 100 {
		t.Fatalf("index %d out of range", a)
	}
	if WordIndex(d, "salt", 0) != 0 {
		t.Fatal("empty list must give 0")
	}
	if DateKey(d) != "2024-03-09" {
		t.Fatalf("DateKey = %s", DateKey(d))
	}
}

func TestSequence(t *testing.T) {
	words := []string{"crane", "light", "igloo"}
	cases := []struct {
		day  int
		want []string
	}{
		{1, []string{"crane", "light", "igloo", "crane"}},
		{3, []string{"igloo", "crane", "light"}},
		{5, []string{"light", "igloo"}},
	}
	for _, tc := range cases {
		s := NewSequence(words, tc.day)
		for i, w := range tc.want {
			if got := s.Next(); got != w {
				t.Fatalf("day %d step %d = %q, want %q", tc.day, i, got, w)
			}
		}
	}
	if NewSequence(nil, 1).Next() != "" {
		t.Fatal("empty sequence must yield \"\"")
	}
}
