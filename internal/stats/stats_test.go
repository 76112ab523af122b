package stats

import (
	"slices"
	"testing"
)

func TestTally(t *testing.T) {
	tl := New()
	if tl.AverageTries() != 0 || len(tl.Top(TopN)) != 0 {
		t.Fatal("fresh tally not empty")
	}
	tl.Record([]string{"crane", "light"}, true)
	tl.Record([]string{"CRANE", "fight", "might", "sight", "tight", "bight"}, false)
	tl.Record([]string{"crane", "igloo", "fight", "light"}, true)

	if tl.Wins != 2 || tl.Losses != 1 {
		t.Fatalf("wins/losses = %d/%d", tl.Wins, tl.Losses)
	}
	if got := tl.AverageTries(); got != 3 {
		t.Fatalf("AverageTries() = %v, want 3", got)
	}
	want := []WordCount{{"crane", 3}, {"fight", 2}, {"light", 2}, {"bight", 1}, {"igloo", 1}}
	if got := tl.Top(TopN); !slices.Equal(got, want) {
		t.Fatalf("Top() = %v, want %v", got, want)
	}
}
