package scoring

import (
	"testing"

	"resume-matcher/internal/llm"
)

func TestAggregate(t *testing.T) {
	enabled := EnabledAnalysis(llm.Review{Score: 90})
	if got := Aggregate(70, enabled); got != 78 {
		t.Fatalf("expected round(0.6*70+0.4*90)=78, got %v", got)
	}
	if got := Aggregate(61.37, DisabledAnalysis()); got != 61.37 {
		t.Fatalf("expected ml score when disabled, got %v", got)
	}
}

func TestMatchLevelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		level string
		color string
	}{
		{100, LevelExcellent, "green"},
		{80, LevelExcellent, "green"},
		{79.99, LevelGood, "blue"},
		{60, LevelGood, "blue"},
		{59, LevelFair, "amber"},
		{40, LevelFair, "amber"},
		{39, LevelPoor, "red"},
		{0, LevelPoor, "red"},
	}
	for _, tc := range cases {
		if got := MatchLevel(tc.score); got != tc.level {
			t.Fatalf("score %v: expected %q, got %q", tc.score, tc.level, got)
		}
		if got := ScoreColor(tc.score); got != tc.color {
			t.Fatalf("score %v: expected %q, got %q", tc.score, tc.color, got)
		}
	}
}
