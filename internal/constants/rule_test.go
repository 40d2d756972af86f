package constants

import "testing"

func TestRuleName_Valid(t *testing.T) {
	tests := []struct {
		name string
		rule RuleName
		want bool
	}{
		{"rank is valid", RuleRank, true},
		{"score is valid", RuleScore, true},
		{"empty string is invalid", RuleName(""), false},
		{"arbitrary string is invalid", RuleName("majority"), false},
		{"RANK uppercase is invalid", RuleName("RANK"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Valid(); got != tt.want {
				t.Errorf("RuleName.Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleName_String(t *testing.T) {
	if got := RuleRank.String(); got != "rank" {
		t.Errorf("RuleRank.String() = %q, want %q", got, "rank")
	}
	if got := RuleScore.String(); got != "score" {
		t.Errorf("RuleScore.String() = %q, want %q", got, "score")
	}
}

func TestInfoPointBounds(t *testing.T) {
	if MinInfoPoints >= MaxInfoPoints {
		t.Fatalf("MinInfoPoints (%d) must be below MaxInfoPoints (%d)", MinInfoPoints, MaxInfoPoints)
	}
	if ReversedTrustProbability < 0 || ReversedTrustProbability > 1 {
		t.Errorf("ReversedTrustProbability = %v, want within [0, 1]", ReversedTrustProbability)
	}
}
