package constants

// RuleName identifies a propagation rule.
type RuleName string

const (
	// RuleRank spreads info points from neighbors whose trust level rank is
	// above LOW and at least the cell's own rank.
	RuleRank RuleName = "rank"

	// RuleScore spreads info points from neighbors whose normalized info
	// points exceed a fixed threshold.
	RuleScore RuleName = "score"
)

// Valid returns true if the rule name is a recognized value.
func (r RuleName) Valid() bool {
	switch r {
	case RuleRank, RuleScore:
		return true
	}
	return false
}

// String returns the string representation of the rule name.
func (r RuleName) String() string {
	return string(r)
}
