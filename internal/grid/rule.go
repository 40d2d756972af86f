package grid

import (
	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/credibility"
)

// Rule updates a working copy of a cell from the pre-step state of its
// neighbors. Implementations must only mutate cell, and must check IsFull
// before incrementing.
type Rule interface {
	Apply(cell *Cell, neighbors []*Cell) error
}

// RankRule adds one info point per neighbor whose trust level rank exceeds
// Threshold and is at least the cell's own rank.
type RankRule struct {
	Threshold credibility.TrustLevel
}

// Apply implements Rule.
func (r RankRule) Apply(cell *Cell, neighbors []*Cell) error {
	for _, n := range neighbors {
		nl := n.TrustLevel()
		if nl.Rank <= r.Threshold.Rank || nl.Rank < cell.TrustLevel().Rank {
			continue
		}
		if cell.IsFull() {
			return nil
		}
		if err := cell.Increment(); err != nil {
			return err
		}
	}
	return nil
}

// ScoreRule adds one info point per neighbor whose normalized info points
// (points - min) / (max - min) exceed Threshold.
type ScoreRule struct {
	Threshold float64
}

// Apply implements Rule.
func (r ScoreRule) Apply(cell *Cell, neighbors []*Cell) error {
	for _, n := range neighbors {
		if score(n) <= r.Threshold {
			continue
		}
		if cell.IsFull() {
			return nil
		}
		if err := cell.Increment(); err != nil {
			return err
		}
	}
	return nil
}

func score(c *Cell) float64 {
	return float64(c.infoPoints-c.minPoints) / float64(c.maxPoints-c.minPoints)
}

// RuleFor returns the rule registered under name.
func RuleFor(name constants.RuleName, scoreThreshold float64) (Rule, bool) {
	switch name {
	case constants.RuleRank:
		return RankRule{Threshold: credibility.Low}, true
	case constants.RuleScore:
		return ScoreRule{Threshold: scoreThreshold}, true
	}
	return nil, false
}
