// Package credibility grades info point intensities into discrete trust
// levels using one fuzzy membership function per level.
package credibility

// TrustLevel is an immutable trust category. Levels are ordered by Rank.
type TrustLevel struct {
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	Color string `json:"color"` // hex RGB, used by renderers only
}

// Defined trust levels, in ascending rank.
var (
	Null   = TrustLevel{Name: "null", Rank: 0, Color: "#ffffff"}
	Low    = TrustLevel{Name: "low", Rank: 1, Color: "#ff0000"}
	Medium = TrustLevel{Name: "medium", Rank: 2, Color: "#0000ff"}
	High   = TrustLevel{Name: "high", Rank: 3, Color: "#00ff00"}
)

var levels = [...]TrustLevel{Null, Low, Medium, High}

// Levels returns every trust level ordered by ascending rank.
func Levels() []TrustLevel {
	out := make([]TrustLevel, len(levels))
	copy(out, levels[:])
	return out
}

// LevelByName looks up a trust level by its name.
func LevelByName(name string) (TrustLevel, bool) {
	for _, l := range levels {
		if l.Name == name {
			return l, true
		}
	}
	return TrustLevel{}, false
}

// String returns the level name.
func (l TrustLevel) String() string {
	return l.Name
}
