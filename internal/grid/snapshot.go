package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvandessel/trustgrid/internal/credibility"
)

// CellState is the read-only view of a cell consumed by renderers.
type CellState struct {
	InfoPoints int                    `json:"info_points"`
	Level      credibility.TrustLevel `json:"level"`
	Reversed   bool                   `json:"reversed"`
}

// Snapshot is a copy of one generation of a grid.
type Snapshot struct {
	Generation int           `json:"generation"`
	Size       int           `json:"size"`
	Cells      [][]CellState `json:"cells"`
}

// Counts returns how many cells sit at each trust level, keyed by level name.
// Every defined level is present.
func (s Snapshot) Counts() map[string]int {
	counts := make(map[string]int, len(credibility.Levels()))
	for _, l := range credibility.Levels() {
		counts[l.Name] = 0
	}
	for _, row := range s.Cells {
		for _, c := range row {
			counts[c.Level.Name]++
		}
	}
	return counts
}

// TotalInfoPoints sums the info points of every cell.
func (s Snapshot) TotalInfoPoints() int {
	total := 0
	for _, row := range s.Cells {
		for _, c := range row {
			total += c.InfoPoints
		}
	}
	return total
}

// Changed returns the number of cells whose state differs from other.
// Snapshots of different sizes differ in every cell.
func (s Snapshot) Changed(other Snapshot) int {
	if s.Size != other.Size {
		return s.Size * s.Size
	}
	n := 0
	for row := range s.Cells {
		for col := range s.Cells[row] {
			if s.Cells[row][col] != other.Cells[row][col] {
				n++
			}
		}
	}
	return n
}

// SameState reports whether both snapshots hold identical cells, ignoring
// the generation number.
func (s Snapshot) SameState(other Snapshot) bool {
	return s.Size == other.Size && s.Changed(other) == 0
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String formats the coordinate as "row,col".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// ParseCoord parses a "row,col" pair.
func ParseCoord(s string) (Coord, error) {
	rs, cs, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, fmt.Errorf("coordinate %q: expected row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Coord{}, fmt.Errorf("coordinate %q: row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return Coord{}, fmt.Errorf("coordinate %q: col: %w", s, err)
	}
	return Coord{Row: row, Col: col}, nil
}
