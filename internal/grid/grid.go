// Package grid implements the trust propagation cellular automaton. A Grid
// owns an N×N matrix of cells and advances it one generation at a time:
// every cell is updated from a copy using the frozen pre-step state of its
// 8-connected neighbors, and the new generation replaces the current one
// only after the whole sweep completes.
package grid

import (
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/credibility"
)

// Config holds the parameters of a grid.
type Config struct {
	// Size is the side length of the square grid.
	Size int `json:"size" yaml:"size"`

	// MinInfoPoints and MaxInfoPoints bound every cell's counter.
	MinInfoPoints int `json:"min_info_points" yaml:"min_info_points"`
	MaxInfoPoints int `json:"max_info_points" yaml:"max_info_points"`

	// ReversalProbability is the chance each cell gets a reversed evaluator.
	ReversalProbability float64 `json:"reversal_probability" yaml:"reversal_probability"`

	// ForceNormal gives every cell a normal evaluator.
	ForceNormal bool `json:"force_normal" yaml:"force_normal"`

	// Rule names the propagation rule applied each generation.
	Rule constants.RuleName `json:"rule" yaml:"rule"`

	// ScoreThreshold is only used by the score rule, where it must lie in
	// [0, 1).
	ScoreThreshold float64 `json:"score_threshold" yaml:"score_threshold"`

	// Workers is the number of goroutines sweeping a generation. Values
	// below 2 keep the sweep sequential.
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultConfig returns the default grid configuration.
func DefaultConfig() Config {
	return Config{
		Size:                constants.DefaultGridSize,
		MinInfoPoints:       constants.MinInfoPoints,
		MaxInfoPoints:       constants.MaxInfoPoints,
		ReversalProbability: constants.ReversedTrustProbability,
		Rule:                constants.RuleRank,
		ScoreThreshold:      constants.DefaultScoreThreshold,
		Workers:             constants.DefaultWorkers,
	}
}

// Validate checks that the configuration can build a grid.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d: %w", c.Size, ErrInvalidConfig)
	}
	if c.MinInfoPoints >= c.MaxInfoPoints {
		return fmt.Errorf("min_info_points (%d) must be below max_info_points (%d): %w",
			c.MinInfoPoints, c.MaxInfoPoints, ErrInvalidConfig)
	}
	if math.IsNaN(c.ReversalProbability) || c.ReversalProbability < 0 || c.ReversalProbability > 1 {
		return fmt.Errorf("reversal_probability must be between 0 and 1, got %f: %w", c.ReversalProbability, ErrInvalidConfig)
	}
	if !c.Rule.Valid() {
		return fmt.Errorf("unknown rule %q (valid: rank, score): %w", c.Rule, ErrInvalidConfig)
	}
	// A threshold of 1 or more can never be exceeded.
	if c.Rule == constants.RuleScore && !(c.ScoreThreshold >= 0 && c.ScoreThreshold < 1) {
		return fmt.Errorf("score_threshold must be in [0, 1), got %v: %w", c.ScoreThreshold, ErrInvalidConfig)
	}
	return nil
}

// neighborShifts lists the 8 relative offsets in north-west to south-east
// scan order.
var neighborShifts = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a square matrix of cells with a scratch generation for
// double-buffered updates. A Grid is not safe for concurrent use; Advance
// parallelizes internally when Workers > 1.
type Grid struct {
	cfg        Config
	rule       Rule
	cur        [][]Cell
	next       [][]Cell
	generation int
}

// New builds a grid of empty cells. Each cell draws its evaluator
// assignment from rng; rng may be nil to use the global source.
func New(cfg Config, rng *rand.Rand) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rule, _ := RuleFor(cfg.Rule, cfg.ScoreThreshold)

	evalCfg := credibility.EvaluatorConfig{
		MinInfoPoints:       cfg.MinInfoPoints,
		MaxInfoPoints:       cfg.MaxInfoPoints,
		ReversalProbability: cfg.ReversalProbability,
		ForceNormal:         cfg.ForceNormal,
	}

	g := &Grid{
		cfg:  cfg,
		rule: rule,
		cur:  newMatrix(cfg.Size),
		next: newMatrix(cfg.Size),
	}
	for row := range g.cur {
		for col := range g.cur[row] {
			e, err := credibility.NewEvaluator(evalCfg, rng)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", row, col, err)
			}
			g.cur[row][col] = NewCell(e, cfg.MinInfoPoints, cfg.MaxInfoPoints)
		}
	}
	return g, nil
}

func newMatrix(size int) [][]Cell {
	m := make([][]Cell, size)
	for i := range m {
		m[i] = make([]Cell, size)
	}
	return m
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.cfg.Size }

// Generation returns the number of completed Advance calls.
func (g *Grid) Generation() int { return g.generation }

// Config returns the configuration the grid was built with.
func (g *Grid) Config() Config { return g.cfg }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.cfg.Size && col >= 0 && col < g.cfg.Size
}

func (g *Grid) checkBounds(row, col int) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("cell (%d, %d) in %dx%d grid: %w", row, col, g.cfg.Size, g.cfg.Size, ErrOutOfBounds)
	}
	return nil
}

// Cell returns a copy of the cell at (row, col).
func (g *Grid) Cell(row, col int) (Cell, error) {
	if err := g.checkBounds(row, col); err != nil {
		return Cell{}, err
	}
	return g.cur[row][col], nil
}

// Neighbors returns copies of the cells 8-connected to (row, col) in
// north-west to south-east order. Edge cells have 5 neighbors and corner
// cells 3; there is no wraparound.
func (g *Grid) Neighbors(row, col int) ([]Cell, error) {
	if err := g.checkBounds(row, col); err != nil {
		return nil, err
	}
	refs := g.appendNeighbors(nil, row, col)
	out := make([]Cell, len(refs))
	for i, c := range refs {
		out[i] = *c
	}
	return out, nil
}

func (g *Grid) appendNeighbors(buf []*Cell, row, col int) []*Cell {
	for _, s := range neighborShifts {
		r, c := row+s[0], col+s[1]
		if g.inBounds(r, c) {
			buf = append(buf, &g.cur[r][c])
		}
	}
	return buf
}

// PlacePropagator seeds the cell at (row, col) with maximum info points.
func (g *Grid) PlacePropagator(row, col int) error {
	if err := g.checkBounds(row, col); err != nil {
		return err
	}
	return g.cur[row][col].MakePropagator()
}

// Advance computes the next generation and swaps it in. If the rule fails
// for any cell the current generation is left untouched.
func (g *Grid) Advance() error {
	if g.cfg.Workers < 2 {
		for row := range g.cur {
			if err := g.sweepRow(row); err != nil {
				return err
			}
		}
	} else {
		var eg errgroup.Group
		eg.SetLimit(g.cfg.Workers)
		for row := range g.cur {
			eg.Go(func() error { return g.sweepRow(row) })
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}

	g.cur, g.next = g.next, g.cur
	g.generation++
	return nil
}

// sweepRow writes the next state of every cell in row into the scratch
// generation. It reads only from the current generation and writes only to
// its own row of the scratch generation.
func (g *Grid) sweepRow(row int) error {
	buf := make([]*Cell, 0, len(neighborShifts))
	for col := range g.cur[row] {
		working := g.cur[row][col]
		buf = g.appendNeighbors(buf[:0], row, col)
		if err := g.rule.Apply(&working, buf); err != nil {
			return fmt.Errorf("generation %d, cell (%d, %d): %w", g.generation+1, row, col, err)
		}
		g.next[row][col] = working
	}
	return nil
}

// Snapshot returns an immutable copy of the current generation.
func (g *Grid) Snapshot() Snapshot {
	cells := make([][]CellState, g.cfg.Size)
	for row := range g.cur {
		cells[row] = make([]CellState, g.cfg.Size)
		for col := range g.cur[row] {
			cells[row][col] = g.cur[row][col].state()
		}
	}
	return Snapshot{
		Generation: g.generation,
		Size:       g.cfg.Size,
		Cells:      cells,
	}
}
