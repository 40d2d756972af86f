// Package mcp provides an MCP (Model Context Protocol) server for trustgrid.
package mcp

import (
	"github.com/nvandessel/trustgrid/internal/grid"
	"github.com/nvandessel/trustgrid/internal/simulation"
)

// SimulateInput defines the input for the trustgrid_simulate tool.
type SimulateInput struct {
	Size           int          `json:"size,omitempty" jsonschema:"Side length of the square grid (default 21, max 512)"`
	Steps          int          `json:"steps,omitempty" jsonschema:"Maximum generations to advance (default 100, max 10000)"`
	Propagators    []grid.Coord `json:"propagators,omitempty" jsonschema:"Cells seeded with maximum info points (default: the centre cell)"`
	ForceNormal    bool         `json:"force_normal,omitempty" jsonschema:"Give every cell the normal evaluator assignment"`
	Seed           uint64       `json:"seed,omitempty" jsonschema:"Seed for the evaluator assignment draw (0 = random)"`
	Rule           string       `json:"rule,omitempty" jsonschema:"Propagation rule: rank (default) or score"`
	IncludeHistory bool         `json:"include_history,omitempty" jsonschema:"Return per-generation statistics"`
}

// SimulateOutput defines the output for the trustgrid_simulate tool.
type SimulateOutput struct {
	RunID           string                       `json:"run_id" jsonschema:"Identifier of this run"`
	Size            int                          `json:"size" jsonschema:"Side length of the grid"`
	Generations     int                          `json:"generations" jsonschema:"Number of generations advanced"`
	FixedPoint      bool                         `json:"fixed_point" jsonschema:"Whether the run stopped at a generation that changed no cell"`
	Counts          map[string]int               `json:"counts" jsonschema:"Number of cells per trust level in the final generation"`
	TotalInfoPoints int                          `json:"total_info_points" jsonschema:"Sum of info points in the final generation"`
	Render          string                       `json:"render,omitempty" jsonschema:"Text rendering of the final generation (. null, l low, m medium, H high)"`
	History         []simulation.GenerationStats `json:"history,omitempty" jsonschema:"Per-generation statistics"`
}

// GradeInput defines the input for the trustgrid_grade tool.
type GradeInput struct {
	Intensity float64 `json:"intensity" jsonschema:"Info points to grade, between 0 and 10"`
	Reversed  bool    `json:"reversed,omitempty" jsonschema:"Use the reversed assignment (LOW and HIGH swapped)"`
}

// GradeOutput defines the output for the trustgrid_grade tool.
type GradeOutput struct {
	Assignment string         `json:"assignment" jsonschema:"Evaluator assignment used: normal or reversed"`
	Level      string         `json:"level" jsonschema:"Winning trust level"`
	Rank       int            `json:"rank" jsonschema:"Rank of the winning trust level"`
	Color      string         `json:"color" jsonschema:"Display colour of the winning trust level"`
	Degrees    []DegreeOutput `json:"degrees" jsonschema:"Membership degree of every trust level"`
}

// DegreeOutput is one row of the degree table.
type DegreeOutput struct {
	Level  string  `json:"level"`
	Rank   int     `json:"rank"`
	Degree float64 `json:"degree"`
}
