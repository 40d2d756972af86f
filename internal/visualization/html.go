package visualization

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/nvandessel/trustgrid/internal/credibility"
	"github.com/nvandessel/trustgrid/internal/grid"
)

// templates contains the embedded HTML templates.
//
//go:embed templates/*
var templates embed.FS

type htmlCell struct {
	Color      string
	InfoPoints int
	Level      string
	Reversed   bool
}

type htmlTemplateData struct {
	Generation int
	Size       int
	Rows       [][]htmlCell
	Levels     []credibility.TrustLevel
	Counts     map[string]int
}

// RenderHTML produces a self-contained HTML page drawing the grid as a
// coloured table. Hovering a cell shows its info points and assignment.
func RenderHTML(snap grid.Snapshot) ([]byte, error) {
	tmplBytes, err := templates.ReadFile("templates/grid.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}

	tmpl, err := template.New("grid").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	rows := make([][]htmlCell, len(snap.Cells))
	for i, row := range snap.Cells {
		rows[i] = make([]htmlCell, len(row))
		for j, c := range row {
			rows[i][j] = htmlCell{
				Color:      c.Level.Color,
				InfoPoints: c.InfoPoints,
				Level:      c.Level.Name,
				Reversed:   c.Reversed,
			}
		}
	}

	var buf bytes.Buffer
	data := htmlTemplateData{
		Generation: snap.Generation,
		Size:       snap.Size,
		Rows:       rows,
		Levels:     credibility.Levels(),
		Counts:     snap.Counts(),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}

	return buf.Bytes(), nil
}
