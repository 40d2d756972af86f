// Package visualization renders trust grid generations in various output formats.
package visualization

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvandessel/trustgrid/internal/credibility"
	"github.com/nvandessel/trustgrid/internal/grid"
)

// Format specifies the output format for grid rendering.
type Format string

const (
	FormatText Format = "text"
	FormatANSI Format = "ansi"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatANSI, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, ansi, json, html)", s)
	}
}

// glyphs maps trust level names to their text rendering.
var glyphs = map[string]byte{
	"null":   '.',
	"low":    'l',
	"medium": 'm',
	"high":   'H',
}

// Glyph returns the single character used for a level in text output.
func Glyph(level credibility.TrustLevel) byte {
	if g, ok := glyphs[level.Name]; ok {
		return g
	}
	return '?'
}

// RenderText draws one character per cell, one line per row.
func RenderText(snap grid.Snapshot) string {
	var b strings.Builder
	b.Grow(snap.Size * (snap.Size + 1))
	for _, row := range snap.Cells {
		for _, c := range row {
			b.WriteByte(Glyph(c.Level))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cellStyles holds one two-column block style per trust level, coloured
// with the level's display colour.
var cellStyles = func() map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style, len(credibility.Levels()))
	for _, l := range credibility.Levels() {
		styles[l.Name] = lipgloss.NewStyle().Background(lipgloss.Color(l.Color))
	}
	return styles
}()

// RenderANSI draws each cell as a two-column block with the trust level's
// colour as background. Terminals without colour support get plain spaces.
func RenderANSI(snap grid.Snapshot) string {
	var b strings.Builder
	for _, row := range snap.Cells {
		for _, c := range row {
			b.WriteString(cellStyles[c.Level.Name].Render("  "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend lists the glyph and name of every trust level.
func Legend() string {
	parts := make([]string, 0, len(credibility.Levels()))
	for _, l := range credibility.Levels() {
		parts = append(parts, fmt.Sprintf("%c=%s", Glyph(l), l.Name))
	}
	return strings.Join(parts, "  ")
}

// RenderJSON encodes the snapshot together with its per-level counts.
func RenderJSON(snap grid.Snapshot) ([]byte, error) {
	data := map[string]interface{}{
		"generation":        snap.Generation,
		"size":              snap.Size,
		"counts":            snap.Counts(),
		"total_info_points": snap.TotalInfoPoints(),
		"cells":             snap.Cells,
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return out, nil
}

// Render dispatches to the renderer for format.
func Render(snap grid.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(RenderText(snap)), nil
	case FormatANSI:
		return []byte(RenderANSI(snap)), nil
	case FormatJSON:
		return RenderJSON(snap)
	case FormatHTML:
		return RenderHTML(snap)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
