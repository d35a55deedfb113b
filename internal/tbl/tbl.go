// Package tbl renders ASCII tables with ANSI-aware column alignment,
// used by the disassembler and the CLI. Cells may contain color escape
// sequences; widths are computed on the visible text.
package tbl

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Alignment controls how cell text is padded within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table accumulates rows and renders them with box-drawing borders.
type Table struct {
	writer          io.Writer
	header          []string
	rows            [][]string
	columnAlignment []Alignment
	headerAlignment []Alignment
}

// NewTable creates an empty table that renders to the given writer.
func NewTable(writer io.Writer) *Table {
	return &Table{writer: writer}
}

// WithHeader sets the header row.
func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

// WithColumnAlignment sets the per-column alignment of body rows.
// Columns beyond the slice default to AlignLeft.
func (t *Table) WithColumnAlignment(alignments []Alignment) *Table {
	t.columnAlignment = alignments
	return t
}

// WithHeaderAlignment sets the per-column alignment of the header row.
func (t *Table) WithHeaderAlignment(alignments []Alignment) *Table {
	t.headerAlignment = alignments
	return t
}

// WithRows replaces the body rows.
func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

// Append adds one body row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

// Render writes the table. Column widths fit the widest visible cell;
// ANSI escape sequences do not count toward width.
func (t *Table) Render() {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return
	}
	border := borderLine(widths)
	fmt.Fprintln(t.writer, border)
	if len(t.header) > 0 {
		fmt.Fprintln(t.writer, t.formatRow(t.header, widths, t.headerAlignment))
		fmt.Fprintln(t.writer, border)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, widths, t.columnAlignment))
	}
	fmt.Fprintln(t.writer, border)
}

func (t *Table) columnWidths() []int {
	var widths []int
	grow := func(row []string) {
		for i, cell := range row {
			w := displayWidth(cell)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}
	grow(t.header)
	for _, row := range t.rows {
		grow(row)
	}
	return widths
}

func (t *Table) formatRow(row []string, widths []int, alignments []Alignment) string {
	var out strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		alignment := AlignLeft
		if i < len(alignments) {
			alignment = alignments[i]
		}
		out.WriteString("| ")
		out.WriteString(pad(cell, width, alignment))
		out.WriteString(" ")
	}
	out.WriteString("|")
	return out.String()
}

func borderLine(widths []int) string {
	var out strings.Builder
	for _, width := range widths {
		out.WriteString("+")
		out.WriteString(strings.Repeat("-", width+2))
	}
	out.WriteString("+")
	return out.String()
}

// pad aligns cell text within width columns of visible characters.
func pad(cell string, width int, alignment Alignment) string {
	gap := width - displayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch alignment {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// stripAnsi removes ANSI color escape sequences.
func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// displayWidth is the visible width of the cell text.
func displayWidth(s string) int {
	return len([]rune(stripAnsi(s)))
}
