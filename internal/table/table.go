package table

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alebeck/detach/internal/log"
)

const pad = 2

// Regex to match ANSI escape sequences
var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type cell struct {
	text  string
	width int
}

// Table renders left-aligned columns with a bold header.
type Table struct {
	header []cell
	rows   [][]cell
	widths []int
}

func New(cols ...string) *Table {
	t := &Table{widths: make([]int, len(cols))}
	t.header = t.cells(cols...)
	return t
}

func (t *Table) cells(cols ...string) []cell {
	cs := make([]cell, len(cols))
	for i, c := range cols {
		cs[i] = cell{text: c, width: width(c)}
		t.widths[i] = max(t.widths[i], cs[i].width)
	}
	return cs
}

func (t *Table) AddRow(cols ...any) {
	if len(cols) != len(t.header) {
		panic("incorrect number of columns passed")
	}
	strs := make([]string, len(cols))
	for i, c := range cols {
		strs[i] = fmt.Sprintf("%v", c)
	}
	t.rows = append(t.rows, t.cells(strs...))
}

func (t *Table) String() string {
	var b strings.Builder
	for j, h := range t.header {
		b.WriteString(log.Bold(h.text))
		b.WriteString(strings.Repeat(" ", t.widths[j]+pad-h.width))
	}
	for _, row := range t.rows {
		b.WriteByte('\n')
		for j, c := range row {
			b.WriteString(c.text)
			b.WriteString(strings.Repeat(" ", t.widths[j]+pad-c.width))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func width(s string) int {
	return len(ansi.ReplaceAllString(s, ""))
}
