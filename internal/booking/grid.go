// Package booking holds the state of a single booking transaction: the
// seat layout offered to the user and the passenger/selection draft.
package booking

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	GridRows    = 30
	GridColumns = "ABCDEF"
)

// SeatGrid is the fixed cabin layout. It is read-only after construction.
type SeatGrid struct {
	rows    [][]string
	columns []string
	index   map[string]struct{}
}

func NewSeatGrid() *SeatGrid {
	g := &SeatGrid{
		rows:    make([][]string, 0, GridRows),
		columns: strings.Split(GridColumns, ""),
		index:   make(map[string]struct{}, GridRows*len(GridColumns)),
	}
	for r := 1; r <= GridRows; r++ {
		row := make([]string, 0, len(g.columns))
		for _, c := range g.columns {
			code := strconv.Itoa(r) + c
			row = append(row, code)
			g.index[code] = struct{}{}
		}
		g.rows = append(g.rows, row)
	}
	return g
}

// Rows returns the seat codes row by row.
func (g *SeatGrid) Rows() [][]string {
	out := make([][]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func (g *SeatGrid) Columns() []string {
	return append([]string(nil), g.columns...)
}

// Codes returns every seat code in row-major order.
func (g *SeatGrid) Codes() []string {
	out := make([]string, 0, len(g.index))
	for _, row := range g.rows {
		out = append(out, row...)
	}
	return out
}

func (g *SeatGrid) Contains(code string) bool {
	_, ok := g.index[code]
	return ok
}

func (g *SeatGrid) String() string {
	return fmt.Sprintf("SeatGrid(%dx%d)", len(g.rows), len(g.columns))
}
