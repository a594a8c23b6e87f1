// Package table converts raw cell grids into header-keyed records.
//
// A grid is what a spreadsheet range or a CSV file yields: rows of cells,
// the first row naming the columns. Cells may be any scalar; they are
// converted to strings.
package table

import (
	"github.com/spf13/cast"
)

// Record is one data row keyed by header name.
type Record map[string]string

// Table is a parsed grid: the header row and the records that follow it.
type Table struct {
	Header  []string
	Records []Record
}

// ToRecords converts a grid into records, using the first row as the header.
// A nil or empty grid yields an empty, non-nil slice.
func ToRecords(grid [][]any) []Record {
	return Parse(grid).Records
}

// Parse converts a grid into a Table.
//
// Every row after the header is zipped positionally against it. A row
// shorter than the header only populates the positions it has; cells past
// the end of the header have no name and are dropped. Row order is kept.
func Parse(grid [][]any) Table {
	t := Table{Records: []Record{}}
	if len(grid) == 0 {
		return t
	}

	t.Header = Strings(grid[0])
	for _, row := range grid[1:] {
		record := make(Record, len(row))
		for i, cell := range row {
			if i >= len(t.Header) {
				break
			}
			record[t.Header[i]] = cast.ToString(cell)
		}
		t.Records = append(t.Records, record)
	}
	return t
}

// Strings converts a row of cells to strings. nil cells become "".
func Strings(row []any) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cast.ToString(cell)
	}
	return out
}

// FromStrings lifts a string grid (as read from CSV) into a cell grid.
func FromStrings(rows [][]string) [][]any {
	grid := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		grid[i] = cells
	}
	return grid
}
