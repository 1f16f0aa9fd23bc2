package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnLabel converts a 0-based column index to its spreadsheet letter label:
// 0 is "A", 25 is "Z", 26 is "AA". A negative index yields "".
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}
	if name, err := excelize.ColumnNumberToName(index + 1); err == nil {
		return name
	}
	// excelize stops at the sheet column limit
	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// CellLabel returns the A1-style name of a 0-based (row, col) pair, e.g. "B3".
func CellLabel(row, col int) string {
	if row < 0 || col < 0 {
		return ""
	}
	return ColumnLabel(col) + strconv.Itoa(row+1)
}

// Area is a rectangular cell range with 0-based inclusive bounds.
type Area struct {
	FirstRow, FirstCol int
	LastRow, LastCol   int
}

// ParseArea parses an A1-style range such as "B2:D10", "$B$2:$D$10" or
// "'Sheet 1'!B2:D10". A single cell reference yields a one-cell area.
func ParseArea(ref string) (Area, error) {
	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) > 2 || parts[0] == "" {
		return Area{}, fmt.Errorf("invalid range %q", ref)
	}
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Area{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Area{}, err
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return Area{
		FirstRow: startRow - 1,
		FirstCol: startCol - 1,
		LastRow:  endRow - 1,
		LastCol:  endCol - 1,
	}, nil
}

// String returns the area in A1 notation.
func (a Area) String() string {
	return CellLabel(a.FirstRow, a.FirstCol) + ":" + CellLabel(a.LastRow, a.LastCol)
}
