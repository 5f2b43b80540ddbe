package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a matrix from a pattern such as "1,2|3,4", where '|'
// separates rows and ',' separates columns.
func Parse(pattern string) (*Matrix, error) {
	return ParseWith(pattern, "|", ",")
}

// MustParse is like Parse but panics on error. Intended for literals in tests
// and defaults.
func MustParse(pattern string) *Matrix {
	a, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseWith builds a matrix from pattern using custom separators.
func ParseWith(pattern, rowSep, colSep string) (*Matrix, error) {
	lines := strings.Split(pattern, rowSep)
	rows := make([][]float64, len(lines))
	for y, line := range lines {
		fields := strings.Split(line, colSep)
		rows[y] = make([]float64, len(fields))
		for x, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("parse matrix: row %d column %d: %w", y, x, err)
			}
			rows[y][x] = v
		}
	}
	return FromRows(rows)
}

// String formats the matrix as its dimensions followed by one line per row.
func (a *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d\n", a.n, a.m)
	for y := 0; y < a.m; y++ {
		for x := 0; x < a.n; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(a.data[y*a.n+x], 'g', 6, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
