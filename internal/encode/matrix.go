// internal/encode/matrix.go
package encode

import (
	"fmt"
	"strings"
)

// Matrix is a dense row-major int8 matrix.
type Matrix struct {
	rows, cols int
	data       []int8
}

// NewMatrix returns a zero rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("encode: negative dimension %dx%d", rows, cols))
	}
	return Matrix{rows: rows, cols: cols, data: make([]int8, rows*cols)}
}

// Dims returns the number of rows and columns.
func (m Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at row r, column c.
func (m Matrix) At(r, c int) int8 { return m.data[m.index(r, c)] }

// Set sets the element at row r, column c.
func (m Matrix) Set(r, c int, v int8) { m.data[m.index(r, c)] = v }

func (m Matrix) index(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("encode: index (%d,%d) out of range %dx%d", r, c, m.rows, m.cols))
	}
	return r*m.cols + c
}

// Row returns row r. The slice aliases the matrix.
func (m Matrix) Row(r int) []int8 {
	if r < 0 || r >= m.rows {
		panic(fmt.Sprintf("encode: row %d out of range %d", r, m.rows))
	}
	return m.data[r*m.cols : (r+1)*m.cols]
}

// Flatten returns a copy of the elements in row-major order.
func (m Matrix) Flatten() []int8 {
	out := make([]int8, len(m.data))
	copy(out, m.data)
	return out
}

// String renders one row per line, values separated by spaces.
func (m Matrix) String() string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		for c, v := range m.Row(r) {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%2d", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// vstack concatenates matrices with the same column count top to bottom.
func vstack(ms ...Matrix) Matrix {
	rows := 0
	for _, m := range ms {
		rows += m.rows
	}
	cols := 0
	if len(ms) > 0 {
		cols = ms[0].cols
	}
	out := Matrix{rows: rows, cols: cols, data: make([]int8, 0, rows*cols)}
	for _, m := range ms {
		if m.cols != cols {
			panic(fmt.Sprintf("encode: vstack column mismatch %d vs %d", m.cols, cols))
		}
		out.data = append(out.data, m.data...)
	}
	return out
}
