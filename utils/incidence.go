package utils

import (
	"sort"

	"github.com/james-bowman/sparse"
)

// Incidence is a sparse row-to-column connectivity, e.g. element to node,
// stored transposed for column lookups
type Incidence struct {
	colToRow *sparse.CSR
}

// NewIncidence builds the incidence from a list of column indices per row
func NewIncidence(nCols int, rows [][]int) (inc *Incidence) {
	bwd := sparse.NewDOK(max(nCols, 1), max(len(rows), 1))
	for i, cols := range rows {
		for _, j := range cols {
			bwd.Set(j, i, 1)
		}
	}
	inc = &Incidence{colToRow: bwd.ToCSR()}
	return
}

// Rows returns the sorted rows connected to column j
func (inc *Incidence) Rows(j int) []int {
	return nonZeros(inc.colToRow, j)
}

func nonZeros(m *sparse.CSR, i int) (idx []int) {
	if r, _ := m.Dims(); i < 0 || i >= r {
		return nil
	}
	m.DoRowNonZero(i, func(_, j int, v float64) {
		if v != 0 {
			idx = append(idx, j)
		}
	})
	sort.Ints(idx)
	return
}
