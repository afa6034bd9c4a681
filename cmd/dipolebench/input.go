package main

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// ReadParticleFile loads a whitespace-delimited table of x y z mux muy muz
// columns (one particle per row) as an alternative to randomly generated
// input, the same way render/halo's Rockstar reader pulls named columns out
// of a table file.
func ReadParticleFile(fname string) (positions, moments []float64, n int, err error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3, 4, 5}, nil)
	if err != nil {
		return nil, nil, 0, err
	}
	if len(cols) != 6 {
		return nil, nil, 0, fmt.Errorf("dipolebench: expected 6 columns, got %d", len(cols))
	}
	n = len(cols[0])
	positions = make([]float64, 3*n)
	moments = make([]float64, 3*n)
	for i := 0; i < n; i++ {
		positions[3*i], positions[3*i+1], positions[3*i+2] = cols[0][i], cols[1][i], cols[2][i]
		moments[3*i], moments[3*i+1], moments[3*i+2] = cols[3][i], cols[4][i], cols[5][i]
	}
	return positions, moments, n, nil
}
