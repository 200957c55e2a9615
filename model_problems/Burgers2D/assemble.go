package Burgers2D

import (
	"gonum.org/v1/gonum/mat"
)

const rootRank = 0

// AssembleMatrix gathers one component from every partition into the global
// Nyr x Nxr interior matrix, row j at y = Y(j), column i at x = X(i). It is
// collective; only rank 0 gets a matrix, the others get nil.
func (b *Burgers) AssembleMatrix(vel Field) (M *mat.Dense, err error) {
	var (
		d      = b.Decomp
		g      = b.Grid
		global []float64
	)
	if d.Size() == 1 {
		return vel.Dense(), nil
	}
	if b.Rank() == rootRank {
		global = make([]float64, g.Nxr*g.Nyr)
	}
	if err = b.comm.Gatherv(vel.Data, global, d.Counts(), d.Displs(), rootRank); err != nil {
		return
	}
	if b.Rank() != rootRank {
		return
	}
	M = mat.NewDense(g.Nyr, g.Nxr, nil)
	for j := 0; j < g.Nyr; j++ {
		for i := 0; i < g.Nxr; i++ {
			rank, li, lj := d.Owner(i, j)
			M.Set(j, i, global[d.Displs()[rank]+li*d.Partitions[rank].LocNyr+lj])
		}
	}
	return
}

// Assemble gathers both components, see AssembleMatrix
func (b *Burgers) Assemble() (U, V *mat.Dense, err error) {
	if U, err = b.AssembleMatrix(b.U); err != nil {
		return
	}
	V, err = b.AssembleMatrix(b.V)
	return
}
