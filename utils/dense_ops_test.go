package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

// colMajor builds a column-major buffer from row-major literal rows
func colMajor(nr, nc int, rows []float64) (data []float64) {
	data = make([]float64, nr*nc)
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			data[i*nr+j] = rows[j*nc+i]
		}
	}
	return
}

func naiveMul(A, B mat.Matrix) (C []float64) {
	var (
		nr, _ = A.Dims()
		_, nc = B.Dims()
		P     mat.Dense
	)
	P.Mul(A, B)
	C = make([]float64, nr*nc)
	for j := 0; j < nr; j++ {
		for i := 0; i < nc; i++ {
			C[i*nr+j] = P.At(j, i)
		}
	}
	return
}

func TestDenseOps(t *testing.T) {
	var (
		nr, nc = 2, 3
		rows   = []float64{
			1, 2, 3,
			4, 5, 6,
		}
		F  = colMajor(nr, nc, rows)
		Fm = mat.NewDense(nr, nc, rows)
	)
	{ // Dot and copy
		assert.Equal(t, 91., Ddot(nr*nc, F, F))
		G := make([]float64, nr*nc)
		Dcopy(nr*nc, F, G)
		assert.Equal(t, F, G)
	}
	{ // Symmetric multiply from the right: F * S
		S := mat.NewSymDense(nc, []float64{
			-2, 1, 0,
			1, -2, 1,
			0, 1, -2,
		})
		C := make([]float64, nr*nc)
		Dsymm(blas.Right, nr, nc, 1, S, F, 0, C)
		assert.InDeltaSlice(t, naiveMul(Fm, S), C, 1.e-14)
	}
	{ // Symmetric multiply from the left: S * F
		S := mat.NewSymDense(nr, []float64{
			-2, 1,
			1, -2,
		})
		C := make([]float64, nr*nc)
		Dsymm(blas.Left, nr, nc, 1, S, F, 0, C)
		assert.InDeltaSlice(t, naiveMul(S, Fm), C, 1.e-14)
	}
	{ // Upper triangular from the right: F * T
		T := mat.NewTriDense(nc, mat.Upper, []float64{
			1, -1, 0,
			0, 1, -1,
			0, 0, 1,
		})
		C := make([]float64, nr*nc)
		Dcopy(nr*nc, F, C)
		Dtrmm(blas.Right, nr, nc, 1, T, C)
		assert.InDeltaSlice(t, naiveMul(Fm, T), C, 1.e-14)
		// Backward difference along each row
		assert.InDeltaSlice(t, colMajor(nr, nc, []float64{
			1, 1, 1,
			4, 1, 1,
		}), C, 1.e-14)
	}
	{ // Lower triangular from the left: T * F
		T := mat.NewTriDense(nr, mat.Lower, []float64{
			2, 0,
			-2, 2,
		})
		C := make([]float64, nr*nc)
		Dcopy(nr*nc, F, C)
		Dtrmm(blas.Left, nr, nc, 1, T, C)
		assert.InDeltaSlice(t, naiveMul(T, Fm), C, 1.e-14)
	}
	{ // Shape checks
		require.Panics(t, func() { ColMajorGeneral(2, 2, F) })
		S := mat.NewSymDense(2, nil)
		require.Panics(t, func() { Dsymm(blas.Right, nr, nc, 1, S, F, 0, make([]float64, nr*nc)) })
	}
}
