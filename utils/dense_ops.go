package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

/*
	Dense primitives over column-major buffers.

	A column-major nr x nc buffer has the same memory layout as the row-major
	nc x nr transpose, so every buffer is handed to blas64 as its transpose:

		Colmajor(A) == Rowmajor(A^T)

	and each product is rewritten in transposed form before calling BLAS:

		C = A * S    <=>   C^T = S^T * A^T   (Side = Left on the transposed view)
		C = S * A    <=>   C^T = A^T * S^T   (Side = Right on the transposed view)
*/

// ColMajorGeneral views a column-major nr x nc buffer as the row-major
// blas64.General of its transpose.
func ColMajorGeneral(nr, nc int, data []float64) blas64.General {
	if len(data) != nr*nc {
		panic(fmt.Errorf("mismatch in buffer length: nr,nc = %v,%v, len(data) = %v", nr, nc, len(data)))
	}
	return blas64.General{
		Rows:   nc,
		Cols:   nr,
		Stride: nr,
		Data:   data,
	}
}

// Ddot returns x.y over the first n elements.
func Ddot(n int, x, y []float64) float64 {
	return blas64.Dot(
		blas64.Vector{N: n, Data: x, Inc: 1},
		blas64.Vector{N: n, Data: y, Inc: 1},
	)
}

// Dcopy copies the first n elements of x into y.
func Dcopy(n int, x, y []float64) {
	blas64.Copy(
		blas64.Vector{N: n, Data: x, Inc: 1},
		blas64.Vector{N: n, Data: y, Inc: 1},
	)
}

// Dsymm computes C = alpha*B*S + beta*C (side == blas.Right) or
// C = alpha*S*B + beta*C (side == blas.Left) where B and C are nr x nc
// column-major buffers and S is symmetric.
func Dsymm(side blas.Side, nr, nc int, alpha float64, S *mat.SymDense, B []float64, beta float64, C []float64) {
	var (
		bT = ColMajorGeneral(nr, nc, B)
		cT = ColMajorGeneral(nr, nc, C)
		n  = S.SymmetricDim()
	)
	switch side {
	case blas.Right:
		if n != nc {
			panic(fmt.Errorf("dimension mismatch: symmetric order %d, buffer columns %d", n, nc))
		}
		blas64.Symm(blas.Left, alpha, S.RawSymmetric(), bT, beta, cT)
	case blas.Left:
		if n != nr {
			panic(fmt.Errorf("dimension mismatch: symmetric order %d, buffer rows %d", n, nr))
		}
		blas64.Symm(blas.Right, alpha, S.RawSymmetric(), bT, beta, cT)
	}
}

// Dtrmm computes B = alpha*B*T (side == blas.Right) or B = alpha*T*B
// (side == blas.Left) in place, where B is an nr x nc column-major buffer and
// T is triangular.
func Dtrmm(side blas.Side, nr, nc int, alpha float64, T *mat.TriDense, B []float64) {
	var (
		bT   = ColMajorGeneral(nr, nc, B)
		n, _ = T.Triangle()
	)
	switch side {
	case blas.Right:
		if n != nc {
			panic(fmt.Errorf("dimension mismatch: triangular order %d, buffer columns %d", n, nc))
		}
		blas64.Trmm(blas.Left, blas.Trans, alpha, T.RawTriangular(), bT)
	case blas.Left:
		if n != nr {
			panic(fmt.Errorf("dimension mismatch: triangular order %d, buffer rows %d", n, nr))
		}
		blas64.Trmm(blas.Right, blas.Trans, alpha, T.RawTriangular(), bT)
	}
}
