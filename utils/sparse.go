package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DOK is a named dictionary-of-keys matrix used to assemble operators before
// they are frozen into CSR form.
type DOK struct {
	M    *sparse.DOK
	name string
}

func NewDOK(nr, nc int, name string) (R DOK) {
	R = DOK{
		M:    sparse.NewDOK(nr, nc),
		name: name,
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) Set(i, j int, v float64) {
	nr, nc := m.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		panic(fmt.Errorf("index (%d,%d) out of range for %d x %d matrix \"%s\"", i, j, nr, nc, m.name))
	}
	m.M.Set(i, j, v)
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

type CSR struct {
	M    *sparse.CSR
	name string
}

func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

/*
MulColMajor computes

	C = alpha * A * B + beta * C	(side == blas.Left,  A is nr x nr)
	C = alpha * B * A + beta * C	(side == blas.Right, A is nc x nc)

where B and C are nr x nc column-major buffers and A is the receiver.
*/
func (m CSR) MulColMajor(side blas.Side, nr, nc int, alpha float64, B []float64, beta float64, C []float64) {
	var (
		ar, ac = m.Dims()
		n      = nc
	)
	if side == blas.Left {
		n = nr
	}
	if ar != n || ac != n || len(B) != nr*nc || len(C) != nr*nc {
		panic(fmt.Errorf("dimension mismatch: \"%s\" is %d x %d, operand is %d x %d", m.name, ar, ac, nr, nc))
	}
	switch beta {
	case 0:
		for i := range C {
			C[i] = 0
		}
	case 1:
	default:
		floats.Scale(beta, C)
	}
	switch side {
	case blas.Left:
		// Each column of B is an independent vector
		for i := 0; i < nc; i++ {
			var (
				bCol = B[i*nr : (i+1)*nr]
				cCol = C[i*nr : (i+1)*nr]
			)
			m.M.DoNonZero(func(r, k int, v float64) {
				cCol[r] += alpha * v * bCol[k]
			})
		}
	case blas.Right:
		// Column i of the product mixes the columns k of B where A[k][i] != 0
		m.M.DoNonZero(func(k, i int, v float64) {
			floats.AddScaled(C[i*nr:(i+1)*nr], alpha*v, B[k*nr:(k+1)*nr])
		})
	}
}
