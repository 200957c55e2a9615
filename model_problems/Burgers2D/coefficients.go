package Burgers2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goburgers/geometry2D"
	"github.com/notargets/goburgers/utils"
)

// GenSymm returns the n x n symmetric tridiagonal matrix with alpha on the
// diagonal and beta on both first off diagonals.
func GenSymm(alpha, beta float64, n int) (S *mat.SymDense) {
	S = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		S.SetSym(i, i, alpha)
		if i+1 < n {
			S.SetSym(i, i+1, beta)
		}
	}
	return
}

// GenTrmm returns the n x n bidiagonal triangular matrix with alpha on the
// diagonal and beta on the first super diagonal (upper) or sub diagonal.
func GenTrmm(alpha, beta float64, n int, upper bool) (T *mat.TriDense) {
	kind := mat.Lower
	if upper {
		kind = mat.Upper
	}
	T = mat.NewTriDense(n, kind, nil)
	for i := 0; i < n; i++ {
		T.SetTri(i, i, alpha)
		if i+1 < n {
			if upper {
				T.SetTri(i, i+1, beta)
			} else {
				T.SetTri(i+1, i, beta)
			}
		}
	}
	return
}

/*
Coefficients are the derivative operators for one partition block. Applied to
a column-major block F:

	∂²F/∂x² ≈ F * D2x		∂²F/∂y² ≈ D2y * F
	∂F/∂x   ≈ F * D1x		∂F/∂y   ≈ D1y * F

(advection and viscosity coefficients included). Contributions from cells
outside the block are added separately from the halo.
*/
type Coefficients struct {
	D2x, D2y *mat.SymDense
	D1x, D1y *mat.TriDense
	// Same operators in compressed form for the sparse backend
	D2xCSR, D2yCSR utils.CSR
	D1xCSR, D1yCSR utils.CSR
	// Stencil weights for the halo fixups
	Cx2, Cy2 float64 // c/dx², c/dy²
	AxDx     float64 // ax/dx
	AyDy     float64 // ay/dy
	BDx, BDy float64 // b/dx, b/dy
}

func NewCoefficients(g *geometry2D.Grid, phys Physics, locNxr, locNyr int) (cf *Coefficients) {
	var (
		dx, dy = g.Dx, g.Dy
	)
	cf = &Coefficients{
		Cx2:  phys.C / utils.POW(dx, 2),
		Cy2:  phys.C / utils.POW(dy, 2),
		AxDx: phys.Ax / dx,
		AyDy: phys.Ay / dy,
		BDx:  phys.B / dx,
		BDy:  phys.B / dy,
	}
	cf.D2x = GenSymm(-2*cf.Cx2, cf.Cx2, locNxr)
	cf.D2y = GenSymm(-2*cf.Cy2, cf.Cy2, locNyr)
	cf.D1x = GenTrmm(cf.AxDx, -cf.AxDx, locNxr, true)
	cf.D1y = GenTrmm(cf.AyDy, -cf.AyDy, locNyr, false)
	cf.D2xCSR = toCSR(cf.D2x, "D2x")
	cf.D2yCSR = toCSR(cf.D2y, "D2y")
	cf.D1xCSR = toCSR(cf.D1x, "D1x")
	cf.D1yCSR = toCSR(cf.D1y, "D1y")
	return
}

func toCSR(A mat.Matrix, name string) utils.CSR {
	var (
		nr, nc = A.Dims()
		dok    = utils.NewDOK(nr, nc, name)
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if v := A.At(i, j); v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	return dok.ToCSR()
}
