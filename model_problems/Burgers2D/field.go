package Burgers2D

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Field is one velocity component on a partition's interior block, stored
// column-major: element (j, i) is Data[i*Nyr+j], with i along x and j along -y.
type Field struct {
	Nyr, Nxr int
	Data     []float64
}

func NewField(Nyr, Nxr int) Field {
	return Field{Nyr: Nyr, Nxr: Nxr, Data: make([]float64, Nyr*Nxr)}
}

func (f Field) At(j, i int) float64     { return f.Data[i*f.Nyr+j] }
func (f Field) Set(j, i int, v float64) { f.Data[i*f.Nyr+j] = v }
func (f Field) Len() int                { return len(f.Data) }

func (f Field) Copy() (g Field) {
	g = NewField(f.Nyr, f.Nxr)
	copy(g.Data, f.Data)
	return
}

// Dense returns a row-major Nyr x Nxr copy
func (f Field) Dense() (M *mat.Dense) {
	M = mat.NewDense(f.Nyr, f.Nxr, nil)
	for i := 0; i < f.Nxr; i++ {
		for j := 0; j < f.Nyr; j++ {
			M.Set(j, i, f.At(j, i))
		}
	}
	return
}

func (f Field) checkShape(g Field) {
	if f.Nyr != g.Nyr || f.Nxr != g.Nxr {
		panic(fmt.Errorf("field shape mismatch: %d x %d vs %d x %d", f.Nyr, f.Nxr, g.Nyr, g.Nxr))
	}
}
