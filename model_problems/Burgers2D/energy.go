package Burgers2D

import (
	"github.com/notargets/goburgers/utils"
)

// Energy returns the kinetic energy of the whole domain,
//
//	E = ½ Σ (u² + v²) dx dy
//
// It is collective: every partition must call it, and all get the same value.
func (b *Burgers) Energy() (E float64, err error) {
	n := b.U.Len()
	local := 0.5 * (utils.Ddot(n, b.U.Data, b.U.Data) + utils.Ddot(n, b.V.Data, b.V.Data)) *
		b.Grid.Dx * b.Grid.Dy
	return b.comm.AllReduceSum(local)
}
