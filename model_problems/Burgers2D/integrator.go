package Burgers2D

// scratchArena holds the per term buffers of one component update, allocated
// once per partition and overwritten on every call.
type scratchArena struct {
	d2x, d2y, d1x, d1y []float64
	selfSelf           []float64 // Vel * Vel
	selfOther          []float64 // Vel * Other
	selfSelfShift      []float64 // Vel shifted one cell upwind, times Vel
	selfOtherShift     []float64 // Shifted one cell upwind, times Other
}

func newScratchArena(n int) *scratchArena {
	buf := make([]float64, 8*n)
	return &scratchArena{
		d2x:            buf[0*n : 1*n],
		d2y:            buf[1*n : 2*n],
		d1x:            buf[2*n : 3*n],
		d1y:            buf[3*n : 4*n],
		selfSelf:       buf[4*n : 5*n],
		selfOther:      buf[5*n : 6*n],
		selfSelfShift:  buf[6*n : 7*n],
		selfOtherShift: buf[7*n : 8*n],
	}
}

// Step advances U and V by one time step. Both components are computed from
// the same generation and swapped in together.
func (b *Burgers) Step() (err error) {
	if err = b.nextVelocityState(true, b.nextU); err != nil {
		return
	}
	if err = b.nextVelocityState(false, b.nextV); err != nil {
		return
	}
	b.U, b.nextU = b.nextU, b.U
	b.V, b.nextV = b.nextV, b.V
	b.StepCount++
	return
}

/*
nextVelocityState writes the next state of U (selectU) or V into next:

	next = F + dt * (d2x + d2y - d1x - d1y - (FF + FO - FF⁻ - FO⁻))

where F is the selected component, O the other one and ⁻ marks the product
with F taken one cell upwind. For U the self term is along x and the cross
term along y; for V it is the reverse.
*/
func (b *Burgers) nextVelocityState(selectU bool, next Field) (err error) {
	var (
		vel, other = b.U, b.V
		s          = b.scratch
		cf         = b.Coeffs
		dt         = b.Grid.Dt
	)
	if !selectU {
		vel, other = b.V, b.U
	}
	vel.checkShape(next)
	if err = b.exchangeHalo(vel); err != nil {
		return
	}
	b.ops.Derivatives(vel.Data, s.d2x, s.d2y, s.d1x, s.d1y)

	nr := vel.Nyr
	if selectU {
		product(cf.BDx, vel.Data, vel.Data, s.selfSelf)
		product(cf.BDy, vel.Data, other.Data, s.selfOther)
		shiftedProductX(cf.BDx, vel.Data, vel.Data, nr, s.selfSelfShift)
		shiftedProductY(cf.BDy, vel.Data, other.Data, nr, s.selfOtherShift)
	} else {
		product(cf.BDy, vel.Data, vel.Data, s.selfSelf)
		product(cf.BDx, vel.Data, other.Data, s.selfOther)
		shiftedProductY(cf.BDy, vel.Data, vel.Data, nr, s.selfSelfShift)
		shiftedProductX(cf.BDx, vel.Data, other.Data, nr, s.selfOtherShift)
	}

	b.updateBoundsLinear()
	b.updateBoundsNonLinear(selectU, vel, other)

	for i, f := range vel.Data {
		next.Data[i] = f + dt*(s.d2x[i]+s.d2y[i]-s.d1x[i]-s.d1y[i]-
			(s.selfSelf[i]+s.selfOther[i]-s.selfSelfShift[i]-s.selfOtherShift[i]))
	}
	return
}

// Adds the halo contributions to the block-local derivatives
func (b *Burgers) updateBoundsLinear() {
	var (
		s      = b.scratch
		h      = b.halo
		cf     = b.Coeffs
		nr, nc = b.Part.LocNyr, b.Part.LocNxr
	)
	for j := 0; j < nr; j++ {
		// left
		s.d2x[j] += cf.Cx2 * h.Left[j]
		s.d1x[j] -= cf.AxDx * h.Left[j]
		// right
		s.d2x[(nc-1)*nr+j] += cf.Cx2 * h.Right[j]
	}
	for i := 0; i < nc; i++ {
		// up
		s.d2y[i*nr] += cf.Cy2 * h.Up[i]
		s.d1y[i*nr] -= cf.AyDy * h.Up[i]
		// down
		s.d2y[i*nr+nr-1] += cf.Cy2 * h.Down[i]
	}
}

// Replaces the shifted products on the upwind edges, where the upwind cell is
// in the halo
func (b *Burgers) updateBoundsNonLinear(selectU bool, vel, other Field) {
	var (
		s      = b.scratch
		h      = b.halo
		cf     = b.Coeffs
		nr, nc = vel.Nyr, vel.Nxr
	)
	if selectU {
		for i := 0; i < nc; i++ {
			s.selfOtherShift[i*nr] = cf.BDy * h.Up[i] * other.Data[i*nr]
		}
		for j := 0; j < nr; j++ {
			s.selfSelfShift[j] = cf.BDx * h.Left[j] * vel.Data[j]
		}
		return
	}
	for i := 0; i < nc; i++ {
		s.selfSelfShift[i*nr] = cf.BDy * h.Up[i] * vel.Data[i*nr]
	}
	for j := 0; j < nr; j++ {
		s.selfOtherShift[j] = cf.BDx * h.Left[j] * other.Data[j]
	}
}

// out = p * a * b elementwise
func product(p float64, a, b, out []float64) {
	for i := range out {
		out[i] = p * a[i] * b[i]
	}
}

// out(j,i) = p * a(j,i-1) * b(j,i), zero in the first column
func shiftedProductX(p float64, a, b []float64, nr int, out []float64) {
	for k := 0; k < nr && k < len(out); k++ {
		out[k] = 0
	}
	for k := nr; k < len(out); k++ {
		out[k] = p * a[k-nr] * b[k]
	}
}

// out(j,i) = p * a(j-1,i) * b(j,i), zero in the first row
func shiftedProductY(p float64, a, b []float64, nr int, out []float64) {
	for k := range out {
		if k%nr == 0 {
			out[k] = 0
			continue
		}
		out[k] = p * a[k-1] * b[k]
	}
}
