package Burgers2D

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/goburgers/comm"
	"github.com/notargets/goburgers/geometry2D"
)

/*
Burgers is the integrator for one partition of the domain. It owns the current
and next velocity buffers for its block, the halo cache and the scratch arena,
and talks to its neighbors only through its communicator.

Each rank of a comm.World constructs its own Burgers from the shared, read only
Decomposition.
*/
type Burgers struct {
	Grid   *geometry2D.Grid
	Decomp *geometry2D.Decomposition
	Part   geometry2D.Partition
	Phys   Physics
	Coeffs *Coefficients
	U, V   Field
	// Swapped with U, V at the end of each step
	nextU, nextV Field
	ops          DerivativeOps
	comm         *comm.Comm
	halo         *haloCache
	scratch      *scratchArena
	StepCount    int
}

func NewBurgers(c *comm.Comm, d *geometry2D.Decomposition, phys Physics, bt BackendType) (b *Burgers, err error) {
	if c.Size() != d.Size() {
		err = fmt.Errorf("%w: communicator has %d ranks, decomposition has %d partitions",
			geometry2D.ErrInvalidDecomposition, c.Size(), d.Size())
		return
	}
	var (
		p      = d.Partition(c.Rank())
		nr, nc = p.LocNyr, p.LocNxr
	)
	b = &Burgers{
		Grid:    d.Grid,
		Decomp:  d,
		Part:    p,
		Phys:    phys,
		Coeffs:  NewCoefficients(d.Grid, phys, nc, nr),
		U:       NewField(nr, nc),
		V:       NewField(nr, nc),
		nextU:   NewField(nr, nc),
		nextV:   NewField(nr, nc),
		comm:    c,
		halo:    newHaloCache(nr, nc),
		scratch: newScratchArena(nr * nc),
	}
	if b.ops, err = NewDerivativeOps(bt, b.Coeffs, nr, nc); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"rank":   p.Rank,
		"block":  fmt.Sprintf("%d x %d", nr, nc),
		"offset": fmt.Sprintf("(%d,%d)", p.DisplX, p.DisplY),
		"up":     p.Up.String(),
		"down":   p.Down.String(),
		"left":   p.Left.String(),
		"right":  p.Right.String(),
	}).Debug("partition ready")
	return
}

func (b *Burgers) Rank() int { return b.comm.Rank() }

// Time is the simulated time of the current state
func (b *Burgers) Time() float64 { return b.Grid.Time(b.StepCount) }

// SetVelocity fills U and V from a function of the cell coordinates.
// Coordinates come from global indices, so every decomposition sees the same
// bits for the same cell.
func (b *Burgers) SetVelocity(fn func(x, y float64) (u, v float64)) {
	var (
		g = b.Grid
		p = b.Part
	)
	for li := 0; li < p.LocNxr; li++ {
		for lj := 0; lj < p.LocNyr; lj++ {
			i, j := b.Decomp.Global(p.Rank, li, lj)
			u, v := fn(g.X(i), g.Y(j))
			b.U.Set(lj, li, u)
			b.V.Set(lj, li, v)
		}
	}
	b.StepCount = 0
}

// SetInitialVelocity sets U = V = the radial bump of InitialVelocity
func (b *Burgers) SetInitialVelocity() {
	b.SetVelocity(func(x, y float64) (u, v float64) {
		u = InitialVelocity(x, y)
		return u, u
	})
}
