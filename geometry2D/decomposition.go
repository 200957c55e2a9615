package geometry2D

import (
	"fmt"

	"github.com/notargets/goburgers/types"
	"github.com/notargets/goburgers/utils"
)

// Neighbor is what lies past one side of a partition block: either another
// partition, or the physical boundary of the domain.
type Neighbor struct {
	rank int
	BC   types.BCFLAG
}

// NoNeighbor marks a side that lies on the physical (Dirichlet) boundary
var NoNeighbor = Neighbor{rank: -1, BC: types.BC_Dirichlet}

func NeighborAt(rank int) Neighbor {
	return Neighbor{rank: rank, BC: types.BC_None}
}

// Rank returns the neighbor's rank, ok is false on a physical boundary
func (n Neighbor) Rank() (rank int, ok bool) {
	if n.BC != types.BC_None {
		return -1, false
	}
	return n.rank, true
}

func (n Neighbor) IsBoundary() bool { return n.BC != types.BC_None }

func (n Neighbor) String() string {
	if r, ok := n.Rank(); ok {
		return fmt.Sprintf("%d", r)
	}
	return n.BC.String()
}

// Partition describes the block of the interior grid owned by one rank.
type Partition struct {
	Rank           int
	Col, Row       int // Position in the Px x Py process grid, Row 0 is the top strip
	LocNxr, LocNyr int // Local interior extents
	DisplX, DisplY int // Offset of the block in the global interior grid
	Up, Down       Neighbor
	Left, Right    Neighbor
}

func (p Partition) Size() int { return p.LocNxr * p.LocNyr }

// Decomposition is the Px x Py tiling of the global interior grid. Every rank
// holds the complete table, which the final gather needs.
type Decomposition struct {
	Px, Py     int
	Grid       *Grid
	Partitions []Partition // Indexed by rank
	counts     []int
	displs     []int
	pmX, pmY   *utils.PartitionMap
}

/*
NewDecomposition splits the Nxr x Nyr interior into Px x Py blocks. Ranks are
laid out row-major over the process grid:

	rank = Row*Px + Col

	         Col 0   Col 1
	Row 0  [   0   |   1   ]   <- top of the domain (largest y)
	Row 1  [   2   |   3   ]

Block extents along each axis differ by at most one cell.
*/
func NewDecomposition(g *Grid, Px, Py int) (d *Decomposition, err error) {
	switch {
	case Px < 1 || Py < 1:
		err = fmt.Errorf("%w: process grid must be at least 1 x 1, have %d x %d",
			ErrInvalidDecomposition, Px, Py)
	case Px > g.Nxr || Py > g.Nyr:
		err = fmt.Errorf("%w: process grid %d x %d is larger than the interior grid %d x %d",
			ErrInvalidDecomposition, Px, Py, g.Nxr, g.Nyr)
	}
	if err != nil {
		return
	}
	var (
		pmX  = utils.NewPartitionMap(Px, g.Nxr)
		pmY  = utils.NewPartitionMap(Py, g.Nyr)
		NP   = Px * Py
		disp int
	)
	d = &Decomposition{
		Px:         Px,
		Py:         Py,
		Grid:       g,
		Partitions: make([]Partition, NP),
		counts:     make([]int, NP),
		displs:     make([]int, NP),
		pmX:        pmX,
		pmY:        pmY,
	}
	neighbor := func(col, row int) Neighbor {
		if col < 0 || col >= Px || row < 0 || row >= Py {
			return NoNeighbor
		}
		return NeighborAt(row*Px + col)
	}
	for row := 0; row < Py; row++ {
		for col := 0; col < Px; col++ {
			rank := row*Px + col
			xMin, _ := pmX.GetBucketRange(col)
			yMin, _ := pmY.GetBucketRange(row)
			p := Partition{
				Rank:   rank,
				Col:    col,
				Row:    row,
				LocNxr: pmX.GetBucketDimension(col),
				LocNyr: pmY.GetBucketDimension(row),
				DisplX: xMin,
				DisplY: yMin,
				Up:     neighbor(col, row-1),
				Down:   neighbor(col, row+1),
				Left:   neighbor(col-1, row),
				Right:  neighbor(col+1, row),
			}
			d.Partitions[rank] = p
			d.counts[rank] = p.Size()
			d.displs[rank] = disp
			disp += p.Size()
		}
	}
	return
}

func (d *Decomposition) Size() int { return len(d.Partitions) }

func (d *Decomposition) Partition(rank int) Partition { return d.Partitions[rank] }

// Counts is the number of interior cells held by each rank
func (d *Decomposition) Counts() []int { return d.counts }

// Displs is the offset of each rank's block in a rank ordered gather buffer
func (d *Decomposition) Displs() []int { return d.displs }

// Owner returns the rank owning global interior cell (i, j) and the cell's
// local indices in that rank's block. rank is -1 outside the interior.
func (d *Decomposition) Owner(i, j int) (rank, li, lj int) {
	var col, row int
	li, _, col = d.pmX.GetLocalK(i)
	lj, _, row = d.pmY.GetLocalK(j)
	if col < 0 || row < 0 {
		return -1, 0, 0
	}
	return row*d.Px + col, li, lj
}

// Global maps local cell (li, lj) of rank's block to global interior indices
func (d *Decomposition) Global(rank, li, lj int) (i, j int) {
	p := d.Partitions[rank]
	return d.pmX.GetGlobalK(li, p.Col), d.pmY.GetGlobalK(lj, p.Row)
}
