package geometry2D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	{ // Original model defaults
		g, err := NewGrid(10, 10, 1, 10, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, 8, g.Nxr)
		assert.Equal(t, 8, g.Nyr)
		assert.Equal(t, 1., g.Dx)
		assert.Equal(t, 1., g.Dy)
		assert.Equal(t, 0.1, g.Dt)
		assert.Equal(t, -5., g.X0)
		assert.Equal(t, 5., g.Y0)
		assert.Equal(t, -4., g.X(0))
		assert.Equal(t, 4., g.Y(0))
		assert.Equal(t, 3., g.X(7))
		assert.Equal(t, -3., g.Y(7))
		assert.InDelta(t, 0.3, g.Time(3), 1.e-15)
	}
	{ // Malformed grids
		for _, tc := range []struct {
			Lx, Ly, T  float64
			Nx, Ny, Nt int
		}{
			{10, 10, 1, 2, 10, 10},
			{10, 10, 1, 10, 0, 10},
			{10, 10, 1, 10, 10, 0},
			{0, 10, 1, 10, 10, 10},
			{10, -1, 1, 10, 10, 10},
			{10, 10, 0, 10, 10, 10},
		} {
			_, err := NewGrid(tc.Lx, tc.Ly, tc.T, tc.Nx, tc.Ny, tc.Nt)
			assert.True(t, errors.Is(err, ErrInvalidGrid), "%v", tc)
		}
	}
}

func TestDecomposition(t *testing.T) {
	g, err := NewGrid(10, 10, 1, 9, 10, 10) // 7 x 8 interior
	require.NoError(t, err)
	{ // Blocks tile the interior exactly, once
		for _, pg := range [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 2}, {7, 8}} {
			d, err := NewDecomposition(g, pg[0], pg[1])
			require.NoError(t, err)
			require.Equal(t, pg[0]*pg[1], d.Size())
			hits := make([]int, g.Nxr*g.Nyr)
			var total int
			for rank, p := range d.Partitions {
				assert.Equal(t, rank, p.Rank)
				assert.Equal(t, p.Size(), d.Counts()[rank])
				assert.Equal(t, total, d.Displs()[rank])
				total += p.Size()
				for i := p.DisplX; i < p.DisplX+p.LocNxr; i++ {
					for j := p.DisplY; j < p.DisplY+p.LocNyr; j++ {
						hits[j*g.Nxr+i]++
						owner, li, lj := d.Owner(i, j)
						assert.Equal(t, rank, owner)
						assert.Equal(t, [2]int{i - p.DisplX, j - p.DisplY}, [2]int{li, lj})
						gi, gj := d.Global(owner, li, lj)
						assert.Equal(t, [2]int{i, j}, [2]int{gi, gj})
					}
				}
			}
			assert.Equal(t, g.Nxr*g.Nyr, total)
			owner, _, _ := d.Owner(g.Nxr, 0)
			assert.Equal(t, -1, owner)
			owner, _, _ = d.Owner(0, -1)
			assert.Equal(t, -1, owner)
			for _, h := range hits {
				assert.Equal(t, 1, h)
			}
		}
	}
	{ // Neighbors on a 2 x 2 process grid
		d, err := NewDecomposition(g, 2, 2)
		require.NoError(t, err)
		p0, p3 := d.Partition(0), d.Partition(3)
		assert.True(t, p0.Up.IsBoundary())
		assert.True(t, p0.Left.IsBoundary())
		r, ok := p0.Right.Rank()
		assert.True(t, ok)
		assert.Equal(t, 1, r)
		r, ok = p0.Down.Rank()
		assert.True(t, ok)
		assert.Equal(t, 2, r)
		r, ok = p3.Up.Rank()
		assert.True(t, ok)
		assert.Equal(t, 1, r)
		r, ok = p3.Left.Rank()
		assert.True(t, ok)
		assert.Equal(t, 2, r)
		_, ok = p3.Down.Rank()
		assert.False(t, ok)
		assert.Equal(t, "Dirichlet", p3.Right.String())
		assert.Equal(t, "2", p3.Left.String())
		// 7 columns split 4 + 3, 8 rows split 4 + 4
		assert.Equal(t, 4, p0.LocNxr)
		assert.Equal(t, 3, d.Partition(1).LocNxr)
		assert.Equal(t, 4, d.Partition(1).DisplX)
		assert.Equal(t, 4, d.Partition(2).DisplY)
	}
	{ // Invalid process grids
		_, err := NewDecomposition(g, 0, 1)
		assert.True(t, errors.Is(err, ErrInvalidDecomposition))
		_, err = NewDecomposition(g, 8, 1)
		assert.True(t, errors.Is(err, ErrInvalidDecomposition))
		_, err = NewDecomposition(g, 1, 9)
		assert.True(t, errors.Is(err, ErrInvalidDecomposition))
	}
}
