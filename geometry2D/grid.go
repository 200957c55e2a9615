package geometry2D

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGrid          = errors.New("invalid grid")
	ErrInvalidDecomposition = errors.New("invalid decomposition")
)

/*
Grid is the global structured grid. Nx and Ny count every node including the
ring of boundary nodes, which is held at zero, so only the Nxr x Nyr interior
is integrated.

The origin (X0, Y0) is the top left corner of the domain. Interior cell (i, j)
has i increasing along +x and j increasing along -y:

	x = X0 + (i+1)*Dx
	y = Y0 - (j+1)*Dy
*/
type Grid struct {
	Nx, Ny, Nt int
	Nxr, Nyr   int
	Lx, Ly, T  float64
	X0, Y0     float64
	Dx, Dy, Dt float64
}

func NewGrid(Lx, Ly, T float64, Nx, Ny, Nt int) (g *Grid, err error) {
	switch {
	case Nx < 3 || Ny < 3:
		err = fmt.Errorf("%w: need Nx, Ny >= 3 to have an interior, have Nx = %d, Ny = %d",
			ErrInvalidGrid, Nx, Ny)
	case Nt < 1:
		err = fmt.Errorf("%w: need Nt >= 1, have %d", ErrInvalidGrid, Nt)
	case !(Lx > 0) || !(Ly > 0) || !(T > 0):
		err = fmt.Errorf("%w: domain lengths and duration must be positive, have Lx = %v, Ly = %v, T = %v",
			ErrInvalidGrid, Lx, Ly, T)
	}
	if err != nil {
		return
	}
	g = &Grid{
		Nx: Nx, Ny: Ny, Nt: Nt,
		Nxr: Nx - 2, Nyr: Ny - 2,
		Lx: Lx, Ly: Ly, T: T,
		// dx,dy and dt are dependent on L,T and Nx,Ny,Nt
		Dx: Lx / float64(Nx),
		Dy: Ly / float64(Ny),
		Dt: T / float64(Nt),
		X0: -Lx / 2,
		Y0: Ly / 2,
	}
	return
}

// X returns the x coordinate of interior column i (global index)
func (g *Grid) X(i int) float64 { return g.X0 + float64(i+1)*g.Dx }

// Y returns the y coordinate of interior row j (global index)
func (g *Grid) Y(j int) float64 { return g.Y0 - float64(j+1)*g.Dy }

// Time returns the time at step k
func (g *Grid) Time(k int) float64 { return float64(k) * g.Dt }

func (g *Grid) Print() {
	fmt.Printf("[%d x %d]\t\t\t= Nx x Ny (with boundary)\n", g.Nx, g.Ny)
	fmt.Printf("[%d]\t\t\t\t= Nt\n", g.Nt)
	fmt.Printf("%8.5f, %8.5f\t= dx, dy\n", g.Dx, g.Dy)
	fmt.Printf("%8.5f\t\t= dt\n", g.Dt)
}
