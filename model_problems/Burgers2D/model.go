package Burgers2D

import (
	"math"
)

/*
The 2D viscous Burgers' equations with linear advection, in non-conservative form:

	∂u/∂t + ax ∂u/∂x + ay ∂u/∂y + b (u ∂u/∂x + v ∂u/∂y) = c ∇²u
	∂v/∂t + ax ∂v/∂x + ay ∂v/∂y + b (u ∂v/∂x + v ∂v/∂y) = c ∇²v

Discretization is explicit (forward Euler) in time on a structured grid. Second
derivatives are central, first derivatives are backward (upwind for positive
advection), and the nonlinear products use the same backward stencil:

	u ∂u/∂x ≈ (u_i² - u_{i-1} u_i) / dx

The outer ring of grid nodes is held at zero (homogeneous Dirichlet).
*/

// Physics holds the four physical parameters of the model.
type Physics struct {
	Ax, Ay float64 // Linear advection speeds
	B      float64 // Nonlinear advection coefficient
	C      float64 // Viscosity
}

// InitialVelocity is the radial bump used for both components at t = 0
//
//	u0(r) = 2 (1-r)⁴ (4r+1)	r <= 1
//	u0(r) = 0			r > 1
func InitialVelocity(x, y float64) float64 {
	r := math.Sqrt(x*x + y*y)
	if r > 1 {
		return 0
	}
	return 2 * math.Pow(1-r, 4) * (4*r + 1)
}
