package types

import "fmt"

// BCFLAG tags what lies beyond one side of a partition block
type BCFLAG uint8

const (
	BC_None      BCFLAG = iota // Another partition, data comes from the halo exchange
	BC_Dirichlet               // Physical boundary, homogeneous Dirichlet (u = v = 0)
)

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}
