package Burgers2D

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/blas"

	"github.com/notargets/goburgers/utils"
)

var ErrUnknownBackend = errors.New("unknown derivative backend")

type BackendType uint

const (
	BACKEND_BLAS BackendType = iota
	BACKEND_Sparse
)

var (
	BackendNames = map[string]BackendType{
		"blas":   BACKEND_BLAS,
		"sparse": BACKEND_Sparse,
	}
	BackendPrintNames = []string{"Dense BLAS", "Sparse CSR"}
)

func (bt BackendType) Print() (txt string) {
	txt = BackendPrintNames[bt]
	return
}

func NewBackendType(label string) (bt BackendType, err error) {
	var ok bool
	label = strings.ToLower(label)
	if label == "" {
		return BACKEND_BLAS, nil
	}
	if bt, ok = BackendNames[label]; !ok {
		err = fmt.Errorf("%w: %q, choose one of blas, sparse", ErrUnknownBackend, label)
	}
	return
}

// DerivativeOps applies the block-local derivative operators to a column-major
// field. Every output is overwritten.
type DerivativeOps interface {
	Derivatives(vel []float64, d2x, d2y, d1x, d1y []float64)
}

func NewDerivativeOps(bt BackendType, cf *Coefficients, locNyr, locNxr int) (ops DerivativeOps, err error) {
	switch bt {
	case BACKEND_BLAS:
		ops = &blasOps{cf: cf, nr: locNyr, nc: locNxr}
	case BACKEND_Sparse:
		ops = &sparseOps{cf: cf, nr: locNyr, nc: locNxr}
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownBackend, bt)
	}
	return
}

type blasOps struct {
	cf     *Coefficients
	nr, nc int
}

func (o *blasOps) Derivatives(vel []float64, d2x, d2y, d1x, d1y []float64) {
	var (
		nr, nc = o.nr, o.nc
		n      = nr * nc
	)
	// Second derivatives
	utils.Dsymm(blas.Right, nr, nc, 1, o.cf.D2x, vel, 0, d2x)
	utils.Dsymm(blas.Left, nr, nc, 1, o.cf.D2y, vel, 0, d2y)
	// First derivatives, triangular multiply is in place
	utils.Dcopy(n, vel, d1x)
	utils.Dcopy(n, vel, d1y)
	utils.Dtrmm(blas.Right, nr, nc, 1, o.cf.D1x, d1x)
	utils.Dtrmm(blas.Left, nr, nc, 1, o.cf.D1y, d1y)
}

type sparseOps struct {
	cf     *Coefficients
	nr, nc int
}

func (o *sparseOps) Derivatives(vel []float64, d2x, d2y, d1x, d1y []float64) {
	var (
		nr, nc = o.nr, o.nc
	)
	o.cf.D2xCSR.MulColMajor(blas.Right, nr, nc, 1, vel, 0, d2x)
	o.cf.D2yCSR.MulColMajor(blas.Left, nr, nc, 1, vel, 0, d2y)
	o.cf.D1xCSR.MulColMajor(blas.Right, nr, nc, 1, vel, 0, d1x)
	o.cf.D1yCSR.MulColMajor(blas.Left, nr, nc, 1, vel, 0, d1y)
}
