package InputParameters

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ghodss/yaml"
)

var ErrIllegalArgument = errors.New("illegal argument")

// PositionalNames are the positional command line arguments, in order
var PositionalNames = []string{"ax", "ay", "b", "c", "Lx", "Ly", "T"}

// Parameters obtained from the command line or the YAML input file. The yaml
// package maps YAML through JSON, so the json tags name the YAML keys.
type BurgersParameters struct {
	Title string `json:"Title"`
	// Physics
	Ax float64 `json:"ax"`
	Ay float64 `json:"ay"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	// Domain and duration
	Lx float64 `json:"Lx"`
	Ly float64 `json:"Ly"`
	T  float64 `json:"T"`
	// Numerics
	Nx      int    `json:"Nx"`
	Ny      int    `json:"Ny"`
	Nt      int    `json:"Nt"`
	Px      int    `json:"Px"`
	Py      int    `json:"Py"`
	Backend string `json:"Backend"`
	// Diagnostics, a zero interval disables the record
	EnergyEvery int `json:"EnergyEvery"`
	RecordEvery int `json:"RecordEvery"`
	HistorySize int `json:"HistorySize"`
}

func NewBurgersParameters() *BurgersParameters {
	return &BurgersParameters{
		Nx: 10, Ny: 10, Nt: 10,
		Px: 1, Py: 1,
		Backend:     "blas",
		EnergyEvery: 1,
		RecordEvery: 1,
	}
}

func (ip *BurgersParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// FromArgs sets the seven physical parameters from "ax ay b c Lx Ly T"
func (ip *BurgersParameters) FromArgs(args []string) (err error) {
	if len(args) != len(PositionalNames) {
		err = fmt.Errorf("%w: need %d arguments (%v), have %d",
			ErrIllegalArgument, len(PositionalNames), PositionalNames, len(args))
		return
	}
	var (
		vals = make([]float64, len(args))
	)
	for i, arg := range args {
		if vals[i], err = strconv.ParseFloat(arg, 64); err != nil {
			err = fmt.Errorf("%w: %s = %q is not a number", ErrIllegalArgument, PositionalNames[i], arg)
			return
		}
	}
	ip.Ax, ip.Ay, ip.B, ip.C = vals[0], vals[1], vals[2], vals[3]
	ip.Lx, ip.Ly, ip.T = vals[4], vals[5], vals[6]
	return
}

// Warnings lists suspicious settings. Negative physical parameters are
// allowed; a negative Lx, Ly or T is still rejected when the grid is built.
func (ip *BurgersParameters) Warnings() (warns []string) {
	for _, pv := range []struct {
		name string
		val  float64
	}{
		{"ax", ip.Ax}, {"ay", ip.Ay}, {"b", ip.B}, {"c", ip.C},
		{"Lx", ip.Lx}, {"Ly", ip.Ly}, {"T", ip.T},
	} {
		if pv.val < 0 {
			warns = append(warns, fmt.Sprintf("%s = %v is negative", pv.name, pv.val))
		}
	}
	if ip.HistorySize > 0 && ip.RecordEvery == 0 {
		warns = append(warns, "HistorySize is set but RecordEvery = 0 records nothing")
	}
	return
}

func (ip *BurgersParameters) Print() {
	if ip.Title != "" {
		fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	}
	fmt.Printf("%8.5f, %8.5f\t= ax, ay\n", ip.Ax, ip.Ay)
	fmt.Printf("%8.5f, %8.5f\t= b, c\n", ip.B, ip.C)
	fmt.Printf("%8.5f, %8.5f\t= Lx, Ly\n", ip.Lx, ip.Ly)
	fmt.Printf("%8.5f\t\t= T\n", ip.T)
	fmt.Printf("[%d x %d]\t\t\t= Nx x Ny\n", ip.Nx, ip.Ny)
	fmt.Printf("[%d]\t\t\t\t= Nt\n", ip.Nt)
	fmt.Printf("[%d x %d]\t\t\t= Px x Py\n", ip.Px, ip.Py)
	fmt.Printf("[%s]\t\t\t= Backend\n", ip.Backend)
}
