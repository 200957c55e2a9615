package Burgers2D

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// FormatValue prints v with 4 significant digits, shortest form
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

/*
WriteVelocityFile writes the recorded frames in the plain text layout:

	U velocity field:
	t = <time>:
	<Ny rows of Nx values, each followed by a space>
	...
	V velocity field:
	...

The outer ring of every frame is the boundary and prints as 0.
*/
func WriteVelocityFile(w io.Writer, frames []Frame, Nx, Ny int) (err error) {
	bw := bufio.NewWriter(w)
	for _, comp := range []struct {
		id  string
		get func(f Frame) *mat.Dense
	}{
		{"U", func(f Frame) *mat.Dense { return f.U }},
		{"V", func(f Frame) *mat.Dense { return f.V }},
	} {
		fmt.Fprintf(bw, "%s velocity field:\n", comp.id)
		for _, f := range frames {
			M := comp.get(f)
			if r, c := M.Dims(); r != Ny-2 || c != Nx-2 {
				return fmt.Errorf("frame at step %d is %d x %d, expected %d x %d",
					f.Step, r, c, Ny-2, Nx-2)
			}
			fmt.Fprintf(bw, "t = %s:\n", FormatValue(f.Time))
			for j := 0; j < Ny; j++ {
				for i := 0; i < Nx; i++ {
					if j == 0 || i == 0 || j == Ny-1 || i == Nx-1 {
						bw.WriteString("0 ")
					} else {
						bw.WriteString(FormatValue(M.At(j-1, i-1)))
						bw.WriteByte(' ')
					}
				}
				bw.WriteByte('\n')
			}
		}
	}
	return bw.Flush()
}

// SaveVelocityFile creates or truncates path and writes the frames to it
func SaveVelocityFile(path string, frames []Frame, Nx, Ny int) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteVelocityFile(file, frames, Nx, Ny)
}

type EnergySample struct {
	Step   int
	Time   float64
	Energy float64
}

var energyHeader = []string{"step", "time", "energy"}

func WriteEnergyCSV(w io.Writer, samples []EnergySample) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write(energyHeader); err != nil {
		return
	}
	for _, s := range samples {
		if err = cw.Write([]string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.Energy, 'g', -1, 64),
		}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func SaveEnergyCSV(path string, samples []EnergySample) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteEnergyCSV(file, samples)
}

func ReadEnergyCSV(r io.Reader) (samples []EnergySample, err error) {
	var records [][]string
	if records, err = csv.NewReader(r).ReadAll(); err != nil {
		return
	}
	for n, rec := range records {
		if n == 0 && rec[0] == energyHeader[0] {
			continue
		}
		if len(rec) != 3 {
			err = fmt.Errorf("line %d: expected 3 fields, have %d", n+1, len(rec))
			return
		}
		var s EnergySample
		if s.Step, err = strconv.Atoi(rec[0]); err != nil {
			return
		}
		if s.Time, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return
		}
		if s.Energy, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return
		}
		samples = append(samples, s)
	}
	return
}
