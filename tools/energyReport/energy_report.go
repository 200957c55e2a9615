package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"

	"github.com/notargets/goburgers/model_problems/Burgers2D"
)

var (
	csvFile string
	plot    bool
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "energy series written by goburgers burgers --energyFile")
	plotPtr := flag.Bool("plot", plot, "plot the series in the terminal")
	flag.Parse()
	csvFile, plot = *csvFilePtr, *plotPtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	samples, err := Burgers2D.ReadEnergyCSV(bufio.NewReader(f))
	if err != nil {
		panic(err)
	}
	if err = report(os.Stdout, samples); err != nil {
		panic(err)
	}
	if plot && len(samples) > 1 {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = s.Energy
		}
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(12), asciigraph.Caption(csvFile)))
	}
}

// decayRatios returns E[k]/E[k-1] for consecutive samples. A zero predecessor
// gives a zero ratio.
func decayRatios(samples []Burgers2D.EnergySample) (ratios []float64) {
	if len(samples) < 2 {
		return
	}
	ratios = make([]float64, len(samples)-1)
	for k := 1; k < len(samples); k++ {
		if prev := samples[k-1].Energy; prev != 0 {
			ratios[k-1] = samples[k].Energy / prev
		}
	}
	return
}

func report(w io.Writer, samples []Burgers2D.EnergySample) (err error) {
	if len(samples) == 0 {
		_, err = fmt.Fprintln(w, "no energy samples")
		return
	}
	ratios := decayRatios(samples)
	if _, err = fmt.Fprintf(w, "%6s %12s %14s %10s\n", "step", "time", "energy", "ratio"); err != nil {
		return
	}
	for k, s := range samples {
		ratio := "-"
		if k > 0 {
			ratio = fmt.Sprintf("%10.6f", ratios[k-1])
		}
		if _, err = fmt.Fprintf(w, "%6d %12.5g %14.8g %10s\n", s.Step, s.Time, s.Energy, ratio); err != nil {
			return
		}
	}
	first, last := samples[0], samples[len(samples)-1]
	if first.Energy != 0 {
		_, err = fmt.Fprintf(w, "E(%g)/E(%g) = %g\n", last.Time, first.Time, last.Energy/first.Energy)
	}
	return
}
