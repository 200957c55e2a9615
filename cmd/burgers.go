/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goburgers/InputParameters"
	"github.com/notargets/goburgers/model_problems/Burgers2D"
	"github.com/notargets/goburgers/utils"
)

type ModelBurgers struct {
	InputFile  string
	Output     string
	EnergyFile string
	Plot       bool
	Profile    bool
	ProfileDir string
	Perf       bool
}

// BurgersCmd represents the burgers command
var BurgersCmd = &cobra.Command{
	Use:   "burgers ax ay b c Lx Ly T",
	Short: "Two dimensional viscous Burgers' equations on a partitioned structured grid",
	Long: `
Solves the 2D viscous Burgers' equations from a radial bump initial condition,
with zero velocity on the domain boundary.

	ax, ay  linear advection speeds
	b       nonlinear advection coefficient
	c       viscosity
	Lx, Ly  domain size, centered on the origin
	T       final time

The seven values can instead come from a YAML file (--inputFile). Velocity
frames are written to --output, by default data.txt.

goburgers burgers 1 1 0 1 10 10 1 --px 2 --py 2`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.BurgersParameters
			mb = newModelBurgers()
		)
		if ip, err = processInput(mb, args); err != nil {
			return
		}
		return RunBurgers(mb, ip)
	},
}

func init() {
	rootCmd.AddCommand(BurgersCmd)
	def := InputParameters.NewBurgersParameters()
	fl := BurgersCmd.Flags()
	fl.Int("nx", def.Nx, "grid nodes along x, including the boundary")
	fl.Int("ny", def.Ny, "grid nodes along y, including the boundary")
	fl.Int("nt", def.Nt, "time levels, including t = 0")
	fl.Int("px", def.Px, "partitions along x")
	fl.Int("py", def.Py, "partitions along y")
	fl.String("backend", def.Backend, "derivative backend: blas or sparse")
	fl.Int("energyEvery", def.EnergyEvery, "steps between energy records, 0 disables")
	fl.Int("recordEvery", def.RecordEvery, "steps between recorded velocity frames, 0 records only the final state")
	fl.Int("historySize", def.HistorySize, "maximum number of frames kept, 0 keeps all")
	fl.StringP("inputFile", "I", "", "YAML file with the model parameters")
	fl.StringP("output", "o", "data.txt", "velocity field output file")
	fl.String("energyFile", "", "CSV file for the energy series")
	fl.BoolP("plot", "g", false, "plot the energy series in the terminal")
	fl.Bool("profile", false, "write a CPU profile")
	fl.String("profileDir", ".", "directory for the CPU profile")
	fl.Bool("perf", false, "count CPU instructions of the run (linux)")
	bindBurgersFlags()
}

func bindBurgersFlags() {
	for _, name := range []string{"nx", "ny", "nt", "px", "py", "backend", "energyEvery", "recordEvery",
		"historySize", "inputFile", "output", "energyFile", "plot", "profile", "profileDir", "perf"} {
		if err := viper.BindPFlag(name, BurgersCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func newModelBurgers() *ModelBurgers {
	return &ModelBurgers{
		InputFile:  viper.GetString("inputFile"),
		Output:     viper.GetString("output"),
		EnergyFile: viper.GetString("energyFile"),
		Plot:       viper.GetBool("plot"),
		Profile:    viper.GetBool("profile"),
		ProfileDir: viper.GetString("profileDir"),
		Perf:       viper.GetBool("perf"),
	}
}

// processInput combines the input file, positional arguments and flags.
// Positional arguments replace the physical parameters of the file, flags
// replace the numerics when set explicitly.
func processInput(mb *ModelBurgers, args []string) (ip *InputParameters.BurgersParameters, err error) {
	ip = InputParameters.NewBurgersParameters()
	if len(mb.InputFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(mb.InputFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", mb.InputFile, err)
		}
		if len(args) != 0 {
			if err = ip.FromArgs(args); err != nil {
				return nil, err
			}
		}
	} else if err = ip.FromArgs(args); err != nil {
		return nil, err
	}
	useFlag := func(key string) bool {
		return len(mb.InputFile) == 0 || viper.IsSet(key)
	}
	for _, iv := range []struct {
		key string
		val *int
	}{
		{"nx", &ip.Nx}, {"ny", &ip.Ny}, {"nt", &ip.Nt}, {"px", &ip.Px}, {"py", &ip.Py},
		{"energyEvery", &ip.EnergyEvery}, {"recordEvery", &ip.RecordEvery}, {"historySize", &ip.HistorySize},
	} {
		if useFlag(iv.key) {
			*iv.val = viper.GetInt(iv.key)
		}
	}
	if useFlag("backend") {
		ip.Backend = viper.GetString("backend")
	}
	return
}

func RunBurgers(mb *ModelBurgers, ip *InputParameters.BurgersParameters) (err error) {
	var (
		s   *Burgers2D.Solver
		res *Burgers2D.Result
	)
	ip.Print()
	if s, err = Burgers2D.NewSolver(ip); err != nil {
		return
	}
	s.Grid.Print()
	if mb.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(mb.ProfileDir)).Stop()
	}
	run := func() (err error) {
		res, err = s.Run()
		return
	}
	if mb.Perf {
		err = measurePerf(run)
	} else {
		err = run()
	}
	if err != nil {
		return
	}

	frames := res.History.Frames()
	if len(frames) == 0 {
		frames = []Burgers2D.Frame{{Step: res.Steps, Time: s.Grid.Time(res.Steps), U: res.U, V: res.V}}
	}
	if err = Burgers2D.SaveVelocityFile(mb.Output, frames, ip.Nx, ip.Ny); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": mb.Output, "frames": len(frames)}).Info("velocity field written")
	if len(res.Energy) == 0 {
		return
	}
	final := res.Energy[len(res.Energy)-1]
	if utils.IsNan(final.Energy) {
		log.WithField("step", final.Step).Warn("energy is not finite, the run is unstable")
	}
	fmt.Printf("Energy: E(%g) = %g, E(%g) = %g\n",
		res.Energy[0].Time, res.Energy[0].Energy, final.Time, final.Energy)
	if len(mb.EnergyFile) != 0 {
		if err = Burgers2D.SaveEnergyCSV(mb.EnergyFile, res.Energy); err != nil {
			return
		}
	}
	if mb.Plot && len(res.Energy) > 1 {
		data := make([]float64, len(res.Energy))
		for i, e := range res.Energy {
			data[i] = e.Energy
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy"),
		))
	}
	return
}
