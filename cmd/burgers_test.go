package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goburgers/InputParameters"
	"github.com/notargets/goburgers/model_problems/Burgers2D"
)

func resetViper() {
	viper.Reset()
	bindBurgersFlags()
}

func TestProcessInput(t *testing.T) {
	resetViper()
	defer resetViper()
	{ // Positional arguments
		mb := &ModelBurgers{}
		_, err := processInput(mb, []string{"1", "1", "0", "1", "10", "10"})
		assert.True(t, errors.Is(err, InputParameters.ErrIllegalArgument))
		_, err = processInput(mb, []string{"1", "1", "0", "1", "10", "10", "x"})
		assert.True(t, errors.Is(err, InputParameters.ErrIllegalArgument))
		viper.Set("nx", 12)
		viper.Set("px", 2)
		ip, err := processInput(mb, []string{"1", "0.5", "0", "1", "10", "8", "1"})
		require.NoError(t, err)
		assert.Equal(t, 0.5, ip.Ay)
		assert.Equal(t, 8., ip.Ly)
		assert.Equal(t, 12, ip.Nx)
		assert.Equal(t, 2, ip.Px)
	}
	resetViper()
	{ // Input file, flags only override what was set
		fileInput := []byte(`
Title: Diffusion
ax: 1
ay: 1
b: 0
c: 1
Lx: 10
Ly: 10
T: 1
Nx: 14
Nt: 20
Backend: sparse
`)
		path := filepath.Join(t.TempDir(), "input.yaml")
		require.NoError(t, os.WriteFile(path, fileInput, 0644))
		mb := &ModelBurgers{InputFile: path}
		viper.Set("nt", 30)
		ip, err := processInput(mb, nil)
		require.NoError(t, err)
		assert.Equal(t, "Diffusion", ip.Title)
		assert.Equal(t, 14, ip.Nx)
		assert.Equal(t, 10, ip.Ny)
		assert.Equal(t, 30, ip.Nt)
		assert.Equal(t, "sparse", ip.Backend)
		// Positional arguments replace the physics of the file
		ip, err = processInput(mb, []string{"2", "1", "0", "1", "10", "10", "1"})
		require.NoError(t, err)
		assert.Equal(t, 2., ip.Ax)
		_, err = processInput(&ModelBurgers{InputFile: path + ".missing"}, nil)
		assert.Error(t, err)
	}
}

func TestRunBurgers(t *testing.T) {
	var (
		dir = t.TempDir()
		mb  = &ModelBurgers{
			Output:     filepath.Join(dir, "data.txt"),
			EnergyFile: filepath.Join(dir, "energy.csv"),
			Plot:       true,
			Perf:       true,
		}
		ip = InputParameters.NewBurgersParameters()
	)
	ip.Ax, ip.Ay, ip.B, ip.C = 1, 1, 0.5, 1
	ip.Lx, ip.Ly, ip.T = 10, 10, 1
	ip.Px, ip.Py = 2, 1
	require.NoError(t, RunBurgers(mb, ip))
	data, err := os.ReadFile(mb.Output)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	// Two components, 10 frames of a header plus 10 rows each
	assert.Equal(t, 2*(1+10*11)+1, len(lines))
	assert.Equal(t, "U velocity field:", lines[0])
	assert.Equal(t, "t = 0:", lines[1])
	assert.Equal(t, "0 0 0 0 0 0 0 0 0 0 ", lines[2])
	assert.Equal(t, "0 0 0 0 0 2 0 0 0 0 ", lines[7])
	assert.Equal(t, "t = 0.1:", lines[12])
	assert.Equal(t, "V velocity field:", lines[1+10*11])

	f, err := os.Open(mb.EnergyFile)
	require.NoError(t, err)
	defer f.Close()
	samples, err := Burgers2D.ReadEnergyCSV(f)
	require.NoError(t, err)
	assert.Len(t, samples, 10)
	assert.InDelta(t, 4., samples[0].Energy, 1.e-12)

	{ // Only the final state when nothing is recorded
		ip.RecordEvery = 0
		require.NoError(t, RunBurgers(mb, ip))
		data, err = os.ReadFile(mb.Output)
		require.NoError(t, err)
		lines = strings.Split(string(data), "\n")
		assert.Equal(t, 2*(1+11)+1, len(lines))
		assert.Equal(t, "t = 0.9:", lines[1])
	}
	{ // Configuration errors surface before the run
		ip.Px = 20
		assert.Error(t, RunBurgers(mb, ip))
	}
}
