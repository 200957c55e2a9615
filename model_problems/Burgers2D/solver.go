package Burgers2D

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goburgers/InputParameters"
	"github.com/notargets/goburgers/comm"
	"github.com/notargets/goburgers/geometry2D"
	"github.com/notargets/goburgers/utils"
)

// Solver runs a complete simulation, one goroutine per partition.
type Solver struct {
	Params  *InputParameters.BurgersParameters
	Grid    *geometry2D.Grid
	Decomp  *geometry2D.Decomposition
	Phys    Physics
	Backend BackendType
	world   *comm.World
}

// Result is what rank 0 collects during a run
type Result struct {
	Energy  []EnergySample
	History *History
	U, V    *mat.Dense // Final assembled state
	Steps   int
	Elapsed time.Duration
}

// NewSolver validates the parameters. Warnings are logged first; malformed
// geometry or an unknown backend is then an error, while suspicious physical
// parameters are accepted.
func NewSolver(ip *InputParameters.BurgersParameters) (s *Solver, err error) {
	s = &Solver{
		Params: ip,
		Phys:   Physics{Ax: ip.Ax, Ay: ip.Ay, B: ip.B, C: ip.C},
	}
	for _, warn := range ip.Warnings() {
		log.Warn(warn)
	}
	if s.Grid, err = geometry2D.NewGrid(ip.Lx, ip.Ly, ip.T, ip.Nx, ip.Ny, ip.Nt); err != nil {
		return nil, err
	}
	if s.Decomp, err = geometry2D.NewDecomposition(s.Grid, ip.Px, ip.Py); err != nil {
		return nil, err
	}
	if s.Backend, err = NewBackendType(ip.Backend); err != nil {
		return nil, err
	}
	if s.world, err = comm.NewWorld(s.Decomp.Size()); err != nil {
		return nil, err
	}
	return
}

// Run integrates Nt-1 steps from the initial condition. The run fails as a
// whole if any partition fails.
func (s *Solver) Run() (res *Result, err error) {
	res = &Result{History: NewHistory(s.Params.HistorySize)}
	start := time.Now()
	log.WithFields(log.Fields{
		"partitions": s.Decomp.Size(),
		"grid":       s.Grid.Nx * s.Grid.Ny,
		"steps":      s.Grid.Nt - 1,
		"backend":    s.Backend.Print(),
	}).Info("starting run")
	if err = s.world.Run(func(c *comm.Comm) error {
		return s.runPartition(c, res)
	}); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)
	log.WithFields(log.Fields{
		"steps":   res.Steps,
		"elapsed": res.Elapsed,
	}).Info("run complete")
	log.Debug(utils.GetMemUsage())
	return
}

func (s *Solver) runPartition(c *comm.Comm, res *Result) (err error) {
	var (
		b        *Burgers
		recorded bool
		ip       = s.Params
		lastStep = s.Grid.Nt - 1
		isRoot   = c.Rank() == rootRank
		due      = func(k, every int) bool {
			return every > 0 && (k%every == 0 || k == lastStep)
		}
	)
	if b, err = NewBurgers(c, s.Decomp, s.Phys, s.Backend); err != nil {
		return
	}
	b.SetInitialVelocity()
	if err = c.Barrier(); err != nil {
		return
	}
	if isRoot {
		log.WithField("partitions", c.Size()).Debug("all partitions initialized")
	}
	record := func() (err error) {
		k := b.StepCount
		if due(k, ip.EnergyEvery) {
			var E float64
			if E, err = b.Energy(); err != nil {
				return
			}
			if isRoot {
				res.Energy = append(res.Energy, EnergySample{Step: k, Time: b.Time(), Energy: E})
				log.WithFields(log.Fields{"step": k, "energy": E}).Debug("energy")
			}
		}
		recorded = false
		if due(k, ip.RecordEvery) {
			var U, V *mat.Dense
			if U, V, err = b.Assemble(); err != nil {
				return
			}
			if isRoot {
				res.History.Push(Frame{Step: k, Time: b.Time(), U: U, V: V})
				res.U, res.V = U, V
			}
			recorded = true
		}
		return
	}
	if err = record(); err != nil {
		return
	}
	for k := 0; k < lastStep; k++ {
		if err = b.Step(); err != nil {
			return
		}
		if err = record(); err != nil {
			return
		}
	}
	if !recorded {
		var U, V *mat.Dense
		if U, V, err = b.Assemble(); err != nil {
			return
		}
		if isRoot {
			res.U, res.V = U, V
		}
	}
	if isRoot {
		res.Steps = b.StepCount
	}
	return
}
