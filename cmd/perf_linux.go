//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	log "github.com/sirupsen/logrus"
)

// measurePerf runs fn under a hardware instruction counter. When the kernel
// refuses perf events fn runs unmeasured.
func measurePerf(fn func() error) (err error) {
	var (
		ran   bool
		runFn = func() error {
			ran = true
			return fn()
		}
	)
	instr, perr := perf.CPUInstructions(runFn)
	if !ran {
		log.WithError(perr).Warn("hardware counters unavailable, running without them")
		return fn()
	}
	if perr != nil {
		return perr
	}
	log.WithField("instructions", instr.Value).Info("hardware counters")
	return
}
