//go:build !linux

package cmd

import (
	log "github.com/sirupsen/logrus"
)

func measurePerf(fn func() error) error {
	log.Warn("hardware counters are only available on linux")
	return fn()
}
