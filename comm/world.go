/*
Package comm is an in-process message passing layer with an MPI-like surface.

A World is a fixed set of ranks, each run by its own goroutine. Ranks exchange
[]float64 messages through point to point Send / Recv calls addressed by
(source, destination, tag), and through a few collectives (AllReduceSum,
Gatherv, Barrier) built on top of them. Messages are copied on send, so no
memory is shared between ranks.

There is no fault tolerance: the first rank that returns an error or panics
aborts the world, and every blocked call in every other rank then returns
ErrAborted.
*/
package comm

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/goburgers/utils"
)

var (
	ErrAborted       = errors.New("communicator aborted")
	ErrMessageLength = errors.New("message length mismatch")
	ErrBadRank       = errors.New("rank out of range")
	ErrBadTag        = errors.New("invalid tag")
)

// Undelivered messages each rank's inbox holds per sender before Send blocks
const queueDepth = 8

type World struct {
	size  int
	mb    *utils.MailBox[[]float64]
	abort chan struct{}
	once  *sync.Once
	cause error
}

func NewWorld(size int) (w *World, err error) {
	if size < 1 {
		err = fmt.Errorf("%w: world size must be at least 1, have %d", ErrBadRank, size)
		return
	}
	w = &World{size: size}
	w.reset()
	return
}

func (w *World) Size() int { return w.size }

func (w *World) reset() {
	w.mb = utils.NewMailBox[[]float64](w.size, queueDepth)
	w.abort = make(chan struct{})
	w.once = new(sync.Once)
	w.cause = nil
}

/*
Run starts one goroutine per rank executing fn and waits for all of them. The
returned error is the one that aborted the world, or nil when every rank
returned nil. A panic inside fn is recovered, converted to an error and aborts
the world like any other error.
*/
func (w *World) Run(fn func(c *Comm) error) error {
	w.reset()
	var wg sync.WaitGroup
	for rank := 0; rank < w.size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					w.Abort(fmt.Errorf("rank %d panicked: %v", rank, p))
				}
			}()
			if err := fn(&Comm{world: w, rank: rank}); err != nil {
				w.Abort(fmt.Errorf("rank %d: %w", rank, err))
			}
		}(rank)
	}
	wg.Wait()
	return w.cause
}

// Abort stops the world. Only the first cause is kept.
func (w *World) Abort(cause error) {
	w.once.Do(func() {
		w.cause = cause
		log.WithError(cause).Debug("comm: world aborted")
		close(w.abort)
	})
}

func (w *World) checkRank(rank int) error {
	if rank < 0 || rank >= w.size {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrBadRank, rank, w.size)
	}
	return nil
}
